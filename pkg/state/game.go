package state

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/sixthedge/coreengine/pkg/types"
)

// RecordedAction is one append-only entry of the action history (spec §6:
// "action_history is an append-only list of actions serialised to
// JSON-like structured strings"). ActionJSON holds the serialised action;
// keeping it as a string (rather than reparsing into a concrete Action type
// here) avoids state depending on the reducer package that defines Action.
type RecordedAction struct {
	Seq        int    `json:"seq"`
	ActionJSON string `json:"action"`
}

// GameState is the full, replayable state of a two-player game (spec §3).
type GameState struct {
	Players map[types.PlayerId]*PlayerState

	Stack []*StackObject
	Exile []*CardInstance // cards exiled by effects with no owning player zone reference needed beyond PlayerState.Exile; kept for symmetry with spec's zone list, unused directly (player Exile is authoritative).

	ActivePlayer   types.PlayerId
	PriorityPlayer types.PlayerId

	TurnCount int
	Phase     types.Phase
	Step      types.Step

	GameOver bool
	Winner   *types.PlayerId

	RNGSeed uint32

	// RNGState is the LCG's current raw generator state (spec §4.1), carried
	// across Apply calls so replaying the same action_history from the same
	// RNGSeed reproduces the same sequence of random draws.
	RNGState uint64

	PreventAllCombatDamage bool

	PendingTriggers []Trigger

	ActionHistory []RecordedAction

	// SessionID is a non-deterministic, log-correlation-only identifier
	// (SPEC_FULL §3 ambient fields). It is never consulted by a rules
	// decision and is excluded from determinism/replay comparisons.
	SessionID uuid.UUID
}

// NewGameState builds an empty, two-seat game state at turn 1, Main1, with
// the first player holding priority. Callers populate Players' libraries
// before use (create_game_state, spec §6).
func NewGameState(seed uint32) *GameState {
	return &GameState{
		Players: map[types.PlayerId]*PlayerState{
			types.Player:   NewPlayerState(types.Player),
			types.Opponent: NewPlayerState(types.Opponent),
		},
		ActivePlayer:   types.Player,
		PriorityPlayer: types.Player,
		TurnCount:      1,
		Phase:          types.Main1,
		Step:           types.StepMainPhase,
		RNGSeed:        seed,
		RNGState:       uint64(seed),
		SessionID:      uuid.New(),
	}
}

// Get returns the PlayerState for id.
func (g *GameState) Get(id types.PlayerId) *PlayerState {
	return g.Players[id]
}

// Opponent returns the PlayerState for the seat opposite id.
func (g *GameState) Opponent(id types.PlayerId) *PlayerState {
	return g.Players[id.Opposite()]
}

// Clone returns a deep, alias-free copy of the state so the reducer can
// mutate freely while a caller retains the original (spec §5, §9 "Pure
// functional reducer").
func (g *GameState) Clone() *GameState {
	clone := *g
	clone.Players = make(map[types.PlayerId]*PlayerState, len(g.Players))
	for id, p := range g.Players {
		clone.Players[id] = p.Clone()
	}
	clone.Stack = make([]*StackObject, len(g.Stack))
	for i, s := range g.Stack {
		clone.Stack[i] = s.Clone()
	}
	clone.Exile = cloneInstances(g.Exile)
	if g.Winner != nil {
		w := *g.Winner
		clone.Winner = &w
	}
	clone.PendingTriggers = append([]Trigger(nil), g.PendingTriggers...)
	clone.ActionHistory = append([]RecordedAction(nil), g.ActionHistory...)
	return &clone
}

// AllInstances returns every card instance reachable from the state,
// across both players' zones plus the stack's source references are not
// duplicated here (the stack only references instances already counted in
// a zone or, for spells, temporarily "on the stack" — modeled by Zone ==
// types.Stack on the instance itself). Used by zone-conservation checks
// (spec §8).
func (g *GameState) AllInstances() []*CardInstance {
	var all []*CardInstance
	for _, id := range []types.PlayerId{types.Player, types.Opponent} {
		p := g.Players[id]
		all = append(all, p.Library...)
		all = append(all, p.Hand...)
		all = append(all, p.Battlefield...)
		all = append(all, p.Graveyard...)
		all = append(all, p.Exile...)
		all = append(all, p.StackZone...)
	}
	all = append(all, g.Exile...)
	return all
}

// FindInstance searches every zone of both players for the given instance
// id, returning the instance, its owning PlayerState, and its zone.
func (g *GameState) FindInstance(id uint64) (*CardInstance, *PlayerState, bool) {
	for _, pid := range []types.PlayerId{types.Player, types.Opponent} {
		p := g.Players[pid]
		for _, z := range []types.Zone{types.Library, types.Hand, types.Battlefield, types.Graveyard, types.Exile, types.Stack} {
			if c, ok := p.FindInZone(z, id); ok {
				return c, p, true
			}
		}
	}
	return nil, nil, false
}

// RecordAction appends a JSON-serialised action to the action history.
func (g *GameState) RecordAction(action interface{}) error {
	b, err := json.Marshal(action)
	if err != nil {
		return err
	}
	g.ActionHistory = append(g.ActionHistory, RecordedAction{
		Seq:        len(g.ActionHistory) + 1,
		ActionJSON: string(b),
	})
	return nil
}
