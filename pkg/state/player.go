package state

import "github.com/sixthedge/coreengine/pkg/types"

// ManaPool is the six-bucket mana counter (spec §3).
type ManaPool struct {
	White, Blue, Black, Red, Green, Colorless int
}

// Total returns the sum of all buckets.
func (m ManaPool) Total() int {
	return m.White + m.Blue + m.Black + m.Red + m.Green + m.Colorless
}

// Empty zeroes the pool, as happens at each step's cleanup of unspent mana
// in the games this corpus models (6th Edition predates mana burn removal
// nuance the spec is silent on; pools are emptied at end of step per the
// teacher's simplified model).
func (m *ManaPool) Empty() {
	*m = ManaPool{}
}

// PreventionShield is a fixed amount-or-unlimited damage prevention shield
// of a given color restriction (spec §3 PlayerState.prevention_shields).
type PreventionShield struct {
	Color           types.ManaType
	AmountRemaining int // -1 means unlimited for the shield's duration
}

// PlayerState is one seat's mutable state (spec §3).
type PlayerState struct {
	ID types.PlayerId

	Life int

	Library     []*CardInstance
	Hand        []*CardInstance
	Battlefield []*CardInstance
	Graveyard   []*CardInstance
	Exile       []*CardInstance

	// StackZone holds this player's cards currently on the stack (spell
	// sources whose Zone is types.Stack). Kept on the owning player, like
	// every other zone, so FindInstance and AllInstances can still reach
	// them between Push and resolution.
	StackZone []*CardInstance

	ManaPool ManaPool

	LandsPlayedThisTurn int
	HasPassedPriority   bool

	PreventionShields []PreventionShield

	// DeckedOut is set when a draw is attempted against an empty library;
	// the SBA fixpoint (spec §4.10 item 2) converts it into a loss.
	DeckedOut bool
}

// NewPlayerState creates a player seat at the starting life total (spec §3:
// "life (starts 20)").
func NewPlayerState(id types.PlayerId) *PlayerState {
	return &PlayerState{ID: id, Life: 20}
}

// Clone deep-copies the player state, including every owned card instance.
func (p *PlayerState) Clone() *PlayerState {
	clone := *p
	clone.Library = cloneInstances(p.Library)
	clone.Hand = cloneInstances(p.Hand)
	clone.Battlefield = cloneInstances(p.Battlefield)
	clone.Graveyard = cloneInstances(p.Graveyard)
	clone.Exile = cloneInstances(p.Exile)
	clone.StackZone = cloneInstances(p.StackZone)
	clone.PreventionShields = append([]PreventionShield(nil), p.PreventionShields...)
	return &clone
}

func cloneInstances(in []*CardInstance) []*CardInstance {
	out := make([]*CardInstance, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}

// ZoneSlice returns the slice backing the given zone (Command is not a
// player-owned zone slice and returns nil; the stack's ordering itself
// lives on GameState.Stack, but each stacked card's source instance is
// tracked here so it stays reachable between Push and resolution).
func (p *PlayerState) ZoneSlice(z types.Zone) *[]*CardInstance {
	switch z {
	case types.Library:
		return &p.Library
	case types.Hand:
		return &p.Hand
	case types.Battlefield:
		return &p.Battlefield
	case types.Graveyard:
		return &p.Graveyard
	case types.Exile:
		return &p.Exile
	case types.Stack:
		return &p.StackZone
	default:
		return nil
	}
}

// RemoveFromZone removes the instance with the given id from zone z,
// returning it and whether it was found.
func (p *PlayerState) RemoveFromZone(z types.Zone, instanceID uint64) (*CardInstance, bool) {
	slice := p.ZoneSlice(z)
	if slice == nil {
		return nil, false
	}
	for i, c := range *slice {
		if c.InstanceID == instanceID {
			found := c
			*slice = append((*slice)[:i], (*slice)[i+1:]...)
			return found, true
		}
	}
	return nil, false
}

// FindInZone returns the instance with the given id in zone z, if present.
func (p *PlayerState) FindInZone(z types.Zone, instanceID uint64) (*CardInstance, bool) {
	slice := p.ZoneSlice(z)
	if slice == nil {
		return nil, false
	}
	for _, c := range *slice {
		if c.InstanceID == instanceID {
			return c, true
		}
	}
	return nil, false
}
