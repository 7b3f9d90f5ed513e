// Package turn implements the phase/step state machine and its automatic
// transitions (spec §4.11, C11), grounded on the teacher's src/turn.go
// phase/step table but driving the concrete state.GameState model instead
// of a standalone turn struct, and adding the per-step automations (untap,
// draw, cleanup) the teacher's version left to its outer game loop.
package turn

import (
	"github.com/sixthedge/coreengine/pkg/card"
	"github.com/sixthedge/coreengine/pkg/state"
	"github.com/sixthedge/coreengine/pkg/types"
)

// order lists every step in turn sequence, grouped by the phase it belongs
// to, mirroring the teacher's turnOrder table (spec §4.11).
var order = []struct {
	Phase types.Phase
	Step  types.Step
}{
	{types.Beginning, types.StepUntap},
	{types.Beginning, types.StepUpkeep},
	{types.Beginning, types.StepDraw},
	{types.Main1, types.StepMainPhase},
	{types.CombatPhase, types.StepBeginningOfCombat},
	{types.CombatPhase, types.StepDeclareAttackers},
	{types.CombatPhase, types.StepDeclareBlockers},
	{types.CombatPhase, types.StepFirstStrikeDamage},
	{types.CombatPhase, types.StepCombatDamage},
	{types.CombatPhase, types.StepEndOfCombat},
	{types.Main2, types.StepMainPhase},
	{types.Ending, types.StepEnd},
	{types.Ending, types.StepCleanup},
}

func indexOf(phase types.Phase, step types.Step) int {
	for i, o := range order {
		if o.Phase == phase && o.Step == step {
			return i
		}
	}
	return -1
}

// Deps bundles the lookups the turn automations need.
type Deps struct {
	Templates card.TemplateLookup
}

// Advance moves the game to the next step, wrapping to a new turn and
// swapping the active player after Cleanup, and runs that step's automatic
// actions (spec §4.11). It does not run state-based actions or drain
// triggers itself — the reducer calls sba.RunToFixpoint and the ability
// registry's trigger drain around every Advance.
func Advance(g *state.GameState, deps Deps) {
	idx := indexOf(g.Phase, g.Step)
	if idx == -1 {
		idx = 0
	} else {
		idx++
	}
	if idx >= len(order) {
		idx = 0
		g.ActivePlayer = g.ActivePlayer.Opposite()
		g.TurnCount++
	}
	g.Phase = order[idx].Phase
	g.Step = order[idx].Step
	g.PriorityPlayer = g.ActivePlayer

	runAutomations(g, deps)
}

func runAutomations(g *state.GameState, deps Deps) {
	switch g.Step {
	case types.StepUntap:
		untapStep(g, deps)
	case types.StepDraw:
		drawStep(g)
	case types.StepCleanup:
		cleanupStep(g, deps)
	}
}

// untapStep untaps every permanent the active player controls and clears
// summoning sickness for anything that has been continuously controlled
// since before this turn (spec §3 summoning_sick invariant, §4.11).
func untapStep(g *state.GameState, deps Deps) {
	p := g.Get(g.ActivePlayer)
	for _, inst := range p.Battlefield {
		inst.Tapped = false
		if inst.SinceTurn < g.TurnCount {
			inst.SummoningSick = false
		}
	}
}

// drawStep draws one card for the active player, except the very first turn
// of the game for the player who goes first (spec §4.11, 6th Edition's
// "the player who plays first skips the draw step of their first turn").
func drawStep(g *state.GameState) {
	if g.TurnCount == 1 && g.ActivePlayer == types.Player {
		return
	}
	p := g.Get(g.ActivePlayer)
	if len(p.Library) == 0 {
		p.DeckedOut = true
		return
	}
	c := p.Library[0]
	p.Library = p.Library[1:]
	c.Zone = types.Hand
	p.Hand = append(p.Hand, c)
}

// cleanupStep empties both players' mana pools, discards the active player
// down to the maximum hand size, clears damage, and expires temporary
// modifications due to end at this point (spec §4.11, §3 "temporary
// modifications" ExpiryKind.EndOfTurn).
func cleanupStep(g *state.GameState, deps Deps) {
	for _, pid := range []types.PlayerId{types.Player, types.Opponent} {
		p := g.Get(pid)
		p.ManaPool.Empty()
		for _, inst := range p.Battlefield {
			inst.Damage = 0
			inst.TemporaryMods = filterExpired(inst.TemporaryMods)
		}
	}

	const maxHandSize = 7
	active := g.Get(g.ActivePlayer)
	for len(active.Hand) > maxHandSize {
		discarded := active.Hand[len(active.Hand)-1]
		active.Hand = active.Hand[:len(active.Hand)-1]
		discarded.Zone = types.Graveyard
		active.Graveyard = append(active.Graveyard, discarded)
	}

	for _, pid := range []types.PlayerId{types.Player, types.Opponent} {
		g.Get(pid).LandsPlayedThisTurn = 0
	}
}

func filterExpired(mods []state.TemporaryModification) []state.TemporaryModification {
	var kept []state.TemporaryModification
	for _, m := range mods {
		if m.ExpiresAt != types.EndOfTurn {
			kept = append(kept, m)
		}
	}
	return kept
}
