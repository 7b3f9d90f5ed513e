// Package sba implements the state-based action fixpoint (spec §4.10, C10):
// a fixed, ordered battery of checks run after every priority-generating
// event until none of them find anything to do, grounded on the teacher's
// cleanupDeadCreatures but generalized to the full ordered list the spec
// calls for (life loss, deck-out, counter annihilation, lethal toughness,
// lethal damage with regeneration, orphaned auras, token cleanup).
package sba

import (
	"github.com/sixthedge/coreengine/pkg/card"
	"github.com/sixthedge/coreengine/pkg/continuous"
	"github.com/sixthedge/coreengine/pkg/state"
	"github.com/sixthedge/coreengine/pkg/types"
)

// Deps bundles the lookups the fixpoint needs to read effective toughness
// and resolve template info without importing the reducer.
type Deps struct {
	Templates card.TemplateLookup
	Statics   *continuous.Registry
}

// RunToFixpoint applies the seven ordered checks repeatedly until a full
// pass makes no changes (spec §4.10). It returns true if the game ended as
// a result (a player's loss condition was met).
func RunToFixpoint(g *state.GameState, deps Deps) bool {
	for {
		changed := false
		changed = checkPlayerLosses(g) || changed
		if g.GameOver {
			return true
		}
		changed = annihilateCounters(g) || changed
		changed = checkZeroToughness(g, deps) || changed
		changed = checkLethalDamage(g, deps) || changed
		changed = checkOrphanedAuras(g, deps) || changed
		if !changed {
			return false
		}
	}
}

// checkPlayerLosses implements spec §4.10 items 1-2: life at or below zero,
// and an attempted draw from an empty library.
func checkPlayerLosses(g *state.GameState) bool {
	changed := false
	for _, pid := range []types.PlayerId{types.Player, types.Opponent} {
		p := g.Get(pid)
		if p.Life <= 0 || p.DeckedOut {
			winner := pid.Opposite()
			g.GameOver = true
			g.Winner = &winner
			changed = true
		}
	}
	return changed
}

// annihilateCounters implements the classic +1/+1 / -1/-1 counter
// annihilation rule: equal numbers of each on the same permanent cancel in
// pairs (spec §3 counters map; §4.10 item 3).
func annihilateCounters(g *state.GameState) bool {
	changed := false
	for _, pid := range []types.PlayerId{types.Player, types.Opponent} {
		for _, inst := range g.Get(pid).Battlefield {
			plus := inst.Counters[types.PlusOnePlusOne]
			minus := inst.Counters[types.MinusOneMinusOne]
			if plus > 0 && minus > 0 {
				n := plus
				if minus < n {
					n = minus
				}
				inst.Counters[types.PlusOnePlusOne] -= n
				inst.Counters[types.MinusOneMinusOne] -= n
				changed = true
			}
		}
	}
	return changed
}

// checkZeroToughness implements spec §4.10 item 4: a creature with
// effective toughness 0 or less is put into its owner's graveyard. This
// bypasses regeneration shields — only lethal damage is regenerable.
func checkZeroToughness(g *state.GameState, deps Deps) bool {
	changed := false
	for _, pid := range []types.PlayerId{types.Player, types.Opponent} {
		p := g.Get(pid)
		var dying []*state.CardInstance
		for _, inst := range p.Battlefield {
			t, ok := deps.Templates.GetByID(inst.TemplateID)
			if !ok || !t.IsCreature() {
				continue
			}
			if continuous.EffectiveToughness(g, deps.Templates, deps.Statics, inst) <= 0 {
				dying = append(dying, inst)
			}
		}
		for _, inst := range dying {
			moveToGraveyard(p, inst)
			changed = true
		}
	}
	return changed
}

// checkLethalDamage implements spec §4.10 item 5: a creature with marked
// damage at or above its effective toughness is destroyed, unless it has a
// regeneration shield, in which case the shield is consumed instead: damage
// is removed, the creature is tapped, and it is removed from combat.
func checkLethalDamage(g *state.GameState, deps Deps) bool {
	changed := false
	for _, pid := range []types.PlayerId{types.Player, types.Opponent} {
		p := g.Get(pid)
		var dying []*state.CardInstance
		for _, inst := range p.Battlefield {
			t, ok := deps.Templates.GetByID(inst.TemplateID)
			if !ok || !t.IsCreature() || inst.Damage == 0 {
				continue
			}
			if inst.Damage >= continuous.EffectiveToughness(g, deps.Templates, deps.Statics, inst) {
				dying = append(dying, inst)
			}
		}
		for _, inst := range dying {
			if inst.RegenShields > 0 {
				inst.RegenShields--
				inst.Damage = 0
				inst.Tapped = true
				inst.Attacking = false
				inst.Blocking = nil
				inst.BlockedBy = nil
				changed = true
				continue
			}
			moveToGraveyard(p, inst)
			changed = true
		}
	}
	return changed
}

// checkOrphanedAuras implements spec §4.10 item 6: an Aura whose
// AttachedTo no longer points to a legal permanent on the battlefield is
// put into its owner's graveyard.
func checkOrphanedAuras(g *state.GameState, deps Deps) bool {
	changed := false
	for _, pid := range []types.PlayerId{types.Player, types.Opponent} {
		p := g.Get(pid)
		var orphaned []*state.CardInstance
		for _, inst := range p.Battlefield {
			t, ok := deps.Templates.GetByID(inst.TemplateID)
			if !ok || !t.IsEnchantment() || inst.AttachedTo == nil {
				continue
			}
			target, _, ok := g.FindInstance(*inst.AttachedTo)
			if !ok || target.Zone != types.Battlefield {
				orphaned = append(orphaned, inst)
			}
		}
		for _, inst := range orphaned {
			moveToGraveyard(p, inst)
			changed = true
		}
	}
	return changed
}

// moveToGraveyard removes inst from the battlefield and places it in
// owner's graveyard, or simply removes it if it is a token (spec §3: tokens
// cease to exist once they leave the battlefield).
func moveToGraveyard(owner *state.PlayerState, inst *state.CardInstance) {
	owner.RemoveFromZone(types.Battlefield, inst.InstanceID)
	if inst.IsToken {
		return
	}
	inst.Zone = types.Graveyard
	inst.Tapped = false
	inst.Attacking = false
	inst.Blocking = nil
	inst.BlockedBy = nil
	inst.AttachedTo = nil
	inst.Attachments = nil
	inst.Counters = map[types.CounterKind]int{}
	inst.TemporaryMods = nil
	inst.RegenShields = 0
	owner.Graveyard = append(owner.Graveyard, inst)
}
