// Package combat implements the five combat substeps (spec §4.9, C9):
// declare attackers, declare blockers, first-strike damage, regular
// damage, end of combat — generalized from the teacher's src/combat.go
// onto the concrete state.GameState model and continuous.Registry-driven
// power/toughness/keyword reads instead of a flat Permanent struct.
package combat

import (
	"github.com/sixthedge/coreengine/pkg/card"
	"github.com/sixthedge/coreengine/pkg/continuous"
	"github.com/sixthedge/coreengine/pkg/state"
	"github.com/sixthedge/coreengine/pkg/types"
)

// Deps bundles the lookups combat needs to read effective stats and
// keywords without importing the reducer.
type Deps struct {
	Templates card.TemplateLookup
	Statics   *continuous.Registry
}

func hasKeyword(g *state.GameState, deps Deps, inst *state.CardInstance, kw string) bool {
	return continuous.HasKeyword(g, deps.Templates, deps.Statics, inst, kw)
}

func power(g *state.GameState, deps Deps, inst *state.CardInstance) int {
	return continuous.EffectivePower(g, deps.Templates, deps.Statics, inst)
}

func toughness(g *state.GameState, deps Deps, inst *state.CardInstance) int {
	return continuous.EffectiveToughness(g, deps.Templates, deps.Statics, inst)
}

// DeclareAttackers marks each instance in attackerIDs as attacking and taps
// it unless it has Vigilance; legality of the choice itself (untapped,
// not summoning sick) is the reducer's job via LegalActions, this only
// performs the state transition (spec §4.9 step 1).
func DeclareAttackers(g *state.GameState, deps Deps, attackerIDs []uint64) {
	for _, id := range attackerIDs {
		inst, _, ok := g.FindInstance(id)
		if !ok {
			continue
		}
		inst.Attacking = true
		if !hasKeyword(g, deps, inst, "Vigilance") {
			inst.Tapped = true
		}
	}
}

// basicLandTypes is the closed set of land subtypes a landwalk keyword can
// name (spec §4.9 "landwalk").
var basicLandTypes = []string{"Plains", "Island", "Swamp", "Mountain", "Forest"}

// landwalkType reports the basic land type attacker has landwalk for, if
// any, by checking its keywords for "<Type>walk".
func landwalkType(g *state.GameState, deps Deps, attacker *state.CardInstance) (string, bool) {
	for _, lt := range basicLandTypes {
		if hasKeyword(g, deps, attacker, lt+"walk") {
			return lt, true
		}
	}
	return "", false
}

// controlsLandType reports whether any permanent on battlefield has landType
// among its subtypes.
func controlsLandType(deps Deps, battlefield []*state.CardInstance, landType string) bool {
	for _, inst := range battlefield {
		t, ok := deps.Templates.GetByID(inst.TemplateID)
		if !ok {
			continue
		}
		for _, st := range t.Subtypes() {
			if st == landType {
				return true
			}
		}
	}
	return false
}

// CanBlock reports whether blocker is legally allowed to block attacker,
// honoring landwalk, Flying/Reach, Intimidate, Menace (arity only, checked
// by the caller across the full assignment), Shadow, and Fear (spec §4.9
// step 2, grounded on the teacher's CanBlock). Protection is not checked.
func CanBlock(g *state.GameState, deps Deps, attacker, blocker *state.CardInstance) bool {
	if lt, ok := landwalkType(g, deps, attacker); ok {
		if controlsLandType(deps, g.Get(blocker.Controller).Battlefield, lt) {
			return false
		}
	}
	if hasKeyword(g, deps, attacker, "Flying") {
		if hasKeyword(g, deps, blocker, "Flying") || hasKeyword(g, deps, blocker, "Reach") {
			return true
		}
		return false
	}
	if hasKeyword(g, deps, attacker, "Intimidate") {
		if isArtifact(deps, blocker) {
			return true
		}
		return sharesColor(deps, attacker, blocker)
	}
	if hasKeyword(g, deps, attacker, "Shadow") {
		return hasKeyword(g, deps, blocker, "Shadow")
	}
	if hasKeyword(g, deps, attacker, "Fear") {
		if isArtifact(deps, blocker) {
			return true
		}
		return hasColor(deps, blocker, types.Black)
	}
	return true
}

func isArtifact(deps Deps, inst *state.CardInstance) bool {
	t, ok := deps.Templates.GetByID(inst.TemplateID)
	return ok && t.IsArtifact()
}

func sharesColor(deps Deps, a, b *state.CardInstance) bool {
	ta, ok1 := deps.Templates.GetByID(a.TemplateID)
	tb, ok2 := deps.Templates.GetByID(b.TemplateID)
	if !ok1 || !ok2 {
		return false
	}
	for _, ca := range ta.Colors {
		for _, cb := range tb.Colors {
			if ca == cb {
				return true
			}
		}
	}
	return false
}

func hasColor(deps Deps, inst *state.CardInstance, color types.ManaType) bool {
	t, ok := deps.Templates.GetByID(inst.TemplateID)
	if !ok {
		return false
	}
	for _, c := range t.Colors {
		if c == string(color) {
			return true
		}
	}
	return false
}

// MenaceSatisfied reports whether a Menace attacker's block assignment has
// at least two blockers, per spec §4.9 "Menace requires ≥2 blockers".
func MenaceSatisfied(g *state.GameState, deps Deps, attacker *state.CardInstance, blockerCount int) bool {
	if !hasKeyword(g, deps, attacker, "Menace") {
		return true
	}
	return blockerCount >= 2
}

// DeclareBlockers assigns each blocker in the map to the attacker it
// declares, setting the attacker's BlockedBy list (spec §4.9 step 2).
func DeclareBlockers(g *state.GameState, assignments map[uint64][]uint64) {
	for attackerID, blockerIDs := range assignments {
		attacker, _, ok := g.FindInstance(attackerID)
		if !ok {
			continue
		}
		attacker.BlockedBy = append(attacker.BlockedBy, blockerIDs...)
		for _, bid := range blockerIDs {
			if blocker, _, ok := g.FindInstance(bid); ok {
				blocker.Blocking = &attackerID
			}
		}
	}
}

// FirstStrikeDamageStep assigns and applies combat damage from every
// attacking or blocking creature with First Strike or Double Strike (spec
// §4.9 step 3).
func FirstStrikeDamageStep(g *state.GameState, deps Deps) {
	for _, inst := range combatants(g) {
		if !inst.Attacking && inst.Blocking == nil {
			continue
		}
		if hasKeyword(g, deps, inst, "First Strike") || hasKeyword(g, deps, inst, "Double Strike") {
			applyCombatDamage(g, deps, inst)
		}
	}
}

// RegularDamageStep assigns and applies combat damage from every combatant
// without First Strike, plus a second hit from Double Strike creatures
// (spec §4.9 step 4).
func RegularDamageStep(g *state.GameState, deps Deps) {
	for _, inst := range combatants(g) {
		if !inst.Attacking && inst.Blocking == nil {
			continue
		}
		if hasKeyword(g, deps, inst, "Double Strike") {
			applyCombatDamage(g, deps, inst)
			continue
		}
		if !hasKeyword(g, deps, inst, "First Strike") {
			applyCombatDamage(g, deps, inst)
		}
	}
}

func combatants(g *state.GameState) []*state.CardInstance {
	var out []*state.CardInstance
	for _, pid := range []types.PlayerId{types.Player, types.Opponent} {
		out = append(out, g.Get(pid).Battlefield...)
	}
	return out
}

// applyCombatDamage resolves one creature's share of combat damage: an
// attacker splits its power across its blockers (with Deathtouch making any
// nonzero amount lethal-marking) and tramples the remainder to the
// defending player if unblocked or Trample is present; a blocker deals its
// full power to the attacker it is blocking (spec §4.9 step 3/4, grounded
// on the teacher's resolveCombatDamage/DealDamage).
func applyCombatDamage(g *state.GameState, deps Deps, inst *state.CardInstance) {
	if g.PreventAllCombatDamage {
		return
	}
	lifelink := hasKeyword(g, deps, inst, "Lifelink")
	if inst.Attacking {
		remaining := power(g, deps, inst)
		if len(inst.BlockedBy) == 0 {
			dealDamageToDefendingPlayer(g, inst, remaining, lifelink)
			return
		}
		for _, bid := range inst.BlockedBy {
			if remaining <= 0 && !hasKeyword(g, deps, inst, "Trample") {
				break
			}
			blocker, _, ok := g.FindInstance(bid)
			if !ok {
				continue
			}
			amount := remaining
			if !hasKeyword(g, deps, inst, "Trample") {
				amount = min(remaining, toughness(g, deps, blocker)-blocker.Damage)
				if amount < 0 {
					amount = 0
				}
			} else {
				lethal := toughness(g, deps, blocker) - blocker.Damage
				if lethal < 0 {
					lethal = 0
				}
				if hasKeyword(g, deps, inst, "Deathtouch") && lethal > 1 {
					lethal = 1
				}
				amount = min(remaining, lethal)
			}
			blocker.Damage += amount
			remaining -= amount
			if lifelink {
				g.Get(inst.Controller).Life += amount
			}
		}
		if remaining > 0 && hasKeyword(g, deps, inst, "Trample") {
			dealDamageToDefendingPlayer(g, inst, remaining, lifelink)
		}
		return
	}
	if inst.Blocking != nil {
		amount := power(g, deps, inst)
		if attacker, _, ok := g.FindInstance(*inst.Blocking); ok {
			attacker.Damage += amount
			if lifelink {
				g.Get(inst.Controller).Life += amount
			}
		}
	}
}

func dealDamageToDefendingPlayer(g *state.GameState, attacker *state.CardInstance, amount int, lifelink bool) {
	if amount <= 0 {
		return
	}
	defender := attacker.Controller.Opposite()
	g.Get(defender).Life -= amount
	if lifelink {
		g.Get(attacker.Controller).Life += amount
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// EndOfCombat clears the per-combat transient attacking/blocking state and
// expires any temporary modification scoped to end of combat (spec §4.9
// step 5, §3 ExpiryKind.EndOfCombat). Damage marked on creatures persists
// until cleanup; state-based actions observe it before this runs.
func EndOfCombat(g *state.GameState) {
	for _, inst := range combatants(g) {
		inst.Attacking = false
		inst.Blocking = nil
		inst.BlockedBy = nil
		var kept []state.TemporaryModification
		for _, m := range inst.TemporaryMods {
			if m.ExpiresAt != types.EndOfCombat {
				kept = append(kept, m)
			}
		}
		inst.TemporaryMods = kept
	}
}
