package reducer

import (
	"github.com/sixthedge/coreengine/pkg/mana"
	"github.com/sixthedge/coreengine/pkg/state"
	"github.com/sixthedge/coreengine/pkg/target"
	"github.com/sixthedge/coreengine/pkg/types"
)

// LegalActions enumerates the actions player may currently submit (spec
// §4.13 legal_actions). Target selection and attacker/blocker subsets are
// combinatorial; rather than exploding every combination, this returns one
// representative Action per underlying choice (e.g. one CastSpell per
// castable card, using its first legal target for each requirement) plus
// the no-attack/all-eligible-attack and no-block declarations. A caller
// building its own decision tree over targets or combat assignments uses
// Validate to check a specific combination it has constructed itself.
func (e *Engine) LegalActions(g *state.GameState, player types.PlayerId) []Action {
	var out []Action

	if player == g.PriorityPlayer {
		out = append(out, Action{Kind: PassPriority, Player: player})
	}

	p := g.Get(player)
	isMainWindow := player == g.ActivePlayer && g.Step == types.StepMainPhase && len(g.Stack) == 0

	if isMainWindow && p.LandsPlayedThisTurn == 0 {
		for _, inst := range p.Hand {
			if t, ok := e.Templates.GetByID(inst.TemplateID); ok && t.IsLand() {
				out = append(out, Action{Kind: PlayLand, Player: player, InstanceID: inst.InstanceID})
			}
		}
	}

	for _, inst := range p.Hand {
		t, ok := e.Templates.GetByID(inst.TemplateID)
		if !ok || t.IsLand() {
			continue
		}
		instantSpeed := t.IsInstant() || t.HasKeyword("Flash")
		if !isMainWindow && !(instantSpeed && player == g.PriorityPlayer) {
			continue
		}
		cost := mana.ParseCost(t.ManaCost)
		if _, ok := mana.CanPay(g, player, cost, 0, e.Stack.ManaSourceProvider()); !ok {
			continue
		}
		targets := e.firstLegalTargetsForCast(g, inst.TemplateID, player)
		out = append(out, Action{Kind: CastSpell, Player: player, InstanceID: inst.InstanceID, Targets: targets})
	}

	for _, inst := range p.Battlefield {
		for _, d := range e.Abilities.For(inst.TemplateID) {
			if d.TriggerEvent != nil {
				continue
			}
			if d.Cost.Tap && (inst.Tapped || inst.SummoningSick) {
				continue
			}
			if d.Cost.Mana != nil {
				if _, ok := mana.CanPay(g, player, *d.Cost.Mana, 0, e.Stack.ManaSourceProvider()); !ok {
					continue
				}
			}
			if d.CanActivate != nil && !d.CanActivate(g, inst.InstanceID, player) {
				continue
			}
			targets := e.firstLegalTargets(g, d.TargetReqs, player)
			out = append(out, Action{
				Kind: ActivateAbility, Player: player,
				InstanceID: inst.InstanceID, AbilityID: d.ID, Targets: targets,
			})
		}
	}

	if g.Step == types.StepDeclareAttackers && player == g.ActivePlayer {
		var eligible []uint64
		for _, inst := range p.Battlefield {
			t, ok := e.Templates.GetByID(inst.TemplateID)
			if !ok || !t.IsCreature() || inst.Tapped || inst.SummoningSick {
				continue
			}
			eligible = append(eligible, inst.InstanceID)
		}
		out = append(out, Action{Kind: DeclareAttackers, Player: player, AttackerIDs: nil})
		if len(eligible) > 0 {
			out = append(out, Action{Kind: DeclareAttackers, Player: player, AttackerIDs: eligible})
		}
	}

	if g.Step == types.StepDeclareBlockers && player != g.ActivePlayer {
		out = append(out, Action{Kind: DeclareBlockers, Player: player, BlockAssignments: nil})
	}

	return out
}

func (e *Engine) firstLegalTargetsForCast(g *state.GameState, templateID string, player types.PlayerId) []state.TargetRef {
	for _, d := range e.Abilities.For(templateID) {
		if d.IsManaAbility || d.TriggerEvent != nil {
			continue
		}
		return e.firstLegalTargets(g, d.TargetReqs, player)
	}
	return nil
}

// firstLegalTargets picks the first legal candidate for each requirement,
// in order, so a representative Action satisfies ValidateTargets without
// this package needing to enumerate every combination.
func (e *Engine) firstLegalTargets(g *state.GameState, reqs []target.Requirement, player types.PlayerId) []state.TargetRef {
	if len(reqs) == 0 {
		return nil
	}
	out := make([]state.TargetRef, 0, len(reqs))
	for _, req := range reqs {
		legal := target.LegalTargets(g, e.targetDeps(), req, player)
		if len(legal) == 0 {
			return nil
		}
		out = append(out, legal[0])
	}
	return out
}
