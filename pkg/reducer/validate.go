package reducer

import (
	"fmt"

	"github.com/sixthedge/coreengine/pkg/combat"
	"github.com/sixthedge/coreengine/pkg/mana"
	"github.com/sixthedge/coreengine/pkg/state"
	"github.com/sixthedge/coreengine/pkg/target"
	"github.com/sixthedge/coreengine/pkg/types"
)

// Validate checks an action's legality against g without mutating it,
// returning a human-readable error per violated rule (spec §4.13
// validate_action). Apply calls this first and refuses to run an action
// that fails any check.
func (e *Engine) Validate(g *state.GameState, action Action) []string {
	var errs []string

	switch action.Kind {
	case PlayLand:
		errs = append(errs, e.validatePlayLand(g, action)...)
	case CastSpell:
		errs = append(errs, e.validateCastSpell(g, action)...)
	case ActivateAbility:
		errs = append(errs, e.validateActivateAbility(g, action)...)
	case DeclareAttackers:
		if g.Step != types.StepDeclareAttackers {
			errs = append(errs, "not the declare attackers step")
		}
		if action.Player != g.ActivePlayer {
			errs = append(errs, "only the active player declares attackers")
		}
	case DeclareBlockers:
		if g.Step != types.StepDeclareBlockers {
			errs = append(errs, "not the declare blockers step")
		}
		if action.Player == g.ActivePlayer {
			errs = append(errs, "only the defending player declares blockers")
		}
		errs = append(errs, e.validateDeclareBlockers(g, action)...)
	case PassPriority:
		if action.Player != g.PriorityPlayer {
			errs = append(errs, "player does not hold priority")
		}
	default:
		errs = append(errs, "unknown action kind")
	}

	return errs
}

// validateDeclareBlockers rejects any assignment the defending player could
// not legally make: blocking with something that isn't an untapped creature
// the defender controls, or blocking an attacker the blocker cannot legally
// block (landwalk, Flying/Reach, Intimidate, Shadow, Fear — spec §4.9 step
// 2, combat.CanBlock) or that isn't attacking at all, and Menace's ≥2
// blocker requirement.
func (e *Engine) validateDeclareBlockers(g *state.GameState, action Action) []string {
	var errs []string
	deps := e.combatDeps()
	for attackerID, blockerIDs := range action.BlockAssignments {
		attacker, _, ok := g.FindInstance(attackerID)
		if !ok || !attacker.Attacking {
			errs = append(errs, "blocked instance is not attacking")
			continue
		}
		if !combat.MenaceSatisfied(g, deps, attacker, len(blockerIDs)) {
			errs = append(errs, "Menace requires at least two blockers")
		}
		for _, bid := range blockerIDs {
			blocker, _, ok := g.FindInstance(bid)
			if !ok || blocker.Controller != action.Player {
				errs = append(errs, "blocker is not controlled by the defending player")
				continue
			}
			if blocker.Tapped {
				errs = append(errs, "tapped creatures cannot block")
				continue
			}
			if bt, ok := e.Templates.GetByID(blocker.TemplateID); !ok || !bt.IsCreature() {
				errs = append(errs, "blocker is not a creature")
				continue
			}
			if !combat.CanBlock(g, deps, attacker, blocker) {
				errs = append(errs, "blocker cannot legally block that attacker")
			}
		}
	}
	return errs
}

func (e *Engine) validatePlayLand(g *state.GameState, action Action) []string {
	var errs []string
	if action.Player != g.ActivePlayer {
		errs = append(errs, "only the active player may play a land")
	}
	if g.Step != types.StepMainPhase || len(g.Stack) > 0 {
		errs = append(errs, "lands may only be played with an empty stack during a main phase")
	}
	p := g.Get(action.Player)
	inst, ok := findInHand(p, action.InstanceID)
	if !ok {
		errs = append(errs, "card is not in hand")
		return errs
	}
	t, ok := e.Templates.GetByID(inst.TemplateID)
	if !ok || !t.IsLand() {
		errs = append(errs, "card is not a land")
	}
	if p.LandsPlayedThisTurn > 0 {
		errs = append(errs, "land for turn already used")
	}
	return errs
}

func (e *Engine) validateCastSpell(g *state.GameState, action Action) []string {
	var errs []string
	p := g.Get(action.Player)
	inst, ok := findInHand(p, action.InstanceID)
	if !ok {
		errs = append(errs, "card is not in hand")
		return errs
	}
	t, ok := e.Templates.GetByID(inst.TemplateID)
	if !ok || t.IsLand() {
		errs = append(errs, "card is not a castable spell")
		return errs
	}
	if (t.IsSorcery() || !hasInstantSpeed(&t)) && (action.Player != g.ActivePlayer || g.Step != types.StepMainPhase || len(g.Stack) > 0) {
		errs = append(errs, "sorcery-speed spell cast outside a legal window")
	}

	cost := mana.ParseCost(t.ManaCost)
	x := 0
	if action.XValue != nil {
		x = *action.XValue
	}
	if action.ManaPayment == nil {
		if _, ok := mana.CanPay(g, action.Player, cost, x, e.Stack.ManaSourceProvider()); !ok {
			errs = append(errs, "cannot pay mana cost")
		}
	}

	descs := e.Abilities.For(inst.TemplateID)
	for _, d := range descs {
		if d.IsManaAbility || d.TriggerEvent != nil {
			continue
		}
		if len(d.TargetReqs) > 0 {
			if msgs := target.ValidateTargets(g, e.targetDeps(), d.TargetReqs, action.Targets, action.Player, false); len(msgs) > 0 {
				for _, m := range msgs {
					errs = append(errs, fmt.Sprintf("%s: %s", t.Name, m))
				}
			}
		}
		break
	}
	return errs
}

// hasInstantSpeed reports whether t can be cast at instant speed: an
// Instant, or any permanent spell carrying Flash (spec §4.5 timing).
func hasInstantSpeed(t interface {
	IsInstant() bool
	HasKeyword(string) bool
}) bool {
	return t.IsInstant() || t.HasKeyword("Flash")
}

func (e *Engine) validateActivateAbility(g *state.GameState, action Action) []string {
	var errs []string
	inst, _, ok := g.FindInstance(action.InstanceID)
	if !ok {
		errs = append(errs, "source instance not found")
		return errs
	}
	if inst.Controller != action.Player {
		errs = append(errs, "only the controller may activate this ability")
	}
	desc, ok := e.Abilities.ByID(action.AbilityID)
	if !ok {
		errs = append(errs, "unknown ability id")
		return errs
	}
	if desc.Cost.Tap && (inst.Tapped || inst.SummoningSick) {
		errs = append(errs, "source cannot be tapped for cost")
	}
	if desc.Cost.Mana != nil && action.ManaPayment == nil {
		if _, ok := mana.CanPay(g, action.Player, *desc.Cost.Mana, 0, e.Stack.ManaSourceProvider()); !ok {
			errs = append(errs, "cannot pay ability mana cost")
		}
	}
	if len(desc.TargetReqs) > 0 {
		if msgs := target.ValidateTargets(g, e.targetDeps(), desc.TargetReqs, action.Targets, action.Player, false); len(msgs) > 0 {
			errs = append(errs, msgs...)
		}
	}
	return errs
}
