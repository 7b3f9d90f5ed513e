// Package stack implements the LIFO spell/ability stack and the
// priority-pass protocol that drains it (spec §4.5, C8), adapted from the
// teacher's deleted pkg/ability/stack.go and priority.go onto the concrete
// state.GameState model.
package stack

import (
	"github.com/sixthedge/coreengine/pkg/ability"
	"github.com/sixthedge/coreengine/pkg/effect"
	"github.com/sixthedge/coreengine/pkg/mana"
	"github.com/sixthedge/coreengine/pkg/state"
	"github.com/sixthedge/coreengine/pkg/target"
	"github.com/sixthedge/coreengine/pkg/types"
)

// Engine bundles the collaborators stack operations need: the ability
// registry (for the descriptor a stack object resolves) and the target
// legality dependencies (which themselves carry the card-template lookup
// effect resolution needs).
type Engine struct {
	Abilities  *ability.Registry
	TargetDeps target.Deps
}

// Push places a new stack object on top (spec §4.5: "LIFO").
func Push(g *state.GameState, obj *state.StackObject) {
	g.Stack = append(g.Stack, obj)
}

// Top returns the stack object awaiting resolution, if any.
func Top(g *state.GameState) (*state.StackObject, bool) {
	if len(g.Stack) == 0 {
		return nil, false
	}
	return g.Stack[len(g.Stack)-1], true
}

// Pop removes and returns the top stack object.
func Pop(g *state.GameState) (*state.StackObject, bool) {
	obj, ok := Top(g)
	if !ok {
		return nil, false
	}
	g.Stack = g.Stack[:len(g.Stack)-1]
	return obj, true
}

// ResolveTop pops the top stack object and resolves it: retargets (§4.3),
// fizzles if every target was struck (§4.5), and otherwise dispatches to
// effect.Resolve, moving a resolved spell's source into the graveyard
// unless it is a permanent spell (which instead enters the battlefield).
func (e *Engine) ResolveTop(g *state.GameState, rand effect.RandomSource) error {
	obj, ok := Pop(g)
	if !ok {
		return nil
	}

	if obj.Countered {
		return e.handleCountered(g, obj)
	}

	desc, hasDesc := e.descriptorFor(obj)
	var reqs []target.Requirement
	if hasDesc {
		reqs = desc.TargetReqs
	}
	if fizzled := target.Retarget(g, e.TargetDeps, reqs, obj, obj.Controller); fizzled && len(reqs) > 0 {
		return e.moveSourceAfterResolution(g, obj)
	}

	if hasDesc {
		ctx := &effect.Ctx{
			State:      g,
			Templates:  e.TargetDeps.Templates,
			RNG:        rand,
			Source:     obj.SourceInstance,
			Controller: obj.Controller,
			Targets:    obj.Targets,
		}
		if obj.XValue != nil {
			ctx.XValue = *obj.XValue
		}
		if err := effect.Resolve(ctx, desc.Effect); err != nil {
			return err
		}
	}

	return e.moveSourceAfterResolution(g, obj)
}

func (e *Engine) descriptorFor(obj *state.StackObject) (ability.Descriptor, bool) {
	if obj.AbilityID == "" {
		return ability.Descriptor{}, false
	}
	return e.Abilities.ByID(obj.AbilityID)
}

func (e *Engine) handleCountered(g *state.GameState, obj *state.StackObject) error {
	inst, owner, ok := g.FindInstance(obj.SourceInstance)
	if !ok || owner == nil {
		return nil
	}
	if obj.CounterToTop {
		owner.RemoveFromZone(inst.Zone, inst.InstanceID)
		inst.Zone = types.Library
		owner.Library = append([]*state.CardInstance{inst}, owner.Library...)
		return nil
	}
	owner.RemoveFromZone(inst.Zone, inst.InstanceID)
	inst.Zone = types.Graveyard
	owner.Graveyard = append(owner.Graveyard, inst)
	return nil
}

// moveSourceAfterResolution places a resolved spell's source card in its
// owner's graveyard, unless the template is a permanent type (creature,
// artifact, enchantment, planeswalker), in which case the card moves from
// the stack onto its owner's battlefield, summoning sick as of the current
// turn. Activated/triggered abilities have no
// zone change of their own here; the source permanent stays where it is.
func (e *Engine) moveSourceAfterResolution(g *state.GameState, obj *state.StackObject) error {
	if obj.Kind != state.SpellObject {
		return nil
	}
	inst, owner, ok := g.FindInstance(obj.SourceInstance)
	if !ok || owner == nil || inst.Zone != types.Stack {
		return nil
	}
	t, hasT := e.TargetDeps.Templates.GetByID(inst.TemplateID)
	if hasT && (t.IsCreature() || t.IsArtifact() || t.IsEnchantment() || t.IsPlaneswalker()) {
		owner.RemoveFromZone(inst.Zone, inst.InstanceID)
		inst.Zone = types.Battlefield
		inst.SummoningSick = true
		inst.SinceTurn = g.TurnCount
		owner.Battlefield = append(owner.Battlefield, inst)
		return nil
	}
	owner.RemoveFromZone(inst.Zone, inst.InstanceID)
	inst.Zone = types.Graveyard
	owner.Graveyard = append(owner.Graveyard, inst)
	return nil
}

// ActivateManaAbility resolves a mana ability immediately without using the
// stack (spec §4.2, §4.5: "mana abilities never use the stack").
func (e *Engine) ActivateManaAbility(g *state.GameState, source uint64, controller types.PlayerId, desc ability.Descriptor, rand effect.RandomSource) error {
	ctx := &effect.Ctx{
		State:      g,
		Templates:  e.TargetDeps.Templates,
		RNG:        rand,
		Source:     source,
		Controller: controller,
	}
	return effect.Resolve(ctx, desc.Effect)
}

// PassBothPriority reports whether both players have passed priority in
// succession with no intervening action, the signal to resolve the top of
// the stack or, if it is empty, advance the turn structure (spec §4.5).
func PassBothPriority(g *state.GameState) bool {
	return g.Get(types.Player).HasPassedPriority && g.Get(types.Opponent).HasPassedPriority
}

// Pass records a priority pass for player and hands priority to the other
// seat. Any state-changing action elsewhere in the reducer must reset both
// players' HasPassedPriority to false.
func Pass(g *state.GameState, player types.PlayerId) {
	g.Get(player).HasPassedPriority = true
	g.PriorityPlayer = player.Opposite()
}

// ResetPasses clears both seats' pass flags, called whenever an action other
// than PassPriority is taken (spec §4.5).
func ResetPasses(g *state.GameState) {
	g.Get(types.Player).HasPassedPriority = false
	g.Get(types.Opponent).HasPassedPriority = false
}

// ManaSourceProvider is a convenience wrapper so callers outside this
// package don't need to import pkg/ability just to build the
// mana.SourceProvider a CastSpell auto-pay search needs.
func (e *Engine) ManaSourceProvider() mana.SourceProvider {
	return ability.ManaSourceAdapter{Registry: e.Abilities}
}
