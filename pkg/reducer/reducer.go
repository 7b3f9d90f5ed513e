package reducer

import (
	"errors"

	"github.com/sixthedge/coreengine/pkg/ability"
	"github.com/sixthedge/coreengine/pkg/card"
	"github.com/sixthedge/coreengine/pkg/combat"
	"github.com/sixthedge/coreengine/pkg/continuous"
	"github.com/sixthedge/coreengine/pkg/mana"
	"github.com/sixthedge/coreengine/pkg/rng"
	"github.com/sixthedge/coreengine/pkg/sba"
	"github.com/sixthedge/coreengine/pkg/stack"
	"github.com/sixthedge/coreengine/pkg/state"
	"github.com/sixthedge/coreengine/pkg/target"
	"github.com/sixthedge/coreengine/pkg/turn"
	"github.com/sixthedge/coreengine/pkg/types"
)

// Engine bundles every collaborator the reducer needs: the card template
// database, the ability registry seeded at startup, the continuous-effect
// statics registry, and the stack engine built from both. It carries no
// GameState of its own — Apply is a pure function of (Engine, GameState,
// Action) -> (GameState, error), per spec §9's "pure functional reducer"
// design note.
type Engine struct {
	Templates card.TemplateLookup
	Abilities *ability.Registry
	Statics   *continuous.Registry
	Stack     *stack.Engine
}

// NewEngine wires the three registries into a stack.Engine and returns a
// ready-to-use reducer Engine.
func NewEngine(templates card.TemplateLookup, abilities *ability.Registry, statics *continuous.Registry) *Engine {
	return &Engine{
		Templates: templates,
		Abilities: abilities,
		Statics:   statics,
		Stack: &stack.Engine{
			Abilities:  abilities,
			TargetDeps: target.Deps{Templates: templates, Statics: statics},
		},
	}
}

var (
	ErrNotYourTurn       = errors.New("it is not this player's turn to act")
	ErrCardNotFound      = errors.New("referenced card instance not found")
	ErrCardNotInHand     = errors.New("card is not in the acting player's hand")
	ErrLandAlreadyPlayed = errors.New("a land has already been played this turn")
	ErrNotALand          = errors.New("card is not a land")
	ErrNotCastable       = errors.New("card is not a castable spell type")
	ErrCannotPay         = errors.New("cannot pay the required cost")
	ErrInvalidTargets    = errors.New("chosen targets are not legal")
	ErrWrongStep         = errors.New("action is not legal during the current step")
)

func (e *Engine) combatDeps() combat.Deps {
	return combat.Deps{Templates: e.Templates, Statics: e.Statics}
}
func (e *Engine) sbaDeps() sba.Deps   { return sba.Deps{Templates: e.Templates, Statics: e.Statics} }
func (e *Engine) turnDeps() turn.Deps { return turn.Deps{Templates: e.Templates} }
func (e *Engine) targetDeps() target.Deps {
	return target.Deps{Templates: e.Templates, Statics: e.Statics}
}

// Apply runs one action against g, returning a freshly cloned, mutated
// state and never touching g itself (spec §5, §9). It performs the action's
// direct effect, then the fixed post-action sequence: enqueue/drain
// triggers onto the stack, run state-based actions to a fixpoint, and (for
// PassPriority specifically) resolve the stack or advance the turn
// structure (spec §4.5, §4.10, §4.11, §4.12).
func (e *Engine) Apply(g *state.GameState, action Action) (*state.GameState, error) {
	if errs := e.Validate(g, action); len(errs) > 0 {
		return nil, errors.New(errs[0])
	}

	next := g.Clone()
	randSrc := rng.Resume(next.RNGState)

	var err error
	switch action.Kind {
	case PlayLand:
		err = e.applyPlayLand(next, action)
	case CastSpell:
		err = e.applyCastSpell(next, action)
	case ActivateAbility:
		err = e.applyActivateAbility(next, action, randSrc)
	case DeclareAttackers:
		err = e.applyDeclareAttackers(next, action)
	case DeclareBlockers:
		err = e.applyDeclareBlockers(next, action)
	case PassPriority:
		err = e.applyPassPriority(next, action, randSrc)
	}
	if err != nil {
		return nil, err
	}

	next.RNGState = randSrc.State()
	if action.Kind != PassPriority {
		stack.ResetPasses(next)
	}
	next.RecordAction(action)

	e.drainAndCheck(next)

	return next, nil
}

// drainAndCheck pushes any pending triggers onto the stack and runs the
// state-based action fixpoint, the two things that must happen after every
// action before priority can be meaningfully held (spec §4.6, §4.10).
func (e *Engine) drainAndCheck(g *state.GameState) {
	for _, obj := range e.Abilities.DrainTriggers(g) {
		stack.Push(g, obj)
	}
	sba.RunToFixpoint(g, e.sbaDeps())
}

func (e *Engine) applyPlayLand(g *state.GameState, action Action) error {
	p := g.Get(action.Player)
	inst, ok := findInHand(p, action.InstanceID)
	if !ok {
		return ErrCardNotInHand
	}
	t, ok := e.Templates.GetByID(inst.TemplateID)
	if !ok || !t.IsLand() {
		return ErrNotALand
	}
	if p.LandsPlayedThisTurn > 0 {
		return ErrLandAlreadyPlayed
	}
	p.RemoveFromZone(types.Hand, inst.InstanceID)
	inst.Zone = types.Battlefield
	inst.SummoningSick = true
	inst.SinceTurn = g.TurnCount
	p.Battlefield = append(p.Battlefield, inst)
	p.LandsPlayedThisTurn++
	return nil
}

func (e *Engine) applyCastSpell(g *state.GameState, action Action) error {
	p := g.Get(action.Player)
	inst, ok := findInHand(p, action.InstanceID)
	if !ok {
		return ErrCardNotInHand
	}
	t, ok := e.Templates.GetByID(inst.TemplateID)
	if !ok || t.IsLand() {
		return ErrNotCastable
	}

	cost := mana.ParseCost(t.ManaCost)
	x := 0
	if action.XValue != nil {
		x = *action.XValue
	}

	assignment, ok := e.resolveManaPayment(g, action, cost, x)
	if !ok {
		return ErrCannotPay
	}
	mana.Pay(g, action.Player, assignment)

	p.RemoveFromZone(types.Hand, inst.InstanceID)
	inst.Zone = types.Stack
	inst.Controller = action.Player
	p.StackZone = append(p.StackZone, inst)

	descs := e.Abilities.For(inst.TemplateID)
	var desc ability.Descriptor
	var hasDesc bool
	for _, d := range descs {
		if !d.IsManaAbility && d.TriggerEvent == nil {
			desc = d
			hasDesc = true
			break
		}
	}

	obj := state.NewStackObject(inst.InstanceID, action.Player, state.SpellObject)
	obj.Targets = action.Targets
	if action.XValue != nil {
		v := *action.XValue
		obj.XValue = &v
	}
	if hasDesc {
		obj.AbilityID = desc.ID
		obj.Description = desc.Name
	}
	stack.Push(g, obj)
	return nil
}

func (e *Engine) applyActivateAbility(g *state.GameState, action Action, randSrc *rng.LCG) error {
	inst, _, ok := g.FindInstance(action.InstanceID)
	if !ok {
		return ErrCardNotFound
	}
	desc, ok := e.Abilities.ByID(action.AbilityID)
	if !ok {
		return ability.ErrUnknownAbility
	}
	if desc.CanActivate != nil && !desc.CanActivate(g, inst.InstanceID, action.Player) {
		return ability.ErrCannotActivate
	}
	if desc.Cost.Tap {
		if inst.Tapped || inst.SummoningSick {
			return ability.ErrCannotActivate
		}
		inst.Tapped = true
	}
	if desc.Cost.Mana != nil {
		assignment, ok := e.resolveManaPayment(g, action, *desc.Cost.Mana, 0)
		if !ok {
			return ErrCannotPay
		}
		mana.Pay(g, action.Player, assignment)
	}

	if desc.IsManaAbility {
		return e.Stack.ActivateManaAbility(g, inst.InstanceID, action.Player, desc, randSrc)
	}

	obj := state.NewStackObject(inst.InstanceID, action.Player, state.AbilityActivationObject)
	obj.AbilityID = desc.ID
	obj.Description = desc.Name
	obj.Targets = action.Targets
	if len(obj.Targets) == 0 && len(desc.TargetReqs) == 0 {
		// A declared-target-free ability that still consumes an instance
		// target at resolution (e.g. "Regenerate [this]") implicitly
		// targets its own source.
		obj.Targets = []state.TargetRef{state.InstanceRef(inst.InstanceID)}
	}
	stack.Push(g, obj)
	return nil
}

func (e *Engine) applyDeclareAttackers(g *state.GameState, action Action) error {
	if g.Step != types.StepDeclareAttackers {
		return ErrWrongStep
	}
	combat.DeclareAttackers(g, e.combatDeps(), action.AttackerIDs)
	return nil
}

func (e *Engine) applyDeclareBlockers(g *state.GameState, action Action) error {
	if g.Step != types.StepDeclareBlockers {
		return ErrWrongStep
	}
	combat.DeclareBlockers(g, action.BlockAssignments)
	return nil
}

func (e *Engine) applyPassPriority(g *state.GameState, action Action, randSrc *rng.LCG) error {
	stack.Pass(g, action.Player)
	if !stack.PassBothPriority(g) {
		return nil
	}

	if len(g.Stack) > 0 {
		stack.ResetPasses(g)
		g.PriorityPlayer = g.ActivePlayer
		return e.Stack.ResolveTop(g, randSrc)
	}

	stack.ResetPasses(g)
	turn.Advance(g, e.turnDeps())
	switch g.Step {
	case types.StepFirstStrikeDamage:
		combat.FirstStrikeDamageStep(g, e.combatDeps())
	case types.StepCombatDamage:
		combat.RegularDamageStep(g, e.combatDeps())
	case types.StepEndOfCombat:
		combat.EndOfCombat(g)
	}
	return nil
}

func findInHand(p *state.PlayerState, id uint64) (*state.CardInstance, bool) {
	return p.FindInZone(types.Hand, id)
}

func (e *Engine) resolveManaPayment(g *state.GameState, action Action, cost mana.Cost, x int) (mana.Assignment, bool) {
	if action.ManaPayment != nil {
		return *action.ManaPayment, true
	}
	return mana.CanPay(g, action.Player, cost, x, e.Stack.ManaSourceProvider())
}
