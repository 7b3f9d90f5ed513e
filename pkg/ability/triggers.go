package ability

import (
	"github.com/sixthedge/coreengine/pkg/state"
	"github.com/sixthedge/coreengine/pkg/types"
)

// DrainTriggers converts every pending trigger into a new stack object, in
// APNAP order: the active player's triggers first, then the non-active
// player's, each controller's own triggers in FIFO order of enqueueing
// (spec §4.6). It is called immediately before priority is passed,
// matching the teacher's Design Note on trigger queue ordering needing to
// be explicit rather than a naive FIFO.
func (r *Registry) DrainTriggers(g *state.GameState) []*state.StackObject {
	if len(g.PendingTriggers) == 0 {
		return nil
	}

	active := g.ActivePlayer
	var activeGroup, otherGroup []state.Trigger
	for _, t := range g.PendingTriggers {
		if t.Controller == active {
			activeGroup = append(activeGroup, t)
		} else {
			otherGroup = append(otherGroup, t)
		}
	}
	g.PendingTriggers = nil

	var objects []*state.StackObject
	for _, t := range append(activeGroup, otherGroup...) {
		objects = append(objects, r.triggerToStackObject(g, t))
	}
	return objects
}

func (r *Registry) triggerToStackObject(g *state.GameState, t state.Trigger) *state.StackObject {
	source, _, _ := g.FindInstance(t.SourceID)
	templateID := ""
	if source != nil {
		templateID = source.TemplateID
	}

	obj := state.NewStackObject(t.SourceID, t.Controller, state.TriggerObject)
	descs := r.TriggersFor(templateID, t.EventKind)
	if len(descs) > 0 {
		obj.AbilityID = descs[0].ID
		obj.Description = descs[0].Name
		if t.TargetID != nil {
			obj.Targets = []state.TargetRef{state.InstanceRef(*t.TargetID)}
		} else {
			obj.Targets = []state.TargetRef{state.PlayerRef(t.Controller.Opposite())}
		}
	}
	return obj
}

// EnqueueTrigger appends one trigger, built from its arguments, to the
// game's pending queue; it does not scan the battlefield for matching
// descriptors. Used by turn/combat/reducer code at the moment an event occurs (spec
// §4.6: "enqueued on a game-wide queue during the action in which the
// event occurs").
func (r *Registry) EnqueueTrigger(g *state.GameState, kind state.TriggerEventKind, source uint64, controller types.PlayerId, target *uint64, amount int) {
	g.PendingTriggers = append(g.PendingTriggers, state.Trigger{
		EventKind:  kind,
		SourceID:   source,
		TargetID:   target,
		Amount:     amount,
		Controller: controller,
	})
}
