package state

import "github.com/sixthedge/coreengine/pkg/types"

// StackObjectKind distinguishes the three things that can sit on the stack
// (spec §3 StackObject.kind).
type StackObjectKind int

const (
	SpellObject StackObjectKind = iota
	AbilityActivationObject
	TriggerObject
)

// TargetRef is a reference to either a card instance or a player — the two
// things a TargetRequirement can resolve to (spec §3, §4.3).
type TargetRef struct {
	InstanceID *uint64
	Player     *types.PlayerId
}

// IsInstance reports whether the ref names a card instance.
func (r TargetRef) IsInstance() bool { return r.InstanceID != nil }

// IsPlayer reports whether the ref names a player.
func (r TargetRef) IsPlayer() bool { return r.Player != nil }

// InstanceRef builds a TargetRef naming a card instance.
func InstanceRef(id uint64) TargetRef { return TargetRef{InstanceID: &id} }

// PlayerRef builds a TargetRef naming a player.
func PlayerRef(p types.PlayerId) TargetRef { return TargetRef{Player: &p} }

// StackObject is an unresolved spell, ability activation, or trigger
// (spec §3).
type StackObject struct {
	StackID        uint64
	SourceInstance uint64
	Controller     types.PlayerId
	Targets        []TargetRef
	XValue         *int
	Countered      bool
	// CounterToTop diverts a countered spell to the top of its owner's
	// library instead of the graveyard (spec §4.5, Memory-Lapse style).
	CounterToTop bool
	Kind         StackObjectKind

	// AbilityID names the ability.Descriptor this object resolves, for
	// AbilityActivationObject and TriggerObject kinds.
	AbilityID string
	// Description is a human-readable label, used for logging only.
	Description string
}

// NewStackObject allocates a stack object, consuming the next monotone
// stack-id counter value.
func NewStackObject(source uint64, controller types.PlayerId, kind StackObjectKind) *StackObject {
	return &StackObject{
		StackID:        NextStackID(),
		SourceInstance: source,
		Controller:     controller,
		Kind:           kind,
	}
}

// Clone returns a deep copy of the stack object.
func (s *StackObject) Clone() *StackObject {
	clone := *s
	clone.Targets = append([]TargetRef(nil), s.Targets...)
	if s.XValue != nil {
		v := *s.XValue
		clone.XValue = &v
	}
	return &clone
}

// TriggerEventKind is the closed set of events that can enqueue a Trigger
// (spec §4.6).
type TriggerEventKind int

const (
	EventEntersBattlefield TriggerEventKind = iota
	EventLeavesBattlefield
	EventDies
	EventUpkeep
	EventEndStep
	EventUntapStep
	EventDealsCombatDamage
	EventBecomesTargeted
	EventAttacks
	EventBlocks
	EventCastSpell
	EventLandPlayed
	EventBecomesTapped
)

// Trigger is a queued triggered-ability firing, enqueued during the action
// that causes the event and drained at the next priority point (spec §3,
// §4.6).
type Trigger struct {
	EventKind  TriggerEventKind
	SourceID   uint64
	TargetID   *uint64
	Amount     int
	Controller types.PlayerId
}
