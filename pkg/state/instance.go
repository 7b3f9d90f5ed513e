package state

import "github.com/sixthedge/coreengine/pkg/types"

// TemporaryModification is a time-boxed power/toughness delta and/or
// keyword grant (spec §3).
type TemporaryModification struct {
	ID              uint64
	PowerDelta      int
	ToughnessDelta  int
	GrantedKeywords []string
	ExpiresAt       types.ExpiryKind
}

// PrimalClayChoice is the one variable-shape card's chosen body (spec §3).
type PrimalClayChoice int

const (
	PrimalClayNone PrimalClayChoice = iota
	PrimalClay3_3
	PrimalClay2_2Flying
	PrimalClay1_6Wall
)

// CardInstance is a runtime copy of a CardTemplate in the game.
type CardInstance struct {
	InstanceID uint64
	TemplateID string

	Owner      types.PlayerId
	Controller types.PlayerId
	Zone       types.Zone

	Tapped        bool
	SummoningSick bool
	Damage        int
	Counters      map[types.CounterKind]int
	RegenShields  int

	TemporaryMods []TemporaryModification

	AttachedTo  *uint64
	Attachments []uint64

	Attacking bool
	Blocking  *uint64 // id of attacker this creature is blocking
	BlockedBy []uint64

	IsToken   bool
	TokenKind string

	PrimalClayChoice PrimalClayChoice

	// SinceTurn is the turn_count this instance most recently entered its
	// current battlefield stay. Drives the summoning-sickness invariant
	// (spec §3: "summoning_sick is true ⇒ the instance entered its current
	// battlefield stay during the current turn of its controller").
	SinceTurn int
}

// NewCardInstance allocates a fresh instance from a template id, consuming
// the next monotone instance counter value.
func NewCardInstance(templateID string, owner types.PlayerId, zone types.Zone) *CardInstance {
	return &CardInstance{
		InstanceID: NextInstanceID(),
		TemplateID: templateID,
		Owner:      owner,
		Controller: owner,
		Zone:       zone,
		Counters:   make(map[types.CounterKind]int),
	}
}

// Clone returns a deep copy of the instance, used by GameState.Clone so the
// reducer never aliases mutable state across calls (spec §5, §9).
func (c *CardInstance) Clone() *CardInstance {
	clone := *c
	clone.Counters = make(map[types.CounterKind]int, len(c.Counters))
	for k, v := range c.Counters {
		clone.Counters[k] = v
	}
	clone.TemporaryMods = append([]TemporaryModification(nil), c.TemporaryMods...)
	clone.Attachments = append([]uint64(nil), c.Attachments...)
	clone.BlockedBy = append([]uint64(nil), c.BlockedBy...)
	if c.AttachedTo != nil {
		id := *c.AttachedTo
		clone.AttachedTo = &id
	}
	if c.Blocking != nil {
		id := *c.Blocking
		clone.Blocking = &id
	}
	return &clone
}
