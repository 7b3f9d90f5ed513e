// Package reducer implements the typed action set, its legality/validation
// layer, and the pure apply function that is the engine's single external
// write path (spec §4.12-§4.13, C12+C13), grounded on the teacher's
// src/game.go turn loop but restructured around one explicit Action value
// per state transition instead of an implicit imperative loop.
package reducer

import (
	"github.com/sixthedge/coreengine/pkg/mana"
	"github.com/sixthedge/coreengine/pkg/state"
	"github.com/sixthedge/coreengine/pkg/types"
)

// Kind is the closed tagged-variant set of actions a player can submit
// (spec §4.12, §9 "closed tagged-variant design"). Every Action the engine
// accepts is one of these; there is no custom/escape-hatch variant here,
// unlike effect.Kind, because the action surface is meant to stay small and
// fully enumerable by LegalActions.
type Kind int

const (
	PlayLand Kind = iota
	CastSpell
	ActivateAbility
	DeclareAttackers
	DeclareBlockers
	PassPriority
)

// Action is one player-submitted state transition (spec §4.12). Only the
// fields relevant to Kind are consulted; the rest are zero.
type Action struct {
	Kind   Kind
	Player types.PlayerId

	// InstanceID names the card or permanent the action concerns: the land
	// or spell card in hand for PlayLand/CastSpell, the permanent carrying
	// the ability for ActivateAbility.
	InstanceID uint64

	// AbilityID selects which of a source's descriptors ActivateAbility
	// invokes (a permanent may carry more than one).
	AbilityID string

	Targets []state.TargetRef
	XValue  *int

	// ManaPayment overrides the engine's deterministic auto-pay search with
	// an explicit assignment; nil means auto-pay (spec §4.2).
	ManaPayment *mana.Assignment

	AttackerIDs      []uint64
	BlockAssignments map[uint64][]uint64
}
