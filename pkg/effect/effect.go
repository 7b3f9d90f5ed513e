// Package effect implements the closed set of effect kinds and their
// resolution semantics (spec §4.4, C7), the single dispatch point the
// stack calls when a spell or ability resolves.
package effect

import (
	"github.com/sixthedge/coreengine/pkg/card"
	"github.com/sixthedge/coreengine/pkg/state"
	"github.com/sixthedge/coreengine/pkg/types"
)

// Kind is the closed tagged-variant set of effect shapes (spec §4.4, §9
// "Dynamic card dispatch"). Custom is the escape hatch for the minority of
// cards whose behavior does not fit a clean variant.
type Kind int

const (
	DealDamage Kind = iota
	GainLife
	LoseLife
	Pump
	DrawCards
	Discard
	Destroy
	Exile
	Bounce
	Counter
	ReturnFromGraveyard
	Tap
	Untap
	AddMana
	CreateToken
	MassDestroy
	PreventDamage
	PreventAllCombatDamageThisTurn
	Regenerate
	SearchLibrary
	Scry
	Custom
)

// Chooser picks who decides a Discard's cards, per spec §4.4.
type Chooser int

const (
	ChooserRandom Chooser = iota
	ChooserController
)

// MassPredicate is the closed set of MassDestroy predicates (spec §4.4).
type MassPredicate int

const (
	AllCreatures MassPredicate = iota
	AllLands
	AllEnchantments
	AllNonBlackCreatures
)

// Ctx is the environment passed to a Custom effect function and to the
// internal resolvers: everything needed to mutate state without a wider
// import of the reducer.
type Ctx struct {
	State      *state.GameState
	Templates  card.TemplateLookup
	RNG        RandomSource
	Source     uint64
	Controller types.PlayerId
	Targets    []state.TargetRef
	XValue     int
}

// RandomSource is the minimal surface effect needs from pkg/rng, kept as an
// interface here so effect does not import pkg/rng directly (pkg/rng
// itself depends on pkg/state and pkg/card only).
type RandomSource interface {
	Intn(n int) int
}

// Effect carries everything needed to resolve without consulting card text
// (spec §4.4 "Every effect variant carries complete enough metadata").
type Effect struct {
	Kind Kind

	Amount     int
	XScaled    bool
	Duration   types.ExpiryKind
	PowerDelta int
	ToughDelta int
	Keyword    string

	DiscardChooser Chooser
	NoRegeneration bool
	CounterToTop   bool
	CounterTyped   string // "", "creature", "non-creature"

	TokenTemplateID string
	TokenCount      int

	MassPredicate MassPredicate

	PreventAmount int // -1 = unlimited
	PreventColor  types.ManaType

	SearchPredicate func(card.CardTemplate) bool
	SearchToZone    types.Zone

	ScryCount int

	ManaColor types.ManaType
	ManaCount int

	CustomFunc func(*Ctx) error
}

// Resolve is the single dispatch point the stack calls on resolution
// (spec §4.4).
func Resolve(ctx *Ctx, e Effect) error {
	switch e.Kind {
	case DealDamage:
		return resolveDealDamage(ctx, e)
	case GainLife:
		return resolveGainLife(ctx, e)
	case LoseLife:
		return resolveLoseLife(ctx, e)
	case Pump:
		return resolvePump(ctx, e)
	case DrawCards:
		return resolveDrawCards(ctx, e)
	case Discard:
		return resolveDiscard(ctx, e)
	case Destroy:
		return resolveDestroy(ctx, e)
	case Exile:
		return resolveExile(ctx, e)
	case Bounce:
		return resolveBounce(ctx, e)
	case Counter:
		return resolveCounter(ctx, e)
	case ReturnFromGraveyard:
		return resolveReturnFromGraveyard(ctx, e)
	case Tap:
		return resolveTapUntap(ctx, true)
	case Untap:
		return resolveTapUntap(ctx, false)
	case AddMana:
		return resolveAddMana(ctx, e)
	case CreateToken:
		return resolveCreateToken(ctx, e)
	case MassDestroy:
		return resolveMassDestroy(ctx, e)
	case PreventDamage:
		return resolvePreventDamage(ctx, e)
	case PreventAllCombatDamageThisTurn:
		ctx.State.PreventAllCombatDamage = true
		return nil
	case Regenerate:
		return resolveRegenerate(ctx, e)
	case SearchLibrary:
		return resolveSearchLibrary(ctx, e)
	case Scry:
		return resolveScry(ctx, e)
	case Custom:
		if e.CustomFunc != nil {
			return e.CustomFunc(ctx)
		}
		return nil
	default:
		return nil
	}
}

func effectiveAmount(ctx *Ctx, e Effect) int {
	if e.XScaled {
		return ctx.XValue
	}
	return e.Amount
}
