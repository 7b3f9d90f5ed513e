// Package target implements legality of targets, restriction predicates,
// and retargeting at resolution (spec §4.3), generalized from the
// teacher's pkg/ability/targeting.go onto the concrete state.GameState
// model and the closed predicate variant Design Note §9 calls for.
package target

import (
	"strings"

	"github.com/sixthedge/coreengine/pkg/card"
	"github.com/sixthedge/coreengine/pkg/continuous"
	"github.com/sixthedge/coreengine/pkg/state"
	"github.com/sixthedge/coreengine/pkg/types"
)

// Kind is the set of things a requirement can resolve to (spec §4.3).
type Kind int

const (
	KindCreature Kind = iota
	KindPlayer
	KindPermanent
	KindArtifact
	KindEnchantment
	KindLand
	KindSpell
	KindAny
)

// RestrictionKind is the closed predicate variant (spec §4.3, §9
// "Targeting predicates become a small predicate variant").
type RestrictionKind int

const (
	RestrictColor RestrictionKind = iota
	RestrictTypeSubset
	RestrictAttacking
	RestrictBlocking
	RestrictTapped
	RestrictPowerComparator
	RestrictLandType
	RestrictNonSelf
)

// Comparator is used by RestrictPowerComparator.
type Comparator int

const (
	LessOrEqual Comparator = iota
	GreaterOrEqual
	Equal
)

// Restriction is one predicate a candidate target must satisfy (spec §4.3).
type Restriction struct {
	Kind       RestrictionKind
	Negated    bool
	Color      types.ManaType
	TypeSubset string
	Comparator Comparator
	PowerValue int
	LandType   string
}

// Requirement is a single TargetRequirement a spell or ability declares
// (spec §4.3).
type Requirement struct {
	TargetKind          Kind
	Restrictions        []Restriction
	AllowSelfOrOpponent bool
}

// Deps bundles the lookups a legality check needs, so callers don't thread
// three separate arguments through every function.
type Deps struct {
	Templates card.TemplateLookup
	Statics   *continuous.Registry
}

// LegalTargets enumerates candidates for req by scanning the zones its
// TargetKind implies, filtering by restrictions (spec §4.3).
func LegalTargets(g *state.GameState, deps Deps, req Requirement, controller types.PlayerId) []state.TargetRef {
	var refs []state.TargetRef

	if req.TargetKind == KindPlayer || req.TargetKind == KindAny {
		for _, pid := range []types.PlayerId{types.Player, types.Opponent} {
			refs = append(refs, state.PlayerRef(pid))
		}
	}

	if req.TargetKind == KindSpell {
		for _, obj := range g.Stack {
			if obj.Kind == state.SpellObject {
				refs = append(refs, state.InstanceRef(obj.SourceInstance))
			}
		}
		return refs
	}

	for _, pid := range []types.PlayerId{types.Player, types.Opponent} {
		for _, inst := range g.Get(pid).Battlefield {
			if !matchesKind(g, deps, inst, req.TargetKind) {
				continue
			}
			if !passesRestrictions(g, deps, inst, req.Restrictions, controller) {
				continue
			}
			refs = append(refs, state.InstanceRef(inst.InstanceID))
		}
	}
	return refs
}

func matchesKind(g *state.GameState, deps Deps, inst *state.CardInstance, kind Kind) bool {
	t, ok := deps.Templates.GetByID(inst.TemplateID)
	if !ok {
		return false
	}
	switch kind {
	case KindCreature:
		return t.IsCreature()
	case KindPermanent:
		return true
	case KindArtifact:
		return t.IsArtifact()
	case KindEnchantment:
		return t.IsEnchantment()
	case KindLand:
		return t.IsLand()
	case KindAny:
		return t.IsCreature()
	default:
		return false
	}
}

func passesRestrictions(g *state.GameState, deps Deps, inst *state.CardInstance, restrictions []Restriction, controller types.PlayerId) bool {
	for _, r := range restrictions {
		if passesOne(g, deps, inst, r, controller) == r.Negated {
			return false
		}
	}
	return true
}

func passesOne(g *state.GameState, deps Deps, inst *state.CardInstance, r Restriction, controller types.PlayerId) bool {
	switch r.Kind {
	case RestrictColor:
		t, ok := deps.Templates.GetByID(inst.TemplateID)
		if !ok {
			return false
		}
		for _, c := range t.Colors {
			if c == string(r.Color) {
				return true
			}
		}
		return false
	case RestrictTypeSubset:
		t, ok := deps.Templates.GetByID(inst.TemplateID)
		return ok && containsFold(t.TypeLine, r.TypeSubset)
	case RestrictAttacking:
		return inst.Attacking
	case RestrictBlocking:
		return inst.Blocking != nil
	case RestrictTapped:
		return inst.Tapped
	case RestrictPowerComparator:
		p := continuous.EffectivePower(g, deps.Templates, deps.Statics, inst)
		switch r.Comparator {
		case LessOrEqual:
			return p <= r.PowerValue
		case GreaterOrEqual:
			return p >= r.PowerValue
		default:
			return p == r.PowerValue
		}
	case RestrictLandType:
		t, ok := deps.Templates.GetByID(inst.TemplateID)
		return ok && containsFold(t.TypeLine, r.LandType)
	case RestrictNonSelf:
		return inst.Controller != controller
	default:
		return true
	}
}

func containsFold(haystack, needle string) bool {
	return needle != "" && strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
