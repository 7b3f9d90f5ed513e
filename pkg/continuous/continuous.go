// Package continuous computes continuous effects on read rather than
// storing them (spec §4.7): effective power/toughness and keyword grants,
// layering native keywords, aura bonuses, lord grants, anthems, temporary
// modifications, and variable-P/T functions. Granted non-keyword abilities
// are not computed by this package.
package continuous

import (
	"strconv"
	"strings"

	"github.com/sixthedge/coreengine/pkg/card"
	"github.com/sixthedge/coreengine/pkg/state"
	"github.com/sixthedge/coreengine/pkg/types"
)

// StaticSource is a continuous-effect contributor keyed by the template id
// of the permanent that carries it — a lord, anthem, or aura descriptor, or
// a variable-P/T function (spec §4.7). It is looked up on read, never
// stored on the CardInstance, per the Design Notes.
type StaticSource struct {
	// Kind distinguishes how the source's bonus applies.
	Kind StaticSourceKind

	// Aura: flat bonus applied only to the single permanent this instance
	// is attached to.
	AuraPowerBonus      int
	AuraToughnessBonus  int
	AuraGrantedKeywords []string

	// Lord: bonus applied to other creatures sharing LordSubtype.
	LordSubtype         string
	LordPowerBonus      int
	LordToughnessBonus  int
	LordGrantedKeywords []string
	LordYouControlOnly  bool

	// Anthem: bonus applied to all creatures matching AnthemPredicate.
	AnthemPowerBonus      int
	AnthemToughnessBonus  int
	AnthemGrantedKeywords []string
	AnthemPredicate       func(g *state.GameState, target *state.CardInstance) bool

	// VariablePT: power = toughness = VariablePT(state, controller) when set.
	VariablePT func(g *state.GameState, controller types.PlayerId) int
}

// StaticSourceKind is the closed set of continuous-bonus shapes (spec §4.7).
type StaticSourceKind int

const (
	AuraSource StaticSourceKind = iota
	LordSource
	AnthemSource
	VariablePTSource
)

// Registry maps a permanent's template id to the StaticSource it
// contributes while on the battlefield. Populated once at startup by the
// card-registry seeding step (SPEC_FULL §4.4 Seed6E); read-only thereafter.
type Registry struct {
	sources map[string]StaticSource
}

// NewRegistry creates an empty static-source registry.
func NewRegistry() *Registry {
	return &Registry{sources: make(map[string]StaticSource)}
}

// Register attaches a StaticSource to a template id.
func (r *Registry) Register(templateID string, src StaticSource) {
	r.sources[templateID] = src
}

// Lookup returns the StaticSource for a template id, if any.
func (r *Registry) Lookup(templateID string) (StaticSource, bool) {
	s, ok := r.sources[templateID]
	return s, ok
}

// baseStats parses a template's power/toughness strings, treating "*" as
// zero (the variable-P/T source supplies the real value on top).
func baseStats(t card.CardTemplate) (int, int) {
	p, _ := strconv.Atoi(t.Power)
	tg, _ := strconv.Atoi(t.Toughness)
	return p, tg
}

// EffectivePower computes a creature's current power: base + counters +
// temporary mods + aura bonuses + lord/anthem bonuses + variable-P/T (spec
// §4.7).
func EffectivePower(g *state.GameState, templates card.TemplateLookup, staticRegistry *Registry, inst *state.CardInstance) int {
	return effectiveStat(g, templates, staticRegistry, inst, true)
}

// EffectiveToughness computes a creature's current toughness analogously.
func EffectiveToughness(g *state.GameState, templates card.TemplateLookup, staticRegistry *Registry, inst *state.CardInstance) int {
	return effectiveStat(g, templates, staticRegistry, inst, false)
}

func effectiveStat(g *state.GameState, templates card.TemplateLookup, reg *Registry, inst *state.CardInstance, power bool) int {
	t, ok := templates.GetByID(inst.TemplateID)
	base := 0
	if ok {
		p, tg := baseStats(t)
		if power {
			base = p
		} else {
			base = tg
		}
	}

	// Variable P/T overrides the template's literal (often "*") value.
	if ok && t.Power == "*" {
		if src, has := reg.Lookup(inst.TemplateID); has && src.Kind == VariablePTSource && src.VariablePT != nil {
			base = src.VariablePT(g, inst.Controller)
		}
	}
	if inst.PrimalClayChoice != state.PrimalClayNone {
		base = primalClayBase(inst.PrimalClayChoice, power)
	}

	total := base
	total += countersDelta(inst, power)
	total += temporaryModsDelta(inst, power)
	total += auraBonus(g, templates, reg, inst, power)
	total += lordAndAnthemBonus(g, templates, reg, inst, power)

	return total
}

func primalClayBase(choice state.PrimalClayChoice, power bool) int {
	switch choice {
	case state.PrimalClay3_3:
		return 3
	case state.PrimalClay2_2Flying:
		return 2
	case state.PrimalClay1_6Wall:
		if power {
			return 1
		}
		return 6
	default:
		return 0
	}
}

func countersDelta(inst *state.CardInstance, power bool) int {
	plus := inst.Counters[types.PlusOnePlusOne]
	minus := inst.Counters[types.MinusOneMinusOne]
	_ = power // +1/+1 and -1/-1 counters affect both power and toughness equally
	return plus - minus
}

func temporaryModsDelta(inst *state.CardInstance, power bool) int {
	total := 0
	for _, m := range inst.TemporaryMods {
		if power {
			total += m.PowerDelta
		} else {
			total += m.ToughnessDelta
		}
	}
	return total
}

func auraBonus(g *state.GameState, templates card.TemplateLookup, reg *Registry, inst *state.CardInstance, power bool) int {
	total := 0
	for _, attID := range inst.Attachments {
		aura, _, ok := g.FindInstance(attID)
		if !ok || aura.Zone != types.Battlefield {
			continue
		}
		src, has := reg.Lookup(aura.TemplateID)
		if !has || src.Kind != AuraSource {
			continue
		}
		if power {
			total += src.AuraPowerBonus
		} else {
			total += src.AuraToughnessBonus
		}
	}
	return total
}

func lordAndAnthemBonus(g *state.GameState, templates card.TemplateLookup, reg *Registry, inst *state.CardInstance, power bool) int {
	total := 0
	for _, pid := range []types.PlayerId{types.Player, types.Opponent} {
		for _, other := range g.Get(pid).Battlefield {
			src, has := reg.Lookup(other.TemplateID)
			if !has {
				continue
			}
			switch src.Kind {
			case LordSource:
				if other.InstanceID == inst.InstanceID {
					continue // "other Goblins" excludes the lord itself
				}
				if src.LordYouControlOnly && other.Controller != inst.Controller {
					continue
				}
				if !hasSubtype(templates, inst, src.LordSubtype) {
					continue
				}
				if power {
					total += src.LordPowerBonus
				} else {
					total += src.LordToughnessBonus
				}
			case AnthemSource:
				if src.AnthemPredicate != nil && !src.AnthemPredicate(g, inst) {
					continue
				}
				if power {
					total += src.AnthemPowerBonus
				} else {
					total += src.AnthemToughnessBonus
				}
			}
		}
	}
	return total
}

func hasSubtype(templates card.TemplateLookup, inst *state.CardInstance, subtype string) bool {
	t, ok := templates.GetByID(inst.TemplateID)
	if !ok {
		return false
	}
	for _, s := range t.Subtypes() {
		if strings.EqualFold(s, subtype) {
			return true
		}
	}
	return false
}

// HasKeyword reports whether inst currently has keyword, from native
// keywords union aura/anthem/temporary-mod grants (spec §4.7).
func HasKeyword(g *state.GameState, templates card.TemplateLookup, reg *Registry, inst *state.CardInstance, keyword string) bool {
	if t, ok := templates.GetByID(inst.TemplateID); ok {
		if t.HasKeyword(keyword) {
			return true
		}
	}
	if inst.PrimalClayChoice == state.PrimalClay2_2Flying && strings.EqualFold(keyword, "Flying") {
		return true
	}
	for _, m := range inst.TemporaryMods {
		for _, k := range m.GrantedKeywords {
			if strings.EqualFold(k, keyword) {
				return true
			}
		}
	}
	for _, attID := range inst.Attachments {
		aura, _, ok := g.FindInstance(attID)
		if !ok || aura.Zone != types.Battlefield {
			continue
		}
		if src, has := reg.Lookup(aura.TemplateID); has && src.Kind == AuraSource {
			for _, k := range src.AuraGrantedKeywords {
				if strings.EqualFold(k, keyword) {
					return true
				}
			}
		}
	}
	for _, pid := range []types.PlayerId{types.Player, types.Opponent} {
		for _, other := range g.Get(pid).Battlefield {
			src, has := reg.Lookup(other.TemplateID)
			if !has {
				continue
			}
			switch src.Kind {
			case LordSource:
				if other.InstanceID == inst.InstanceID {
					continue
				}
				if src.LordYouControlOnly && other.Controller != inst.Controller {
					continue
				}
				if !hasSubtype(templates, inst, src.LordSubtype) {
					continue
				}
				for _, k := range src.LordGrantedKeywords {
					if strings.EqualFold(k, keyword) {
						return true
					}
				}
			case AnthemSource:
				if src.AnthemPredicate != nil && !src.AnthemPredicate(g, inst) {
					continue
				}
				for _, k := range src.AnthemGrantedKeywords {
					if strings.EqualFold(k, keyword) {
						return true
					}
				}
			}
		}
	}
	return false
}
