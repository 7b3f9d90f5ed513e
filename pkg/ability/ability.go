// Package ability provides the activated/triggered ability registry (C6):
// per-card ability metadata, cost/effect descriptors, and the trigger event
// bus drain, adapted from the teacher's pkg/ability/types.go onto the
// concrete state.GameState model (spec §4.4, §4.6).
package ability

import (
	"github.com/sixthedge/coreengine/pkg/effect"
	"github.com/sixthedge/coreengine/pkg/mana"
	"github.com/sixthedge/coreengine/pkg/state"
	"github.com/sixthedge/coreengine/pkg/target"
	"github.com/sixthedge/coreengine/pkg/types"
)

// Cost is the cost to activate an ability (spec §4.4).
type Cost struct {
	Mana      *mana.Cost
	Tap       bool
	Sacrifice *SacrificeCost
	Life      int
}

// SacrificeTarget is the closed "self or ..." shape for a sacrifice cost
// (spec §4.4 "sacrifice?: SelfOr{Type, LandType, Any}").
type SacrificeTarget int

const (
	SacrificeSelf SacrificeTarget = iota
	SacrificeOfType
	SacrificeLandType
	SacrificeAny
)

// SacrificeCost describes what must be sacrificed to pay an ability.
type SacrificeCost struct {
	Target   SacrificeTarget
	TypeName string // used when Target is SacrificeOfType or SacrificeLandType
}

// Descriptor is an activated or triggered ability's complete metadata
// (spec §4.4).
type Descriptor struct {
	ID            string
	Source        string // template id this descriptor lives on
	Name          string
	Cost          Cost
	TargetReqs    []target.Requirement
	Effect        effect.Effect
	IsManaAbility bool
	TriggerEvent  *state.TriggerEventKind

	// CanActivate is an optional extra gate beyond the cost/timing checks
	// the reducer already performs (e.g. "only if you control a Swamp").
	CanActivate func(g *state.GameState, source uint64, controller types.PlayerId) bool
}

// Registry is the card-indexed ability registry (spec §4.4, §9 "closed
// tagged-variant set ... plus a custom-effect escape hatch"). A Descriptor
// is keyed by the template id it belongs to; a template may carry more than
// one.
type Registry struct {
	byTemplate map[string][]Descriptor
	byID       map[string]Descriptor
}

// NewRegistry creates an empty ability registry.
func NewRegistry() *Registry {
	return &Registry{
		byTemplate: make(map[string][]Descriptor),
		byID:       make(map[string]Descriptor),
	}
}

// Register attaches a Descriptor to its source template.
func (r *Registry) Register(d Descriptor) {
	r.byTemplate[d.Source] = append(r.byTemplate[d.Source], d)
	r.byID[d.ID] = d
}

// For returns every Descriptor carried by templateID.
func (r *Registry) For(templateID string) []Descriptor {
	return r.byTemplate[templateID]
}

// ByID looks up a single descriptor by its stable ability id.
func (r *Registry) ByID(id string) (Descriptor, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// TriggersFor returns every Descriptor on templateID whose TriggerEvent
// matches kind.
func (r *Registry) TriggersFor(templateID string, kind state.TriggerEventKind) []Descriptor {
	var out []Descriptor
	for _, d := range r.For(templateID) {
		if d.TriggerEvent != nil && *d.TriggerEvent == kind {
			out = append(out, d)
		}
	}
	return out
}

// ManaAbilitiesOf returns the mana-producing descriptors on templateID.
func (r *Registry) ManaAbilitiesOf(templateID string) []Descriptor {
	var out []Descriptor
	for _, d := range r.For(templateID) {
		if d.IsManaAbility {
			out = append(out, d)
		}
	}
	return out
}
