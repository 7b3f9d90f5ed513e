package ability

import (
	"fmt"

	"github.com/sixthedge/coreengine/pkg/card"
	"github.com/sixthedge/coreengine/pkg/continuous"
	"github.com/sixthedge/coreengine/pkg/effect"
	"github.com/sixthedge/coreengine/pkg/mana"
	"github.com/sixthedge/coreengine/pkg/state"
	"github.com/sixthedge/coreengine/pkg/target"
	"github.com/sixthedge/coreengine/pkg/types"
)

// Seed6E wires the closed effect/ability set onto the handful of named 6th
// Edition cards SPEC_FULL.md's card-registry section calls out, resolving
// each by name against db so the descriptors stay keyed by stable template
// id rather than by name string (spec §4.4, §6). Cards absent from db are
// skipped rather than erroring, so a partial card pool (e.g. a test harness
// that only loads some templates) still seeds what it can. It also calls
// SeedManaProducers so every land and mana-producing permanent in db, not
// just the named cards above, is a usable mana source.
func Seed6E(reg *Registry, statics *continuous.Registry, db card.TemplateLookup) {
	seedGrizzlyBears(reg, db)
	seedDrudgeSkeletons(reg, db)
	seedTerror(reg, db)
	seedCounterspell(reg, db)
	seedShock(reg, db)
	seedMaro(statics, db)
	seedArchangel(reg, db)
	seedPrimalClay(reg, db)
	SeedManaProducers(reg, db)
}

// SeedManaProducers registers a tap-for-mana Descriptor on every template in
// db whose oracle text reads as a mana ability (card.CheckManaProducer),
// covering the basic and dual lands and the mana-producing creatures and
// artifacts of the pool, not just the 8 named 6th Edition cards above. This
// is what makes mana.CanPay's battlefield-source step (spec §4.2) do
// anything for a deck drawn from the full card database rather than the
// demo set: without it, ManaSourceAdapter.AvailableSources always returns
// empty and every spell must be paid entirely from the floating pool.
// "Any color" producers (e.g. Birds of Paradise) get one descriptor per
// basic color, since AddMana resolves a single concrete color.
func SeedManaProducers(reg *Registry, db card.TemplateLookup) {
	for _, t := range db.GetAll() {
		isProducer, colors := card.CheckManaProducer(t.OracleText)
		if !isProducer {
			continue
		}
		for i, c := range colors {
			for _, resolved := range expandManaColor(c) {
				reg.Register(Descriptor{
					ID:            fmt.Sprintf("%s:mana:%d:%s", t.ID, i, resolved),
					Source:        t.ID,
					Name:          "Tap for mana",
					Cost:          Cost{Tap: true},
					IsManaAbility: true,
					Effect:        effect.Effect{Kind: effect.AddMana, ManaColor: resolved, ManaCount: 1},
				})
			}
		}
	}
}

// expandManaColor turns types.Any into the five basic colors so a mana
// ability carrying it registers one concrete-color descriptor per color
// instead of a color AddMana can't resolve on its own.
func expandManaColor(c types.ManaType) []types.ManaType {
	if c != types.Any {
		return []types.ManaType{c}
	}
	return []types.ManaType{types.White, types.Blue, types.Black, types.Red, types.Green}
}

func byName(db card.TemplateLookup, name string) (card.CardTemplate, bool) {
	return db.GetByName(name)
}

// Grizzly Bears: a vanilla 2/2 for {1}{G}, carries no ability descriptor —
// included so the registry (and downstream tests) has a baseline creature
// with nothing attached.
func seedGrizzlyBears(reg *Registry, db card.TemplateLookup) {
	_, ok := byName(db, "Grizzly Bears")
	_ = ok // nothing to register; vanilla creatures need no Descriptor
}

// Drudge Skeletons: {B}: regenerate, no tap — the textbook "{cost}: Regenerate
// this creature" activated ability (spec §4.4 activated ability shape).
func seedDrudgeSkeletons(reg *Registry, db card.TemplateLookup) {
	t, ok := byName(db, "Drudge Skeletons")
	if !ok {
		return
	}
	reg.Register(Descriptor{
		ID:     t.ID + ":regenerate",
		Source: t.ID,
		Name:   "Regenerate",
		Cost: Cost{
			Mana: costPtr(mana.ParseCost("{B}")),
		},
		Effect: effect.Effect{Kind: effect.Regenerate},
	})
}

// Terror: destroy target nonartifact, nonblack creature. It can't
// regenerate — modeled with NoRegeneration and the targeting restriction
// pair the spec's closed RestrictionKind set supports (color exclusion via
// a negated RestrictColor, and a type-subset exclusion).
func seedTerror(reg *Registry, db card.TemplateLookup) {
	t, ok := byName(db, "Terror")
	if !ok {
		return
	}
	reg.Register(Descriptor{
		ID:     t.ID + ":cast",
		Source: t.ID,
		Name:   "Terror",
		TargetReqs: []target.Requirement{
			{
				TargetKind: target.KindCreature,
				Restrictions: []target.Restriction{
					{Kind: target.RestrictColor, Color: types.Black, Negated: true},
					{Kind: target.RestrictTypeSubset, TypeSubset: "Artifact", Negated: true},
				},
			},
		},
		Effect: effect.Effect{Kind: effect.Destroy, NoRegeneration: true},
	})
}

// Counterspell: counter target spell — a KindSpell target resolved against
// the stack (spec §4.3 "Spell" target kind, §4.5).
func seedCounterspell(reg *Registry, db card.TemplateLookup) {
	t, ok := byName(db, "Counterspell")
	if !ok {
		return
	}
	reg.Register(Descriptor{
		ID:     t.ID + ":cast",
		Source: t.ID,
		Name:   "Counterspell",
		TargetReqs: []target.Requirement{
			{TargetKind: target.KindSpell},
		},
		Effect: effect.Effect{Kind: effect.Counter},
	})
}

// Shock: 2 damage to any target (creature or player) — the canonical
// KindAny/DealDamage pairing.
func seedShock(reg *Registry, db card.TemplateLookup) {
	t, ok := byName(db, "Shock")
	if !ok {
		return
	}
	reg.Register(Descriptor{
		ID:     t.ID + ":cast",
		Source: t.ID,
		Name:   "Shock",
		TargetReqs: []target.Requirement{
			{TargetKind: target.KindAny},
		},
		Effect: effect.Effect{Kind: effect.DealDamage, Amount: 2},
	})
}

// Maro: power and toughness each equal the number of cards in its
// controller's hand — the canonical VariablePTSource (spec §4.7).
func seedMaro(statics *continuous.Registry, db card.TemplateLookup) {
	t, ok := byName(db, "Maro")
	if !ok {
		return
	}
	statics.Register(t.ID, continuous.StaticSource{
		Kind: continuous.VariablePTSource,
		VariablePT: func(g *state.GameState, controller types.PlayerId) int {
			return len(g.Get(controller).Hand)
		},
	})
}

// Archangel: flying, vigilance — native keywords carried on the card
// template's Keywords slice, so it needs no Descriptor or StaticSource of
// its own; listed here so the seeding step documents every named card's
// treatment even when that treatment is "nothing to wire."
func seedArchangel(reg *Registry, db card.TemplateLookup) {
	_, ok := byName(db, "Archangel")
	_ = ok
}

// Primal Clay: an artifact creature that enters as one of three stat/ability
// configurations — the spec's motivating example for PrimalClayChoice
// (spec §3, §4.7 primal_clay_base). The configuration is read from the
// CardInstance's PrimalClayChoice field, which continuous.effectiveStat
// already special-cases, so no ability Descriptor is needed here. The
// reducer's CastSpell action does not set that field; it stays
// PrimalClayNone unless the caller sets it.
func seedPrimalClay(reg *Registry, db card.TemplateLookup) {
	_, ok := byName(db, "Primal Clay")
	_ = ok
}

func costPtr(c mana.Cost) *mana.Cost { return &c }
