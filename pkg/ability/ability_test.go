package ability

import (
	"testing"

	"github.com/sixthedge/coreengine/pkg/card"
	"github.com/sixthedge/coreengine/pkg/continuous"
	"github.com/sixthedge/coreengine/pkg/effect"
	"github.com/sixthedge/coreengine/pkg/state"
	"github.com/sixthedge/coreengine/pkg/types"
)

func seededTestDB() *card.CardDB {
	return card.NewCardDB([]card.Card{
		{ID: "bears", Name: "Grizzly Bears", TypeLine: "Creature — Bear", ManaCost: "{1}{G}", Power: "2", Toughness: "2"},
		{ID: "skeletons", Name: "Drudge Skeletons", TypeLine: "Creature — Skeleton", ManaCost: "{B}{B}", Power: "1", Toughness: "1"},
		{ID: "terror", Name: "Terror", TypeLine: "Instant", ManaCost: "{1}{B}", Colors: []string{"B"}},
		{ID: "counterspell", Name: "Counterspell", TypeLine: "Instant", ManaCost: "{U}{U}", Colors: []string{"U"}},
		{ID: "shock", Name: "Shock", TypeLine: "Instant", ManaCost: "{R}", Colors: []string{"R"}},
		{ID: "maro", Name: "Maro", TypeLine: "Creature — Avatar", ManaCost: "{4}{G}{G}", Power: "*", Toughness: "*"},
		{ID: "archangel", Name: "Archangel", TypeLine: "Creature — Angel", ManaCost: "{5}{W}{W}", Power: "5", Toughness: "5", Keywords: []string{"Flying", "Vigilance"}},
		{ID: "clay", Name: "Primal Clay", TypeLine: "Artifact Creature — Golem", ManaCost: "{3}"},
	})
}

func TestSeed6ERegistersDescriptorsOnRealTemplateIDs(t *testing.T) {
	db := seededTestDB()
	reg := NewRegistry()
	statics := continuous.NewRegistry()
	Seed6E(reg, statics, db)

	skelTemplate, _ := db.GetByID("skeletons")
	descs := reg.For(skelTemplate.ID)
	if len(descs) != 1 || descs[0].Name != "Regenerate" {
		t.Fatalf("expected Drudge Skeletons to carry exactly one Regenerate descriptor, got %+v", descs)
	}

	terrorTemplate, _ := db.GetByID("terror")
	terrorDescs := reg.For(terrorTemplate.ID)
	if len(terrorDescs) != 1 || terrorDescs[0].Effect.Kind != effect.Destroy {
		t.Fatalf("expected Terror's cast descriptor to carry a Destroy effect, got %+v", terrorDescs)
	}
}

func TestSeed6EVariablePTForMaro(t *testing.T) {
	db := seededTestDB()
	reg := NewRegistry()
	statics := continuous.NewRegistry()
	Seed6E(reg, statics, db)

	maroTemplate, _ := db.GetByID("maro")
	src, ok := statics.Lookup(maroTemplate.ID)
	if !ok || src.Kind != continuous.VariablePTSource {
		t.Fatalf("expected Maro to register a VariablePTSource")
	}

	g := state.NewGameState(1)
	hand := []*state.CardInstance{
		state.NewCardInstance("bears", types.Player, types.Hand),
		state.NewCardInstance("shock", types.Player, types.Hand),
	}
	g.Get(types.Player).Hand = hand
	if got := src.VariablePT(g, types.Player); got != 2 {
		t.Errorf("Maro's P/T with 2 cards in hand = %d, want 2", got)
	}
}

func TestDrainTriggersOrdersActivePlayerFirst(t *testing.T) {
	reg := NewRegistry()
	g := state.NewGameState(1)
	g.ActivePlayer = types.Player
	reg.EnqueueTrigger(g, state.EventDies, 1, types.Opponent, nil, 0)
	reg.EnqueueTrigger(g, state.EventDies, 2, types.Player, nil, 0)

	objs := reg.DrainTriggers(g)
	if len(objs) != 2 {
		t.Fatalf("expected both triggers drained, got %d", len(objs))
	}
	if objs[0].Controller != types.Player {
		t.Errorf("APNAP: active player's trigger must resolve-order first, got controller %v", objs[0].Controller)
	}
	if len(g.PendingTriggers) != 0 {
		t.Errorf("DrainTriggers must clear PendingTriggers")
	}
}
