package sba

import (
	"testing"

	"github.com/sixthedge/coreengine/pkg/card"
	"github.com/sixthedge/coreengine/pkg/continuous"
	"github.com/sixthedge/coreengine/pkg/state"
	"github.com/sixthedge/coreengine/pkg/types"
)

func testDeps() Deps {
	db := card.NewCardDB([]card.Card{
		{ID: "bears", Name: "Grizzly Bears", TypeLine: "Creature — Bear", Power: "2", Toughness: "2"},
		{ID: "skeletons", Name: "Drudge Skeletons", TypeLine: "Creature — Skeleton", Power: "1", Toughness: "1"},
		{ID: "aura", Name: "Pacifism", TypeLine: "Enchantment — Aura"},
	})
	return Deps{Templates: db, Statics: continuous.NewRegistry()}
}

func TestPlayerLossAtZeroLifeEndsGame(t *testing.T) {
	deps := testDeps()
	g := state.NewGameState(1)
	g.Get(types.Opponent).Life = 0

	if over := RunToFixpoint(g, deps); !over {
		t.Fatalf("expected the fixpoint to report game over")
	}
	if !g.GameOver || g.Winner == nil || *g.Winner != types.Player {
		t.Errorf("expected Player to win when Opponent's life hits 0, got %+v winner=%v", g.GameOver, g.Winner)
	}
}

func TestDeckedOutPlayerLoses(t *testing.T) {
	deps := testDeps()
	g := state.NewGameState(1)
	g.Get(types.Player).DeckedOut = true

	RunToFixpoint(g, deps)
	if g.Winner == nil || *g.Winner != types.Opponent {
		t.Errorf("expected Opponent to win when Player decks out")
	}
}

func TestLethalDamageConsumesRegenerationShield(t *testing.T) {
	deps := testDeps()
	g := state.NewGameState(1)
	skel := state.NewCardInstance("skeletons", types.Player, types.Battlefield)
	skel.Damage = 1
	skel.RegenShields = 1
	g.Get(types.Player).Battlefield = []*state.CardInstance{skel}

	RunToFixpoint(g, deps)
	if len(g.Get(types.Player).Battlefield) != 1 {
		t.Fatalf("regenerating Drudge Skeletons should stay on the battlefield")
	}
	if skel.RegenShields != 0 || skel.Damage != 0 || !skel.Tapped {
		t.Errorf("regeneration should consume the shield, clear damage, and tap: %+v", skel)
	}
}

func TestLethalDamageWithoutShieldDestroysCreature(t *testing.T) {
	deps := testDeps()
	g := state.NewGameState(1)
	bears := state.NewCardInstance("bears", types.Player, types.Battlefield)
	bears.Damage = 2
	g.Get(types.Player).Battlefield = []*state.CardInstance{bears}

	RunToFixpoint(g, deps)
	if len(g.Get(types.Player).Battlefield) != 0 {
		t.Errorf("lethally damaged creature with no regen shield should leave the battlefield")
	}
	if len(g.Get(types.Player).Graveyard) != 1 {
		t.Errorf("lethally damaged creature should land in the graveyard")
	}
}

func TestCounterAnnihilation(t *testing.T) {
	deps := testDeps()
	g := state.NewGameState(1)
	bears := state.NewCardInstance("bears", types.Player, types.Battlefield)
	bears.Counters[types.PlusOnePlusOne] = 3
	bears.Counters[types.MinusOneMinusOne] = 1
	g.Get(types.Player).Battlefield = []*state.CardInstance{bears}

	RunToFixpoint(g, deps)
	if bears.Counters[types.PlusOnePlusOne] != 2 || bears.Counters[types.MinusOneMinusOne] != 0 {
		t.Errorf("expected 1 pair annihilated leaving 2 +1/+1 counters, got %+v", bears.Counters)
	}
}

func TestOrphanedAuraGoesToGraveyard(t *testing.T) {
	deps := testDeps()
	g := state.NewGameState(1)
	aura := state.NewCardInstance("aura", types.Player, types.Battlefield)
	missing := uint64(99999)
	aura.AttachedTo = &missing
	g.Get(types.Player).Battlefield = []*state.CardInstance{aura}

	RunToFixpoint(g, deps)
	if len(g.Get(types.Player).Battlefield) != 0 {
		t.Errorf("aura attached to a nonexistent permanent should leave the battlefield")
	}
}

func TestRunToFixpointIsStableOnSecondPass(t *testing.T) {
	deps := testDeps()
	g := state.NewGameState(1)
	bears := state.NewCardInstance("bears", types.Player, types.Battlefield)
	g.Get(types.Player).Battlefield = []*state.CardInstance{bears}

	RunToFixpoint(g, deps)
	if changed := annihilateCounters(g); changed {
		t.Errorf("a second fixpoint pass must report no further change")
	}
}

func TestMaroDiesWithEmptyHand(t *testing.T) {
	db := card.NewCardDB([]card.Card{
		{ID: "maro", Name: "Maro", TypeLine: "Creature — Avatar", Power: "*", Toughness: "*"},
	})
	statics := continuous.NewRegistry()
	statics.Register("maro", continuous.StaticSource{
		Kind: continuous.VariablePTSource,
		VariablePT: func(g *state.GameState, controller types.PlayerId) int {
			return len(g.Get(controller).Hand)
		},
	})
	deps := Deps{Templates: db, Statics: statics}
	g := state.NewGameState(1)
	maro := state.NewCardInstance("maro", types.Player, types.Battlefield)
	g.Get(types.Player).Battlefield = []*state.CardInstance{maro}

	RunToFixpoint(g, deps)
	if len(g.Get(types.Player).Battlefield) != 0 {
		t.Errorf("Maro with 0 toughness (0 cards in hand) must die to state-based actions")
	}
	if len(g.Get(types.Player).Graveyard) != 1 {
		t.Errorf("Maro should land in the graveyard")
	}
}
