package engine

import (
	"testing"

	"github.com/sixthedge/coreengine/pkg/card"
	"github.com/sixthedge/coreengine/pkg/reducer"
	"github.com/sixthedge/coreengine/pkg/types"
)

func fortyCardDeck() ([]string, *card.CardDB) {
	var cards []card.Card
	var decklist []string
	for i := 0; i < 17; i++ {
		cards = append(cards, card.Card{ID: "land", Name: "Forest", TypeLine: "Basic Land — Forest"})
		decklist = append(decklist, "land")
	}
	for i := 0; i < 15; i++ {
		cards = append(cards, card.Card{ID: "bear", Name: "Grizzly Bears", TypeLine: "Creature — Bear", CMC: 2, ManaCost: "{1}{G}", Power: "2", Toughness: "2"})
		decklist = append(decklist, "bear")
	}
	for i := 0; i < 8; i++ {
		cards = append(cards, card.Card{ID: "ogre", Name: "Ogre", TypeLine: "Creature — Ogre", CMC: 5, ManaCost: "{3}{R}{R}", Power: "4", Toughness: "4"})
		decklist = append(decklist, "ogre")
	}
	return decklist, card.NewCardDB(cards)
}

func TestCreateGameStateDealsSevenCardHandsAndShufflesTheLibrary(t *testing.T) {
	ResetCounters()
	decklist, db := fortyCardDeck()
	eng := New(db)
	g, err := eng.CreateGameState(Config{Templates: db, PlayerDeck: decklist, OpponentDeck: decklist, Seed: 123})
	if err != nil {
		t.Fatalf("create game state: %v", err)
	}
	if len(g.Get(types.Player).Hand) != 7 || len(g.Get(types.Opponent).Hand) != 7 {
		t.Fatalf("expected 7-card opening hands, got player=%d opponent=%d",
			len(g.Get(types.Player).Hand), len(g.Get(types.Opponent).Hand))
	}
	if len(g.Get(types.Player).Library) != len(decklist)-7 {
		t.Errorf("expected %d cards remaining in library, got %d", len(decklist)-7, len(g.Get(types.Player).Library))
	}
	for _, c := range g.Get(types.Player).Hand {
		if c.Zone != types.Hand {
			t.Errorf("every dealt card should have its zone set to Hand")
		}
	}
}

func TestCreateGameStateRejectsAnUnknownTemplate(t *testing.T) {
	ResetCounters()
	_, db := fortyCardDeck()
	eng := New(db)
	_, err := eng.CreateGameState(Config{Templates: db, PlayerDeck: []string{"not-a-real-card"}, OpponentDeck: []string{"land"}, Seed: 1})
	if err != ErrUnknownTemplate {
		t.Fatalf("expected ErrUnknownTemplate, got %v", err)
	}
}

// TestCreateGameStateIsDeterministic is the spec §8 "Determinism" property:
// replaying the same seed and decklists through a fresh ResetCounters
// produces byte-identical library orderings and hands.
func TestCreateGameStateIsDeterministic(t *testing.T) {
	decklist, db := fortyCardDeck()

	ResetCounters()
	eng1 := New(db)
	g1, err := eng1.CreateGameState(Config{Templates: db, PlayerDeck: decklist, OpponentDeck: decklist, Seed: 777})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}

	ResetCounters()
	eng2 := New(db)
	g2, err := eng2.CreateGameState(Config{Templates: db, PlayerDeck: decklist, OpponentDeck: decklist, Seed: 777})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if len(g1.Get(types.Player).Library) != len(g2.Get(types.Player).Library) {
		t.Fatalf("library lengths diverged between runs")
	}
	for i := range g1.Get(types.Player).Library {
		a := g1.Get(types.Player).Library[i]
		b := g2.Get(types.Player).Library[i]
		if a.InstanceID != b.InstanceID || a.TemplateID != b.TemplateID {
			t.Fatalf("library order diverged at position %d: %+v vs %+v", i, a, b)
		}
	}
	for i := range g1.Get(types.Player).Hand {
		if g1.Get(types.Player).Hand[i].InstanceID != g2.Get(types.Player).Hand[i].InstanceID {
			t.Fatalf("opening hand diverged at position %d", i)
		}
	}
	if g1.RNGState != g2.RNGState {
		t.Errorf("RNGState should be identical across two runs of the same seed")
	}
}

func TestApplyActionDrivesALegalAction(t *testing.T) {
	ResetCounters()
	decklist, db := fortyCardDeck()
	eng := New(db)
	g, err := eng.CreateGameState(Config{Templates: db, PlayerDeck: decklist, OpponentDeck: decklist, Seed: 42})
	if err != nil {
		t.Fatalf("create game state: %v", err)
	}

	actions := eng.LegalActions(g, g.PriorityPlayer)
	if len(actions) == 0 {
		t.Fatalf("expected at least one legal action (PassPriority is always available)")
	}

	next, err := eng.ApplyAction(g, reducer.Action{Kind: reducer.PassPriority, Player: g.PriorityPlayer})
	if err != nil {
		t.Fatalf("apply pass priority: %v", err)
	}
	if next == g {
		t.Errorf("ApplyAction must return a freshly cloned state, never the input")
	}
}

func TestIsGameOverReflectsWinner(t *testing.T) {
	ResetCounters()
	decklist, db := fortyCardDeck()
	eng := New(db)
	g, err := eng.CreateGameState(Config{Templates: db, PlayerDeck: decklist, OpponentDeck: decklist, Seed: 5})
	if err != nil {
		t.Fatalf("create game state: %v", err)
	}
	if over, _ := IsGameOver(g); over {
		t.Fatalf("a freshly created game should not be over")
	}

	g.Get(types.Opponent).Life = 0
	next, err := eng.ApplyAction(g, reducer.Action{Kind: reducer.PassPriority, Player: g.PriorityPlayer})
	if err != nil {
		t.Fatalf("apply pass priority: %v", err)
	}
	if over, winner := IsGameOver(next); !over || winner == nil || *winner != types.Player {
		t.Errorf("expected the game over with Player as winner, got over=%v winner=%v", over, winner)
	}
}
