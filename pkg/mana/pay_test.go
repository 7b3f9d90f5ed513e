package mana

import (
	"testing"

	"github.com/sixthedge/coreengine/pkg/state"
	"github.com/sixthedge/coreengine/pkg/types"
)

type fakeSources struct {
	sources []Source
}

func (f fakeSources) AvailableSources(g *state.GameState, player types.PlayerId) []Source {
	return f.sources
}

func TestCanPayFromPoolOnly(t *testing.T) {
	g := state.NewGameState(1)
	g.Get(types.Player).ManaPool = state.ManaPool{Red: 1, Colorless: 2}

	cost := ParseCost("{2}{R}")
	assignment, ok := CanPay(g, types.Player, cost, 0, fakeSources{})
	if !ok {
		t.Fatalf("expected payment to succeed from the pool")
	}
	if assignment.PoolSpend.Red != 1 || assignment.PoolSpend.Colorless != 2 {
		t.Errorf("unexpected pool spend: %+v", assignment.PoolSpend)
	}
}

func TestCanPayTapsBattlefieldSourcesInOrder(t *testing.T) {
	g := state.NewGameState(1)
	forest := state.NewCardInstance("forest", types.Player, types.Battlefield)
	mountain := state.NewCardInstance("mountain", types.Player, types.Battlefield)
	g.Get(types.Player).Battlefield = []*state.CardInstance{forest, mountain}

	sources := fakeSources{sources: []Source{
		{InstanceID: forest.InstanceID, Colors: []types.ManaType{types.Green}, BattlefieldIndex: 0},
		{InstanceID: mountain.InstanceID, Colors: []types.ManaType{types.Red}, BattlefieldIndex: 1},
	}}

	cost := ParseCost("{R}")
	assignment, ok := CanPay(g, types.Player, cost, 0, sources)
	if !ok {
		t.Fatalf("expected payment to succeed by tapping the mountain")
	}
	if len(assignment.TappedSources) != 1 || assignment.TappedSources[0] != mountain.InstanceID {
		t.Errorf("expected only the mountain tapped, got %v", assignment.TappedSources)
	}

	Pay(g, types.Player, assignment)
	if !mountain.Tapped {
		t.Errorf("Pay did not tap the mountain")
	}
	if forest.Tapped {
		t.Errorf("Pay tapped the forest, which was not part of the assignment")
	}
}

func TestCanPayFailsWhenInsufficientSources(t *testing.T) {
	g := state.NewGameState(1)
	cost := ParseCost("{B}")
	_, ok := CanPay(g, types.Player, cost, 0, fakeSources{})
	if ok {
		t.Errorf("expected payment to fail with no pool and no sources")
	}
}

func TestCanPayXCost(t *testing.T) {
	g := state.NewGameState(1)
	g.Get(types.Player).ManaPool = state.ManaPool{Red: 3}
	cost := ParseCost("{X}{R}")
	assignment, ok := CanPay(g, types.Player, cost, 2, fakeSources{})
	if !ok {
		t.Fatalf("expected X=2 payment of 3 total red to succeed")
	}
	if assignment.PoolSpend.Red != 3 {
		t.Errorf("expected all 3 red spent (1 colored + X=2 generic), got %+v", assignment.PoolSpend)
	}
}
