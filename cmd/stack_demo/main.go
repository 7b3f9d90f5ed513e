// Package main demonstrates the stack/priority protocol: a player casts
// Shock at their opponent, the opponent responds with Counterspell, and
// priority alternates until both spells have resolved.
package main

import (
	"fmt"

	"github.com/sixthedge/coreengine/pkg/ability"
	"github.com/sixthedge/coreengine/pkg/card"
	"github.com/sixthedge/coreengine/pkg/continuous"
	"github.com/sixthedge/coreengine/pkg/engine"
	"github.com/sixthedge/coreengine/pkg/reducer"
	"github.com/sixthedge/coreengine/pkg/state"
	"github.com/sixthedge/coreengine/pkg/types"
)

func main() {
	db := card.NewCardDB([]card.Card{
		{ID: "shock", Name: "Shock", TypeLine: "Instant", ManaCost: "{R}", Colors: []string{"R"}},
		{ID: "counterspell", Name: "Counterspell", TypeLine: "Instant", ManaCost: "{U}{U}", Colors: []string{"U"}},
	})
	abilities := ability.NewRegistry()
	statics := continuous.NewRegistry()
	ability.Seed6E(abilities, statics, db)
	eng := engine.NewWithRegistries(db, abilities, statics)

	g := state.NewGameState(1)
	g.Get(types.Opponent).Life = 20

	shock := state.NewCardInstance("shock", types.Player, types.Hand)
	g.Get(types.Player).Hand = append(g.Get(types.Player).Hand, shock)
	g.Get(types.Player).ManaPool.Red = 1

	counterspell := state.NewCardInstance("counterspell", types.Opponent, types.Hand)
	g.Get(types.Opponent).Hand = append(g.Get(types.Opponent).Hand, counterspell)
	g.Get(types.Opponent).ManaPool.Blue = 2

	printStack(g, "start")

	g, err := eng.ApplyAction(g, reducer.Action{
		Kind:       reducer.CastSpell,
		Player:     types.Player,
		InstanceID: shock.InstanceID,
		Targets:    []state.TargetRef{state.PlayerRef(types.Opponent)},
	})
	must(err)
	fmt.Println("Player casts Shock targeting the opponent.")
	printStack(g, "after casting Shock")

	g, err = eng.ApplyAction(g, reducer.Action{
		Kind:       reducer.CastSpell,
		Player:     types.Opponent,
		InstanceID: counterspell.InstanceID,
		Targets:    []state.TargetRef{state.InstanceRef(shock.InstanceID)},
	})
	must(err)
	fmt.Println("Opponent responds with Counterspell targeting Shock.")
	printStack(g, "after casting Counterspell")

	g, err = eng.ApplyAction(g, reducer.Action{Kind: reducer.PassPriority, Player: g.PriorityPlayer})
	must(err)
	g, err = eng.ApplyAction(g, reducer.Action{Kind: reducer.PassPriority, Player: g.PriorityPlayer})
	must(err)
	fmt.Println("Both players pass: Counterspell resolves, countering Shock.")
	printStack(g, "after Counterspell resolves")

	g, err = eng.ApplyAction(g, reducer.Action{Kind: reducer.PassPriority, Player: g.PriorityPlayer})
	must(err)
	g, err = eng.ApplyAction(g, reducer.Action{Kind: reducer.PassPriority, Player: g.PriorityPlayer})
	must(err)
	fmt.Println("Both players pass again: the countered Shock is put into its owner's graveyard.")
	printStack(g, "after Shock is countered")

	fmt.Printf("Opponent life: %d (unchanged — Shock never resolved)\n", g.Get(types.Opponent).Life)
}

func printStack(g *state.GameState, label string) {
	fmt.Printf("[%s] stack depth=%d priority=%v\n", label, len(g.Stack), g.PriorityPlayer)
	for i, obj := range g.Stack {
		fmt.Printf("  %d: source=%d controller=%v countered=%v\n", i, obj.SourceInstance, obj.Controller, obj.Countered)
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
