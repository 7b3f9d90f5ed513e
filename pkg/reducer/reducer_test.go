package reducer

import (
	"testing"

	"github.com/sixthedge/coreengine/pkg/ability"
	"github.com/sixthedge/coreengine/pkg/card"
	"github.com/sixthedge/coreengine/pkg/continuous"
	"github.com/sixthedge/coreengine/pkg/state"
	"github.com/sixthedge/coreengine/pkg/types"
)

func seededEngine() (*Engine, *card.CardDB) {
	db := card.NewCardDB([]card.Card{
		{ID: "bears", Name: "Grizzly Bears", TypeLine: "Creature — Bear", ManaCost: "{1}{G}", Power: "2", Toughness: "2"},
		{ID: "skeletons", Name: "Drudge Skeletons", TypeLine: "Creature — Skeleton", ManaCost: "{B}{B}", Power: "1", Toughness: "1"},
		{ID: "terror", Name: "Terror", TypeLine: "Instant", ManaCost: "{1}{B}", Colors: []string{"B"}},
		{ID: "counterspell", Name: "Counterspell", TypeLine: "Instant", ManaCost: "{U}{U}", Colors: []string{"U"}},
		{ID: "shock", Name: "Shock", TypeLine: "Instant", ManaCost: "{R}", Colors: []string{"R"}},
		{ID: "maro", Name: "Maro", TypeLine: "Creature — Avatar", ManaCost: "{4}{G}{G}", Power: "*", Toughness: "*"},
		{ID: "archangel", Name: "Archangel", TypeLine: "Creature — Angel", ManaCost: "{5}{W}{W}", Power: "5", Toughness: "5", Keywords: []string{"Flying", "Vigilance"}},
		{ID: "clay", Name: "Primal Clay", TypeLine: "Artifact Creature — Golem", ManaCost: "{3}"},
	})
	abilities := ability.NewRegistry()
	statics := continuous.NewRegistry()
	ability.Seed6E(abilities, statics, db)
	return NewEngine(db, abilities, statics), db
}

// advanceStep submits two alternating PassPriority actions, enough to either
// resolve the top of the stack or advance the turn structure one step,
// whichever the engine currently has queued up (spec §4.5 "two passes in
// succession").
func advanceStep(t *testing.T, eng *Engine, g *state.GameState) *state.GameState {
	t.Helper()
	holder := g.PriorityPlayer
	next, err := eng.Apply(g, Action{Kind: PassPriority, Player: holder})
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	next, err = eng.Apply(next, Action{Kind: PassPriority, Player: holder.Opposite()})
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	return next
}

// TestUnblockedAttackerHitsForItsPower is the literal spec §8 scenario:
// Grizzly Bears attacks unblocked, the opponent drops from 20 to 18 life,
// and the turn structure lands on Main2.
func TestUnblockedAttackerHitsForItsPower(t *testing.T) {
	eng, _ := seededEngine()
	g := state.NewGameState(1)
	g.ActivePlayer = types.Player
	bears := state.NewCardInstance("bears", types.Player, types.Battlefield)
	bears.SinceTurn = 0
	g.Get(types.Player).Battlefield = []*state.CardInstance{bears}
	g.Get(types.Opponent).Life = 20

	g = advanceStep(t, eng, g) // Main1 -> BeginningOfCombat
	g = advanceStep(t, eng, g) // BeginningOfCombat -> DeclareAttackers

	var err error
	g, err = eng.Apply(g, Action{Kind: DeclareAttackers, Player: types.Player, AttackerIDs: []uint64{bears.InstanceID}})
	if err != nil {
		t.Fatalf("declare attackers: %v", err)
	}
	bears, _, _ = g.FindInstance(bears.InstanceID) // Apply returns a clone; read the new state's copy
	if !bears.Attacking || !bears.Tapped {
		t.Fatalf("bears should be attacking and tapped: %+v", bears)
	}

	g = advanceStep(t, eng, g) // DeclareAttackers -> DeclareBlockers

	g, err = eng.Apply(g, Action{Kind: DeclareBlockers, Player: types.Opponent, BlockAssignments: nil})
	if err != nil {
		t.Fatalf("declare no blockers: %v", err)
	}

	g = advanceStep(t, eng, g) // DeclareBlockers -> FirstStrikeDamage (no first strikers)
	g = advanceStep(t, eng, g) // FirstStrikeDamage -> CombatDamage (regular damage applied here)

	if g.Get(types.Opponent).Life != 18 {
		t.Fatalf("opponent life = %d, want 18 after an unblocked 2-power attacker", g.Get(types.Opponent).Life)
	}

	g = advanceStep(t, eng, g) // CombatDamage -> EndOfCombat
	g = advanceStep(t, eng, g) // EndOfCombat -> Main2

	if g.Phase != types.Main2 {
		t.Errorf("expected the turn structure to land on Main2, got %v/%v", g.Phase, g.Step)
	}
}

// TestVigilanceAttackerStaysUntapped is the literal spec §8 scenario:
// Archangel attacks and remains untapped thanks to Vigilance.
func TestVigilanceAttackerStaysUntapped(t *testing.T) {
	eng, _ := seededEngine()
	g := state.NewGameState(1)
	g.ActivePlayer = types.Player
	archangel := state.NewCardInstance("archangel", types.Player, types.Battlefield)
	g.Get(types.Player).Battlefield = []*state.CardInstance{archangel}

	g = advanceStep(t, eng, g)
	g = advanceStep(t, eng, g)

	g, err := eng.Apply(g, Action{Kind: DeclareAttackers, Player: types.Player, AttackerIDs: []uint64{archangel.InstanceID}})
	if err != nil {
		t.Fatalf("declare attackers: %v", err)
	}
	archangel, _, _ = g.FindInstance(archangel.InstanceID) // Apply returns a clone; read the new state's copy
	if !archangel.Attacking {
		t.Errorf("archangel should be marked attacking")
	}
	if archangel.Tapped {
		t.Errorf("a Vigilance attacker must not tap")
	}
}

// TestRegenerationSavesTheSkeletons is the literal spec §8 scenario: Drudge
// Skeletons regenerates away lethal combat damage instead of dying to state-
// based actions, driven through the full reducer rather than pkg/sba alone.
func TestRegenerationSavesTheSkeletons(t *testing.T) {
	eng, _ := seededEngine()
	g := state.NewGameState(1)
	g.ActivePlayer = types.Player
	skel := state.NewCardInstance("skeletons", types.Player, types.Battlefield)
	g.Get(types.Player).Battlefield = []*state.CardInstance{skel}
	g.Get(types.Player).ManaPool.Black = 1

	desc, ok := eng.Abilities.ByID(skel.TemplateID + ":regenerate")
	if !ok {
		t.Fatalf("expected a regenerate descriptor registered for Drudge Skeletons")
	}

	g, err := eng.Apply(g, Action{Kind: ActivateAbility, Player: types.Player, InstanceID: skel.InstanceID, AbilityID: desc.ID})
	if err != nil {
		t.Fatalf("activate regenerate: %v", err)
	}
	if len(g.Stack) != 1 {
		t.Fatalf("expected the regenerate activation on the stack, got %d objects", len(g.Stack))
	}

	g = advanceStep(t, eng, g) // resolves the regenerate activation, granting the shield
	skel, _, _ = g.FindInstance(skel.InstanceID) // Apply returns a clone; read the new state's copy
	if skel.RegenShields != 1 {
		t.Fatalf("expected the regenerate ability to grant a shield, got %d", skel.RegenShields)
	}

	skel.Damage = 1 // lethal damage, as if dealt by a 1-power blocker in combat
	g, err = eng.Apply(g, Action{Kind: PassPriority, Player: g.PriorityPlayer})
	if err != nil {
		t.Fatalf("pass priority to trigger SBA: %v", err)
	}

	if len(g.Get(types.Player).Battlefield) != 1 {
		t.Fatalf("regenerating Drudge Skeletons should survive")
	}
	skel, _, _ = g.FindInstance(skel.InstanceID)
	if skel.RegenShields != 0 || skel.Damage != 0 || !skel.Tapped {
		t.Errorf("regeneration should consume the shield, clear damage, and tap: %+v", skel)
	}
}

// TestTerrorFizzlesWhenShockKillsTheTargetFirst is the literal spec §8
// "Fizzle" scenario: Terror targets a 2/2 that Shock kills in response;
// Terror then resolves against a target already in the graveyard.
func TestTerrorFizzlesWhenShockKillsTheTargetFirst(t *testing.T) {
	eng, _ := seededEngine()
	g := state.NewGameState(1)
	g.ActivePlayer = types.Player

	bears := state.NewCardInstance("bears", types.Opponent, types.Battlefield)
	g.Get(types.Opponent).Battlefield = []*state.CardInstance{bears}

	terror := state.NewCardInstance("terror", types.Player, types.Hand)
	shock := state.NewCardInstance("shock", types.Player, types.Hand)
	g.Get(types.Player).Hand = []*state.CardInstance{terror, shock}
	g.Get(types.Player).ManaPool.Black = 2
	g.Get(types.Player).ManaPool.Red = 1

	g, err := eng.Apply(g, Action{
		Kind: CastSpell, Player: types.Player, InstanceID: terror.InstanceID,
		Targets: []state.TargetRef{state.InstanceRef(bears.InstanceID)},
	})
	if err != nil {
		t.Fatalf("cast terror: %v", err)
	}
	g, err = eng.Apply(g, Action{
		Kind: CastSpell, Player: types.Player, InstanceID: shock.InstanceID,
		Targets: []state.TargetRef{state.InstanceRef(bears.InstanceID)},
	})
	if err != nil {
		t.Fatalf("cast shock in response: %v", err)
	}
	if len(g.Stack) != 2 {
		t.Fatalf("expected both spells on the stack, got %d", len(g.Stack))
	}

	g = advanceStep(t, eng, g) // resolve Shock (top of stack): 2 damage kills the 2/2 via SBA
	if len(g.Get(types.Opponent).Battlefield) != 0 || len(g.Get(types.Opponent).Graveyard) != 1 {
		t.Fatalf("Shock should have killed Grizzly Bears via state-based actions")
	}

	g = advanceStep(t, eng, g) // resolve Terror against a target that no longer exists: fizzle
	if len(g.Stack) != 0 {
		t.Fatalf("expected the stack empty after Terror resolves (or fizzles), got %d", len(g.Stack))
	}
	if len(g.Get(types.Player).Graveyard) != 2 {
		t.Errorf("both spent instants should end in their owner's graveyard, got %d", len(g.Get(types.Player).Graveyard))
	}
}

// TestCounterspellCanCounterACounterspell is the literal spec §8
// "Counter-a-counter" scenario: Counterspell targeting a Counterspell
// targeting Grizzly Bears builds a 3-object stack; LIFO resolution means the
// second Counterspell resolves first, countering the first, so Bears itself
// is never countered.
func TestCounterspellCanCounterACounterspell(t *testing.T) {
	eng, _ := seededEngine()
	g := state.NewGameState(1)
	g.ActivePlayer = types.Player

	bears := state.NewCardInstance("bears", types.Player, types.Hand)
	counter1 := state.NewCardInstance("counterspell", types.Opponent, types.Hand)
	counter2 := state.NewCardInstance("counterspell", types.Player, types.Hand)
	g.Get(types.Player).Hand = []*state.CardInstance{bears, counter2}
	g.Get(types.Opponent).Hand = []*state.CardInstance{counter1}
	g.Get(types.Player).ManaPool.Colorless = 1
	g.Get(types.Player).ManaPool.Green = 1
	g.Get(types.Player).ManaPool.Blue = 2
	g.Get(types.Opponent).ManaPool.Blue = 2

	g, err := eng.Apply(g, Action{Kind: CastSpell, Player: types.Player, InstanceID: bears.InstanceID})
	if err != nil {
		t.Fatalf("cast bears: %v", err)
	}

	g, err = eng.Apply(g, Action{
		Kind: CastSpell, Player: types.Opponent, InstanceID: counter1.InstanceID,
		Targets: []state.TargetRef{state.InstanceRef(bears.InstanceID)},
	})
	if err != nil {
		t.Fatalf("cast first counterspell on bears: %v", err)
	}

	g, err = eng.Apply(g, Action{
		Kind: CastSpell, Player: types.Player, InstanceID: counter2.InstanceID,
		Targets: []state.TargetRef{state.InstanceRef(counter1.InstanceID)},
	})
	if err != nil {
		t.Fatalf("cast second counterspell on the first: %v", err)
	}
	if len(g.Stack) != 3 {
		t.Fatalf("expected a 3-object stack, got %d", len(g.Stack))
	}

	g = advanceStep(t, eng, g) // resolves the top counterspell, countering counter1
	if len(g.Stack) != 2 || !g.Stack[1].Countered {
		t.Fatalf("expected the first counterspell still on the stack and marked countered, got %+v", g.Stack)
	}

	g = advanceStep(t, eng, g) // the countered counterspell leaves the stack without resolving
	g = advanceStep(t, eng, g) // bears finally resolves, never having been countered

	if len(g.Get(types.Player).Battlefield) != 1 {
		t.Fatalf("Grizzly Bears should resolve onto the battlefield, stack=%d", len(g.Stack))
	}
}

// TestMaroDiesWithEmptyHandThroughTheFullReducer mirrors the spec §8
// scenario at the reducer level: any action that triggers the post-action
// state-based-action sweep kills a Maro with zero cards in its controller's
// hand.
func TestMaroDiesWithEmptyHandThroughTheFullReducer(t *testing.T) {
	eng, _ := seededEngine()
	g := state.NewGameState(1)
	g.ActivePlayer = types.Player
	maro := state.NewCardInstance("maro", types.Player, types.Battlefield)
	g.Get(types.Player).Battlefield = []*state.CardInstance{maro}

	g, err := eng.Apply(g, Action{Kind: PassPriority, Player: g.PriorityPlayer})
	if err != nil {
		t.Fatalf("pass priority: %v", err)
	}
	g, err = eng.Apply(g, Action{Kind: PassPriority, Player: g.PriorityPlayer})
	if err != nil {
		t.Fatalf("pass priority: %v", err)
	}

	if len(g.Get(types.Player).Battlefield) != 0 {
		t.Fatalf("Maro with an empty hand (0 power/toughness) must die to state-based actions")
	}
	if len(g.Get(types.Player).Graveyard) != 1 {
		t.Errorf("Maro should land in the graveyard")
	}
}

func TestShouldAutoPassIsFalseWithARealDecisionPending(t *testing.T) {
	eng, _ := seededEngine()
	g := state.NewGameState(1)
	g.ActivePlayer = types.Player
	bears := state.NewCardInstance("bears", types.Player, types.Hand)
	g.Get(types.Player).Hand = []*state.CardInstance{bears}
	g.Get(types.Player).ManaPool.Colorless = 1
	g.Get(types.Player).ManaPool.Green = 1

	if eng.ShouldAutoPass(g, types.Player) {
		t.Errorf("a castable spell in hand is a meaningful decision, autopass should not apply")
	}
}

func TestRunAutoPassSinkDrainsTrivialPriority(t *testing.T) {
	eng, _ := seededEngine()
	g := state.NewGameState(1)
	g.ActivePlayer = types.Player

	next, err := eng.RunAutoPassSink(g)
	if err != nil {
		t.Fatalf("autopass sink: %v", err)
	}
	if next.Phase == g.Phase && next.Step == g.Step && next.TurnCount == g.TurnCount {
		t.Errorf("with nothing to do, the autopass sink should have advanced the game state")
	}
}

func TestLegalActionsOffersCastableSpellsAndPassPriority(t *testing.T) {
	eng, _ := seededEngine()
	g := state.NewGameState(1)
	g.ActivePlayer = types.Player
	bears := state.NewCardInstance("bears", types.Player, types.Hand)
	g.Get(types.Player).Hand = []*state.CardInstance{bears}
	g.Get(types.Player).ManaPool.Colorless = 1
	g.Get(types.Player).ManaPool.Green = 1

	actions := eng.LegalActions(g, types.Player)
	var sawCast, sawPass bool
	for _, a := range actions {
		if a.Kind == CastSpell && a.InstanceID == bears.InstanceID {
			sawCast = true
		}
		if a.Kind == PassPriority {
			sawPass = true
		}
	}
	if !sawCast {
		t.Errorf("expected LegalActions to offer casting Grizzly Bears with enough mana available")
	}
	if !sawPass {
		t.Errorf("expected LegalActions to always offer PassPriority to the priority holder")
	}
}
