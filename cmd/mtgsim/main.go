// MTGSim - Magic: The Gathering deck simulation tool
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/sixthedge/coreengine/internal/logger"
	"github.com/sixthedge/coreengine/pkg/card"
	"github.com/sixthedge/coreengine/pkg/deck"
	"github.com/sixthedge/coreengine/pkg/engine"
	"github.com/sixthedge/coreengine/pkg/simulation"
	"github.com/sixthedge/coreengine/pkg/types"
)

// maxActionsPerGame bounds a single simulated game, guarding against a
// policy that never converges on a legal terminal state.
const maxActionsPerGame = 4000

func main() {
	envCfg := engine.LoadConfigFromEnv()

	numGames := flag.Int("games", 1, "Number of games to simulate")
	deckDir := flag.String("decks", "decks/1v1", "Directory containing deck files")
	logLevel := flag.String("log", envCfg.LogLevel, "Log level (META, GAME, PLAYER, CARD)")
	cardDBPath := flag.String("carddb", envCfg.CardDBPath, "Path to the local card database file (COREENGINE_CARD_DB)")
	flag.Parse()

	logger.SetLogLevel(logger.ParseLogLevel(*logLevel))
	if err := logger.InitParsingLogger(); err != nil {
		fmt.Printf("Warning: Failed to initialize parsing logger: %v\n", err)
	}

	logger.LogMeta("Loading card database...")
	cardDB, err := card.LoadCardDatabaseFrom(*cardDBPath)
	if err != nil {
		fmt.Printf("Error loading card database: %v\n", err)
		os.Exit(1)
	}
	logger.LogMeta("Card database loaded with %d cards", cardDB.Size())

	deckFiles, err := simulation.GetDecks(*deckDir)
	if err != nil || len(deckFiles) == 0 {
		fmt.Println("Error: No decks found in the specified directory.")
		os.Exit(1)
	}
	logger.LogMeta("Found %d deck files", len(deckFiles))

	decks := make([]deck.Deck, 0, len(deckFiles))
	for _, path := range deckFiles {
		main, _, err := deck.ImportDeckfile(path, cardDB)
		if err != nil {
			logger.LogMeta("skipping %s: %v", path, err)
			continue
		}
		if main.Size() == 0 {
			continue
		}
		decks = append(decks, main)
	}
	if len(decks) < 1 {
		fmt.Println("Error: No importable decks found in the specified directory.")
		os.Exit(1)
	}

	eng := engine.New(cardDB)
	results := simulation.NewResults()
	detailed := simulation.NewEnhancedResults()

	start := time.Now()
	logger.LogMeta("Starting simulation of %d games...", *numGames)
	for i := 0; i < *numGames; i++ {
		d1 := simulation.GetRandom(decks)
		d2 := simulation.GetRandom(decks)
		for d2.Name == d1.Name && len(decks) > 1 {
			d2 = simulation.GetRandom(decks)
		}

		gameStart := time.Now()
		winnerName, loserName, turns, err := playOneGame(eng, d1, d2, envCfg.Shuffle)
		if err != nil {
			logger.LogGame("game %d: %v", i, err)
			continue
		}
		if winnerName == "" {
			logger.LogGame("game %d: no winner within %d actions, discarding", i, maxActionsPerGame)
			continue
		}

		results.AddWin(winnerName)
		results.AddLoss(loserName)
		detailed.AddGameResult(simulation.GameResult{
			Deck1Name:     d1.Name,
			Deck2Name:     d2.Name,
			WinnerName:    winnerName,
			LoserName:     loserName,
			GameDuration:  time.Since(gameStart),
			TurnsPlayed:   turns,
			GameEndReason: "state-based loss condition",
		})
	}
	elapsed := time.Since(start)

	gamesPerSecond := 0
	if elapsed.Seconds() > 0 {
		gamesPerSecond = int(float64(*numGames) / elapsed.Seconds())
	}

	logFile, err := os.OpenFile("simulation.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		defer func() {
			if err := logFile.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Error closing log file: %v\n", err)
			}
		}()
		if _, err := fmt.Fprintf(logFile, "Simulated %d games in %.2fs: %d games/sec\n", *numGames, elapsed.Seconds(), gamesPerSecond); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing to log file: %v\n", err)
		}
	}

	results.PrintTopResults()
	detailed.PrintSummary()
	fmt.Printf("Simulated %d games in %.2fs: %d games/sec\n", *numGames, elapsed.Seconds(), gamesPerSecond)
	logger.LogMeta("Simulation completed.")
}

// playOneGame drives a single game to a state-based loss condition using a
// uniform-random legal-action policy, returning the winning and losing
// deck names and the number of turns played. A game that does not resolve
// within maxActionsPerGame returns empty names rather than an error, so the
// caller can simply discard it from the results.
func playOneGame(eng *engine.Engine, d1, d2 deck.Deck, shuffle engine.ShuffleMode) (winnerName, loserName string, turns int, err error) {
	g, err := eng.CreateGameState(engine.Config{
		Templates:    eng.Templates,
		PlayerDeck:   d1.Cards,
		OpponentDeck: d2.Cards,
		Seed:         uint32(time.Now().UnixNano()),
		Shuffle:      shuffle,
	})
	if err != nil {
		return "", "", 0, err
	}
	g = eng.InitializeGame(g)

	names := map[types.PlayerId]string{types.Player: d1.Name, types.Opponent: d2.Name}

	for actions := 0; actions < maxActionsPerGame; actions++ {
		if over, winner := engine.IsGameOver(g); over {
			if winner == nil {
				return "", "", g.TurnCount, nil
			}
			loser := winner.Opposite()
			return names[*winner], names[loser], g.TurnCount, nil
		}

		g, err = eng.RunAutoPassSink(g)
		if err != nil {
			return "", "", 0, err
		}
		if over, winner := engine.IsGameOver(g); over && winner != nil {
			return names[*winner], names[winner.Opposite()], g.TurnCount, nil
		}

		legal := eng.LegalActions(g, g.PriorityPlayer)
		if len(legal) == 0 {
			continue
		}
		choice := legal[rand.Intn(len(legal))]
		next, err := eng.ApplyAction(g, choice)
		if err != nil {
			continue
		}
		g = next
	}

	return "", "", g.TurnCount, nil
}
