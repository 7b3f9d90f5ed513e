// Package deck imports deckfiles (the common "4x Card Name (SET) 123"
// export format) into the template-id decklists pkg/engine.Config expects.
// Shuffling and drawing are the engine's job now (pkg/rng's AI-optimized
// shuffle, driven from pkg/engine.CreateGameState); this package is left
// with exactly what a deckfile importer still owns: turning names on disk
// into template ids the card database recognizes.
package deck

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/sixthedge/coreengine/internal/logger"
	"github.com/sixthedge/coreengine/pkg/card"
)

// Deck is an ordered decklist: one template id per copy of a card, in the
// order they appeared in the deckfile. Ready to hand to
// engine.Config.PlayerDeck/OpponentDeck as-is.
type Deck struct {
	Name  string
	Cards []string
}

// Size returns the number of cards in the deck.
func (d *Deck) Size() int {
	return len(d.Cards)
}

// IsEmpty returns true if the deck has no cards.
func (d *Deck) IsEmpty() bool {
	return len(d.Cards) == 0
}

// CardDatabase resolves a card's display name to its template, the only
// lookup a deckfile importer needs from the card database.
type CardDatabase interface {
	GetCardByName(name string) (card.Card, bool)
}

// ImportDeckfile imports a deck from a file, supporting multiple formats.
// Returns the main deck and sideboard as separate Deck objects.
func ImportDeckfile(filename string, cardDB CardDatabase) (Deck, Deck, error) {
	file, err := os.Open(filename)
	if err != nil {
		return Deck{}, Deck{}, err
	}

	defer func() {
		if err := file.Close(); err != nil {
			logger.LogDeck("Error closing file: %v", err)
		}
	}()

	var cards []string
	var sideboardCards []string
	var deckName = filename
	inSideboard := false

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		// Handle "About" section for deck name
		if strings.HasPrefix(line, "About") {
			scanner.Scan()
			nameLine := strings.TrimSpace(scanner.Text())
			if strings.HasPrefix(nameLine, "Name ") {
				deckName = strings.TrimPrefix(nameLine, "Name ")
			}
			continue
		}

		// Detect the start of the sideboard section
		if strings.EqualFold(line, "Sideboard") {
			inSideboard = true
			continue
		}

		// Handle multiple formats: "4x Elvish Mystic (CMM) 284", "4 Elvish Mystic", or just "Elvish Mystic"
		var count int
		var name string

		if strings.Contains(line, "x ") {
			// Format: "4x Elvish Mystic (CMM) 284"
			parts := strings.SplitN(line, "x ", 2)
			if len(parts) != 2 {
				continue
			}
			count, err = strconv.Atoi(strings.TrimSpace(parts[0]))
			if err != nil {
				continue
			}
			name = strings.TrimSpace(parts[1])
			if idx := strings.Index(name, " ("); idx != -1 {
				name = name[:idx]
			}
		} else {
			// Try format: "4 Elvish Mystic"
			parts := strings.SplitN(line, " ", 2)
			if len(parts) == 2 {
				count, err = strconv.Atoi(strings.TrimSpace(parts[0]))
				if err == nil {
					name = strings.TrimSpace(parts[1])
					if idx := strings.Index(name, " ("); idx != -1 {
						name = name[:idx]
					}
				} else {
					count = 1
					name = strings.TrimSpace(line)
				}
			} else {
				count = 1
				name = strings.TrimSpace(line)
			}
		}

		cardData, exists := cardDB.GetCardByName(name)
		if !exists {
			logger.LogDeck("Card not found: %s", name)
			continue
		}

		for i := 0; i < count; i++ {
			if inSideboard {
				sideboardCards = append(sideboardCards, cardData.ID)
			} else {
				cards = append(cards, cardData.ID)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return Deck{}, Deck{}, err
	}

	return Deck{Cards: cards, Name: deckName}, Deck{Cards: sideboardCards}, nil
}
