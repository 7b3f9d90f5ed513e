// Package card provides card database functionality for MTG simulation.
package card

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/sixthedge/coreengine/internal/logger"
)

const (
	CardDBFile = "cardDB.json"
	CardDBURL  = "https://data.scryfall.io/oracle-cards/oracle-cards-20250204100217.json"
)

// CardDB represents a database of Magic: The Gathering cards.
type CardDB struct {
	cards map[string]Card // keyed by name
	byID  map[string]Card // keyed by scryfall id
	all   []Card
}

// NewCardDB creates a new card database from a slice of cards.
func NewCardDB(cards []Card) *CardDB {
	if len(cards) == 0 {
		return nil
	}

	cardMap := make(map[string]Card, len(cards))
	byID := make(map[string]Card, len(cards))
	for _, c := range cards {
		cardMap[c.Name] = c
		if c.ID != "" {
			byID[c.ID] = c
		}
	}
	return &CardDB{cards: cardMap, byID: byID, all: cards}
}

// GetCardByName retrieves a card by its name from the database.
func (db *CardDB) GetCardByName(name string) (Card, bool) {
	card, exists := db.cards[name]
	return card, exists
}

// GetByID retrieves a card by its stable template id (spec §6
// get_by_id(template_id)).
func (db *CardDB) GetByID(templateID string) (CardTemplate, bool) {
	c, ok := db.byID[templateID]
	return c, ok
}

// GetByName retrieves a card by its display name (spec §6 get_by_name(name)).
func (db *CardDB) GetByName(name string) (CardTemplate, bool) {
	return db.GetCardByName(name)
}

// GetAll returns every template in the database (spec §6 get_all()).
func (db *CardDB) GetAll() []CardTemplate {
	out := make([]CardTemplate, len(db.all))
	copy(out, db.all)
	return out
}

// GetByType returns every template whose type line contains the given
// substring (spec §6 get_by_type(type_substring)).
func (db *CardDB) GetByType(typeSubstring string) []CardTemplate {
	var out []CardTemplate
	for _, c := range db.all {
		if strings.Contains(c.TypeLine, typeSubstring) {
			out = append(out, c)
		}
	}
	return out
}

// GetByColor returns every template whose color set contains the given
// color code (spec §6 get_by_color(color)).
func (db *CardDB) GetByColor(color string) []CardTemplate {
	var out []CardTemplate
	for _, c := range db.all {
		for _, col := range c.Colors {
			if strings.EqualFold(col, color) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Size returns the number of cards in the database.
func (db *CardDB) Size() int {
	return len(db.cards)
}

// LoadCardDatabase loads the card database from CardDBFile or downloads it
// if not present.
func LoadCardDatabase() (*CardDB, error) {
	return LoadCardDatabaseFrom(CardDBFile)
}

// LoadCardDatabaseFrom loads the card database from path, downloading and
// caching it there if the file doesn't exist yet — the same fallback as
// LoadCardDatabase, but pointed at a caller-chosen path (pkg/engine.Config's
// COREENGINE_CARD_DB override).
func LoadCardDatabaseFrom(path string) (*CardDB, error) {
	var cards []Card

	// Try to load from file first
	if file, err := os.ReadFile(path); err == nil {
		err = json.Unmarshal(file, &cards)
		if err != nil {
			logger.LogGame("Error parsing cardDB.json: %v", err)
			return nil, err
		}
		logger.LogMeta("Loaded %d cards from local database", len(cards))
	} else {
		// Download from URL if file doesn't exist
		logger.LogMeta("Local card database not found, downloading...")
		cards, err = downloadAndParseJSON(CardDBURL)
		if err != nil {
			logger.LogGame("Error downloading card database: %v", err)
			return nil, err
		}

		// Save to file for future use
		content, err := json.MarshalIndent(cards, "", "  ")
		if err != nil {
			logger.LogGame("Error marshalling JSON: %v", err)
			return nil, err
		}

		err = os.WriteFile(path, content, 0644)
		if err != nil {
			logger.LogGame("Error writing to file: %v", err)
			return nil, err
		}
		logger.LogMeta("Downloaded and saved %d cards to local database", len(cards))
	}

	cardDB := NewCardDB(cards)
	if cardDB == nil {
		return nil, fmt.Errorf("failed to create card database")
	}

	return cardDB, nil
}

// downloadAndParseJSON downloads card data from the given URL and parses it.
func downloadAndParseJSON(url string) ([]Card, error) {
	logger.LogMeta("Downloading JSON from %s", url)

	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download JSON: %v", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.LogMeta("Error closing response body: %v", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %v", err)
	}

	var cards []Card
	err = json.Unmarshal(body, &cards)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %v", err)
	}

	return cards, nil
}
