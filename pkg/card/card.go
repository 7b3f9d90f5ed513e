// Package card provides card-related types and functionality for MTG simulation.
package card

import (
	"strings"
)

// Card represents a Magic: The Gathering card with all its properties.
type Card struct {
	Name            string            `json:"name,omitempty"`
	CMC             float32           `json:"cmc,omitempty"`
	ManaCost        string            `json:"mana_cost,omitempty"`
	TypeLine        string            `json:"type_line,omitempty"`
	Power           string            `json:"power,omitempty"`
	Toughness       string            `json:"toughness,omitempty"`
	Keywords        []string          `json:"keywords,omitempty"`
	OracleText      string            `json:"oracle_text,omitempty"`
	ID              string            `json:"id,omitempty"`
	OracleID        string            `json:"oracle_id,omitempty"`
	MultiverseIDs   []int             `json:"multiverse_i_ds,omitempty"`
	Lang            string            `json:"lang,omitempty"`
	ReleasedAt      string            `json:"released_at,omitempty"`
	URI             string            `json:"uri,omitempty"`
	ScryfallURI     string            `json:"scryfall_uri,omitempty"`
	Layout          string            `json:"layout,omitempty"`
	ColorIdentity   []string          `json:"color_identity,omitempty"`
	Colors          []string          `json:"colors,omitempty"`
	Legalities      map[string]string `json:"legalities,omitempty"`
	Variation       bool              `json:"variation,omitempty"`
	Set             string            `json:"set,omitempty"`
	SetName         string            `json:"set_name,omitempty"`
	SetType         string            `json:"set_type,omitempty"`
	CollectorNumber string            `json:"collector_number,omitempty"`
	Rarity          string            `json:"rarity,omitempty"`
	Artist          string            `json:"artist,omitempty"`
}

// IsLand returns true if the card is a land.
func (c *Card) IsLand() bool {
	return strings.Contains(c.TypeLine, "Land")
}

// IsCreature returns true if the card is a creature.
func (c *Card) IsCreature() bool {
	return strings.Contains(c.TypeLine, "Creature")
}

// IsInstant returns true if the card is an instant.
func (c *Card) IsInstant() bool {
	return strings.Contains(c.TypeLine, "Instant")
}

// IsSorcery returns true if the card is a sorcery.
func (c *Card) IsSorcery() bool {
	return strings.Contains(c.TypeLine, "Sorcery")
}

// IsArtifact returns true if the card is an artifact.
func (c *Card) IsArtifact() bool {
	return strings.Contains(c.TypeLine, "Artifact")
}

// IsEnchantment returns true if the card is an enchantment.
func (c *Card) IsEnchantment() bool {
	return strings.Contains(c.TypeLine, "Enchantment")
}

// IsPlaneswalker returns true if the card is a planeswalker.
func (c *Card) IsPlaneswalker() bool {
	return strings.Contains(c.TypeLine, "Planeswalker")
}

// HasKeyword returns true if the card has the specified keyword.
func (c *Card) HasKeyword(keyword string) bool {
	for _, k := range c.Keywords {
		if strings.EqualFold(k, keyword) {
			return true
		}
	}
	return false
}
