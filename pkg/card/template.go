package card

import "strings"

// CardTemplate is the static, read-only record for a card, as provided by
// the external card database (spec §3, §6). The teacher's Card struct
// already carries every field the spec requires (stable id, display name,
// mana-cost string, cmc, type line, oracle text, power/toughness strings,
// keywords, colors, rarity, set code, subtypes via TypeLine), so
// CardTemplate is kept as an alias rather than a parallel struct — a second
// copy of the same fields would just be a translation layer with nothing
// to translate.
type CardTemplate = Card

// Subtypes extracts the subtype list from the em-dash-separated type line,
// e.g. "Creature — Elf Druid" -> ["Elf", "Druid"] (spec §3
// CardTemplate.subtype_list).
func (c *Card) Subtypes() []string {
	idx := strings.Index(c.TypeLine, "—")
	if idx == -1 {
		return nil
	}
	rest := strings.TrimSpace(c.TypeLine[idx+len("—"):])
	if rest == "" {
		return nil
	}
	return strings.Fields(rest)
}

// TemplateLookup is the read-only interface the core consumes from the
// card database collaborator (spec §6). CardDB implements it directly;
// the core never depends on CardDB's loading/download mechanics, only on
// this interface.
type TemplateLookup interface {
	GetByID(templateID string) (CardTemplate, bool)
	GetByName(name string) (CardTemplate, bool)
	GetAll() []CardTemplate
	GetByType(typeSubstring string) []CardTemplate
	GetByColor(color string) []CardTemplate
}
