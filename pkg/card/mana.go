package card

import (
	"regexp"
	"strings"

	"github.com/sixthedge/coreengine/pkg/types"
)

var manaProducerSymbolRe = regexp.MustCompile(`\{([WUBRGC])\}`)

// CheckManaProducer scans a card's oracle text for a mana-producing ability
// and reports the colors it adds, adapted from the teacher's
// pkg/card/mana.go onto types.ManaType. It is deliberately textual rather
// than a full oracle-text parser: it looks for the word "Add" (every mana
// ability in the 6th Edition card pool reads "{T}: Add {X}.") plus the
// colored-mana symbols that follow, and records "any color" phrasing as a
// single types.Any entry rather than the five basic colors (spec §4.2
// "searches available ... mana sources").
func CheckManaProducer(oracleText string) (bool, []types.ManaType) {
	if !strings.Contains(oracleText, "Add") {
		return false, nil
	}

	var manaTypes []types.ManaType
	for _, match := range manaProducerSymbolRe.FindAllStringSubmatch(oracleText, -1) {
		switch match[1] {
		case "W":
			manaTypes = append(manaTypes, types.White)
		case "U":
			manaTypes = append(manaTypes, types.Blue)
		case "B":
			manaTypes = append(manaTypes, types.Black)
		case "R":
			manaTypes = append(manaTypes, types.Red)
		case "G":
			manaTypes = append(manaTypes, types.Green)
		case "C":
			manaTypes = append(manaTypes, types.Colorless)
		}
	}

	lower := strings.ToLower(oracleText)
	if strings.Contains(lower, "any color") || strings.Contains(lower, "one mana of any color") {
		manaTypes = append(manaTypes, types.Any)
	}

	return len(manaTypes) > 0, manaTypes
}
