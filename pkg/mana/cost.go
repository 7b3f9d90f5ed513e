// Package mana implements cost parsing, pool arithmetic, and the
// deterministic payment search used both for manual mana activation and
// for CastSpell's auto-pay (spec §4.2), generalized from the teacher's
// pkg/card/mana.go onto the full six-color bucket set plus X.
package mana

import (
	"regexp"
	"strconv"
)

// Cost is a parsed mana cost (spec §4.2). Only the first seven fields and
// XCount are exercised by the 6th Edition card pool; PhyrexianFlags and
// HybridPairs are accepted structurally (so a cost string containing them
// parses without error) but never consulted by payment logic.
type Cost struct {
	Generic   int
	White     int
	Blue      int
	Black     int
	Red       int
	Green     int
	Colorless int
	XCount    int

	PhyrexianFlags []string
	HybridPairs    [][2]string
}

// ConvertedManaCost returns the converted mana cost, substituting x for every X symbol.
func (c Cost) ConvertedManaCost(x int) int {
	return c.Generic + c.White + c.Blue + c.Black + c.Red + c.Green + c.Colorless + c.XCount*x
}

var symbolPattern = regexp.MustCompile(`\{([^}]+)\}`)
var hybridPattern = regexp.MustCompile(`^([WUBRGC])/([WUBRGC])$`)
var phyrexianPattern = regexp.MustCompile(`^([WUBRGC])/P$`)

// ParseCost parses a textual mana cost of the form "{2}{R}{G}" into a Cost
// (spec §4.2). Hybrid ("{W/U}") and Phyrexian ("{R/P}") symbols are
// recognized and stored but do not affect payment (§4.2: "accepted
// structurally but unused").
func ParseCost(text string) Cost {
	var c Cost
	for _, m := range symbolPattern.FindAllStringSubmatch(text, -1) {
		sym := m[1]
		switch {
		case sym == "X":
			c.XCount++
		case hybridPattern.MatchString(sym):
			parts := hybridPattern.FindStringSubmatch(sym)
			c.HybridPairs = append(c.HybridPairs, [2]string{parts[1], parts[2]})
		case phyrexianPattern.MatchString(sym):
			c.PhyrexianFlags = append(c.PhyrexianFlags, phyrexianPattern.FindStringSubmatch(sym)[1])
		default:
			if n, err := strconv.Atoi(sym); err == nil {
				c.Generic += n
				continue
			}
			switch sym {
			case "W":
				c.White++
			case "U":
				c.Blue++
			case "B":
				c.Black++
			case "R":
				c.Red++
			case "G":
				c.Green++
			case "C":
				c.Colorless++
			}
		}
	}
	return c
}
