package rng

import (
	"errors"

	"github.com/sixthedge/coreengine/pkg/card"
	"github.com/sixthedge/coreengine/pkg/state"
)

// ErrShuffleRepairFailed is returned when the AI-optimized shuffle cannot
// satisfy its opener/run constraints within the bounded number of restart
// attempts (spec §4.1).
var ErrShuffleRepairFailed = errors.New("ai-optimized shuffle: could not satisfy constraints within retry budget")

const maxShuffleAttempts = 64

// FisherYates performs an in-place, seeded Fisher-Yates shuffle (spec
// §4.1). Used by library shuffles post-initial-draw and by tests requiring
// statistical uniformity.
func FisherYates(rng *LCG, deck []*state.CardInstance) {
	for i := len(deck) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
}

func isLand(templates card.TemplateLookup, inst *state.CardInstance) bool {
	t, ok := templates.GetByID(inst.TemplateID)
	if !ok {
		return false
	}
	return t.IsLand()
}

func cmc(templates card.TemplateLookup, inst *state.CardInstance) float32 {
	t, ok := templates.GetByID(inst.TemplateID)
	if !ok {
		return 0
	}
	return t.CMC
}

// AIOptimizedShuffle produces a deck order satisfying (spec §4.1):
//   - the opening seven contains 2 or 3 lands, at least one non-land with
//     cmc <= 2, and at least two non-lands with cmc <= 3;
//   - the remaining library never has more than 2 consecutive lands nor
//     more than 3 consecutive non-lands.
//
// Implementation: Fisher-Yates shuffle, then greedy repair of consecutive
// runs, then slice the first legal 7-card opener; restart with fresh PRNG
// draws if repair fails, bounded by maxShuffleAttempts.
func AIOptimizedShuffle(rng *LCG, deck []*state.CardInstance, templates card.TemplateLookup) ([]*state.CardInstance, error) {
	working := append([]*state.CardInstance(nil), deck...)

	for attempt := 0; attempt < maxShuffleAttempts; attempt++ {
		FisherYates(rng, working)
		repairRuns(rng, working, templates)

		if openerIdx := findLegalOpener(working, templates); openerIdx >= 0 {
			if openerIdx != 0 {
				rotateOpenerToFront(working, openerIdx)
			}
			if runsLegal(working[7:], templates) {
				return working, nil
			}
		}
	}
	return nil, ErrShuffleRepairFailed
}

// repairRuns greedily swaps cards to eliminate runs of >2 consecutive lands
// or >3 consecutive non-lands, scanning left to right.
func repairRuns(rng *LCG, deck []*state.CardInstance, templates card.TemplateLookup) {
	n := len(deck)
	for i := 0; i < n; i++ {
		landRun := countRunEndingAt(deck, templates, i, true)
		nonLandRun := countRunEndingAt(deck, templates, i, false)
		if landRun > 2 {
			swapWithDifferentKind(rng, deck, templates, i, true)
		} else if nonLandRun > 3 {
			swapWithDifferentKind(rng, deck, templates, i, false)
		}
	}
}

func countRunEndingAt(deck []*state.CardInstance, templates card.TemplateLookup, idx int, land bool) int {
	count := 0
	for j := idx; j >= 0; j-- {
		if isLand(templates, deck[j]) != land {
			break
		}
		count++
	}
	return count
}

// swapWithDifferentKind finds the nearest later card of the opposite kind
// (land vs non-land) and swaps it into position idx, breaking the run.
func swapWithDifferentKind(rng *LCG, deck []*state.CardInstance, templates card.TemplateLookup, idx int, runIsLand bool) {
	for j := idx + 1; j < len(deck); j++ {
		if isLand(templates, deck[j]) != runIsLand {
			deck[idx], deck[j] = deck[j], deck[idx]
			return
		}
	}
	// No candidate found further in the deck; nothing to swap with, leave
	// the run as-is for this pass — the caller restarts with a fresh
	// shuffle if this leaves a violation in the final library tail.
	_ = rng
}

func runsLegal(deck []*state.CardInstance, templates card.TemplateLookup) bool {
	landRun, nonLandRun := 0, 0
	for _, c := range deck {
		if isLand(templates, c) {
			landRun++
			nonLandRun = 0
			if landRun > 2 {
				return false
			}
		} else {
			nonLandRun++
			landRun = 0
			if nonLandRun > 3 {
				return false
			}
		}
	}
	return true
}

// findLegalOpener returns the start index of the first 7-card contiguous
// slice satisfying the opener constraints, or -1 if none exists.
func findLegalOpener(deck []*state.CardInstance, templates card.TemplateLookup) int {
	if len(deck) < 7 {
		return -1
	}
	for start := 0; start+7 <= len(deck); start++ {
		if openerLegal(deck[start:start+7], templates) {
			return start
		}
	}
	return -1
}

func openerLegal(seven []*state.CardInstance, templates card.TemplateLookup) bool {
	lands := 0
	cmcLE2NonLand := 0
	cmcLE3NonLand := 0
	for _, c := range seven {
		if isLand(templates, c) {
			lands++
			continue
		}
		v := cmc(templates, c)
		if v <= 2 {
			cmcLE2NonLand++
		}
		if v <= 3 {
			cmcLE3NonLand++
		}
	}
	return (lands == 2 || lands == 3) && cmcLE2NonLand >= 1 && cmcLE3NonLand >= 2
}

// rotateOpenerToFront moves deck[start:start+7] to the front, preserving
// the relative order of everything else, so the caller can always draw the
// opening hand from index 0.
func rotateOpenerToFront(deck []*state.CardInstance, start int) {
	opener := append([]*state.CardInstance(nil), deck[start:start+7]...)
	rest := append([]*state.CardInstance(nil), deck[:start]...)
	rest = append(rest, deck[start+7:]...)
	copy(deck, opener)
	copy(deck[7:], rest)
}
