package mana

import (
	"github.com/sixthedge/coreengine/pkg/state"
	"github.com/sixthedge/coreengine/pkg/types"
)

// Source describes one thing that can produce mana: the controller's pool
// itself, or an untapped battlefield permanent with a mana ability.
// Colors lists the mana types it can produce; a land with a single basic
// land type lists exactly one, a dual land lists two, and so on.
type Source struct {
	// InstanceID is 0 for the "pay from the existing pool" pseudo-source.
	InstanceID uint64
	Colors     []types.ManaType
	// BattlefieldIndex is the source's insertion-order position, used to
	// break ties deterministically (spec §4.2 "battlefield by insertion
	// order").
	BattlefieldIndex int
}

// SourceProvider enumerates the untapped mana sources available to a
// player, in engine-stable order. Implemented by pkg/ability's registry
// (which knows which permanents carry mana abilities) and passed in by the
// reducer, so this package never depends on the ability registry directly.
type SourceProvider interface {
	AvailableSources(g *state.GameState, player types.PlayerId) []Source
}

// Assignment records which sources were tapped (or pool mana spent) to
// cover a payment, so Pay can apply exactly what CanPay found.
type Assignment struct {
	PoolSpend      state.ManaPool
	TappedSources  []uint64
	GenericFromTap map[types.ManaType]int
}

// CanPay searches for a deterministic payment assignment for cost at the
// given x value: pool first, then battlefield sources by insertion order,
// colored sources before colorless-flexible ones, colored requirements
// before the generic component (spec §4.2).
func CanPay(g *state.GameState, player types.PlayerId, cost Cost, x int, sources SourceProvider) (Assignment, bool) {
	p := g.Get(player)
	pool := p.ManaPool
	needed := map[types.ManaType]int{
		types.White: cost.White,
		types.Blue:  cost.Blue,
		types.Black: cost.Black,
		types.Red:   cost.Red,
		types.Green: cost.Green,
	}
	genericNeeded := cost.Colorless + cost.Generic + cost.XCount*x

	assignment := Assignment{GenericFromTap: map[types.ManaType]int{}}

	// Step 1: pay colored requirements from the pool.
	for _, color := range []types.ManaType{types.White, types.Blue, types.Black, types.Red, types.Green} {
		n := needed[color]
		avail := poolGet(pool, color)
		use := min(n, avail)
		poolSub(&pool, color, use)
		poolAdd(&assignment.PoolSpend, color, use)
		needed[color] -= use
	}

	// Step 2: pay remaining colored requirements from battlefield sources,
	// in insertion order, colored-only sources preferred implicitly by the
	// provider's ordering contract.
	var available []Source
	if sources != nil {
		available = sources.AvailableSources(g, player)
	}
	used := make(map[uint64]bool)

	for _, color := range []types.ManaType{types.White, types.Blue, types.Black, types.Red, types.Green} {
		for needed[color] > 0 {
			src, ok := firstUnusedProducing(available, used, color)
			if !ok {
				return Assignment{}, false
			}
			used[src.InstanceID] = true
			assignment.TappedSources = append(assignment.TappedSources, src.InstanceID)
			needed[color]--
		}
	}

	// Step 3: pay the generic component, pool first, then any remaining
	// untapped source regardless of color.
	for _, color := range []types.ManaType{types.Colorless, types.White, types.Blue, types.Black, types.Red, types.Green} {
		for genericNeeded > 0 && poolGet(pool, color) > 0 {
			poolSub(&pool, color, 1)
			poolAdd(&assignment.PoolSpend, color, 1)
			genericNeeded--
		}
	}
	for genericNeeded > 0 {
		src, ok := firstUnused(available, used)
		if !ok {
			return Assignment{}, false
		}
		used[src.InstanceID] = true
		assignment.TappedSources = append(assignment.TappedSources, src.InstanceID)
		color := types.Colorless
		if len(src.Colors) > 0 {
			color = src.Colors[0]
		}
		assignment.GenericFromTap[color]++
		genericNeeded--
	}

	return assignment, true
}

// Pay applies an Assignment produced by CanPay: debits the pool and taps
// the chosen battlefield sources (spec §4.2).
func Pay(g *state.GameState, player types.PlayerId, assignment Assignment) {
	p := g.Get(player)
	p.ManaPool.White -= assignment.PoolSpend.White
	p.ManaPool.Blue -= assignment.PoolSpend.Blue
	p.ManaPool.Black -= assignment.PoolSpend.Black
	p.ManaPool.Red -= assignment.PoolSpend.Red
	p.ManaPool.Green -= assignment.PoolSpend.Green
	p.ManaPool.Colorless -= assignment.PoolSpend.Colorless

	for _, id := range assignment.TappedSources {
		if c, _, ok := g.FindInstance(id); ok {
			c.Tapped = true
		}
	}
}

func firstUnusedProducing(sources []Source, used map[uint64]bool, color types.ManaType) (Source, bool) {
	for _, s := range sources {
		if used[s.InstanceID] {
			continue
		}
		for _, c := range s.Colors {
			if c == color {
				return s, true
			}
		}
	}
	return Source{}, false
}

func firstUnused(sources []Source, used map[uint64]bool) (Source, bool) {
	for _, s := range sources {
		if !used[s.InstanceID] {
			return s, true
		}
	}
	return Source{}, false
}

func poolGet(p state.ManaPool, color types.ManaType) int {
	switch color {
	case types.White:
		return p.White
	case types.Blue:
		return p.Blue
	case types.Black:
		return p.Black
	case types.Red:
		return p.Red
	case types.Green:
		return p.Green
	case types.Colorless:
		return p.Colorless
	default:
		return 0
	}
}

func poolSub(p *state.ManaPool, color types.ManaType, n int) {
	poolAdjust(p, color, -n)
}

func poolAdd(p *state.ManaPool, color types.ManaType, n int) {
	poolAdjust(p, color, n)
}

func poolAdjust(p *state.ManaPool, color types.ManaType, delta int) {
	switch color {
	case types.White:
		p.White += delta
	case types.Blue:
		p.Blue += delta
	case types.Black:
		p.Black += delta
	case types.Red:
		p.Red += delta
	case types.Green:
		p.Green += delta
	case types.Colorless:
		p.Colorless += delta
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
