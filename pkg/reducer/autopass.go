package reducer

import (
	"github.com/sixthedge/coreengine/pkg/state"
	"github.com/sixthedge/coreengine/pkg/types"
)

// ShouldAutoPass reports whether player has no meaningful decision right
// now — LegalActions offers nothing but PassPriority itself (spec §9
// "Autopass/sinks": a harness driving many games should not have to submit
// an explicit pass for every single empty-stack, nothing-to-do priority
// window).
func (e *Engine) ShouldAutoPass(g *state.GameState, player types.PlayerId) bool {
	actions := e.LegalActions(g, player)
	if len(actions) != 1 {
		return false
	}
	return actions[0].Kind == PassPriority
}

// RunAutoPassSink repeatedly applies PassPriority on behalf of whichever
// seat currently holds priority, for as long as that seat has no
// meaningful decision, stopping the moment either player gains a real
// choice or the game ends (spec §9 "Autopass/sinks"). Callers (a test
// harness, an AI driver) use this between their own decisions instead of
// re-deriving "is this priority window trivial" themselves.
func (e *Engine) RunAutoPassSink(g *state.GameState) (*state.GameState, error) {
	current := g
	for !current.GameOver {
		seat := current.PriorityPlayer
		if !e.ShouldAutoPass(current, seat) {
			return current, nil
		}
		next, err := e.Apply(current, Action{Kind: PassPriority, Player: seat})
		if err != nil {
			return current, err
		}
		current = next
	}
	return current, nil
}
