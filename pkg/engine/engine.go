// Package engine is the headless rules engine's public surface (spec §6,
// C-public): construct a game, draw opening hands with the AI-optimized
// shuffle, and drive it forward one typed action at a time through the
// reducer. Everything else (pkg/state, pkg/reducer, pkg/ability, ...) is an
// implementation detail a caller should not need to import directly.
package engine

import (
	"errors"

	"github.com/sixthedge/coreengine/pkg/ability"
	"github.com/sixthedge/coreengine/pkg/card"
	"github.com/sixthedge/coreengine/pkg/continuous"
	"github.com/sixthedge/coreengine/pkg/reducer"
	"github.com/sixthedge/coreengine/pkg/rng"
	"github.com/sixthedge/coreengine/pkg/state"
	"github.com/sixthedge/coreengine/pkg/types"
)

// Config bundles everything needed to build an Engine: the card database
// backing every template lookup, and the two decklists as ordered template
// id lists (spec §6 create_game_state).
type Config struct {
	Templates    card.TemplateLookup
	PlayerDeck   []string
	OpponentDeck []string
	Seed         uint32
	// Shuffle selects the library-shuffle algorithm CreateGameState uses.
	// The zero value runs the AI-optimized shuffle (spec §4.1 default).
	Shuffle ShuffleMode
}

// Engine is the public, collaborator-holding entry point. It wraps a
// reducer.Engine (the pure state-transition function) with the card
// registry wiring a caller would otherwise have to assemble by hand.
type Engine struct {
	reducer   *reducer.Engine
	Templates card.TemplateLookup
}

// New builds an Engine with a freshly seeded 6th Edition ability/continuous
// registry (spec §4.4 Seed6E). Callers that want a different card pool can
// instead call NewWithRegistries directly.
func New(templates card.TemplateLookup) *Engine {
	abilities := ability.NewRegistry()
	statics := continuous.NewRegistry()
	ability.Seed6E(abilities, statics, templates)
	return NewWithRegistries(templates, abilities, statics)
}

// NewWithRegistries builds an Engine from already-seeded registries, for
// callers (tests, alternate card pools) that want full control over ability
// wiring.
func NewWithRegistries(templates card.TemplateLookup, abilities *ability.Registry, statics *continuous.Registry) *Engine {
	return &Engine{
		reducer:   reducer.NewEngine(templates, abilities, statics),
		Templates: templates,
	}
}

// ErrUnknownTemplate is returned when a decklist names a template id absent
// from the engine's card database.
var ErrUnknownTemplate = errors.New("decklist references an unknown card template")

// CreateGameState builds a fresh two-player game from cfg: both libraries
// populated from their decklists, each shuffled with the algorithm
// cfg.Shuffle selects (the AI-optimized shuffle unless it is
// ShuffleFisherYates), and seven-card opening hands drawn (spec §4.1, §6
// create_game_state). It does not run the draw-step skip or any other turn
// automation — the caller follows up with InitializeGame.
func (e *Engine) CreateGameState(cfg Config) (*state.GameState, error) {
	g := state.NewGameState(cfg.Seed)
	randSrc := rng.NewLCG(cfg.Seed)

	if err := populateLibrary(g, types.Player, cfg.PlayerDeck, cfg.Templates, randSrc, cfg.Shuffle); err != nil {
		return nil, err
	}
	if err := populateLibrary(g, types.Opponent, cfg.OpponentDeck, cfg.Templates, randSrc, cfg.Shuffle); err != nil {
		return nil, err
	}
	g.RNGState = randSrc.State()

	for _, pid := range []types.PlayerId{types.Player, types.Opponent} {
		p := g.Get(pid)
		n := 7
		if n > len(p.Library) {
			n = len(p.Library)
		}
		p.Hand = append(p.Hand, p.Library[:n]...)
		for _, c := range p.Hand {
			c.Zone = types.Hand
		}
		p.Library = p.Library[n:]
	}

	return g, nil
}

func populateLibrary(g *state.GameState, pid types.PlayerId, decklist []string, templates card.TemplateLookup, randSrc *rng.LCG, mode ShuffleMode) error {
	p := g.Get(pid)
	var deck []*state.CardInstance
	for _, templateID := range decklist {
		if _, ok := templates.GetByID(templateID); !ok {
			return ErrUnknownTemplate
		}
		deck = append(deck, state.NewCardInstance(templateID, pid, types.Library))
	}
	if mode == ShuffleFisherYates {
		rng.FisherYates(randSrc, deck)
		p.Library = deck
		return nil
	}
	shuffled, err := rng.AIOptimizedShuffle(randSrc, deck, templates)
	if err != nil {
		return err
	}
	p.Library = shuffled
	return nil
}

// InitializeGame runs the one-time startup automation beyond dealing
// hands: nothing further is required by this engine's model (the first
// turn's draw-step skip is handled by pkg/turn when the draw step is
// reached), so this simply returns g unchanged. It exists as a named,
// documented entry point so callers follow the same create→initialize→play
// sequence the spec's public surface describes (spec §6).
func (e *Engine) InitializeGame(g *state.GameState) *state.GameState {
	return g
}

// LegalActions enumerates the actions player may currently submit (spec §6
// legal_actions; delegates to reducer.Engine.LegalActions).
func (e *Engine) LegalActions(g *state.GameState, player types.PlayerId) []reducer.Action {
	return e.reducer.LegalActions(g, player)
}

// ValidateAction checks an action's legality against g without mutating it
// (spec §6 validate_action).
func (e *Engine) ValidateAction(g *state.GameState, action reducer.Action) []string {
	return e.reducer.Validate(g, action)
}

// ApplyAction runs action against g, returning a new state (spec §6
// apply_action).
func (e *Engine) ApplyAction(g *state.GameState, action reducer.Action) (*state.GameState, error) {
	return e.reducer.Apply(g, action)
}

// RunAutoPassSink drains trivial priority windows (spec §9 autopass/sinks).
func (e *Engine) RunAutoPassSink(g *state.GameState) (*state.GameState, error) {
	return e.reducer.RunAutoPassSink(g)
}

// IsGameOver reports whether g has reached a terminal state and, if so,
// names the winner (spec §6 introspection).
func IsGameOver(g *state.GameState) (over bool, winner *types.PlayerId) {
	return g.GameOver, g.Winner
}

// ResetCounters resets every package-level monotone id counter (instance,
// stack, temporary-modification ids) to zero, for a test harness that wants
// byte-identical instance ids across repeated runs of the same scenario
// (spec §6 "harness reset helpers").
func ResetCounters() {
	state.ResetAllCounters()
}
