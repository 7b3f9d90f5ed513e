package engine

import (
	"os"

	"github.com/sixthedge/coreengine/pkg/card"
)

// ShuffleMode selects which library-shuffle algorithm CreateGameState runs
// (spec §4.1).
type ShuffleMode string

const (
	// ShuffleAIOptimized is the spec's default: a Fisher-Yates shuffle
	// repaired so the library below the opening seven never has more than
	// two lands or more than three nonlands in a row, and the opening seven
	// is legal (pkg/rng).
	ShuffleAIOptimized ShuffleMode = "ai-optimized"
	// ShuffleFisherYates is a plain unbiased shuffle with no land-run
	// repair, useful for harnesses that want to exercise mulligan-worthy
	// hands deliberately.
	ShuffleFisherYates ShuffleMode = "fisher-yates"
)

// Environment variable names read by LoadConfigFromEnv.
const (
	EnvCardDBPath = "COREENGINE_CARD_DB"
	EnvLogLevel   = "COREENGINE_LOG_LEVEL"
	EnvShuffle    = "COREENGINE_SHUFFLE"
)

// EnvConfig holds the small set of process-wide defaults a caller may want
// to override without recompiling: where the card database lives on disk,
// the default log verbosity, and the default shuffle algorithm. It mirrors
// the teacher's own configuration style in pkg/card/database.go, which
// already falls back from a local file to a download URL rather than
// reaching for a config-file library — three scalars don't need one either.
type EnvConfig struct {
	CardDBPath string
	// LogLevel is a name from internal/logger.ParseLogLevel's closed set
	// (META, GAME, PLAYER, CARD), kept as a string here rather than a
	// types.LogLevel so a caller can feed it straight to a flag.String
	// default without a reverse lookup.
	LogLevel string
	Shuffle  ShuffleMode
}

// LoadConfigFromEnv reads EnvCardDBPath, EnvLogLevel, and EnvShuffle from
// the environment, falling back to card.CardDBFile, "CARD", and
// ShuffleAIOptimized respectively when a variable is unset. A non-empty
// EnvLogLevel is kept as given, without checking the name; EnvShuffle
// selects ShuffleFisherYates only for that exact name, and any other value
// leaves ShuffleAIOptimized.
func LoadConfigFromEnv() EnvConfig {
	cfg := EnvConfig{
		CardDBPath: card.CardDBFile,
		LogLevel:   "CARD",
		Shuffle:    ShuffleAIOptimized,
	}
	if v := os.Getenv(EnvCardDBPath); v != "" {
		cfg.CardDBPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvShuffle); v == string(ShuffleFisherYates) {
		cfg.Shuffle = ShuffleFisherYates
	}
	return cfg
}
