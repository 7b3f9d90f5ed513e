package ability

import "errors"

// Common errors for the ability registry, adapted from the teacher's
// original sentinel-error set.
var (
	ErrCannotActivate   = errors.New("ability cannot be activated")
	ErrInsufficientMana = errors.New("insufficient mana to pay cost")
	ErrNoValidTargets   = errors.New("no valid targets available")
	ErrUnknownAbility   = errors.New("unknown ability id")
)
