// Package state provides the core game data model for the rules engine:
// card instances, player state, the stack, triggers, and the overall
// GameState, generalized from the teacher's pkg/ability and src game types
// onto the spec's two-seat, zone-based model (spec §3).
package state

import "sync/atomic"

// The engine keeps three process-wide monotone counters (instance ids,
// stack ids, temporary-modification ids). They are the only global mutable
// state in the engine (spec §5, §9 "Global counters") and must be
// resettable by the test harness so replay comparisons start from identical
// ground (spec §6 "_reset_instance_counter()" etc.).
var (
	instanceCounter uint64
	stackCounter    uint64
	modCounter      uint64
)

// NextInstanceID returns the next engine-unique CardInstance id.
func NextInstanceID() uint64 {
	return atomic.AddUint64(&instanceCounter, 1)
}

// NextStackID returns the next engine-unique StackObject id.
func NextStackID() uint64 {
	return atomic.AddUint64(&stackCounter, 1)
}

// NextModID returns the next engine-unique temporary-modification id.
func NextModID() uint64 {
	return atomic.AddUint64(&modCounter, 1)
}

// ResetInstanceCounter resets the instance-id counter. Test-harness only.
func ResetInstanceCounter() {
	atomic.StoreUint64(&instanceCounter, 0)
}

// ResetStackCounter resets the stack-id counter. Test-harness only.
func ResetStackCounter() {
	atomic.StoreUint64(&stackCounter, 0)
}

// ResetModCounter resets the temporary-modification-id counter. Test-harness only.
func ResetModCounter() {
	atomic.StoreUint64(&modCounter, 0)
}

// ResetAllCounters resets all three counters in one call, the common case
// for a test boundary (spec §8 "resetting the three counters").
func ResetAllCounters() {
	ResetInstanceCounter()
	ResetStackCounter()
	ResetModCounter()
}
