package target

import (
	"fmt"

	"github.com/sixthedge/coreengine/pkg/state"
	"github.com/sixthedge/coreengine/pkg/types"
)

// ValidateTargets enforces arity, distinctness (when required), and
// per-requirement legality of the chosen refs (spec §4.3).
func ValidateTargets(g *state.GameState, deps Deps, reqs []Requirement, chosen []state.TargetRef, controller types.PlayerId, requireDistinct bool) []string {
	var errs []string
	if len(chosen) != len(reqs) {
		errs = append(errs, fmt.Sprintf("expected %d targets, got %d", len(reqs), len(chosen)))
		return errs
	}

	if requireDistinct {
		seen := map[uint64]bool{}
		for _, ref := range chosen {
			if ref.IsInstance() {
				if seen[*ref.InstanceID] {
					errs = append(errs, "targets must be different")
					break
				}
				seen[*ref.InstanceID] = true
			}
		}
	}

	for i, req := range reqs {
		ref := chosen[i]
		legal := LegalTargets(g, deps, req, controller)
		if !refIn(legal, ref) {
			errs = append(errs, fmt.Sprintf("target %d is not legal for requirement", i))
		}
	}
	return errs
}

func refIn(legal []state.TargetRef, ref state.TargetRef) bool {
	for _, l := range legal {
		if l.IsInstance() && ref.IsInstance() && *l.InstanceID == *ref.InstanceID {
			return true
		}
		if l.IsPlayer() && ref.IsPlayer() && *l.Player == *ref.Player {
			return true
		}
	}
	return false
}

// Retarget re-checks each of obj's targets against reqs at resolution time,
// dropping any that are no longer legal (spec §4.3 "Retargeting at
// resolution"). It returns true if every target was struck, meaning the
// spell or ability fizzles (spec §4.5).
func Retarget(g *state.GameState, deps Deps, reqs []Requirement, obj *state.StackObject, controller types.PlayerId) (fizzled bool) {
	if len(obj.Targets) == 0 {
		return false
	}
	var kept []state.TargetRef
	for i, ref := range obj.Targets {
		var req Requirement
		if i < len(reqs) {
			req = reqs[i]
		}
		legal := LegalTargets(g, deps, req, controller)
		if refIn(legal, ref) {
			kept = append(kept, ref)
		}
	}
	obj.Targets = kept
	return len(kept) == 0
}
