// Package matching coordinates match runs against the external matcher and
// the scoped clearing of existing matches.
//
// A run moves through three phases:
//
//	IDLE ──► MATCHING ──► SETTLED
//	              ▲            │
//	              └────────────┘
//
// A superseding run may start while another is still in flight (MATCHING →
// MATCHING); in-flight runs are never cancelled and the last completion to
// arrive wins.
package matching

import "fmt"

// Phase is the observable state of the orchestrator.
type Phase string

const (
	PhaseIdle     Phase = "IDLE"
	PhaseMatching Phase = "MATCHING"
	PhaseSettled  Phase = "SETTLED"
)

// validTransitions lists every allowed (from → to) pair.
var validTransitions = map[Phase][]Phase{
	PhaseIdle:     {PhaseMatching},
	PhaseMatching: {PhaseMatching, PhaseSettled},
	PhaseSettled:  {PhaseMatching, PhaseIdle},
}

// ParsePhase converts a raw string to a Phase, returning an error for
// unknown values.
func ParsePhase(s string) (Phase, error) {
	p := Phase(s)
	switch p {
	case PhaseIdle, PhaseMatching, PhaseSettled:
		return p, nil
	}
	return "", fmt.Errorf("unknown matching phase %q", s)
}

// IsTransitionAllowed returns true when moving from → to is permitted.
func IsTransitionAllowed(from, to Phase) bool {
	for _, p := range validTransitions[from] {
		if p == to {
			return true
		}
	}
	return false
}
