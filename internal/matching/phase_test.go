package matching_test

import (
	"testing"

	"github.com/zanybarlee/a8-manpower/internal/matching"
)

func TestParsePhase(t *testing.T) {
	for _, s := range []string{"IDLE", "MATCHING", "SETTLED"} {
		p, err := matching.ParsePhase(s)
		if err != nil {
			t.Errorf("ParsePhase(%q) error: %v", s, err)
		}
		if string(p) != s {
			t.Errorf("ParsePhase(%q) = %q", s, p)
		}
	}

	if _, err := matching.ParsePhase("RUNNING"); err == nil {
		t.Error("ParsePhase should reject unknown phases")
	}
}

func TestIsTransitionAllowed(t *testing.T) {
	allowed := []struct{ from, to matching.Phase }{
		{matching.PhaseIdle, matching.PhaseMatching},
		{matching.PhaseMatching, matching.PhaseMatching},
		{matching.PhaseMatching, matching.PhaseSettled},
		{matching.PhaseSettled, matching.PhaseMatching},
		{matching.PhaseSettled, matching.PhaseIdle},
	}
	for _, tr := range allowed {
		if !matching.IsTransitionAllowed(tr.from, tr.to) {
			t.Errorf("%s -> %s should be allowed", tr.from, tr.to)
		}
	}

	denied := []struct{ from, to matching.Phase }{
		{matching.PhaseIdle, matching.PhaseSettled},
		{matching.PhaseIdle, matching.PhaseIdle},
		{matching.PhaseMatching, matching.PhaseIdle},
	}
	for _, tr := range denied {
		if matching.IsTransitionAllowed(tr.from, tr.to) {
			t.Errorf("%s -> %s should be denied", tr.from, tr.to)
		}
	}
}
