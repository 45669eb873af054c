package notify_test

import (
	"context"
	"testing"

	"github.com/zanybarlee/a8-manpower/internal/notify"
)

func TestRecorder_RecordsInOrder(t *testing.T) {
	r := notify.NewRecorder()
	ctx := context.Background()

	r.Notify(ctx, "Saved", "Job description updated", notify.SeverityNormal)
	r.Notify(ctx, "Error", "Update failed", notify.SeverityDestructive)

	sent := r.Sent()
	if len(sent) != 2 {
		t.Fatalf("len(Sent()) = %d, want 2", len(sent))
	}
	if sent[0].Title != "Saved" || sent[0].Severity != notify.SeverityNormal {
		t.Errorf("first notification = %+v", sent[0])
	}
	if sent[1].Title != "Error" || sent[1].Severity != notify.SeverityDestructive {
		t.Errorf("second notification = %+v", sent[1])
	}
}

func TestRecorder_SentReturnsCopy(t *testing.T) {
	r := notify.NewRecorder()
	r.Notify(context.Background(), "A", "a", notify.SeverityNormal)

	first := r.Sent()
	first[0].Title = "mutated"

	if got := r.Sent()[0].Title; got != "A" {
		t.Errorf("Sent() should return a copy; title = %q", got)
	}
}
