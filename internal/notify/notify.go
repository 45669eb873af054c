// Package notify delivers user-facing notifications.
//
// Every mutating store operation surfaces its outcome through a Notifier:
// a confirming message on success, a destructive one on failure. Delivery is
// fire-and-forget — a failed publish is logged and otherwise ignored.
package notify

import (
	"context"
	"sync"
)

// Severity controls the visual treatment of a notification.
type Severity string

const (
	SeverityNormal      Severity = "normal"
	SeverityDestructive Severity = "destructive"
)

// Notifier surfaces a titled message to the human operator.
type Notifier interface {
	Notify(ctx context.Context, title, message string, severity Severity)
}

// Notification is one delivered message. Used by the Recorder and the Redis
// publisher payload.
type Notification struct {
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Recorder is an in-memory Notifier for tests.
type Recorder struct {
	mu   sync.Mutex
	sent []Notification
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

// Notify records the notification.
func (r *Recorder) Notify(ctx context.Context, title, message string, severity Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, Notification{Title: title, Message: message, Severity: severity})
}

// Sent returns a copy of all recorded notifications in delivery order.
func (r *Recorder) Sent() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.sent))
	copy(out, r.sent)
	return out
}
