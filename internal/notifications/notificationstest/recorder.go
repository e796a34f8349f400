// Package notificationstest provides an in-memory Publisher for tests of
// packages that announce seating events.
package notificationstest

import (
	"context"
	"sync"

	"stepperslife/internal/notifications"
)

// RecordingPublisher keeps published events in memory. A non-nil Err is
// returned from every Publish and nothing is recorded.
type RecordingPublisher struct {
	mu     sync.Mutex
	Events []notifications.SeatingEvent
	Err    error
}

var _ notifications.Publisher = (*RecordingPublisher)(nil)

func (r *RecordingPublisher) Publish(_ context.Context, event notifications.SeatingEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Events = append(r.Events, event)
	return nil
}

func (r *RecordingPublisher) Close() error { return nil }

// Types returns the event types published so far, in order
func (r *RecordingPublisher) Types() []notifications.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notifications.EventType, 0, len(r.Events))
	for _, e := range r.Events {
		out = append(out, e.Type)
	}
	return out
}
