package ecs

import "github.com/jakecoffman/cp"

// EventKind identifies gameplay events raised during a tick.
type EventKind string

const (
	EventShotFired     EventKind = "shot_fired"
	EventProjectileHit EventKind = "projectile_hit"
	EventPawnBlocked   EventKind = "pawn_blocked"
	EventMirrorMissing EventKind = "mirror_missing"
)

// Event is a gameplay notification. Side is "primary" or "mirror" where it
// applies.
type Event struct {
	Kind     EventKind
	Entity   Entity
	Side     string
	Position cp.Vector
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Each visits queued events without consuming them.
func (q *EventQueue) Each(fn func(Event)) {
	if q == nil {
		return
	}
	for _, evt := range q.items {
		fn(evt)
	}
}

// Len reports the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
