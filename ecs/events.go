package ecs

import "github.com/jakecoffman/cp"

// EventType names a world event.
type EventType string

const (
	EventLand          EventType = "land"
	EventCrouchChanged EventType = "crouch_changed"
	EventDash          EventType = "dash"
	EventRestart       EventType = "restart"
)

// Event is a world event payload. Data holds one of the typed payloads below.
type Event struct {
	Type   EventType
	Entity Entity
	Data   any
}

// LandEvent is pushed when an actor touches ground after being airborne.
type LandEvent struct {
	Position cp.Vector
}

type CrouchChangedEvent struct {
	Crouching bool
}

// DashEvent reports a resolved dash.
type DashEvent struct {
	From, To   cp.Vector
	Obstructed bool
}

// EventQueue is a FIFO queue that lives for one scheduler tick.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Each visits queued events of type t without consuming them.
func (q *EventQueue) Each(t EventType, fn func(Event)) {
	if q == nil || fn == nil {
		return
	}
	for _, evt := range q.items {
		if evt.Type == t {
			fn(evt)
		}
	}
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
