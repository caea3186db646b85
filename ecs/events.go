package ecs

// EventType tells systems how to read an Event's Data.
type EventType string

// EventContact carries a physics.ContactEvent reported by the physics step.
const EventContact EventType = "contact"

type Event struct {
	Type EventType
	Data any
}

// EventQueue is a FIFO queue. Anything still queued when the frame ends is
// dropped.
type EventQueue struct {
	items []Event
}

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
