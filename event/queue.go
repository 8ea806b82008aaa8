package event

import (
	"github.com/lixenwraith/rhythm-detective/constants"
)

// EventQueue is a FIFO of pending game events
// Single-threaded: producers and the consumer all run on the event loop goroutine
type EventQueue struct {
	events []GameEvent
}

// NewEventQueue creates an empty queue
func NewEventQueue() *EventQueue {
	return &EventQueue{events: make([]GameEvent, 0, constants.EventQueueSize)}
}

// Push appends an event
func (eq *EventQueue) Push(ev GameEvent) {
	eq.events = append(eq.events, ev)
}

// Consume returns all pending events in FIFO order and empties the queue
func (eq *EventQueue) Consume() []GameEvent {
	if len(eq.events) == 0 {
		return nil
	}
	out := eq.events
	eq.events = make([]GameEvent, 0, constants.EventQueueSize)
	return out
}

// Len returns the number of pending events
func (eq *EventQueue) Len() int {
	return len(eq.events)
}
