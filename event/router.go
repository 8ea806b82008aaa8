package event

// Handler processes specific event types within a context T
type Handler[T any] interface {
	// HandleEvent processes a single event, called synchronously during dispatch
	HandleEvent(ctx T, ev GameEvent)

	// EventTypes returns the event types this handler processes
	EventTypes() []EventType
}

// HandlerFunc adapts a function into a Handler for the listed types
type HandlerFunc[T any] struct {
	Types []EventType
	Fn    func(ctx T, ev GameEvent)
}

// HandleEvent implements Handler
func (h HandlerFunc[T]) HandleEvent(ctx T, ev GameEvent) { h.Fn(ctx, ev) }

// EventTypes implements Handler
func (h HandlerFunc[T]) EventTypes() []EventType { return h.Types }

// Router dispatches queued events to registered handlers
//
// Architecture:
//   - Single-threaded dispatch
//   - Multiple handlers can register for the same event type
//   - Handlers are invoked in registration order
type Router[T any] struct {
	handlers map[EventType][]Handler[T]
	queue    *EventQueue
}

// NewRouter creates a router attached to the given queue
func NewRouter[T any](queue *EventQueue) *Router[T] {
	return &Router[T]{
		handlers: make(map[EventType][]Handler[T]),
		queue:    queue,
	}
}

// Register adds a handler for its declared event types
func (r *Router[T]) Register(handler Handler[T]) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// DispatchAll consumes pending events and routes them in FIFO order
// Events pushed by handlers during dispatch are delivered in the same call
func (r *Router[T]) DispatchAll(ctx T) int {
	dispatched := 0
	for {
		events := r.queue.Consume()
		if len(events) == 0 {
			return dispatched
		}
		for _, ev := range events {
			for _, h := range r.handlers[ev.Type] {
				h.HandleEvent(ctx, ev)
			}
			dispatched++
		}
	}
}

// HandlerCount returns the number of handlers registered for the given type
func (r *Router[T]) HandlerCount(t EventType) int {
	return len(r.handlers[t])
}
