// Package events implements the storefront's publish/subscribe hub.
// Every component communicates through the bus, never by direct calls
// on a sibling.
package events

// Event is one member of the closed set defined in events.go.
type Event interface {
	EventName() string
}

// Handler consumes a dispatched event.
type Handler func(Event)

// Bus dispatches events synchronously to handlers in registration order.
// It is not goroutine-safe: one bus serves one session, and the session
// serializes its gestures.
type Bus struct {
	handlers map[string][]Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
	}
}

// Subscribe registers a handler for the given event name.
func (b *Bus) Subscribe(name string, h Handler) {
	b.handlers[name] = append(b.handlers[name], h)
}

// Emit invokes every handler registered for the event's name, in
// registration order, before returning. Handlers may emit further events;
// dispatch iterates over a snapshot of the handler list, so subscribing
// during dispatch takes effect from the next emit. A panicking handler
// propagates to the emitter.
func (b *Bus) Emit(e Event) {
	hs := b.handlers[e.EventName()]
	for _, h := range hs {
		h(e)
	}
}

// On registers a payload-typed handler for the event type T. Events of
// other types registered under the same name are ignored.
func On[T Event](b *Bus, fn func(T)) {
	var zero T
	b.Subscribe(zero.EventName(), func(e Event) {
		if ev, ok := e.(T); ok {
			fn(ev)
		}
	})
}
