package events

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Kind identifies a domain event type.
type Kind string

// Event is a domain event carried through the bus. Concrete payloads are
// plain structs declared next to their producers.
type Event interface {
	Kind() Kind
}

// Handler consumes one event. A returned error is logged by the bus and
// never propagated to the publisher: notification side effects must not
// alter the outcome of the operation that raised them.
type Handler func(ctx context.Context, event Event) error

// Bus is an explicit event-handler registry mapping event kind to an
// ordered list of handlers. It is populated once during application
// startup; there is no registration through package import side effects.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Kind][]Handler
	logger   zerolog.Logger
}

// NewBus creates an empty bus
func NewBus(logger zerolog.Logger) *Bus {
	return &Bus{
		handlers: make(map[Kind][]Handler),
		logger:   logger,
	}
}

// Subscribe appends a handler for the given kind. Handlers run in
// registration order.
func (b *Bus) Subscribe(kind Kind, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[kind] = append(b.handlers[kind], handler)
}

// Publish delivers the event to every handler registered for its kind,
// in order. Handler errors are logged and swallowed; publishing an event
// nobody listens to is a no-op.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := b.handlers[event.Kind()]
	b.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			b.logger.Error().
				Err(err).
				Str("eventKind", string(event.Kind())).
				Msg("Event handler failed")
		}
	}
}
