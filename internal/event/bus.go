// Package event implements a synchronous in-process event bus. Producers
// emit typed events; handlers run in registration order on the emitter's
// goroutine. The bus is an explicit object rather than a package-level
// dispatch table so it can be constructed and inspected in tests.
package event

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Type names a class of events handlers can subscribe to.
type Type string

const (
	// Notify is emitted with a *model.Notification payload to fan a
	// notification out to the configured delivery channels.
	Notify Type = "notify"

	// Read is emitted with a model.ReadRequest payload to mark a
	// notification as read on behalf of a recipient.
	Read Type = "read"
)

// Handler processes a single event. A handler returning an error does not
// stop delivery to later handlers; errors are joined and returned to the
// emitter.
type Handler func(ctx context.Context, payload any) error

// Bus routes emitted events to subscribed handlers, synchronously and in
// registration order.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
	logger   zerolog.Logger
}

// NewBus creates an empty event bus.
func NewBus(logger *zerolog.Logger) *Bus {
	return &Bus{
		handlers: make(map[Type][]Handler),
		logger:   logger.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe registers a handler for the given event type. Handlers run in
// the order they were subscribed.
func (b *Bus) Subscribe(t Type, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], h)
	b.logger.Debug().Str("event", string(t)).Int("handlers", len(b.handlers[t])).Msg("handler subscribed")
}

// Emit delivers payload to every handler subscribed to t, in registration
// order, on the calling goroutine. All handlers run even if earlier ones
// fail; the joined handler errors are returned.
func (b *Bus) Emit(ctx context.Context, t Type, payload any) error {
	b.mu.RLock()
	handlers := b.handlers[t]
	b.mu.RUnlock()

	var errs []error
	for i, h := range handlers {
		if err := h(ctx, payload); err != nil {
			b.logger.Error().Err(err).Str("event", string(t)).Int("handler", i).Msg("event handler failed")
			errs = append(errs, fmt.Errorf("event %s handler %d: %w", t, i, err))
		}
	}
	return errors.Join(errs...)
}
