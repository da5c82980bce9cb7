// Package dispatch fans a notification out to the configured delivery
// channels, persisting it first unless it is silent.
package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/osahon-dev/notistream/internal/channels"
	"github.com/osahon-dev/notistream/internal/domain/model"
	repo "github.com/osahon-dev/notistream/internal/domain/repository"
	"github.com/rs/zerolog"
)

// Result reports the outcome of a dispatch. An empty Errors slice means
// every channel delivered.
type Result struct {
	NotificationID uuid.UUID
	Errors         []*channels.DeliveryError
}

// OK reports whether all channels delivered successfully.
func (r *Result) OK() bool { return len(r.Errors) == 0 }

// Dispatcher receives notification events, optionally persists them, and
// invokes the configured channels in order. It depends only on the Channel
// interface, never on concrete channel types.
type Dispatcher struct {
	repo     repo.NotificationRepository
	channels []channels.Channel
	logger   zerolog.Logger
}

// NewDispatcher creates a new Dispatcher over the resolved channel list.
func NewDispatcher(r repo.NotificationRepository, registry *channels.Registry, logger *zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		repo:     r,
		channels: registry.Channels(),
		logger:   logger.With().Str("component", "dispatcher").Logger(),
	}
}

// Dispatch persists n (unless silent) and then runs every channel in
// configured order. A persistence failure is fatal: it is returned
// immediately and no channel runs, because later channels may need the
// stored record's identifier. Channel failures are isolated: each one is
// wrapped with the channel's identity and collected on the Result, and the
// remaining channels still run. Dispatch never returns an error for
// channel-level failures.
func (d *Dispatcher) Dispatch(ctx context.Context, n *model.Notification) (*Result, error) {
	if !n.Silent {
		created, err := d.repo.Create(ctx, n)
		if err != nil {
			d.logger.Error().Err(err).Str("recipient", n.Recipient).Msg("failed to persist notification")
			return nil, fmt.Errorf("dispatch: persist notification: %w", err)
		}
		*n = *created
		d.logger.Info().Stringer("notification_id", n.ID).Str("recipient", n.Recipient).Msg("notification persisted")
	}

	result := &Result{NotificationID: n.ID}
	for _, ch := range d.channels {
		if err := d.deliver(ctx, ch, n); err != nil {
			var derr *channels.DeliveryError
			if !errors.As(err, &derr) {
				derr = &channels.DeliveryError{Channel: ch.Name(), Err: err}
			}
			d.logger.Error().Err(derr.Err).Str("channel", derr.Channel).Stringer("notification_id", n.ID).Msg("channel delivery failed")
			result.Errors = append(result.Errors, derr)
		}
	}

	return result, nil
}

// deliver runs one channel's construct-then-notify sequence.
func (d *Dispatcher) deliver(ctx context.Context, ch channels.Channel, n *model.Notification) error {
	message, err := ch.ConstructMessage(n)
	if err != nil {
		return fmt.Errorf("construct message: %w", err)
	}
	return ch.Notify(ctx, n, message)
}

// HandleNotify adapts Dispatch to the event bus. Partial channel failures
// are logged here and swallowed; only a fatal persistence failure
// propagates to the emitter.
func (d *Dispatcher) HandleNotify(ctx context.Context, payload any) error {
	n, ok := payload.(*model.Notification)
	if !ok {
		return fmt.Errorf("dispatch: unexpected payload type %T", payload)
	}

	result, err := d.Dispatch(ctx, n)
	if err != nil {
		return err
	}
	if !result.OK() {
		for _, derr := range result.Errors {
			d.logger.Warn().Str("channel", derr.Channel).Err(derr.Err).Msg("partial dispatch failure")
		}
	}
	return nil
}
