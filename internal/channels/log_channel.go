package channels

import (
	"context"

	"github.com/osahon-dev/notistream/internal/domain/model"
	"github.com/rs/zerolog"
)

// LogChannel is a mock channel that implements the Channel interface.
// It simply logs the constructed message instead of delivering it
// anywhere. In "development" mode it stands in for the email and telegram
// channels so no real messages leave the process.
type LogChannel struct {
	logger zerolog.Logger
}

// NewLogChannel creates a new instance of LogChannel.
func NewLogChannel(logger *zerolog.Logger) *LogChannel {
	return &LogChannel{
		logger: logger.With().Str("component", "log_channel").Logger(),
	}
}

// Name implements the Channel interface.
func (c *LogChannel) Name() string { return "log" }

// ConstructMessage implements the Channel interface.
func (c *LogChannel) ConstructMessage(n *model.Notification) (string, error) {
	return DefaultMessage(n), nil
}

// Notify implements the Channel interface. It never fails.
func (c *LogChannel) Notify(_ context.Context, n *model.Notification, message string) error {
	c.logger.Info().
		Stringer("notification_id", n.ID).
		Str("recipient", n.Recipient).
		Str("category", n.Category).
		Str("message", message).
		Msg(">>> MOCK SEND: notification dispatched")
	return nil
}
