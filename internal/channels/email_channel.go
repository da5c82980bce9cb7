package channels

import (
	"context"
	"fmt"
	"strings"

	"github.com/osahon-dev/notistream/internal/config"
	"github.com/osahon-dev/notistream/internal/domain/model"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// extraDataEmailKey is the ExtraData key carrying the recipient's address.
const extraDataEmailKey = "email"

// EmailChannel delivers notifications via SMTP.
type EmailChannel struct {
	dialer *gomail.Dialer
	from   string
	logger zerolog.Logger
}

// NewEmailChannel creates a new instance of EmailChannel.
func NewEmailChannel(cfg config.EmailConfig, logger *zerolog.Logger) *EmailChannel {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &EmailChannel{
		dialer: d,
		from:   cfg.From,
		logger: logger.With().Str("component", "email_channel").Logger(),
	}
}

// Name implements the Channel interface.
func (c *EmailChannel) Name() string { return "email" }

// ConstructMessage implements the Channel interface.
func (c *EmailChannel) ConstructMessage(n *model.Notification) (string, error) {
	return DefaultMessage(n), nil
}

// Notify implements the Channel interface. The recipient's address comes
// from ExtraData["email"]; a notification without one fails this channel
// only, not the dispatch.
func (c *EmailChannel) Notify(_ context.Context, n *model.Notification, message string) error {
	to := n.ExtraData[extraDataEmailKey]
	if to == "" {
		return &DeliveryError{Channel: c.Name(), Err: fmt.Errorf("no email address for recipient %s", n.Recipient)}
	}

	m := gomail.NewMessage()
	m.SetHeader("From", c.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", emailSubject(n))
	body := message
	if n.URL != "" {
		body += "\n\n" + n.URL
	}
	m.SetBody("text/plain", body)

	// DialAndSend opens a connection, sends the email, and closes it.
	if err := c.dialer.DialAndSend(m); err != nil {
		c.logger.Error().Err(err).Stringer("notification_id", n.ID).Msg("failed to send email")
		return &DeliveryError{Channel: c.Name(), Err: err}
	}

	c.logger.Info().Stringer("notification_id", n.ID).Str("recipient", to).Msg("email sent successfully")
	return nil
}

// emailSubject builds a short subject line from the actor and action,
// falling back to the short description for system notifications.
func emailSubject(n *model.Notification) string {
	subject := strings.TrimSpace(n.SourceDisplayName + " " + n.Action)
	if subject == "" {
		subject = n.ShortDescription
	}
	return subject
}
