package channels

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/osahon-dev/notistream/internal/domain/model"
	"github.com/osahon-dev/notistream/internal/storage/rabbitmq"
	"github.com/rs/zerolog"
)

// WebsocketChannel publishes the notification onto the recipient's durable
// broker queue, from which the websocket gateway streams it to live client
// connections. The message is the JSON document a browser client decodes.
type WebsocketChannel struct {
	publisher *rabbitmq.Publisher
	logger    zerolog.Logger
}

// NewWebsocketChannel creates a new instance of WebsocketChannel.
func NewWebsocketChannel(publisher *rabbitmq.Publisher, logger *zerolog.Logger) *WebsocketChannel {
	return &WebsocketChannel{
		publisher: publisher,
		logger:    logger.With().Str("component", "websocket_channel").Logger(),
	}
}

// Name implements the Channel interface.
func (c *WebsocketChannel) Name() string { return "websocket" }

// wireNotification is the JSON shape pushed to clients. The domain model
// stays tag-free; the wire format is this channel's concern.
type wireNotification struct {
	ID                string            `json:"id"`
	Source            *string           `json:"source"`
	SourceDisplayName string            `json:"source_display_name"`
	Recipient         string            `json:"recipient"`
	Category          string            `json:"category"`
	Action            string            `json:"action"`
	Obj               string            `json:"obj,omitempty"`
	ShortDescription  string            `json:"short_description"`
	URL               string            `json:"url,omitempty"`
	Silent            bool              `json:"silent"`
	ExtraData         map[string]string `json:"extra_data"`
	Read              bool              `json:"read"`
	CreatedAt         time.Time         `json:"created_at"`
}

// ConstructMessage implements the Channel interface. It renders the full
// notification as JSON rather than the default one-line text.
func (c *WebsocketChannel) ConstructMessage(n *model.Notification) (string, error) {
	var id string
	if n.ID != uuid.Nil {
		id = n.ID.String()
	}
	body, err := json.Marshal(wireNotification{
		ID:                id,
		Source:            n.Source,
		SourceDisplayName: n.SourceDisplayName,
		Recipient:         n.Recipient,
		Category:          n.Category,
		Action:            n.Action,
		Obj:               n.Obj,
		ShortDescription:  n.ShortDescription,
		URL:               n.URL,
		Silent:            n.Silent,
		ExtraData:         n.ExtraData,
		Read:              n.Read,
		CreatedAt:         n.CreatedAt,
	})
	if err != nil {
		return "", fmt.Errorf("marshal notification: %w", err)
	}
	return string(body), nil
}

// Notify implements the Channel interface. Broker failures surface as
// *DeliveryError; there is no internal retry.
func (c *WebsocketChannel) Notify(ctx context.Context, n *model.Notification, message string) error {
	if n.Recipient == "" {
		return &DeliveryError{Channel: c.Name(), Err: fmt.Errorf("notification has no recipient")}
	}
	if err := c.publisher.Publish(ctx, n.Recipient, []byte(message)); err != nil {
		return &DeliveryError{Channel: c.Name(), Err: err}
	}
	c.logger.Info().Str("recipient", n.Recipient).Stringer("notification_id", n.ID).Msg("notification queued for push")
	return nil
}
