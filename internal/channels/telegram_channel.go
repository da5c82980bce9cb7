package channels

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/osahon-dev/notistream/internal/config"
	"github.com/osahon-dev/notistream/internal/domain/model"
	"github.com/rs/zerolog"
)

// extraDataChatIDKey is the ExtraData key carrying the telegram chat id.
const extraDataChatIDKey = "telegram_chat_id"

// TelegramChannel delivers notifications via a Telegram bot. It is an
// example of a custom channel plugged in purely through the Channel
// interface and the configuration list.
type TelegramChannel struct {
	bot    *tgbotapi.BotAPI
	logger zerolog.Logger
}

// NewTelegramChannel creates a new instance of TelegramChannel.
func NewTelegramChannel(cfg config.TelegramConfig, logger *zerolog.Logger) (*TelegramChannel, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot api: %w", err)
	}
	return &TelegramChannel{
		bot:    bot,
		logger: logger.With().Str("component", "telegram_channel").Logger(),
	}, nil
}

// Name implements the Channel interface.
func (c *TelegramChannel) Name() string { return "telegram" }

// ConstructMessage implements the Channel interface.
func (c *TelegramChannel) ConstructMessage(n *model.Notification) (string, error) {
	return DefaultMessage(n), nil
}

// Notify implements the Channel interface.
func (c *TelegramChannel) Notify(_ context.Context, n *model.Notification, message string) error {
	raw := n.ExtraData[extraDataChatIDKey]
	if raw == "" {
		return &DeliveryError{Channel: c.Name(), Err: fmt.Errorf("no telegram chat id for recipient %s", n.Recipient)}
	}
	chatID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return &DeliveryError{Channel: c.Name(), Err: fmt.Errorf("invalid telegram chat id %q: %w", raw, err)}
	}

	msg := tgbotapi.NewMessage(chatID, message)
	if _, err := c.bot.Send(msg); err != nil {
		c.logger.Error().Err(err).Stringer("notification_id", n.ID).Msg("failed to send telegram message")
		return &DeliveryError{Channel: c.Name(), Err: err}
	}

	c.logger.Info().Stringer("notification_id", n.ID).Int64("chat_id", chatID).Msg("telegram message sent successfully")
	return nil
}
