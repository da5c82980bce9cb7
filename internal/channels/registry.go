package channels

import (
	"fmt"

	"github.com/osahon-dev/notistream/internal/config"
	"github.com/osahon-dev/notistream/internal/storage/rabbitmq"
	"github.com/rs/zerolog"
)

// Registry resolves the configured ordered list of channel identifiers to
// concrete channels, once at startup. The order of the configured list is
// the order the dispatcher invokes channels in.
type Registry struct {
	channels []Channel
}

// NewRegistry builds the channel list from configuration.
// Unknown identifiers are a startup error. When the websocket toggle is
// off, the websocket channel is skipped without reordering the rest.
// In "development" mode the email and telegram channels are replaced by
// the log channel.
func NewRegistry(cfg *config.Config, publisher *rabbitmq.Publisher, logger *zerolog.Logger) (*Registry, error) {
	log := logger.With().Str("component", "channel_registry").Logger()
	log.Info().Str("mode", cfg.Channels.Mode).Strs("enabled", cfg.Channels.Enabled).Msg("initializing channels")

	production := cfg.Channels.Mode == "production"
	logChannel := NewLogChannel(logger)

	var resolved []Channel
	for _, name := range cfg.Channels.Enabled {
		switch name {
		case "websocket":
			if !cfg.Channels.Websocket.Enabled {
				log.Info().Msg("websocket channel disabled by config")
				continue
			}
			resolved = append(resolved, NewWebsocketChannel(publisher, logger))
		case "email":
			if !production {
				resolved = append(resolved, logChannel)
				continue
			}
			resolved = append(resolved, NewEmailChannel(cfg.Channels.Email, logger))
		case "telegram":
			if !production {
				resolved = append(resolved, logChannel)
				continue
			}
			ch, err := NewTelegramChannel(cfg.Channels.Telegram, logger)
			if err != nil {
				return nil, fmt.Errorf("channels: telegram: %w", err)
			}
			resolved = append(resolved, ch)
		case "log":
			resolved = append(resolved, logChannel)
		default:
			return nil, fmt.Errorf("channels: unknown channel %q", name)
		}
	}

	log.Info().Int("count", len(resolved)).Msg("channels initialized")
	return &Registry{channels: resolved}, nil
}

// NewStaticRegistry builds a registry from an explicit channel list,
// bypassing configuration. This is how externally supplied custom
// channels are plugged in when embedding the dispatcher.
func NewStaticRegistry(chs ...Channel) *Registry {
	return &Registry{channels: chs}
}

// Channels returns the resolved channels in configured order.
func (r *Registry) Channels() []Channel {
	return r.channels
}
