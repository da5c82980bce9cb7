package channels

import (
	"testing"

	"github.com/osahon-dev/notistream/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emailTestConfig() config.EmailConfig {
	return config.EmailConfig{
		Host: "smtp.example.com",
		Port: 587,
		From: "noreply@example.com",
	}
}

func registryConfig(enabled []string, websocketOn bool, mode string) *config.Config {
	return &config.Config{
		Channels: config.ChannelsConfig{
			Mode:      mode,
			Enabled:   enabled,
			Websocket: config.WebsocketChannelConfig{Enabled: websocketOn},
			Email:     emailTestConfig(),
		},
	}
}

func TestNewRegistry_PreservesConfiguredOrder(t *testing.T) {
	logger := zerolog.Nop()
	cfg := registryConfig([]string{"email", "websocket", "log"}, true, "production")

	reg, err := NewRegistry(cfg, nil, &logger)
	require.NoError(t, err)

	chs := reg.Channels()
	require.Len(t, chs, 3)
	assert.Equal(t, "email", chs[0].Name())
	assert.Equal(t, "websocket", chs[1].Name())
	assert.Equal(t, "log", chs[2].Name())
}

func TestNewRegistry_WebsocketToggleSkipsWithoutReordering(t *testing.T) {
	logger := zerolog.Nop()
	cfg := registryConfig([]string{"email", "websocket", "log"}, false, "production")

	reg, err := NewRegistry(cfg, nil, &logger)
	require.NoError(t, err)

	chs := reg.Channels()
	require.Len(t, chs, 2)
	assert.Equal(t, "email", chs[0].Name())
	assert.Equal(t, "log", chs[1].Name())
}

func TestNewRegistry_DevelopmentModeSubstitutesLogChannel(t *testing.T) {
	logger := zerolog.Nop()
	cfg := registryConfig([]string{"email"}, true, "development")

	reg, err := NewRegistry(cfg, nil, &logger)
	require.NoError(t, err)

	chs := reg.Channels()
	require.Len(t, chs, 1)
	assert.Equal(t, "log", chs[0].Name())
}

func TestNewRegistry_UnknownChannelIsStartupError(t *testing.T) {
	logger := zerolog.Nop()
	cfg := registryConfig([]string{"carrier-pigeon"}, true, "development")

	_, err := NewRegistry(cfg, nil, &logger)

	assert.ErrorContains(t, err, "carrier-pigeon")
}

func TestNewStaticRegistry(t *testing.T) {
	logger := zerolog.Nop()
	ch := NewLogChannel(&logger)

	reg := NewStaticRegistry(ch)

	require.Len(t, reg.Channels(), 1)
	assert.Equal(t, "log", reg.Channels()[0].Name())
}
