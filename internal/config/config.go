package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the main struct that holds all configuration for the application.
type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Channels ChannelsConfig `mapstructure:"channels"`
}

// LoggerConfig holds logging-specific settings.
type LoggerConfig struct {
	Level string `mapstructure:"level"`
}

// HTTPConfig holds settings for the producer-side API server.
type HTTPConfig struct {
	Port    string `mapstructure:"port"`
	GinMode string `mapstructure:"gin_mode"`
}

// GatewayConfig holds settings for the websocket gateway server.
type GatewayConfig struct {
	Port    string `mapstructure:"port"`
	GinMode string `mapstructure:"gin_mode"`
}

// PostgresConfig holds all settings for the PostgreSQL database connection.
type PostgresConfig struct {
	DSN  string     `mapstructure:"dsn"`
	Pool PoolConfig `mapstructure:"pool"`
}

// PoolConfig defines the connection pool settings for the database.
type PoolConfig struct {
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// RabbitMQConfig holds all settings for the RabbitMQ connection.
type RabbitMQConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig holds all settings for the Redis connection.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ChannelsConfig holds configuration for all delivery channels.
type ChannelsConfig struct {
	// Mode can be "development" or "production".
	// In "development" mode, the email and telegram channels are replaced
	// by the log channel so no real messages leave the process.
	Mode string `mapstructure:"mode"`

	// Enabled is the ordered list of channel identifiers the dispatcher
	// invokes. Order is significant.
	Enabled []string `mapstructure:"enabled"`

	Websocket WebsocketChannelConfig `mapstructure:"websocket"`
	Email     EmailConfig            `mapstructure:"email"`
	Telegram  TelegramConfig         `mapstructure:"telegram"`
}

// WebsocketChannelConfig toggles the queue-publisher channel.
type WebsocketChannelConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// EmailConfig holds SMTP settings for the email channel.
type EmailConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// TelegramConfig holds settings for the telegram channel.
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
}

// NewConfig parses the YAML file and environment variables to return a configuration struct.
func NewConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigFile("configs/config.yaml")

	v.SetDefault("logger.level", "info")
	v.SetDefault("http.port", ":8080")
	v.SetDefault("http.gin_mode", "release")
	v.SetDefault("gateway.port", ":8081")
	v.SetDefault("gateway.gin_mode", "release")
	v.SetDefault("channels.mode", "development")
	v.SetDefault("channels.enabled", []string{"websocket"})
	v.SetDefault("channels.websocket.enabled", true)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
