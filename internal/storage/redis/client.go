package redis

import (
	"context"
	"fmt"

	"github.com/osahon-dev/notistream/internal/config"
	goredis "github.com/redis/go-redis/v9"
)

// NewClient creates a go-redis client from configuration and verifies
// connectivity with a ping.
func NewClient(cfg *config.Config) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis: ping: %w", err)
	}

	return client, nil
}
