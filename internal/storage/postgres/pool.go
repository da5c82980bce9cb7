package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/osahon-dev/notistream/internal/config"
)

// NewPool creates a pgx connection pool from configuration and verifies
// connectivity with a ping.
func NewPool(cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse dsn: %w", err)
	}

	if cfg.Postgres.Pool.MaxConns > 0 {
		poolCfg.MaxConns = cfg.Postgres.Pool.MaxConns
	}
	if cfg.Postgres.Pool.MinConns > 0 {
		poolCfg.MinConns = cfg.Postgres.Pool.MinConns
	}
	if cfg.Postgres.Pool.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.Postgres.Pool.ConnMaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	return pool, nil
}
