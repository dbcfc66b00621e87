// Package postgres keeps the history of simulation runs in PostgreSQL.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/bankroll/internal/config"
)

// connectTimeout bounds the first ping of a freshly opened history database.
const connectTimeout = 5 * time.Second

// History is an open run-history database.
type History struct {
	pool *pgxpool.Pool
	Runs *RunRepository
}

// OpenHistory connects to the run-history database described by cfg.
//
// Postcondition: Returns an open History whose database answered a ping within
// connectTimeout, or a non-nil error with no connections left open.
func OpenHistory(ctx context.Context, cfg config.DatabaseConfig) (*History, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing history database config: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "bankroll"

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("reaching history database at %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	return &History{pool: pool, Runs: NewRunRepository(pool)}, nil
}

// Pool returns the underlying connection pool.
func (h *History) Pool() *pgxpool.Pool {
	return h.pool
}

// Close releases every connection. The History is unusable afterwards.
func (h *History) Close() {
	h.pool.Close()
}
