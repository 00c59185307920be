package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/wordbook/internal/config"
	"github.com/heartmarshall/wordbook/pkg/lazy"
)

// NewPool creates a PostgreSQL connection pool configured from DatabaseConfig.
// It parses the DSN, applies pool settings (max/min conns, lifetimes), pings
// the database for fail-fast validation, and returns the ready pool.
// Acquires beyond MaxConns block until a connection is released or the
// caller's context ends.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse database DSN: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// connectTimeout bounds one initialization including all dial attempts. The
// initialization outlives the request that triggered it.
const connectTimeout = 30 * time.Second

// Connector owns the process-wide pool. The pool is dialed on first use;
// concurrent first users wait for the same attempt, and a failed attempt is
// reported to each of them without being remembered.
type Connector struct {
	pool *lazy.Value[*pgxpool.Pool]
}

// NewConnector creates a Connector. Each initialization makes up to
// cfg.ConnectAttempts dial attempts with exponential backoff.
func NewConnector(cfg config.DatabaseConfig, logger *slog.Logger) *Connector {
	log := logger.With("adapter", "postgres")
	attempts := cfg.ConnectAttempts
	if attempts == 0 {
		attempts = 1
	}

	return &Connector{
		pool: lazy.New(func(ctx context.Context) (*pgxpool.Pool, error) {
			ctx, cancel := context.WithTimeout(ctx, connectTimeout)
			defer cancel()

			var pool *pgxpool.Pool
			err := retry.Do(
				func() error {
					p, err := NewPool(ctx, cfg)
					if err != nil {
						return err
					}
					pool = p
					return nil
				},
				retry.Context(ctx),
				retry.Attempts(attempts),
				retry.Delay(200*time.Millisecond),
				retry.DelayType(retry.BackOffDelay),
				retry.LastErrorOnly(true),
				retry.OnRetry(func(n uint, err error) {
					log.WarnContext(ctx, "database not reachable, retrying",
						slog.Uint64("attempt", uint64(n+1)),
						slog.String("error", err.Error()),
					)
				}),
			)
			if err != nil {
				return nil, err
			}
			return pool, nil
		}),
	}
}

// Pool returns the shared pool, connecting on first call.
func (c *Connector) Pool(ctx context.Context) (*pgxpool.Pool, error) {
	return c.pool.Get(ctx)
}

// Ping connects if needed and checks that the database answers.
func (c *Connector) Ping(ctx context.Context) error {
	pool, err := c.Pool(ctx)
	if err != nil {
		return err
	}
	return pool.Ping(ctx)
}

// Exec implements Querier, connecting on first use.
func (c *Connector) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	pool, err := c.Pool(ctx)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	return pool.Exec(ctx, sql, args...)
}

// Query implements Querier, connecting on first use.
func (c *Connector) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	pool, err := c.Pool(ctx)
	if err != nil {
		return nil, err
	}
	return pool.Query(ctx, sql, args...)
}

// QueryRow implements Querier, connecting on first use. A connect failure is
// reported by Scan.
func (c *Connector) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	pool, err := c.Pool(ctx)
	if err != nil {
		return errRow{err: err}
	}
	return pool.QueryRow(ctx, sql, args...)
}

var _ Querier = (*Connector)(nil)

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

// Close closes the pool if it was ever opened.
func (c *Connector) Close() {
	if p, ok := c.pool.Peek(); ok {
		p.Close()
	}
}
