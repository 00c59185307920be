// Package language implements Language resolution on PostgreSQL.
package language

import (
	"context"
	"log/slog"

	postgres "github.com/heartmarshall/wordbook/internal/adapter/postgres"
)

const (
	findSQL   = `SELECT id FROM language WHERE name = $1`
	insertSQL = `INSERT INTO language (name) VALUES ($1) RETURNING id`

	// The no-op update makes RETURNING yield the id of an existing row too.
	upsertSQL = `INSERT INTO language (name) VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id`
)

// Repo resolves languages by name.
type Repo struct {
	q      postgres.Querier
	policy postgres.Policy
	log    *slog.Logger
}

// New creates a language repository.
func New(q postgres.Querier, policy postgres.Policy, logger *slog.Logger) *Repo {
	return &Repo{q: q, policy: policy, log: logger.With("repo", "language")}
}

// Resolve returns the id of the language called name, creating it if absent.
// Names are stored as given and compared case-sensitively.
func (r *Repo) Resolve(ctx context.Context, name string) (int64, error) {
	return r.policy.Resolve(ctx, r.log, "language", name, postgres.ResolveOps{
		Find: func(ctx context.Context) (int64, error) {
			return r.scanID(ctx, findSQL, name)
		},
		Insert: func(ctx context.Context) (int64, error) {
			return r.scanID(ctx, insertSQL, name)
		},
		Upsert: func(ctx context.Context) (int64, error) {
			return r.scanID(ctx, upsertSQL, name)
		},
	})
}

func (r *Repo) scanID(ctx context.Context, sql string, args ...any) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx, sql, args...).Scan(&id)
	return id, err
}
