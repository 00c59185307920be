package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/wordbook/internal/config"
	"github.com/heartmarshall/wordbook/internal/domain"
)

// Policy is the reconciliation strategy for concurrent writers of one key.
type Policy string

const (
	// CheckThenInsert reads first, inserts when absent, and re-reads once if
	// the insert loses a uniqueness race. Existing rows are never modified.
	CheckThenInsert Policy = config.PolicyCheckThenInsert
	// Upsert writes with INSERT .. ON CONFLICT DO UPDATE. Mutable columns
	// take the value of the last writer.
	Upsert Policy = config.PolicyUpsert
)

// ParsePolicy parses a policy name. Empty selects CheckThenInsert.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", CheckThenInsert:
		return CheckThenInsert, nil
	case Upsert:
		return Upsert, nil
	default:
		return "", fmt.Errorf("unknown store policy %q", s)
	}
}

// ResolveOps holds the statements a repository runs to obtain the id of a
// uniquely keyed row. Each func returns the raw pgx error.
type ResolveOps struct {
	// Find returns pgx.ErrNoRows when the row is absent.
	Find func(ctx context.Context) (int64, error)
	// Insert fails with a unique_violation when another writer got there first.
	Insert func(ctx context.Context) (int64, error)
	// Upsert always yields the id of the single row for the key.
	Upsert func(ctx context.Context) (int64, error)
}

// Resolve runs ops under p and returns the row id. Errors are mapped with
// MapError using entity and key.
func (p Policy) Resolve(ctx context.Context, log *slog.Logger, entity string, key any, ops ResolveOps) (int64, error) {
	if p == Upsert {
		id, err := ops.Upsert(ctx)
		if err != nil {
			return 0, MapError(err, entity, key)
		}
		return id, nil
	}

	id, err := ops.Find(ctx)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, MapError(err, entity, key)
	}

	id, err = ops.Insert(ctx)
	if err == nil {
		return id, nil
	}
	if !IsUniqueViolation(err) {
		return 0, MapError(err, entity, key)
	}

	log.DebugContext(ctx, "lost insert race, reading winner",
		slog.String("entity", entity),
		slog.Any("key", key),
	)

	id, err = ops.Find(ctx)
	if errors.Is(err, pgx.ErrNoRows) {
		// The winning row was deleted between our insert and this read.
		return 0, fmt.Errorf("%s %v: %w: row vanished after conflict", entity, key, domain.ErrStore)
	}
	if err != nil {
		return 0, MapError(err, entity, key)
	}
	return id, nil
}
