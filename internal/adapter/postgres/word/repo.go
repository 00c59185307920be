// Package word implements Word resolution, lookup, paging and deletion on
// PostgreSQL.
package word

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/wordbook/internal/adapter/postgres"
	"github.com/heartmarshall/wordbook/internal/domain"
)

const (
	findSQL   = `SELECT id FROM word WHERE language_id = $1 AND term = $2`
	insertSQL = `INSERT INTO word (language_id, term, definition) VALUES ($1, $2, $3) RETURNING id`
	upsertSQL = `INSERT INTO word (language_id, term, definition) VALUES ($1, $2, $3)
ON CONFLICT (language_id, term) DO UPDATE SET definition = EXCLUDED.definition
RETURNING id`

	getByTermSQL = `
SELECT w.id, w.language_id, l.name, w.term, w.definition
FROM word w
JOIN language l ON l.id = w.language_id
WHERE l.name = $1 AND w.term = $2`

	deleteSQL = `DELETE FROM word WHERE id = $1`
)

// Repo provides word persistence.
type Repo struct {
	q      postgres.Querier
	policy postgres.Policy
	log    *slog.Logger
}

// New creates a word repository.
func New(q postgres.Querier, policy postgres.Policy, logger *slog.Logger) *Repo {
	return &Repo{q: q, policy: policy, log: logger.With("repo", "word")}
}

// Resolve returns the id of the word keyed by (languageID, term), creating it
// with definition if absent. Under CheckThenInsert an existing definition is
// kept; under Upsert it is replaced.
func (r *Repo) Resolve(ctx context.Context, languageID int64, term, definition string) (int64, error) {
	key := fmt.Sprintf("%d/%s", languageID, term)

	return r.policy.Resolve(ctx, r.log, "word", key, postgres.ResolveOps{
		Find: func(ctx context.Context) (int64, error) {
			return r.scanID(ctx, findSQL, languageID, term)
		},
		Insert: func(ctx context.Context) (int64, error) {
			return r.scanID(ctx, insertSQL, languageID, term, definition)
		},
		Upsert: func(ctx context.Context) (int64, error) {
			return r.scanID(ctx, upsertSQL, languageID, term, definition)
		},
	})
}

// GetByTerm returns the word with an exact (language name, term) match.
// A miss is domain.ErrNotFound.
func (r *Repo) GetByTerm(ctx context.Context, language, term string) (domain.Word, error) {
	w, err := scanWord(r.q.QueryRow(ctx, getByTermSQL, language, term))
	if err != nil {
		return domain.Word{}, postgres.MapError(err, "word", language+"/"+term)
	}
	return w, nil
}

// List returns a page of words ordered by ascending id.
func (r *Repo) List(ctx context.Context, limit, offset int) ([]domain.Word, error) {
	query, args, err := postgres.Builder().
		Select("w.id", "w.language_id", "l.name", "w.term", "w.definition").
		From("word w").
		Join("language l ON l.id = w.language_id").
		OrderBy("w.id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list words query: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "word", "page")
	}
	defer rows.Close()

	var words []domain.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, postgres.MapError(err, "word", "page")
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "word", "page")
	}

	return words, nil
}

// Delete removes the word with id and, through the foreign key cascade, its
// sentences. It reports how many rows were removed; zero is not an error.
func (r *Repo) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.q.Exec(ctx, deleteSQL, id)
	if err != nil {
		return 0, postgres.MapError(err, "word", id)
	}
	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Scan helpers
// ---------------------------------------------------------------------------

func (r *Repo) scanID(ctx context.Context, sql string, args ...any) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx, sql, args...).Scan(&id)
	return id, err
}

func scanWord(row pgx.Row) (domain.Word, error) {
	var w domain.Word
	err := row.Scan(&w.ID, &w.LanguageID, &w.Language, &w.Term, &w.Definition)
	return w, err
}
