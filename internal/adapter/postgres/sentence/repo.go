// Package sentence implements Sentence recording and listing on PostgreSQL.
// Sentences are unique per (word_id, example).
package sentence

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/wordbook/internal/adapter/postgres"
	"github.com/heartmarshall/wordbook/internal/domain"
)

const (
	findSQL   = `SELECT id FROM sentence WHERE word_id = $1 AND example = $2`
	insertSQL = `INSERT INTO sentence (word_id, example, meaning) VALUES ($1, $2, $3) RETURNING id`
	upsertSQL = `INSERT INTO sentence (word_id, example, meaning) VALUES ($1, $2, $3)
ON CONFLICT (word_id, example) DO UPDATE SET meaning = EXCLUDED.meaning
RETURNING id`

	listByWordIDSQL = `
SELECT id, word_id, example, meaning
FROM sentence
WHERE word_id = $1
ORDER BY id`
)

// Repo provides sentence persistence.
type Repo struct {
	q      postgres.Querier
	policy postgres.Policy
	log    *slog.Logger
}

// New creates a sentence repository.
func New(q postgres.Querier, policy postgres.Policy, logger *slog.Logger) *Repo {
	return &Repo{q: q, policy: policy, log: logger.With("repo", "sentence")}
}

// Record stores an example sentence for wordID and returns its id. Recording
// an example the word already has reuses that row; its meaning is kept under
// CheckThenInsert and replaced under Upsert.
func (r *Repo) Record(ctx context.Context, wordID int64, example string, meaning *string) (int64, error) {
	key := fmt.Sprintf("%d/%q", wordID, example)

	return r.policy.Resolve(ctx, r.log, "sentence", key, postgres.ResolveOps{
		Find: func(ctx context.Context) (int64, error) {
			return r.scanID(ctx, findSQL, wordID, example)
		},
		Insert: func(ctx context.Context) (int64, error) {
			return r.scanID(ctx, insertSQL, wordID, example, meaning)
		},
		Upsert: func(ctx context.Context) (int64, error) {
			return r.scanID(ctx, upsertSQL, wordID, example, meaning)
		},
	})
}

// ListByWordID returns the sentences of one word in id order.
func (r *Repo) ListByWordID(ctx context.Context, wordID int64) ([]domain.Sentence, error) {
	rows, err := r.q.Query(ctx, listByWordIDSQL, wordID)
	if err != nil {
		return nil, postgres.MapError(err, "sentences of word", wordID)
	}
	return collect(rows, wordID)
}

// ListByWordIDs returns the sentences of all given words in a single round
// trip, ordered by word id then sentence id. Callers group by WordID.
// An empty id set returns an empty result without querying.
func (r *Repo) ListByWordIDs(ctx context.Context, wordIDs []int64) ([]domain.Sentence, error) {
	if len(wordIDs) == 0 {
		return []domain.Sentence{}, nil
	}

	query, args, err := postgres.Builder().
		Select("id", "word_id", "example", "meaning").
		From("sentence").
		Where(sq.Eq{"word_id": wordIDs}).
		OrderBy("word_id", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build batched sentences query: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "sentences of words", wordIDs)
	}
	return collect(rows, wordIDs)
}

// ---------------------------------------------------------------------------
// Scan helpers
// ---------------------------------------------------------------------------

func (r *Repo) scanID(ctx context.Context, sql string, args ...any) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx, sql, args...).Scan(&id)
	return id, err
}

func collect(rows pgx.Rows, key any) ([]domain.Sentence, error) {
	defer rows.Close()

	sentences := []domain.Sentence{}
	for rows.Next() {
		var s domain.Sentence
		if err := rows.Scan(&s.ID, &s.WordID, &s.Example, &s.Meaning); err != nil {
			return nil, postgres.MapError(err, "sentence", key)
		}
		sentences = append(sentences, s)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "sentence", key)
	}
	return sentences, nil
}
