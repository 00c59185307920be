package testhelper

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/wordbook/internal/domain"
)

// UniqueName returns prefix followed by a short random suffix made of letters
// only, so it survives term normalization unchanged. Tests share one database
// and must not collide on unique keys.
func UniqueName(prefix string) string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")[:10]
	var b strings.Builder
	b.WriteString(prefix)
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			r = 'g' + (r - '0')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SeedLanguage inserts a language row.
func SeedLanguage(t *testing.T, pool *pgxpool.Pool, name string) domain.Language {
	t.Helper()

	lang := domain.Language{Name: name}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO language (name) VALUES ($1) RETURNING id`, name,
	).Scan(&lang.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedLanguage(%q): %v", name, err)
	}
	return lang
}

// SeedWord inserts a word under lang.
func SeedWord(t *testing.T, pool *pgxpool.Pool, lang domain.Language, term, definition string) domain.Word {
	t.Helper()

	w := domain.Word{
		LanguageID: lang.ID,
		Language:   lang.Name,
		Term:       term,
		Definition: definition,
	}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO word (language_id, term, definition) VALUES ($1, $2, $3) RETURNING id`,
		lang.ID, term, definition,
	).Scan(&w.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedWord(%q): %v", term, err)
	}
	return w
}

// SeedSentence inserts a sentence for wordID. meaning may be nil.
func SeedSentence(t *testing.T, pool *pgxpool.Pool, wordID int64, example string, meaning *string) domain.Sentence {
	t.Helper()

	s := domain.Sentence{WordID: wordID, Example: example, Meaning: meaning}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO sentence (word_id, example, meaning) VALUES ($1, $2, $3) RETURNING id`,
		wordID, example, meaning,
	).Scan(&s.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedSentence(%q): %v", example, err)
	}
	return s
}

// CountRows returns the number of rows in table matching where. Both are
// trusted test literals.
func CountRows(t *testing.T, pool *pgxpool.Pool, table, where string, args ...any) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM `+table+` WHERE `+where, args...,
	).Scan(&n)
	if err != nil {
		t.Fatalf("testhelper: CountRows(%s): %v", table, err)
	}
	return n
}
