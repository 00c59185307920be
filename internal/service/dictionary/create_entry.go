package dictionary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/wordbook/internal/domain"
)

// CreateEntry stores a manually supplied entry without sentences. Creating an
// entry that already exists returns the stored row's id; whether its
// definition changes depends on the store policy.
func (s *Service) CreateEntry(ctx context.Context, input CreateEntryInput) (domain.Entry, error) {
	if err := input.Validate(); err != nil {
		return domain.Entry{}, err
	}

	w, err := s.store(ctx, input.Language, input.Term, input.Definition)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("create entry: %w", err)
	}

	s.log.InfoContext(ctx, "entry stored",
		slog.Int64("word_id", w.ID),
		slog.String("language", w.Language),
		slog.String("term", w.Term),
	)

	return domain.NewEntry(w, nil), nil
}

// store resolves the language and then the word, and returns the word as
// stored. Depending on the policy an existing row keeps its definition, so
// the caller's definition is not echoed back.
func (s *Service) store(ctx context.Context, language, term, definition string) (domain.Word, error) {
	languageID, err := s.languages.Resolve(ctx, language)
	if err != nil {
		s.logFailure(ctx, "resolve_language", language, term, err)
		return domain.Word{}, err
	}

	if _, err := s.words.Resolve(ctx, languageID, term, definition); err != nil {
		s.logFailure(ctx, "resolve_word", language, term, err)
		return domain.Word{}, err
	}

	w, err := s.words.GetByTerm(ctx, language, term)
	if err != nil {
		s.logFailure(ctx, "read_word", language, term, err)
		return domain.Word{}, err
	}
	return w, nil
}
