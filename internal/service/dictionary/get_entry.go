package dictionary

import (
	"context"
	"fmt"

	"github.com/heartmarshall/wordbook/internal/domain"
)

// GetEntry returns the stored entry for an exact (language, term) match with
// all of its sentences. A miss is domain.ErrNotFound.
func (s *Service) GetEntry(ctx context.Context, input GetEntryInput) (domain.Entry, error) {
	if err := input.Validate(); err != nil {
		return domain.Entry{}, err
	}

	w, err := s.words.GetByTerm(ctx, input.Language, input.Term)
	if err != nil {
		s.logFailure(ctx, "lookup", input.Language, input.Term, err)
		return domain.Entry{}, fmt.Errorf("get entry: %w", err)
	}

	return s.entryWithSentences(ctx, w)
}
