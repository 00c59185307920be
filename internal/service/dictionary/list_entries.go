package dictionary

import (
	"context"
	"fmt"

	"github.com/heartmarshall/wordbook/internal/domain"
)

const defaultPageSize = 20

// ListEntries returns a page of entries ordered by ascending id, each with its
// own sentences. It makes one fetch for the words and, when the page is not
// empty, one batched fetch for all of their sentences.
func (s *Service) ListEntries(ctx context.Context, input ListEntriesInput) ([]domain.Entry, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	limit, offset := s.page(input)

	words, err := s.words.List(ctx, limit, offset)
	if err != nil {
		s.logFailure(ctx, "list_words", "", "", err)
		return nil, fmt.Errorf("list entries: %w", err)
	}
	if len(words) == 0 {
		return []domain.Entry{}, nil
	}

	ids := make([]int64, len(words))
	for i, w := range words {
		ids[i] = w.ID
	}

	sentences, err := s.sentences.ListByWordIDs(ctx, ids)
	if err != nil {
		s.logFailure(ctx, "list_sentences", "", "", err)
		return nil, fmt.Errorf("list entries: %w", err)
	}
	grouped := domain.GroupSentencesByWord(sentences)

	entries := make([]domain.Entry, len(words))
	for i, w := range words {
		entries[i] = domain.NewEntry(w, grouped[w.ID])
	}
	return entries, nil
}

// page applies defaults and the optional size cap.
func (s *Service) page(input ListEntriesInput) (limit, offset int) {
	limit = s.cfg.DefaultPageSize
	if limit <= 0 {
		limit = defaultPageSize
	}
	if input.Limit != nil {
		limit = *input.Limit
	}
	if s.cfg.MaxPageSize > 0 && limit > s.cfg.MaxPageSize {
		limit = s.cfg.MaxPageSize
	}
	if input.Offset != nil {
		offset = *input.Offset
	}
	return limit, offset
}
