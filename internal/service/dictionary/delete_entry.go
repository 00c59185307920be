package dictionary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/wordbook/internal/domain"
)

// DeleteEntry deletes a word and its sentences. Deleting an id that does not
// exist succeeds.
func (s *Service) DeleteEntry(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.NewValidationError("id", "must be positive")
	}

	n, err := s.words.Delete(ctx, id)
	if err != nil {
		s.logFailure(ctx, "delete_word", "", fmt.Sprint(id), err)
		return fmt.Errorf("delete entry: %w", err)
	}

	s.log.DebugContext(ctx, "entry deleted", slog.Int64("word_id", id), slog.Int64("rows", n))
	return nil
}
