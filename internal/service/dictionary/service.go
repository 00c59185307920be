package dictionary

import (
	"context"
	"errors"
	"log/slog"

	"github.com/heartmarshall/wordbook/internal/config"
	"github.com/heartmarshall/wordbook/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type languageRepo interface {
	Resolve(ctx context.Context, name string) (int64, error)
}

type wordRepo interface {
	Resolve(ctx context.Context, languageID int64, term, definition string) (int64, error)
	GetByTerm(ctx context.Context, language, term string) (domain.Word, error)
	List(ctx context.Context, limit, offset int) ([]domain.Word, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type sentenceRepo interface {
	Record(ctx context.Context, wordID int64, example string, meaning *string) (int64, error)
	ListByWordID(ctx context.Context, wordID int64) ([]domain.Sentence, error)
	ListByWordIDs(ctx context.Context, wordIDs []int64) ([]domain.Sentence, error)
}

type enricher interface {
	Enrich(ctx context.Context, term string) (domain.Enrichment, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service looks up, ingests, lists and deletes dictionary entries. It holds no
// locks; concurrent ingestion of one key is reconciled by the repositories.
type Service struct {
	log       *slog.Logger
	languages languageRepo
	words     wordRepo
	sentences sentenceRepo
	enricher  enricher
	cfg       config.DictionaryConfig
}

// NewService creates a new dictionary service.
func NewService(
	logger *slog.Logger,
	languages languageRepo,
	words wordRepo,
	sentences sentenceRepo,
	enricher enricher,
	cfg config.DictionaryConfig,
) *Service {
	return &Service{
		log:       logger.With("service", "dictionary"),
		languages: languages,
		words:     words,
		sentences: sentences,
		enricher:  enricher,
		cfg:       cfg,
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// logFailure records store and generation failures. Expected outcomes
// (not found, invalid input) are left to the caller.
func (s *Service) logFailure(ctx context.Context, stage, language, term string, err error) {
	if !errors.Is(err, domain.ErrStore) && !errors.Is(err, domain.ErrGeneration) {
		return
	}
	s.log.ErrorContext(ctx, "dictionary operation failed",
		slog.String("stage", stage),
		slog.String("language", language),
		slog.String("term", term),
		slog.String("error", err.Error()),
	)
}

// entryWithSentences loads the sentences of w.
func (s *Service) entryWithSentences(ctx context.Context, w domain.Word) (domain.Entry, error) {
	sentences, err := s.sentences.ListByWordID(ctx, w.ID)
	if err != nil {
		s.logFailure(ctx, "list_sentences", w.Language, w.Term, err)
		return domain.Entry{}, err
	}
	return domain.NewEntry(w, sentences), nil
}
