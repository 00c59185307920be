package dictionary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/heartmarshall/wordbook/internal/domain"
)

// GenerateEntry ingests a raw term with help of the generator.
//
// The term is normalized first; an empty result is rejected before any I/O.
// With an explicit language the store is checked for (language, normalized
// term). On a miss the generator is asked for an entry, and the store is
// checked again under the generated (language, dictionary form) key. Only when
// that misses too are language, word and the generated sentence written.
//
// No store connection is held while the generator runs.
func (s *Service) GenerateEntry(ctx context.Context, input GenerateEntryInput) (GenerateResult, error) {
	term := domain.NormalizeTerm(input.Term)
	if term == "" {
		return GenerateResult{}, domain.NewValidationError("term", "must contain a letter or digit")
	}

	if input.Language != "" {
		language := domain.CanonicalName(input.Language)
		if entry, ok, err := s.findExisting(ctx, language, term); err != nil {
			return GenerateResult{}, err
		} else if ok {
			return GenerateResult{Entry: entry, Outcome: OutcomeFound}, nil
		}
	}

	enrichment, err := s.enrich(ctx, term)
	if err != nil {
		s.logFailure(ctx, "enrich", input.Language, term, err)
		return GenerateResult{}, fmt.Errorf("generate entry: %w", err)
	}

	language := domain.CanonicalName(enrichment.Language)
	form := domain.CanonicalName(enrichment.DictionaryForm)
	if err := checkGenerated(language, form); err != nil {
		s.logFailure(ctx, "enrich", language, term, err)
		return GenerateResult{}, fmt.Errorf("generate entry: %w", err)
	}

	if entry, ok, err := s.findExisting(ctx, language, form); err != nil {
		return GenerateResult{}, err
	} else if ok {
		return GenerateResult{Entry: entry, Outcome: OutcomeFound}, nil
	}

	w, err := s.store(ctx, language, form, enrichment.Definition)
	if err != nil {
		return GenerateResult{}, fmt.Errorf("generate entry: %w", err)
	}

	meaning := enrichment.Sentence.Meaning
	if _, err := s.sentences.Record(ctx, w.ID, enrichment.Sentence.Example, &meaning); err != nil {
		s.logFailure(ctx, "record_sentence", language, form, err)
		return GenerateResult{}, fmt.Errorf("generate entry: %w", err)
	}

	// A concurrent writer may have won the word or the sentence; report
	// what the store kept.
	entry, err := s.entryWithSentences(ctx, w)
	if err != nil {
		return GenerateResult{}, fmt.Errorf("generate entry: %w", err)
	}

	s.log.InfoContext(ctx, "entry generated",
		slog.Int64("word_id", w.ID),
		slog.String("language", language),
		slog.String("term", form),
		slog.String("input", term),
	)

	return GenerateResult{Entry: entry, Outcome: OutcomeCreated}, nil
}

// findExisting reports whether (language, term) is stored and, if so, returns
// it with its sentences.
func (s *Service) findExisting(ctx context.Context, language, term string) (domain.Entry, bool, error) {
	w, err := s.words.GetByTerm(ctx, language, term)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Entry{}, false, nil
	}
	if err != nil {
		s.logFailure(ctx, "lookup", language, term, err)
		return domain.Entry{}, false, fmt.Errorf("generate entry: %w", err)
	}

	entry, err := s.entryWithSentences(ctx, w)
	if err != nil {
		return domain.Entry{}, false, fmt.Errorf("generate entry: %w", err)
	}
	return entry, true, nil
}

// enrich calls the generator under the configured timeout.
func (s *Service) enrich(ctx context.Context, term string) (domain.Enrichment, error) {
	if s.cfg.GenerateTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.GenerateTimeout)
		defer cancel()
	}

	enrichment, err := s.enricher.Enrich(ctx, term)
	if err != nil {
		if !errors.Is(err, domain.ErrGeneration) {
			err = fmt.Errorf("%w: %w", domain.ErrGeneration, err)
		}
		return domain.Enrichment{}, err
	}
	return enrichment, nil
}

// checkGenerated rejects generated keys the schema cannot hold.
func checkGenerated(language, form string) error {
	switch {
	case language == "" || form == "":
		return fmt.Errorf("%w: blank language or dictionary form", domain.ErrGeneration)
	case utf8.RuneCountInString(language) > maxLanguageLen:
		return fmt.Errorf("%w: language %q too long", domain.ErrGeneration, language)
	case utf8.RuneCountInString(form) > maxTermLen:
		return fmt.Errorf("%w: dictionary form too long", domain.ErrGeneration)
	}
	return nil
}
