package dictionary

import (
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/wordbook/internal/domain"
)

// Column limits of the language and word tables.
const (
	maxLanguageLen = 50
	maxTermLen     = 255
)

// GetEntryInput identifies a stored entry.
type GetEntryInput struct {
	Language string
	Term     string
}

// Validate trims the fields and checks them.
func (i *GetEntryInput) Validate() error {
	i.Language = strings.TrimSpace(i.Language)
	i.Term = strings.TrimSpace(i.Term)

	var errs []domain.FieldError
	if i.Language == "" {
		errs = append(errs, domain.FieldError{Field: "language", Message: "required"})
	}
	if domain.NormalizeTerm(i.Term) == "" {
		errs = append(errs, domain.FieldError{Field: "term", Message: "must contain a letter or digit"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// CreateEntryInput holds a manually supplied entry.
type CreateEntryInput struct {
	Language   string
	Term       string
	Definition string
}

// Validate trims the fields and collects all errors.
func (i *CreateEntryInput) Validate() error {
	i.Language = strings.TrimSpace(i.Language)
	i.Term = strings.TrimSpace(i.Term)
	i.Definition = strings.TrimSpace(i.Definition)

	var errs []domain.FieldError

	switch {
	case i.Language == "":
		errs = append(errs, domain.FieldError{Field: "language", Message: "required"})
	case utf8.RuneCountInString(i.Language) > maxLanguageLen:
		errs = append(errs, domain.FieldError{Field: "language", Message: "too long (max 50)"})
	}

	switch {
	case i.Term == "":
		errs = append(errs, domain.FieldError{Field: "term", Message: "required"})
	case utf8.RuneCountInString(i.Term) > maxTermLen:
		errs = append(errs, domain.FieldError{Field: "term", Message: "too long (max 255)"})
	}

	if i.Definition == "" {
		errs = append(errs, domain.FieldError{Field: "definition", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// GenerateEntryInput holds a raw term for AI-assisted ingestion. Language is
// optional; when set, the store is consulted before the generator runs.
type GenerateEntryInput struct {
	Term     string
	Language string
}

// ListEntriesInput selects a page. Nil fields take their defaults.
type ListEntriesInput struct {
	Limit  *int
	Offset *int
}

// Validate rejects negative paging values.
func (i ListEntriesInput) Validate() error {
	var errs []domain.FieldError
	if i.Limit != nil && *i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must not be negative"})
	}
	if i.Offset != nil && *i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must not be negative"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
