package dictionary

import "github.com/heartmarshall/wordbook/internal/domain"

// Outcome tells whether an ingestion reused a stored entry or created one.
type Outcome int

const (
	OutcomeFound Outcome = iota + 1
	OutcomeCreated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeCreated:
		return "created"
	default:
		return "unknown"
	}
}

// GenerateResult is the entry produced by GenerateEntry.
type GenerateResult struct {
	Entry   domain.Entry
	Outcome Outcome
}
