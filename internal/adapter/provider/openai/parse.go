package openai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/heartmarshall/wordbook/internal/domain"
)

// parseEnrichment decodes the model output. Every field is required; a
// missing or blank one fails the whole call.
func parseEnrichment(content string) (domain.Enrichment, error) {
	raw, err := extractJSON(content)
	if err != nil {
		return domain.Enrichment{}, err
	}

	var d wordDetail
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return domain.Enrichment{}, fmt.Errorf("decode entry: %w", err)
	}

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"dictionary_form", d.DictionaryForm},
		{"language", d.Language},
		{"definition", d.Definition},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if d.Sentence == nil {
		missing = append(missing, "sentence")
	} else {
		if strings.TrimSpace(d.Sentence.Example) == "" {
			missing = append(missing, "sentence.example")
		}
		if strings.TrimSpace(d.Sentence.Meaning) == "" {
			missing = append(missing, "sentence.meaning")
		}
	}
	if len(missing) > 0 {
		return domain.Enrichment{}, fmt.Errorf("%w: missing %s", errIncomplete, strings.Join(missing, ", "))
	}

	return domain.Enrichment{
		DictionaryForm: strings.TrimSpace(d.DictionaryForm),
		Language:       strings.TrimSpace(d.Language),
		Definition:     strings.TrimSpace(d.Definition),
		Sentence: domain.EnrichedSentence{
			Example: strings.TrimSpace(d.Sentence.Example),
			Meaning: strings.TrimSpace(d.Sentence.Meaning),
		},
	}, nil
}

// extractJSON returns the text between the first '{' and the last '}', which
// drops markdown fences and chatter around the object.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}
