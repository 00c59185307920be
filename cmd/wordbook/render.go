package main

import (
	"fmt"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/wordbook/internal/domain"
)

type entryView struct {
	ID         int64          `yaml:"id"`
	Language   string         `yaml:"language"`
	Term       string         `yaml:"term"`
	Definition string         `yaml:"definition"`
	Sentences  []sentenceView `yaml:"sentences"`
}

type sentenceView struct {
	Example string  `yaml:"example"`
	Meaning *string `yaml:"meaning,omitempty"`
}

func toView(e domain.Entry) entryView {
	v := entryView{
		ID:         e.ID,
		Language:   e.Language,
		Term:       e.Term,
		Definition: e.Definition,
		Sentences:  make([]sentenceView, len(e.Sentences)),
	}
	for i, s := range e.Sentences {
		v.Sentences[i] = sentenceView{Example: s.Example, Meaning: s.Meaning}
	}
	return v
}

func (e *env) printEntry(entry domain.Entry) error {
	if e.format == FormatYAML {
		return e.writeYAML(toView(entry))
	}
	e.writeText(entry)
	return nil
}

func (e *env) printEntries(entries []domain.Entry) error {
	if e.format == FormatYAML {
		views := make([]entryView, len(entries))
		for i, entry := range entries {
			views[i] = toView(entry)
		}
		return e.writeYAML(views)
	}
	if len(entries) == 0 {
		fmt.Fprintln(e.out, "no entries")
		return nil
	}
	for _, entry := range entries {
		e.writeText(entry)
	}
	return nil
}

func (e *env) writeYAML(v any) error {
	enc := yaml.NewEncoder(e.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func (e *env) writeText(entry domain.Entry) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	bold.Fprintf(e.out, "%s", entry.Term)
	faint.Fprintf(e.out, " (%s, #%d)\n", entry.Language, entry.ID)
	fmt.Fprintf(e.out, "  %s\n", entry.Definition)
	for _, s := range entry.Sentences {
		color.New(color.FgCyan).Fprintf(e.out, "  - %s\n", s.Example)
		if s.Meaning != nil {
			faint.Fprintf(e.out, "    %s\n", *s.Meaning)
		}
	}
}
