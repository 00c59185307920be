package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/wordbook/internal/domain"
	"github.com/heartmarshall/wordbook/internal/service/dictionary"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

type fakeService struct {
	entries  map[string]domain.Entry
	deleted  []int64
	listed   []dictionary.ListEntriesInput
	generate dictionary.GenerateResult
}

func (f *fakeService) GetEntry(_ context.Context, input dictionary.GetEntryInput) (domain.Entry, error) {
	e, ok := f.entries[input.Language+"/"+input.Term]
	if !ok {
		return domain.Entry{}, domain.ErrNotFound
	}
	return e, nil
}

func (f *fakeService) CreateEntry(_ context.Context, input dictionary.CreateEntryInput) (domain.Entry, error) {
	return domain.NewEntry(domain.Word{ID: 9, Language: input.Language, Term: input.Term, Definition: input.Definition}, nil), nil
}

func (f *fakeService) GenerateEntry(context.Context, dictionary.GenerateEntryInput) (dictionary.GenerateResult, error) {
	return f.generate, nil
}

func (f *fakeService) ListEntries(_ context.Context, input dictionary.ListEntriesInput) ([]domain.Entry, error) {
	f.listed = append(f.listed, input)
	out := make([]domain.Entry, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeService) DeleteEntry(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func runEntry() domain.Entry {
	meaning := "He jogs every day."
	return domain.NewEntry(
		domain.Word{ID: 1, Language: "english", Term: "run", Definition: "to move fast"},
		[]domain.Sentence{{ID: 1, WordID: 1, Example: "He runs daily.", Meaning: &meaning}},
	)
}

func execute(t *testing.T, svc *fakeService, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	e := newEnv(&out)
	closed := 0
	e.open = func(context.Context, *env) (dictionaryService, func(), error) {
		return svc, func() { closed++ }, nil
	}
	e.migrate = func(context.Context, *env) error { return nil }

	root := newRootCommand(e)
	root.SetArgs(args)
	root.SetOut(&out)
	err := root.ExecuteContext(context.Background())
	if closed > 1 {
		t.Errorf("service closed %d times", closed)
	}
	return out.String(), err
}

func TestFormat_Set(t *testing.T) {
	var f Format
	require.NoError(t, f.Set("yaml"))
	assert.Equal(t, FormatYAML, f)
	assert.Equal(t, "yaml", f.String())
	assert.Equal(t, "format", f.Type())

	err := f.Set("xml")
	assert.ErrorContains(t, err, "invalid format")
}

func TestLookup_Text(t *testing.T) {
	svc := &fakeService{entries: map[string]domain.Entry{"english/run": runEntry()}}

	out, err := execute(t, svc, "lookup", "english", "run")
	require.NoError(t, err)
	assert.Contains(t, out, "run (english, #1)")
	assert.Contains(t, out, "  to move fast")
	assert.Contains(t, out, "  - He runs daily.")
	assert.Contains(t, out, "He jogs every day.")
}

func TestLookup_YAML(t *testing.T) {
	svc := &fakeService{entries: map[string]domain.Entry{"english/run": runEntry()}}

	out, err := execute(t, svc, "-o", "yaml", "lookup", "english", "run")
	require.NoError(t, err)

	var got entryView
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "run", got.Term)
	require.Len(t, got.Sentences, 1)
	assert.Equal(t, "He runs daily.", got.Sentences[0].Example)
}

func TestLookup_NotFound(t *testing.T) {
	_, err := execute(t, &fakeService{}, "lookup", "english", "nothing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestAdd(t *testing.T) {
	out, err := execute(t, &fakeService{}, "add", "english", "run", "to move fast")
	require.NoError(t, err)
	assert.Contains(t, out, "run (english, #9)")
}

func TestGenerate_PrintsOutcome(t *testing.T) {
	svc := &fakeService{generate: dictionary.GenerateResult{Entry: runEntry(), Outcome: dictionary.OutcomeCreated}}

	out, err := execute(t, svc, "generate", "Running", "--language", "English")
	require.NoError(t, err)
	assert.Contains(t, out, "[created]")
	assert.Contains(t, out, "run (english, #1)")
}

func TestList_PassesOnlyChangedFlags(t *testing.T) {
	svc := &fakeService{}

	out, err := execute(t, svc, "list", "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "no entries")

	require.Len(t, svc.listed, 1)
	require.NotNil(t, svc.listed[0].Limit)
	assert.Equal(t, 5, *svc.listed[0].Limit)
	assert.Nil(t, svc.listed[0].Offset)
}

func TestList_YAMLEmptyIsList(t *testing.T) {
	out, err := execute(t, &fakeService{}, "list", "-o", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestDelete(t *testing.T) {
	svc := &fakeService{}

	out, err := execute(t, svc, "delete", "42")
	require.NoError(t, err)
	assert.Equal(t, []int64{42}, svc.deleted)
	assert.Contains(t, out, "deleted 42")

	_, err = execute(t, svc, "delete", "forty-two")
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestMigrate(t *testing.T) {
	out, err := execute(t, &fakeService{}, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "schema is up to date")
}

func TestArgsAreChecked(t *testing.T) {
	_, err := execute(t, &fakeService{}, "lookup", "english")
	assert.Error(t, err)
}
