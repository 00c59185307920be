package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEntry_NilSentences(t *testing.T) {
	t.Parallel()

	e := NewEntry(Word{ID: 1, Term: "run"}, nil)
	assert.NotNil(t, e.Sentences)
	assert.Empty(t, e.Sentences)
	assert.Equal(t, "run", e.Term)
}

func TestGroupSentencesByWord(t *testing.T) {
	t.Parallel()

	grouped := GroupSentencesByWord([]Sentence{
		{ID: 10, WordID: 1, Example: "a"},
		{ID: 11, WordID: 2, Example: "b"},
		{ID: 12, WordID: 1, Example: "c"},
	})

	assert.Len(t, grouped, 2)
	assert.Equal(t, []int64{10, 12}, []int64{grouped[1][0].ID, grouped[1][1].ID})
	assert.Len(t, grouped[2], 1)
	assert.Nil(t, grouped[3])
}
