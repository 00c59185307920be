package domain

// Language is a natural language that words belong to. Name is unique as stored.
type Language struct {
	ID   int64
	Name string
}

// Word is a dictionary term within a language. (LanguageID, Term) is unique.
type Word struct {
	ID         int64
	LanguageID int64
	Language   string
	Term       string
	Definition string
}

// Sentence is a usage example owned by a word. (WordID, Example) is unique;
// sentences are removed together with their word.
type Sentence struct {
	ID      int64
	WordID  int64
	Example string
	Meaning *string
}

// Entry is a word together with its example sentences, as returned to callers.
type Entry struct {
	Word
	Sentences []Sentence
}

// NewEntry assembles an Entry, never leaving Sentences nil.
func NewEntry(w Word, sentences []Sentence) Entry {
	if sentences == nil {
		sentences = []Sentence{}
	}
	return Entry{Word: w, Sentences: sentences}
}

// GroupSentencesByWord buckets sentences by their owning word id, keeping the
// relative order of each bucket.
func GroupSentencesByWord(sentences []Sentence) map[int64][]Sentence {
	grouped := make(map[int64][]Sentence, len(sentences))
	for _, s := range sentences {
		grouped[s.WordID] = append(grouped[s.WordID], s)
	}
	return grouped
}
