package domain

// Enrichment is a dictionary entry synthesized by the text-generation backend.
type Enrichment struct {
	DictionaryForm string
	Language       string
	Definition     string
	Sentence       EnrichedSentence
}

// EnrichedSentence is the single example sentence that comes with an Enrichment.
type EnrichedSentence struct {
	Example string
	Meaning string
}
