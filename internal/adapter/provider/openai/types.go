package openai

type role string

const roleUser role = "user"

type message struct {
	Role    role   `json:"role"`
	Content string `json:"content"`
}

// Temperature has no omitempty: zero is the value we want sent.
type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	TopP        float64   `json:"top_p"`
	N           int       `json:"n"`
	MaxTokens   int       `json:"max_tokens"`
	Stream      bool      `json:"stream"`
}

type chatCompletionResponse struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []choice `json:"choices"`
	Usage   usage    `json:"usage"`
}

type choice struct {
	Index        int     `json:"index"`
	Message      message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// wordDetail is the JSON document the prompt asks the model to produce.
type wordDetail struct {
	DictionaryForm string          `json:"dictionary_form"`
	Language       string          `json:"language"`
	Definition     string          `json:"definition"`
	Sentence       *sentenceDetail `json:"sentence"`
}

type sentenceDetail struct {
	Example string `json:"example"`
	Meaning string `json:"meaning"`
}
