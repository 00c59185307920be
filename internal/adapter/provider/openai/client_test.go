package openai

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordbook/internal/config"
	"github.com/heartmarshall/wordbook/internal/domain"
)

const validContent = `{"dictionary_form":"run","language":"english","definition":"to move fast",` +
	`"sentence":{"example":"He runs daily.","meaning":"He jogs every day."}}`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writePrompt(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prompt.txt")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func testConfig(t *testing.T, baseURL string) config.EnrichmentConfig {
	t.Helper()
	return config.EnrichmentConfig{
		APIKey:      "sk-test",
		BaseURL:     baseURL,
		Model:       "gpt-4.1-mini",
		Temperature: 0,
		MaxTokens:   300,
		Timeout:     5 * time.Second,
		PromptPath:  writePrompt(t, "Describe {WORD} as JSON."),
	}
}

func completion(content string) chatCompletionResponse {
	return chatCompletionResponse{
		Choices: []choice{{Message: message{Role: "assistant", Content: content}, FinishReason: "stop"}},
	}
}

func TestClient_Enrich(t *testing.T) {
	tests := []struct {
		name      string
		handler   func(t *testing.T, w http.ResponseWriter, r *http.Request)
		want      domain.Enrichment
		wantError string
	}{
		{
			name: "success",
			handler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/chat/completions", r.URL.Path)
				assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

				var req map[string]any
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "gpt-4.1-mini", req["model"])
				assert.Equal(t, float64(0), req["temperature"])
				assert.Equal(t, float64(1), req["top_p"])
				assert.Equal(t, float64(1), req["n"])
				assert.Equal(t, float64(300), req["max_tokens"])
				msgs := req["messages"].([]any)
				require.Len(t, msgs, 1)
				assert.Equal(t, "user", msgs[0].(map[string]any)["role"])
				assert.Equal(t, "Describe running as JSON.", msgs[0].(map[string]any)["content"])

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(completion(validContent))
			},
			want: domain.Enrichment{
				DictionaryForm: "run",
				Language:       "english",
				Definition:     "to move fast",
				Sentence:       domain.EnrichedSentence{Example: "He runs daily.", Meaning: "He jogs every day."},
			},
		},
		{
			name: "fenced json is accepted",
			handler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(completion("```json\n" + validContent + "\n```"))
			},
			want: domain.Enrichment{
				DictionaryForm: "run",
				Language:       "english",
				Definition:     "to move fast",
				Sentence:       domain.EnrichedSentence{Example: "He runs daily.", Meaning: "He jogs every day."},
			},
		},
		{
			name: "server error",
			handler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error":"boom"}`))
			},
			wantError: "status 500",
		},
		{
			name: "not json",
			handler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(completion("I don't know that word."))
			},
			wantError: "no JSON object",
		},
		{
			name: "missing sentence meaning",
			handler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(completion(
					`{"dictionary_form":"run","language":"english","definition":"x","sentence":{"example":"Run."}}`))
			},
			wantError: "sentence.meaning",
		},
		{
			name: "no choices",
			handler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"choices":[]}`))
			},
			wantError: "empty choices",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.handler(t, w, r)
			}))
			defer server.Close()

			client, err := NewClient(testConfig(t, server.URL), discardLogger())
			require.NoError(t, err)
			defer client.Close()

			got, err := client.Enrich(context.Background(), "running")
			if tt.wantError != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrGeneration)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_Enrich_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client, err := NewClient(testConfig(t, server.URL), discardLogger())
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.Enrich(ctx, "running")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGeneration)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewClient_Errors(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")
	cfg.APIKey = ""
	_, err := NewClient(cfg, discardLogger())
	assert.ErrorIs(t, err, domain.ErrGeneration)

	cfg = testConfig(t, "http://127.0.0.1:1")
	cfg.PromptPath = writePrompt(t, "no placeholder here")
	_, err = NewClient(cfg, discardLogger())
	assert.ErrorContains(t, err, "placeholder")
}

func TestLazy_FailureIsNotCached(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(completion(validContent))
	}))
	defer server.Close()

	l := NewLazy(testConfig(t, server.URL), discardLogger())
	defer l.Close()

	_, err := l.Enrich(context.Background(), "running")
	require.Error(t, err)

	got, err := l.Enrich(context.Background(), "running")
	require.NoError(t, err)
	assert.Equal(t, "run", got.DictionaryForm)
	assert.Equal(t, int32(2), calls.Load(), "the second call must reach the backend again")
}

func TestLazy_BuildFailureRetried(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")
	missing := filepath.Join(t.TempDir(), "later.txt")
	cfg.PromptPath = missing

	l := NewLazy(cfg, discardLogger())
	_, err := l.Enrich(context.Background(), "x")
	require.ErrorContains(t, err, "read prompt template")
	assert.ErrorIs(t, err, domain.ErrGeneration)

	// The next call builds again and now fails later, at the unreachable
	// base URL.
	require.NoError(t, os.WriteFile(missing, []byte("{WORD}"), 0o600))
	_, err = l.Enrich(context.Background(), "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGeneration)
	assert.NotContains(t, err.Error(), "read prompt template")
}

func TestTruncate_KeepsRunesWhole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"abcdef", 3, "abc..."},
		// é is two bytes; cutting at 2 would split it.
		{"héllo", 2, "h..."},
		// Each rune is three bytes.
		{"日本語", 4, "日..."},
		{"日本語", 1, "..."},
	}

	for _, tt := range tests {
		got := truncate(tt.in, tt.n)
		assert.Equal(t, tt.want, got, "truncate(%q, %d)", tt.in, tt.n)
		assert.True(t, utf8.ValidString(got), "truncate(%q, %d) = %q is not valid UTF-8", tt.in, tt.n, got)
	}
}
