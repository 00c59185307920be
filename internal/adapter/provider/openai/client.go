// Package openai implements the enrichment client on top of the OpenAI chat
// completions API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"resty.dev/v3"

	"github.com/heartmarshall/wordbook/internal/config"
	"github.com/heartmarshall/wordbook/internal/domain"
)

// Placeholder is replaced with the looked-up term in the prompt template.
const Placeholder = "{WORD}"

// Fixed sampling parameters. Only temperature, model and max_tokens are
// configurable.
const (
	topP        = 1.0
	completions = 1
)

// Client produces dictionary entries for terms. It is safe for concurrent use.
type Client struct {
	http        *resty.Client
	model       string
	temperature float64
	maxTokens   int
	template    string
	log         *slog.Logger
}

// NewClient loads the prompt template and prepares the HTTP client. It fails
// when the API key is missing or the template cannot be used.
func NewClient(cfg config.EnrichmentConfig, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: api key is not configured", domain.ErrGeneration)
	}

	template, err := LoadPromptTemplate(cfg.PromptPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGeneration, err)
	}

	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	return &Client{
		http:        http,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		template:    template,
		log:         logger.With("adapter", "openai"),
	}, nil
}

// LoadPromptTemplate reads the template at path. It must contain Placeholder.
func LoadPromptTemplate(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read prompt template: %w", err)
	}
	template := string(raw)
	if !strings.Contains(template, Placeholder) {
		return "", fmt.Errorf("prompt template %s has no %s placeholder", path, Placeholder)
	}
	return template, nil
}

// Close releases idle HTTP connections.
func (c *Client) Close() error {
	return c.http.Close()
}

// Enrich asks the backend for a dictionary entry of term. Every failure,
// including cancellation of ctx, wraps domain.ErrGeneration. Nothing is retried.
func (c *Client) Enrich(ctx context.Context, term string) (domain.Enrichment, error) {
	body := chatCompletionRequest{
		Model: c.model,
		Messages: []message{
			{Role: roleUser, Content: strings.ReplaceAll(c.template, Placeholder, term)},
		},
		Temperature: c.temperature,
		TopP:        topP,
		N:           completions,
		MaxTokens:   c.maxTokens,
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&chatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Enrichment{}, fmt.Errorf("%w: chat completion: %w", domain.ErrGeneration, ctxErr)
		}
		return domain.Enrichment{}, fmt.Errorf("%w: chat completion: %w", domain.ErrGeneration, err)
	}
	if resp.IsError() {
		return domain.Enrichment{}, fmt.Errorf("%w: chat completion: status %d: %s",
			domain.ErrGeneration, resp.StatusCode(), truncate(resp.String(), 512))
	}

	result, _ := resp.Result().(*chatCompletionResponse)
	if result == nil || len(result.Choices) == 0 {
		return domain.Enrichment{}, fmt.Errorf("%w: empty choices", domain.ErrGeneration)
	}

	content := result.Choices[0].Message.Content
	c.log.DebugContext(ctx, "chat completion received",
		slog.String("term", term),
		slog.String("finish_reason", result.Choices[0].FinishReason),
		slog.Int("completion_tokens", result.Usage.CompletionTokens),
	)

	enrichment, err := parseEnrichment(content)
	if err != nil {
		return domain.Enrichment{}, fmt.Errorf("%w: %w", domain.ErrGeneration, err)
	}
	return enrichment, nil
}

var errIncomplete = errors.New("incomplete entry")

// truncate shortens s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
