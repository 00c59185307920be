package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Database.MaxConns <= 0 {
		return fmt.Errorf("database.max_conns must be > 0 (got %d)", c.Database.MaxConns)
	}
	if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns must be in [0, max_conns] (got %d)", c.Database.MinConns)
	}

	c.Store.Policy = strings.ToLower(strings.TrimSpace(c.Store.Policy))
	switch c.Store.Policy {
	case PolicyCheckThenInsert, PolicyUpsert:
	default:
		return fmt.Errorf("store.policy must be %q or %q (got %q)", PolicyCheckThenInsert, PolicyUpsert, c.Store.Policy)
	}

	if err := c.Enrichment.validate(); err != nil {
		return fmt.Errorf("enrichment: %w", err)
	}

	if c.Dictionary.DefaultPageSize <= 0 {
		return fmt.Errorf("dictionary.default_page_size must be > 0 (got %d)", c.Dictionary.DefaultPageSize)
	}
	if c.Dictionary.MaxPageSize < 0 {
		return fmt.Errorf("dictionary.max_page_size must be >= 0 (got %d)", c.Dictionary.MaxPageSize)
	}
	if c.Dictionary.GenerateTimeout <= 0 {
		return fmt.Errorf("dictionary.generate_timeout must be > 0 (got %s)", c.Dictionary.GenerateTimeout)
	}

	return nil
}

func (e *EnrichmentConfig) validate() error {
	if strings.TrimSpace(e.PromptPath) == "" {
		return fmt.Errorf("prompt_path is required")
	}
	if strings.TrimSpace(e.BaseURL) == "" {
		return fmt.Errorf("base_url is required")
	}
	if e.Temperature < 0 || e.Temperature > 2 {
		return fmt.Errorf("temperature must be in [0, 2] (got %v)", e.Temperature)
	}
	if e.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", e.MaxTokens)
	}
	if e.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", e.Timeout)
	}
	return nil
}
