package openai

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/wordbook/internal/config"
	"github.com/heartmarshall/wordbook/internal/domain"
	"github.com/heartmarshall/wordbook/pkg/lazy"
)

// Lazy is the process-wide enrichment client. It is built on the first Enrich
// call; a failed build is returned to that call's waiters and tried again on
// the next one.
type Lazy struct {
	client *lazy.Value[*Client]
}

// NewLazy returns a Lazy that builds its client from cfg.
func NewLazy(cfg config.EnrichmentConfig, logger *slog.Logger) *Lazy {
	return &Lazy{
		client: lazy.New(func(context.Context) (*Client, error) {
			return NewClient(cfg, logger)
		}),
	}
}

// Enrich builds the client if needed and delegates to it.
func (l *Lazy) Enrich(ctx context.Context, term string) (domain.Enrichment, error) {
	c, err := l.client.Get(ctx)
	if err != nil {
		return domain.Enrichment{}, err
	}
	return c.Enrich(ctx, term)
}

// Close closes the client if it was built.
func (l *Lazy) Close() error {
	if c, ok := l.client.Peek(); ok {
		return c.Close()
	}
	return nil
}
