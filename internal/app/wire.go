package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/wordbook/internal/adapter/postgres"
	"github.com/heartmarshall/wordbook/internal/adapter/postgres/language"
	"github.com/heartmarshall/wordbook/internal/adapter/postgres/sentence"
	"github.com/heartmarshall/wordbook/internal/adapter/postgres/word"
	"github.com/heartmarshall/wordbook/internal/adapter/provider/openai"
	"github.com/heartmarshall/wordbook/internal/config"
	"github.com/heartmarshall/wordbook/internal/service/dictionary"
)

// Deps holds the process-wide collaborators shared by the server and the CLI.
// Neither the database pool nor the enrichment client is opened here; both
// are created on first use.
type Deps struct {
	DB         *postgres.Connector
	Enricher   *openai.Lazy
	Dictionary *dictionary.Service
}

// Wire builds Deps from cfg. Call Close when done.
func Wire(cfg *config.Config, logger *slog.Logger) (*Deps, error) {
	policy, err := postgres.ParsePolicy(cfg.Store.Policy)
	if err != nil {
		return nil, fmt.Errorf("store policy: %w", err)
	}

	db := postgres.NewConnector(cfg.Database, logger)
	enricher := openai.NewLazy(cfg.Enrichment, logger)

	svc := dictionary.NewService(
		logger,
		language.New(db, policy, logger),
		word.New(db, policy, logger),
		sentence.New(db, policy, logger),
		enricher,
		cfg.Dictionary,
	)

	return &Deps{DB: db, Enricher: enricher, Dictionary: svc}, nil
}

// Migrate connects and applies pending migrations.
func (d *Deps) Migrate(ctx context.Context, logger *slog.Logger) error {
	pool, err := d.DB.Pool(ctx)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	return postgres.Migrate(ctx, pool, logger)
}

// Close releases whatever was opened.
func (d *Deps) Close() error {
	d.DB.Close()
	if err := d.Enricher.Close(); err != nil {
		return fmt.Errorf("close enrichment client: %w", err)
	}
	return nil
}
