package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/heartmarshall/wordbook/internal/app"
	"github.com/heartmarshall/wordbook/internal/config"
	"github.com/heartmarshall/wordbook/internal/domain"
	"github.com/heartmarshall/wordbook/internal/service/dictionary"
)

type dictionaryService interface {
	GetEntry(ctx context.Context, input dictionary.GetEntryInput) (domain.Entry, error)
	CreateEntry(ctx context.Context, input dictionary.CreateEntryInput) (domain.Entry, error)
	GenerateEntry(ctx context.Context, input dictionary.GenerateEntryInput) (dictionary.GenerateResult, error)
	ListEntries(ctx context.Context, input dictionary.ListEntriesInput) ([]domain.Entry, error)
	DeleteEntry(ctx context.Context, id int64) error
}

// Format selects how entries are printed.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

var (
	_          pflag.Value = (*Format)(nil)
	allFormats             = []Format{FormatText, FormatYAML}
)

func (f *Format) Set(val string) error {
	for _, format := range allFormats {
		if val == string(format) {
			*f = format
			return nil
		}
	}
	return fmt.Errorf("invalid format: %s", val)
}

func (f Format) String() string {
	return string(f)
}

func (f *Format) Type() string {
	return "format"
}

// env is what every subcommand shares. open is replaced in tests.
type env struct {
	out        io.Writer
	configFile string
	format     Format
	open       func(ctx context.Context, e *env) (dictionaryService, func(), error)
	migrate    func(ctx context.Context, e *env) error
}

func newEnv(out io.Writer) *env {
	return &env{
		out:     out,
		format:  FormatText,
		open:    openService,
		migrate: runMigrations,
	}
}

func newRootCommand(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:           "wordbook",
		Short:         "Manage the wordbook dictionary",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.StringVarP(&e.configFile, "config", "c", "", "path to config.yaml (default $CONFIG_PATH or ./config.yaml)")
	flags.VarP(&e.format, "output", "o", fmt.Sprintf("output format. Possible values are %v", allFormats))

	root.AddCommand(
		newMigrateCommand(e),
		newLookupCommand(e),
		newAddCommand(e),
		newGenerateCommand(e),
		newListCommand(e),
		newDeleteCommand(e),
		newVersionCommand(e),
	)
	return root
}

func (e *env) loadConfig() (*config.Config, error) {
	if e.configFile != "" {
		return config.LoadFrom(e.configFile)
	}
	return config.Load()
}

func openService(_ context.Context, e *env) (dictionaryService, func(), error) {
	cfg, err := e.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := app.NewLogger(cfg.Log)

	deps, err := app.Wire(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return deps.Dictionary, func() { _ = deps.Close() }, nil
}

func runMigrations(ctx context.Context, e *env) error {
	cfg, err := e.loadConfig()
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg.Log)

	deps, err := app.Wire(cfg, logger)
	if err != nil {
		return err
	}
	defer deps.Close() //nolint:errcheck
	return deps.Migrate(ctx, logger)
}

// withService opens the service for the duration of fn.
func (e *env) withService(ctx context.Context, fn func(svc dictionaryService) error) error {
	svc, closeFn, err := e.open(ctx, e)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(svc)
}
