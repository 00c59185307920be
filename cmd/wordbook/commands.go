package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/wordbook/internal/app"
	"github.com/heartmarshall/wordbook/internal/domain"
	"github.com/heartmarshall/wordbook/internal/service/dictionary"
)

func newMigrateCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := e.migrate(cmd.Context(), e); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			color.New(color.FgGreen).Fprintln(e.out, "schema is up to date")
			return nil
		},
	}
}

func newLookupCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <language> <term>",
		Short: "Show a stored entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withService(cmd.Context(), func(svc dictionaryService) error {
				entry, err := svc.GetEntry(cmd.Context(), dictionary.GetEntryInput{Language: args[0], Term: args[1]})
				if err != nil {
					return err
				}
				return e.printEntry(entry)
			})
		},
	}
}

func newAddCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "add <language> <term> <definition>",
		Short: "Store an entry with a hand-written definition",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withService(cmd.Context(), func(svc dictionaryService) error {
				entry, err := svc.CreateEntry(cmd.Context(), dictionary.CreateEntryInput{
					Language:   args[0],
					Term:       args[1],
					Definition: args[2],
				})
				if err != nil {
					return err
				}
				return e.printEntry(entry)
			})
		},
	}
}

func newGenerateCommand(e *env) *cobra.Command {
	var language string
	cmd := &cobra.Command{
		Use:   "generate <term>",
		Short: "Return the stored entry for a term, generating and storing it when missing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withService(cmd.Context(), func(svc dictionaryService) error {
				result, err := svc.GenerateEntry(cmd.Context(), dictionary.GenerateEntryInput{
					Term:     args[0],
					Language: language,
				})
				if err != nil {
					return err
				}
				if e.format == FormatText {
					c := color.New(color.FgYellow)
					if result.Outcome == dictionary.OutcomeCreated {
						c = color.New(color.FgGreen)
					}
					c.Fprintf(e.out, "[%s]\n", result.Outcome)
				}
				return e.printEntry(result.Entry)
			})
		},
	}
	cmd.Flags().StringVarP(&language, "language", "l", "", "language to check before generating")
	return cmd
}

func newListCommand(e *env) *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries in insertion order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var input dictionary.ListEntriesInput
			if cmd.Flags().Changed("limit") {
				input.Limit = &limit
			}
			if cmd.Flags().Changed("offset") {
				input.Offset = &offset
			}
			return e.withService(cmd.Context(), func(svc dictionaryService) error {
				entries, err := svc.ListEntries(cmd.Context(), input)
				if err != nil {
					return err
				}
				return e.printEntries(entries)
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of entries (default from config)")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of entries to skip")
	return cmd
}

func newDeleteCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an entry and its sentences",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return domain.NewValidationError("id", "must be an integer")
			}
			return e.withService(cmd.Context(), func(svc dictionaryService) error {
				if err := svc.DeleteEntry(cmd.Context(), id); err != nil {
					return err
				}
				color.New(color.FgGreen).Fprintf(e.out, "deleted %d\n", id)
				return nil
			})
		},
	}
}

func newVersionCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			fmt.Fprintln(e.out, app.BuildVersion())
		},
	}
}
