package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/HenryVilani/directory-lint/internal/ctxlog"
	"github.com/HenryVilani/directory-lint/internal/history"
	"github.com/HenryVilani/directory-lint/lint"
)

var (
	valSchema  schemaFlags
	valIgnore  []string
	valHistory bool
)

func init() {
	valSchema.register(validateCmd)
	validateCmd.Flags().StringSliceVar(&valIgnore, "ignore", nil, "Entry names or doublestar globs to skip (repeatable)")
	validateCmd.Flags().BoolVar(&valHistory, "history", false, "Record the run in the history database")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [root]",
	Short: "Check a directory tree against a schema",
	Long: `Walks root (default: current directory) and reports every missing entry,
type mismatch and failed content check. Exits 1 when the tree is invalid.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		doc, src, err := valSchema.load()
		if err != nil {
			return err
		}
		p, err := printer(cmd)
		if err != nil {
			return err
		}
		b, root, closeBackend, err := openBackend(rootArg(args))
		if err != nil {
			return err
		}
		defer closeBackend()

		ignore := append(append(append([]string{}, cfg.Ignore...), doc.Ignore...), valIgnore...)
		started := time.Now()
		res, err := newLinter(b).Validate(ctx, root, doc.Schema, lint.ValidateOptions{Ignore: ignore})
		if err != nil {
			return err
		}

		if valHistory || cfg.History.Enabled {
			store, err := history.Open(cfg.History.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()
			id, err := store.Record(ctx, src.Name(), started, res)
			if err != nil {
				return err
			}
			ctxlog.FromContext(ctx).Info("recorded run", "id", id, "db", cfg.History.DBPath)
		}

		if err := p.Validate(res); err != nil {
			return err
		}
		if !res.Valid {
			return errTreeInvalid
		}
		return nil
	},
}
