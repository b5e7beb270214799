package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HenryVilani/directory-lint/internal/config"
	"github.com/HenryVilani/directory-lint/internal/ctxlog"
	"github.com/HenryVilani/directory-lint/internal/filelock"
	"github.com/HenryVilani/directory-lint/internal/report"
	"github.com/HenryVilani/directory-lint/lint"
)

var (
	genSchema    schemaFlags
	genOverwrite bool
	genRecursive bool
	genDryRun    bool
	genLockDir   string
)

func init() {
	genSchema.register(generateCmd)
	generateCmd.Flags().BoolVar(&genOverwrite, "overwrite", false, "Rewrite files that already exist")
	generateCmd.Flags().BoolVarP(&genRecursive, "recursive", "r", false, "Create missing parents of the root")
	generateCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "Generate into memory and print the resulting tree")
	generateCmd.Flags().StringVar(&genLockDir, "lock-dir", "", "Directory for generation lock files (default: system temp dir)")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate [root]",
	Short: "Create the directories and files a schema describes",
	Long: `Materializes the schema under root (default: current directory).
Existing entries are never removed; existing files are only rewritten with --overwrite.
Wildcard keys are created under their example name; /regex/ keys are rejected.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		doc, src, err := genSchema.load()
		if err != nil {
			return err
		}
		p, err := printer(cmd)
		if err != nil {
			return err
		}

		if genDryRun {
			cfg.Backend = config.BackendMemory
		}
		b, root, closeBackend, err := openBackend(rootArg(args))
		if err != nil {
			return err
		}
		defer closeBackend()

		if cfg.Backend == config.BackendOS {
			lock, err := filelock.New(genLockDir, root)
			if err != nil {
				return err
			}
			if err := lock.Acquire(ctx, cfg.LockTimeout); err != nil {
				return fmt.Errorf("%s: %w", root, err)
			}
			defer lock.Unlock()
		}

		ctxlog.FromContext(ctx).Debug("generating", "root", root, "schema", src.Name(), "backend", cfg.Backend)
		res, err := newLinter(b).Generate(ctx, root, doc.Schema, lint.GenerateOptions{
			Overwrite: genOverwrite,
			Recursive: genRecursive || genDryRun,
		})
		if err != nil {
			return err
		}
		if err := p.Generate(res); err != nil {
			return err
		}
		if genDryRun && output == report.FormatText {
			p.Tree(res.Paths)
		}
		return nil
	},
}
