package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/HenryVilani/directory-lint/api"
	"github.com/HenryVilani/directory-lint/internal/config"
	"github.com/HenryVilani/directory-lint/internal/ctxlog"
	"github.com/HenryVilani/directory-lint/internal/report"
	"github.com/HenryVilani/directory-lint/internal/storage"
	"github.com/HenryVilani/directory-lint/internal/telemetry"
	"github.com/HenryVilani/directory-lint/lint"
)

// Set at build time with -ldflags "-X github.com/HenryVilani/directory-lint/cmd.version=..."
var version = "dev"

// errTreeInvalid makes the process exit 1 after the report is printed.
var errTreeInvalid = errors.New("tree is invalid")

var (
	configPath string
	envFile    string
	logLevel   string
	logFormat  string
	backend    string
	sqlitePath string
	output     string

	cfg      *config.Config
	shutdown telemetry.Shutdown
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", config.DefaultPath, "Path to the dirlint config file")
	pf.StringVar(&envFile, "env-file", ".env", "Path to a .env file (ignored when missing)")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "", "Log format: text or json")
	pf.StringVar(&backend, "backend", "", "Storage backend: os, memory or sqlite")
	pf.StringVar(&sqlitePath, "sqlite-path", "", "Database file for the sqlite backend")
	pf.StringVarP(&output, "output", "o", report.FormatText, "Report format: text or json")
}

var rootCmd = &cobra.Command{
	Use:           "dirlint",
	Short:         "dirlint: scaffold and validate directory trees against a schema",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath, envFile)
		if err != nil {
			return err
		}
		// Flags override config values
		flags := cmd.Flags()
		if flags.Changed("log-level") {
			c.Log.Level = logLevel
		}
		if flags.Changed("log-format") {
			c.Log.Format = logFormat
		}
		if flags.Changed("backend") {
			c.Backend = backend
		}
		if flags.Changed("sqlite-path") {
			c.SQLitePath = sqlitePath
		}
		if err := c.Validate(); err != nil {
			return err
		}
		cfg = c

		logger := ctxlog.New(os.Stderr, c.Log.Format, c.Log.Level)
		slog.SetDefault(logger)
		ctx := ctxlog.WithLogger(cmd.Context(), logger)

		shutdown, err = telemetry.Setup(ctx, c.Telemetry, version)
		if err != nil {
			return err
		}
		cmd.SetContext(ctx)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if shutdown == nil {
			return nil
		}
		return shutdown(context.WithoutCancel(cmd.Context()))
	},
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}
	if errors.Is(err, errTreeInvalid) {
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(2)
}

// openBackend returns the configured backend and the root path to hand to
// the engine. The os backend works on absolute paths.
func openBackend(root string) (api.Backend, string, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Backend {
	case config.BackendMemory:
		return storage.NewMemory(), filepath.Clean("/" + root), noop, nil
	case config.BackendSQLite:
		db, err := storage.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, "", nil, err
		}
		return db, filepath.Clean("/" + root), db.Close, nil
	default:
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, "", nil, fmt.Errorf("resolve %s: %w", root, err)
		}
		return storage.NewOS("/"), abs, noop, nil
	}
}

func newLinter(b api.Backend) *lint.Linter {
	return lint.New(b)
}

func printer(cmd *cobra.Command) (*report.Printer, error) {
	return report.New(cmd.OutOrStdout(), output)
}

func rootArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
