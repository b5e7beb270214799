// Package config loads dirlint settings. Precedence, lowest first: defaults,
// the YAML config file, a .env file, DIRLINT_* environment variables, and
// finally command-line flags applied by the cmd package.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = ".dirlint.yaml"

// Backend names.
const (
	BackendOS     = "os"
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// LogConfig selects the slog handler.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is text or json.
	Format string `yaml:"format"`
}

// TelemetryConfig controls OpenTelemetry tracing.
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"`
	Insecure    bool   `yaml:"insecure"`
	ServiceName string `yaml:"service_name"`
}

// HistoryConfig controls the validation run history database.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
}

// Config represents dirlint configuration options
type Config struct {
	// Schema is the schema file used when a command gets none.
	Schema string `yaml:"schema"`

	// Backend is the storage a command operates on: os, memory or sqlite.
	Backend string `yaml:"backend"`

	// SQLitePath is the database file for the sqlite backend.
	SQLitePath string `yaml:"sqlite_path"`

	// Ignore is appended to the ignore list of every validation.
	Ignore []string `yaml:"ignore"`

	// LockTimeout bounds the wait for the generation lock (0 = fail immediately).
	LockTimeout time.Duration `yaml:"lock_timeout"`

	// PreviewAddr is the listen address of the NFS preview server.
	PreviewAddr string `yaml:"preview_addr"`

	Log       LogConfig       `yaml:"log"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	History   HistoryConfig   `yaml:"history"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Schema:      "dirlint.yaml",
		Backend:     BackendOS,
		SQLitePath:  "dirlint.db",
		LockTimeout: 10 * time.Second,
		PreviewAddr: "127.0.0.1:2049",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "dirlint",
		},
		History: HistoryConfig{
			DBPath: ".dirlint/history.db",
		},
	}
}

// LoadConfig loads configuration from path on top of the defaults.
// A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDotEnv loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

// ApplyEnv overrides fields from DIRLINT_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = b
		return nil
	}

	str("DIRLINT_SCHEMA", &c.Schema)
	str("DIRLINT_BACKEND", &c.Backend)
	str("DIRLINT_SQLITE_PATH", &c.SQLitePath)
	str("DIRLINT_PREVIEW_ADDR", &c.PreviewAddr)
	str("DIRLINT_LOG_LEVEL", &c.Log.Level)
	str("DIRLINT_LOG_FORMAT", &c.Log.Format)
	str("DIRLINT_HISTORY_DB", &c.History.DBPath)
	str("DIRLINT_OTEL_SERVICE_NAME", &c.Telemetry.ServiceName)
	if v, ok := lookup("DIRLINT_OTEL_ENDPOINT"); ok && v != "" {
		c.Telemetry.Endpoint = v
		c.Telemetry.Enabled = true
	}
	if v, ok := lookup("DIRLINT_IGNORE"); ok && v != "" {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				c.Ignore = append(c.Ignore, p)
			}
		}
	}
	if v, ok := lookup("DIRLINT_LOCK_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("DIRLINT_LOCK_TIMEOUT: %w", err)
		}
		c.LockTimeout = d
	}
	if err := boolean("DIRLINT_HISTORY", &c.History.Enabled); err != nil {
		return err
	}
	return boolean("DIRLINT_OTEL_INSECURE", &c.Telemetry.Insecure)
}

// Load resolves the full configuration: file, .env, then the environment.
func Load(path, dotenv string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if dotenv != "" {
		if err := LoadDotEnv(dotenv); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendOS, BackendMemory:
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("sqlite_path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("invalid backend %q, must be one of: os, memory, sqlite", c.Backend)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q, must be one of: debug, info, warn, error", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q, must be text or json", c.Log.Format)
	}

	if c.LockTimeout < 0 {
		return fmt.Errorf("lock_timeout must be >= 0, got %v", c.LockTimeout)
	}
	if c.Telemetry.Enabled && c.Telemetry.Endpoint == "" {
		return fmt.Errorf("telemetry.endpoint is required when telemetry is enabled")
	}
	if c.History.Enabled && c.History.DBPath == "" {
		return fmt.Errorf("history.db_path is required when history is enabled")
	}
	return nil
}
