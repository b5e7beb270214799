package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, BackendOS, cfg.Backend)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 10*time.Second, cfg.LockTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".dirlint.yaml")
	content := `backend: sqlite
sqlite_path: tree.db
lock_timeout: 1m
ignore: [node_modules, dist]
log:
  level: debug
history:
  enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "tree.db", cfg.SQLitePath)
	assert.Equal(t, time.Minute, cfg.LockTimeout)
	assert.Equal(t, []string{"node_modules", "dist"}, cfg.Ignore)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format, "unset keys keep their defaults")
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, ".dirlint/history.db", cfg.History.DBPath)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log: [\n"), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(env(map[string]string{
		"DIRLINT_BACKEND":       "memory",
		"DIRLINT_LOG_FORMAT":    "json",
		"DIRLINT_IGNORE":        "a, b,,",
		"DIRLINT_OTEL_ENDPOINT": "localhost:4318",
		"DIRLINT_HISTORY":       "true",
		"DIRLINT_LOCK_TIMEOUT":  "250ms",
	}))
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"a", "b"}, cfg.Ignore)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "localhost:4318", cfg.Telemetry.Endpoint)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, 250*time.Millisecond, cfg.LockTimeout)

	assert.Error(t, DefaultConfig().ApplyEnv(env(map[string]string{"DIRLINT_HISTORY": "sometimes"})))
	assert.Error(t, DefaultConfig().ApplyEnv(env(map[string]string{"DIRLINT_LOCK_TIMEOUT": "soon"})))
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	dotenv := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("DIRLINT_LOG_LEVEL=warn\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("DIRLINT_LOG_LEVEL") })

	cfg, err := Load(filepath.Join(dir, "missing.yaml"), dotenv)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)

	_, err = Load(filepath.Join(dir, "missing.yaml"), filepath.Join(dir, "none.env"))
	assert.NoError(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"backend", func(c *Config) { c.Backend = "s3" }},
		{"sqlite path", func(c *Config) { c.Backend = BackendSQLite; c.SQLitePath = "" }},
		{"log level", func(c *Config) { c.Log.Level = "trace" }},
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
		{"lock timeout", func(c *Config) { c.LockTimeout = -time.Second }},
		{"telemetry endpoint", func(c *Config) { c.Telemetry.Enabled = true }},
		{"history db", func(c *Config) { c.History.Enabled = true; c.History.DBPath = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
