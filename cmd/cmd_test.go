package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HenryVilani/directory-lint/internal/history"
	"github.com/HenryVilani/directory-lint/internal/schemafile"
)

// resetFlags clears state cobra keeps between executions of the package-level commands.
func resetFlags() {
	// Map flags merge into their target once set, so reset to empty maps.
	for _, f := range []*schemaFlags{&genSchema, &valSchema, &previewSchema} {
		*f = schemaFlags{options: map[string]string{}, vars: map[string]string{}}
	}
	genOverwrite, genRecursive, genDryRun, genLockDir = false, false, false, ""
	valIgnore, valHistory = nil, false
	inferDepth, inferIgnore, inferOut = 0, nil, ""
	presetOpts, presetFormat = map[string]string{}, "yaml"
	historyLimit, historyKeep = 20, 100
	backend, sqlitePath, logLevel, logFormat = "", "", "", ""
	output = "text"

	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(rootCmd)
}

// run executes dirlint with args in an isolated config environment.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	home := t.TempDir()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{
		"--config", filepath.Join(home, "missing.yaml"),
		"--env-file", filepath.Join(home, "missing.env"),
		"--log-level", "error",
	}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestGenerateThenValidate_Preset(t *testing.T) {
	root := t.TempDir()

	out, err := run(t, "generate", root, "--preset", "express", "--lock-dir", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(root, "src", "index.ts"))
	assert.FileExists(t, filepath.Join(root, "package.json"))

	out, err = run(t, "validate", root, "--preset", "express")
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
}

func TestValidate_InvalidTree(t *testing.T) {
	root := t.TempDir()

	out, err := run(t, "validate", root, "--preset", "express")
	require.ErrorIs(t, err, errTreeInvalid)
	assert.Contains(t, out, "is invalid")
	assert.Contains(t, out, `required file "package.json" not found`)
}

func TestValidate_IgnoreFlag(t *testing.T) {
	root := t.TempDir()
	schema := filepath.Join(t.TempDir(), "schema.yaml")
	writeFile(t, schema, `
schema:
  build:
    type: file
`)
	require.NoError(t, os.Mkdir(filepath.Join(root, "build"), 0o755))

	_, err := run(t, "validate", root, "--schema", schema)
	require.ErrorIs(t, err, errTreeInvalid)

	// An ignored entry is not checked but still satisfies the required key.
	out, err := run(t, "validate", root, "--schema", schema, "--ignore", "build")
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
	assert.Contains(t, out, "matched only ignored entries")
}

func TestGenerate_SchemaFileJSONReport(t *testing.T) {
	root := t.TempDir()
	schema := filepath.Join(t.TempDir(), "schema.yaml")
	writeFile(t, schema, `
vars:
  name: demo
schema:
  README.md:
    type: file
    template: "# {{ .name }}"
  docs:
    type: directory
`)

	out, err := run(t, "-o", "json", "generate", root, "--schema", schema, "--var", "name=dirlint", "--lock-dir", t.TempDir())
	require.NoError(t, err)

	var res struct {
		Changes []struct {
			Kind string `json:"kind"`
			Path string `json:"path"`
		} `json:"changes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Changes, 2)
	assert.Equal(t, filepath.Join(root, "README.md"), res.Changes[0].Path)

	data, err := os.ReadFile(filepath.Join(root, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "# dirlint", string(data))
	assert.DirExists(t, filepath.Join(root, "docs"))
}

func TestGenerate_DryRunLeavesDiskUntouched(t *testing.T) {
	root := t.TempDir()

	out, err := run(t, "generate", root, "--preset", "vite", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "index.html")

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerate_MissingSchema(t *testing.T) {
	_, err := run(t, "generate", t.TempDir(), "--schema", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, errTreeInvalid)
}

func TestInfer_RoundTrip(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "module x\n")
	writeFile(t, filepath.Join(root, "cmd", "main.go"), "package main\n")
	writeFile(t, filepath.Join(root, ".git", "HEAD"), "ref\n")

	for _, name := range []string{"schema.yaml", "schema.json"} {
		t.Run(name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), name)
			_, err := run(t, "infer", root, "--ignore", ".git", "--out", out)
			require.NoError(t, err)

			doc, err := schemafile.Load(out, schemafile.Options{})
			require.NoError(t, err)
			_, hasGit := doc.Schema.Get(".git")
			assert.False(t, hasGit)
			_, hasCmd := doc.Schema.Get("cmd")
			assert.True(t, hasCmd)

			_, err = run(t, "validate", root, "--schema", out)
			require.NoError(t, err)
		})
	}
}

func TestPreset_List(t *testing.T) {
	out, err := run(t, "preset", "list")
	require.NoError(t, err)
	for _, name := range []string{"angular", "astro", "electron", "express", "gatsby", "monorepo", "nestjs", "nextjs", "nuxt", "react", "remix", "svelte", "vite", "vue"} {
		assert.Contains(t, out, name)
	}
}

func TestPreset_ShowIsLoadable(t *testing.T) {
	for _, format := range []string{"yaml", "json"} {
		t.Run(format, func(t *testing.T) {
			out, err := run(t, "preset", "show", "react", "--format", format, "--opt", "typescript=false")
			require.NoError(t, err)

			doc, err := schemafile.Parse([]byte(out), "react."+format, schemafile.Options{})
			require.NoError(t, err)
			_, ok := doc.Schema.Get("src")
			assert.True(t, ok)
		})
	}
}

func TestPreset_UnknownOption(t *testing.T) {
	_, err := run(t, "preset", "show", "react", "--opt", "bogus=1")
	require.Error(t, err)
}

func TestHistory(t *testing.T) {
	root := t.TempDir()
	db := filepath.Join(t.TempDir(), "history.db")
	t.Setenv("DIRLINT_HISTORY_DB", db)

	_, err := run(t, "validate", root, "--preset", "express", "--history")
	require.ErrorIs(t, err, errTreeInvalid)
	_, err = run(t, "generate", root, "--preset", "express", "--lock-dir", t.TempDir())
	require.NoError(t, err)
	_, err = run(t, "validate", root, "--preset", "express", "--history")
	require.NoError(t, err)

	out, err := run(t, "-o", "json", "history", "list")
	require.NoError(t, err)
	var runs []history.Run
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	require.Len(t, runs, 2)
	assert.True(t, runs[0].Valid, "newest run first")
	assert.Equal(t, "preset:express", runs[1].Schema)

	out, err = run(t, "history", "show", runs[1].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "is invalid")

	out, err = run(t, "history", "prune", "--keep", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "pruned 1 runs")

	_, err = run(t, "history", "show", runs[1].ID)
	require.ErrorIs(t, err, history.ErrRunNotFound)
}

func TestBackendFlag_SQLite(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tree.db")

	_, err := run(t, "--backend", "sqlite", "--sqlite-path", db, "generate", "app", "--preset", "express", "--recursive")
	require.NoError(t, err)

	out, err := run(t, "--backend", "sqlite", "--sqlite-path", db, "validate", "app", "--preset", "express")
	require.NoError(t, err)
	assert.Contains(t, out, "/app is valid")
}
