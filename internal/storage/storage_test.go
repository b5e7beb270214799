package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HenryVilani/directory-lint/api"
)

// backends returns every implementation so the contract tests run against each.
func backends(t *testing.T) map[string]api.Backend {
	t.Helper()

	db, err := OpenSQLite(filepath.Join(t.TempDir(), "tree.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return map[string]api.Backend{
		"memory": NewMemory(),
		"os":     NewOS(t.TempDir()),
		"sqlite": db,
	}
}

func TestBackend_Contract(t *testing.T) {
	ctx := context.Background()

	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ok, err := b.Exists(ctx, "/proj")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, b.CreateDirectory(ctx, "/proj", false))
			require.NoError(t, b.CreateDirectory(ctx, "/proj/src/pkg", true))
			require.NoError(t, b.WriteContent(ctx, "/proj/README.md", []byte("# hi")))
			require.NoError(t, b.WriteContent(ctx, "/proj/src/main.go", []byte("package main")))

			ok, err = b.Exists(ctx, "/proj/src/pkg")
			require.NoError(t, err)
			assert.True(t, ok)

			entries, err := b.ListEntries(ctx, "/proj")
			require.NoError(t, err)
			assert.Equal(t, []api.DirEntry{
				{Name: "README.md", Type: api.FileType},
				{Name: "src", Type: api.DirectoryType},
			}, entries)

			content, err := b.ReadContent(ctx, "/proj/src/main.go")
			require.NoError(t, err)
			assert.Equal(t, "package main", string(content))

			require.NoError(t, b.WriteContent(ctx, "/proj/README.md", []byte("# bye")))
			content, err = b.ReadContent(ctx, "/proj/README.md")
			require.NoError(t, err)
			assert.Equal(t, "# bye", string(content))
		})
	}
}

func TestBackend_NotFound(t *testing.T) {
	ctx := context.Background()

	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := b.ListEntries(ctx, "/missing")
			assert.ErrorIs(t, err, api.ErrNotFound)

			_, err = b.ReadContent(ctx, "/missing.txt")
			assert.ErrorIs(t, err, api.ErrNotFound)

			err = b.CreateDirectory(ctx, "/a/b/c", false)
			assert.ErrorIs(t, err, api.ErrNotFound)
		})
	}
}

func TestSQLite_EmptyFile(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.NoError(t, db.WriteContent(ctx, "empty.txt", nil))
	content, err := db.ReadContent(ctx, "/empty.txt")
	require.NoError(t, err)
	assert.Empty(t, content)

	entries, err := db.ListEntries(ctx, "/")
	require.NoError(t, err)
	assert.Equal(t, []api.DirEntry{{Name: "empty.txt", Type: api.FileType}}, entries)
}

func TestSQLite_TypeConflicts(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.NoError(t, db.CreateDirectory(ctx, "/dir", false))
	require.NoError(t, db.WriteContent(ctx, "/file", []byte("x")))

	assert.Error(t, db.WriteContent(ctx, "/dir", []byte("x")))
	assert.Error(t, db.CreateDirectory(ctx, "/file", false))
	_, err = db.ListEntries(ctx, "/file")
	assert.Error(t, err)
	_, err = db.ReadContent(ctx, "/dir")
	assert.Error(t, err)
}
