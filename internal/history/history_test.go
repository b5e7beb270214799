package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HenryVilani/directory-lint/api"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndGet(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	res := &api.ValidateResult{Root: "/proj", Valid: true, Errors: []api.Problem{}}
	res.AddError(api.ProblemMissing, "/proj/a", "required file \"a\" not found")
	res.AddError(api.ProblemCustom, "/proj/b", "invalid content: not empty")

	id, err := s.Record(ctx, "dirlint.yaml", time.Now().Add(-time.Second), res)
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	run, problems, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "/proj", run.Root)
	assert.Equal(t, "dirlint.yaml", run.Schema)
	assert.False(t, run.Valid)
	assert.Equal(t, 2, run.Errors)
	assert.GreaterOrEqual(t, run.Duration, time.Second)
	assert.Equal(t, res.Errors, problems)

	_, _, err = s.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestListAndPrune(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	base := time.Now().Add(-time.Hour)
	var ids []string
	for i := 0; i < 3; i++ {
		id, err := s.Record(ctx, "s.json", base.Add(time.Duration(i)*time.Minute), &api.ValidateResult{Root: "/r", Valid: true})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	runs, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, ids[2], runs[0].ID, "newest first")
	assert.True(t, runs[0].Valid)

	runs, err = s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	n, err := s.Prune(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	runs, err = s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, ids[2], runs[0].ID)
}
