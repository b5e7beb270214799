package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HenryVilani/directory-lint/internal/ctxlog"
	"github.com/HenryVilani/directory-lint/internal/storage"
	"github.com/HenryVilani/directory-lint/lint"
)

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func newServer() *Server {
	b := storage.NewMemory()
	return New(lint.New(b, lint.WithLogger(ctxlog.Discard())), "test", []string{"node_modules"})
}

func TestGenerateThenValidate(t *testing.T) {
	ctx := context.Background()
	s := newServer()

	res, err := s.generateTree(ctx, call(map[string]any{
		"root":           "/app",
		"preset":         "express",
		"preset_options": map[string]any{"typescript": false},
		"recursive":      true,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	var gen struct {
		Changes []map[string]string `json:"changes"`
	}
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &gen))
	assert.NotEmpty(t, gen.Changes)

	res, err = s.validateTree(ctx, call(map[string]any{
		"root":           "/app",
		"preset":         "express",
		"preset_options": map[string]any{"typescript": "false"},
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	var val struct {
		Valid bool `json:"valid"`
	}
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &val))
	assert.True(t, val.Valid)
}

func TestValidate_Errors(t *testing.T) {
	ctx := context.Background()
	s := newServer()

	res, err := s.validateTree(ctx, call(map[string]any{"preset": "react"}))
	require.NoError(t, err)
	assert.True(t, res.IsError, "root is required")

	res, err = s.validateTree(ctx, call(map[string]any{"root": "/x"}))
	require.NoError(t, err)
	assert.True(t, res.IsError, "a schema source is required")

	res, err = s.validateTree(ctx, call(map[string]any{"root": "/missing", "preset": "react"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestListPresets(t *testing.T) {
	res, err := newServer().listPresets(context.Background(), call(nil))
	require.NoError(t, err)

	var list []presetInfo
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &list))
	require.Len(t, list, 6)
	assert.Equal(t, "express", list[0].Name)
}
