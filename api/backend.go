package api

import (
	"context"
	"errors"
)

// ErrNotFound is wrapped by Backend implementations when a path does not exist.
var ErrNotFound = errors.New("not found")

// DirEntry is one entry returned by Backend.ListEntries.
type DirEntry struct {
	Name string   `json:"name"`
	Type NodeType `json:"type"`
}

// Backend is the storage capability the lint engine walks.
// This allows the engine to run against a real filesystem, memory or a database.
type Backend interface {
	// ListEntries returns the direct entries of a directory.
	ListEntries(ctx context.Context, path string) ([]DirEntry, error)
	// ReadContent returns the content of a file.
	ReadContent(ctx context.Context, path string) ([]byte, error)
	// WriteContent creates or overwrites a file.
	WriteContent(ctx context.Context, path string, content []byte) error
	// CreateDirectory creates path. Missing parents are created only when recursive is set.
	CreateDirectory(ctx context.Context, path string, recursive bool) error
	// Exists reports whether path exists, whatever its type.
	Exists(ctx context.Context, path string) (bool, error)
}
