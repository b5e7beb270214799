// Package infer derives a schema from an existing tree.
package infer

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/HenryVilani/directory-lint/api"
	"github.com/HenryVilani/directory-lint/internal/ctxlog"
	"github.com/HenryVilani/directory-lint/internal/pattern"
)

// Options bounds a Snapshot walk.
type Options struct {
	// MaxDepth limits how many directory levels are described; 0 means no limit.
	// Directories at the limit get no children schema.
	MaxDepth int
	// Ignore lists names or doublestar globs left out of the schema.
	Ignore []string
}

// Result is a derived schema plus the entries left out of it.
type Result struct {
	Schema *api.Schema
	// Warnings lists entries whose names cannot be written as literal keys.
	Warnings []api.Warning
}

// Snapshot describes every entry under root as a required literal node.
// File content is not captured. Entries whose name would read back as a
// wildcard or regex key are skipped with a warning.
func Snapshot(ctx context.Context, backend api.Backend, root string, opts Options) (*Result, error) {
	ign, err := pattern.NewIgnore(root, opts.Ignore)
	if err != nil {
		return nil, err
	}
	w := &walker{backend: backend, ign: ign, maxDepth: opts.MaxDepth}
	s, err := w.snapshot(ctx, root, 1)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("inferred schema", "root", root, "entries", w.count, "skipped", len(w.warnings))
	return &Result{Schema: s, Warnings: w.warnings}, nil
}

type walker struct {
	backend  api.Backend
	ign      *pattern.Ignore
	maxDepth int
	count    int
	warnings []api.Warning
}

func (w *walker) snapshot(ctx context.Context, dir string, depth int) (*api.Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items, err := w.backend.ListEntries(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	s := api.NewSchema()
	for _, item := range items {
		full := filepath.Join(dir, item.Name)
		if w.ign.Match(item.Name, full) {
			continue
		}
		if !pattern.IsLiteral(item.Name) {
			w.warnings = append(w.warnings, api.Warning{
				Path:    full,
				Message: fmt.Sprintf("name %q reads as a pattern, skipped", item.Name),
			})
			continue
		}
		w.count++
		if item.Type == api.FileType {
			s.Set(item.Name, &api.File{})
			continue
		}
		d := &api.Directory{}
		if w.maxDepth == 0 || depth < w.maxDepth {
			children, err := w.snapshot(ctx, full, depth+1)
			if err != nil {
				return nil, err
			}
			d.Children = children
		}
		s.Set(item.Name, d)
	}
	return s, nil
}
