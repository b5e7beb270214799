package lint

import (
	"context"
	"fmt"
	"path/filepath"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/HenryVilani/directory-lint/api"
	"github.com/HenryVilani/directory-lint/internal/pattern"
)

// GenerateOptions controls Generate.
type GenerateOptions struct {
	// Overwrite rewrites files that already exist.
	Overwrite bool
	// Recursive creates missing parents of the root directory.
	Recursive bool
}

// Generate materializes schema under root. Existing entries are never removed
// or renamed; existing files are rewritten only with Overwrite.
//
// A /regex/ key anywhere in the schema fails the call before storage is touched.
func (l *Linter) Generate(ctx context.Context, root string, schema *api.Schema, opts GenerateOptions) (*api.GenerateResult, error) {
	ctx, span := l.tracer.Start(ctx, "lint.Generate", trace.WithAttributes(
		attribute.String("dirlint.root", root),
		attribute.Bool("dirlint.overwrite", opts.Overwrite),
	))
	defer span.End()

	if err := CheckGenerateSchema(root, schema); err != nil {
		return nil, fail(span, err)
	}

	res := &api.GenerateResult{Root: root}
	if err := l.ensureDir(ctx, root, opts.Recursive, res); err != nil {
		return nil, fail(span, err)
	}
	paths, err := l.generateLevel(ctx, root, schema, opts, res)
	if err != nil {
		return nil, fail(span, err)
	}
	res.Paths = paths

	span.SetAttributes(
		attribute.Int("dirlint.changes", len(res.Changes)),
		attribute.Int("dirlint.warnings", len(res.Warnings)),
	)
	l.log(ctx).Info("generated tree", "root", root, "changes", len(res.Changes), "warnings", len(res.Warnings))
	return res, nil
}

// CheckGenerateSchema rejects schemas that cannot be generated.
func CheckGenerateSchema(root string, schema *api.Schema) error {
	for _, e := range schema.Entries() {
		if pattern.IsRegex(e.Pattern) {
			return &PatternError{Path: root, Pattern: e.Pattern, Err: ErrRegexNotSupported}
		}
		if d, ok := e.Node.(*api.Directory); ok && d.Children != nil {
			name := generatedName(e)
			if name == "" {
				name = e.Pattern
			}
			if err := CheckGenerateSchema(filepath.Join(root, name), d.Children); err != nil {
				return err
			}
		}
	}
	return nil
}

// generatedName resolves the concrete name for a schema entry, or "" when a
// wildcard has no example.
func generatedName(e api.Entry) string {
	if ex := e.Node.ExampleName(); ex != "" {
		return ex
	}
	if pattern.IsWildcard(e.Pattern) {
		return ""
	}
	return e.Pattern
}

func (l *Linter) generateLevel(ctx context.Context, dir string, schema *api.Schema, opts GenerateOptions, res *api.GenerateResult) ([]*api.ResultNode, error) {
	nodes := make([]*api.ResultNode, 0, schema.Len())

	for _, e := range schema.Entries() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := generatedName(e)
		if name == "" {
			res.Warnings = append(res.Warnings, api.Warning{
				Kind:    api.ProblemMissing,
				Path:    patternPath(dir, e.Pattern),
				Message: fmt.Sprintf("wildcard %q has no example name, skipped", e.Pattern),
			})
			continue
		}
		full := filepath.Join(dir, name)

		switch n := e.Node.(type) {
		case *api.Directory:
			if err := l.ensureDir(ctx, full, opts.Recursive, res); err != nil {
				return nil, err
			}
			rn := &api.ResultNode{Name: name, Path: full, Type: api.DirectoryType}
			if n.Children != nil {
				children, err := l.generateLevel(ctx, full, n.Children, opts, res)
				if err != nil {
					return nil, err
				}
				rn.Children = children
			}
			nodes = append(nodes, rn)

		case *api.File:
			if err := l.writeFile(ctx, full, n, opts, res); err != nil {
				return nil, err
			}
			nodes = append(nodes, &api.ResultNode{Name: name, Path: full, Type: api.FileType})

		default:
			return nil, &PatternError{Path: dir, Pattern: e.Pattern, Err: fmt.Errorf("unsupported node %T", e.Node)}
		}
	}
	return nodes, nil
}

func (l *Linter) ensureDir(ctx context.Context, path string, recursive bool, res *api.GenerateResult) error {
	exists, err := l.backend.Exists(ctx, path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if exists {
		return nil
	}
	if err := l.backend.CreateDirectory(ctx, path, recursive); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	res.Changes = append(res.Changes, api.Change{Kind: api.ChangeCreatedDirectory, Path: path})
	l.log(ctx).Debug("created directory", "path", path)
	return nil
}

func (l *Linter) writeFile(ctx context.Context, path string, f *api.File, opts GenerateOptions, res *api.GenerateResult) error {
	exists, err := l.backend.Exists(ctx, path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if exists && !opts.Overwrite {
		return nil
	}

	content, err := f.Render()
	if err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	if err := l.backend.WriteContent(ctx, path, []byte(content)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	kind := api.ChangeCreatedFile
	if exists {
		kind = api.ChangeOverwroteFile
	}
	res.Changes = append(res.Changes, api.Change{Kind: kind, Path: path})
	l.log(ctx).Debug("wrote file", "path", path, "bytes", len(content), "overwrite", exists)
	return nil
}
