package lint

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/RoaringBitmap/roaring"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/HenryVilani/directory-lint/api"
	"github.com/HenryVilani/directory-lint/internal/pattern"
)

// ValidateOptions controls Validate.
type ValidateOptions struct {
	// Ignore lists entry names or doublestar globs to skip. A glob is tested
	// against the entry name and against its slash path relative to the root.
	// Ignored entries are not checked but still satisfy a required key.
	Ignore []string
}

// Validate checks the tree under root against schema and reports every
// structural and content problem it finds. Problems never fail the call;
// only malformed schemas, backend errors and context cancellation do.
func (l *Linter) Validate(ctx context.Context, root string, schema *api.Schema, opts ValidateOptions) (*api.ValidateResult, error) {
	ctx, span := l.tracer.Start(ctx, "lint.Validate", trace.WithAttributes(
		attribute.String("dirlint.root", root),
	))
	defer span.End()

	ign, err := pattern.NewIgnore(root, opts.Ignore)
	if err != nil {
		return nil, fail(span, err)
	}

	res := &api.ValidateResult{Root: root, Valid: true, Errors: []api.Problem{}}
	paths, err := l.validateLevel(ctx, root, schema, ign, res)
	if err != nil {
		return nil, fail(span, err)
	}
	res.Paths = paths

	span.SetAttributes(
		attribute.Bool("dirlint.valid", res.Valid),
		attribute.Int("dirlint.errors", len(res.Errors)),
	)
	l.log(ctx).Info("validated tree", "root", root, "valid", res.Valid, "errors", len(res.Errors), "warnings", len(res.Warnings))
	return res, nil
}

func (l *Linter) validateLevel(ctx context.Context, dir string, schema *api.Schema, ign *pattern.Ignore, res *api.ValidateResult) ([]*api.ResultNode, error) {
	items, err := l.backend.ListEntries(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	entries := schema.Entries()
	patterns := make([]string, len(entries))
	for i, e := range entries {
		patterns[i] = e.Pattern
	}

	// Positions in items already matched by an earlier pattern at this level.
	claimed := roaring.New()
	nodes := make([]*api.ResultNode, 0, len(items))

	for _, i := range pattern.Precedence(patterns) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e := entries[i]
		m, err := pattern.Compile(e.Pattern)
		if err != nil {
			return nil, &PatternError{Path: dir, Pattern: e.Pattern, Err: err}
		}

		var matched []uint32
		for j, item := range items {
			if !claimed.Contains(uint32(j)) && m.Match(item.Name) {
				matched = append(matched, uint32(j))
			}
		}

		if len(matched) == 0 {
			if e.Node.IsRequired() {
				res.AddError(api.ProblemMissing, patternPath(dir, e.Pattern),
					fmt.Sprintf("required %s %q not found", e.Node.Type(), e.Pattern))
			}
			continue
		}

		// Ignored entries still count as matches for the required check.
		ignored := 0
		for _, j := range matched {
			item := items[j]
			full := filepath.Join(dir, item.Name)
			if ign.Match(item.Name, full) {
				ignored++
				continue
			}
			claimed.Add(j)

			if item.Type != e.Node.Type() {
				res.AddError(api.ProblemInvalidType, full,
					fmt.Sprintf("expected %s for %q, found %s", e.Node.Type(), e.Pattern, item.Type))
				continue
			}

			rn := &api.ResultNode{Name: item.Name, Path: full, Type: item.Type}
			switch n := e.Node.(type) {
			case *api.Directory:
				if n.Children != nil {
					children, err := l.validateLevel(ctx, full, n.Children, ign, res)
					if err != nil {
						return nil, err
					}
					rn.Children = children
				}
			case *api.File:
				if err := l.checkContent(ctx, full, n, res); err != nil {
					return nil, err
				}
			}
			l.log(ctx).Debug("matched entry", "path", full, "pattern", e.Pattern)
			nodes = append(nodes, rn)
		}
		if ignored == len(matched) && e.Node.IsRequired() {
			res.AddWarning(api.ProblemMissing, patternPath(dir, e.Pattern),
				fmt.Sprintf("required %s %q matched only ignored entries", e.Node.Type(), e.Pattern))
		}
	}
	return nodes, nil
}

func (l *Linter) checkContent(ctx context.Context, path string, f *api.File, res *api.ValidateResult) error {
	content, err := l.backend.ReadContent(ctx, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if f.Validate == nil {
		return nil
	}

	ok, err := f.Validate.Validate(ctx, content)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		res.AddError(api.ProblemCustom, path, fmt.Sprintf("content check failed: %v", err))
		return nil
	}
	if !ok {
		res.AddError(api.ProblemCustom, path, "invalid content: "+describe(f.Validate))
	}
	return nil
}

func describe(v api.Validator) string {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return "validator rejected file"
}
