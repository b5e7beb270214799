package schemafile

import (
	"errors"
	"fmt"

	"github.com/HenryVilani/directory-lint/api"
	"github.com/HenryVilani/directory-lint/internal/check"
)

// rawNode is the format-neutral form of one schema node.
type rawNode struct {
	Type     string
	Required *bool
	Example  string
	Content  string
	Template string
	Validate *check.Rules
	Children []rawEntry // nil when absent
}

type rawEntry struct {
	Pattern string
	Node    *rawNode
}

// build converts raw entries into a schema. at is the key path of the
// enclosing directory, used in errors.
func build(entries []rawEntry, at string, vars map[string]any) (*api.Schema, error) {
	s := api.NewSchema()
	for _, e := range entries {
		p := joinKey(at, e.Pattern)
		if e.Pattern == "" {
			return nil, &Error{Path: at, Err: errors.New("empty pattern")}
		}
		if _, dup := s.Get(e.Pattern); dup {
			return nil, &Error{Path: p, Err: errors.New("duplicate pattern")}
		}
		n, err := buildNode(e.Node, e.Pattern, p, vars)
		if err != nil {
			return nil, err
		}
		s.Set(e.Pattern, n)
	}
	return s, nil
}

func buildNode(r *rawNode, pattern, at string, vars map[string]any) (api.Node, error) {
	if r == nil {
		return nil, &Error{Path: at, Err: errors.New("missing node definition")}
	}
	optional := r.Required != nil && !*r.Required

	switch api.NodeType(r.Type) {
	case api.DirectoryType, "dir":
		if r.Content != "" || r.Template != "" || r.Validate != nil {
			return nil, &Error{Path: at, Err: errors.New("content, template and validate only apply to files")}
		}
		d := &api.Directory{Optional: optional, Example: r.Example}
		if r.Children != nil {
			children, err := build(r.Children, at, vars)
			if err != nil {
				return nil, err
			}
			d.Children = children
		}
		return d, nil

	case api.FileType:
		if r.Children != nil {
			return nil, &Error{Path: at, Err: errors.New("children only apply to directories")}
		}
		f := &api.File{Optional: optional, Example: r.Example, Content: r.Content}
		if r.Template != "" {
			tmpl, err := compileTemplate(at, r.Template, vars)
			if err != nil {
				return nil, &Error{Path: at, Err: err}
			}
			f.Template = tmpl
		}
		if r.Validate != nil {
			name := pattern
			if r.Example != "" {
				name = r.Example
			}
			v, err := r.Validate.Build(name)
			if err != nil {
				return nil, &Error{Path: at, Err: err}
			}
			if v != nil {
				f.Validate = v
			}
		}
		return f, nil

	case "":
		return nil, &Error{Path: at, Err: errors.New("missing type")}
	default:
		return nil, &Error{Path: at, Err: fmt.Errorf("unknown type %q", r.Type)}
	}
}
