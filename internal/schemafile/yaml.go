package schemafile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/HenryVilani/directory-lint/internal/check"
)

type yamlNode struct {
	Type     string       `yaml:"type"`
	Required *bool        `yaml:"required"`
	Example  string       `yaml:"example"`
	Content  string       `yaml:"content"`
	Template string       `yaml:"template"`
	Validate *check.Rules `yaml:"validate"`
	Children yaml.Node    `yaml:"children"`
}

type yamlDoc struct {
	Vars   map[string]any `yaml:"vars"`
	Ignore []string       `yaml:"ignore"`
	Schema yaml.Node      `yaml:"schema"`
}

func parseYAML(data []byte, opts Options) (*Document, error) {
	var doc yamlDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &Error{Err: fmt.Errorf("decode yaml: %w", err)}
	}
	if doc.Schema.Kind == 0 {
		return nil, &Error{Err: fmt.Errorf("missing schema")}
	}

	entries, err := yamlEntries(&doc.Schema, "")
	if err != nil {
		return nil, err
	}
	vars := mergeVars(doc.Vars, opts.Vars)
	schema, err := build(entries, "", vars)
	if err != nil {
		return nil, err
	}
	return &Document{Schema: schema, Ignore: doc.Ignore, Vars: vars}, nil
}

// yamlEntries walks a mapping node pairwise so keys keep document order.
func yamlEntries(n *yaml.Node, at string) ([]rawEntry, error) {
	if n.Kind != yaml.MappingNode {
		return nil, &Error{Path: at, Err: fmt.Errorf("line %d: expected a mapping of patterns", n.Line)}
	}
	entries := make([]rawEntry, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		p := joinKey(at, key.Value)

		var yn yamlNode
		if err := val.Decode(&yn); err != nil {
			return nil, &Error{Path: p, Err: fmt.Errorf("line %d: %w", val.Line, err)}
		}
		r := &rawNode{
			Type:     yn.Type,
			Required: yn.Required,
			Example:  yn.Example,
			Content:  yn.Content,
			Template: yn.Template,
			Validate: yn.Validate,
		}
		if yn.Children.Kind != 0 && yn.Children.Tag != "!!null" {
			children, err := yamlEntries(&yn.Children, p)
			if err != nil {
				return nil, err
			}
			r.Children = children
		}
		entries = append(entries, rawEntry{Pattern: key.Value, Node: r})
	}
	return entries, nil
}

func joinKey(at, key string) string {
	if at == "" {
		return key
	}
	return at + "/" + key
}
