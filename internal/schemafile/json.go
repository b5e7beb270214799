package schemafile

import (
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/HenryVilani/directory-lint/internal/check"
)

type jsonNode struct {
	Type     string                                    `json:"type"`
	Required *bool                                     `json:"required"`
	Example  string                                    `json:"example"`
	Content  string                                    `json:"content"`
	Template string                                    `json:"template"`
	Validate *check.Rules                              `json:"validate"`
	Children *orderedmap.OrderedMap[string, *jsonNode] `json:"children"`
}

type jsonDoc struct {
	Vars   map[string]any                            `json:"vars"`
	Ignore []string                                  `json:"ignore"`
	Schema *orderedmap.OrderedMap[string, *jsonNode] `json:"schema"`
}

func parseJSON(data []byte, opts Options) (*Document, error) {
	var doc jsonDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &Error{Err: fmt.Errorf("decode json: %w", err)}
	}
	if doc.Schema == nil {
		return nil, &Error{Err: fmt.Errorf("missing schema")}
	}

	vars := mergeVars(doc.Vars, opts.Vars)
	schema, err := build(jsonEntries(doc.Schema), "", vars)
	if err != nil {
		return nil, err
	}
	return &Document{Schema: schema, Ignore: doc.Ignore, Vars: vars}, nil
}

func jsonEntries(m *orderedmap.OrderedMap[string, *jsonNode]) []rawEntry {
	entries := make([]rawEntry, 0, m.Len())
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		entries = append(entries, rawEntry{Pattern: pair.Key, Node: pair.Value.raw()})
	}
	return entries
}

func (n *jsonNode) raw() *rawNode {
	if n == nil {
		return nil
	}
	r := &rawNode{
		Type:     n.Type,
		Required: n.Required,
		Example:  n.Example,
		Content:  n.Content,
		Template: n.Template,
		Validate: n.Validate,
	}
	if n.Children != nil {
		r.Children = jsonEntries(n.Children)
	}
	return r
}
