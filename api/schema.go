// Package api defines the schema model, result types and the storage
// capability shared by the lint engine and its callers.
package api

import (
	"context"
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// NodeType tags a schema node (and an actual directory entry) as a file or a directory.
type NodeType string

const (
	FileType      NodeType = "file"
	DirectoryType NodeType = "directory"
)

// Node is one entry of a Schema. It is implemented by *File and *Directory only.
type Node interface {
	// Type returns the immutable tag of the node.
	Type() NodeType
	// IsRequired reports whether validation must find at least one match.
	IsRequired() bool
	// ExampleName is the concrete name used when generating a wildcard key.
	ExampleName() string

	node()
}

// TemplateFunc produces file content on demand during generation.
type TemplateFunc func() (string, error)

// File describes an expected regular file.
type File struct {
	// Optional marks the file as not required. Files are required by default.
	Optional bool `json:"-"`
	// Example is the name materialized for wildcard keys.
	Example string `json:"example,omitempty"`
	// Content is written when the file is generated.
	Content string `json:"content,omitempty"`
	// Template, when set, takes precedence over Content.
	Template TemplateFunc `json:"-"`
	// Validate checks the content of a matched file during validation.
	Validate Validator `json:"-"`
}

func (*File) Type() NodeType { return FileType }
func (f *File) IsRequired() bool { return !f.Optional }
func (f *File) ExampleName() string { return f.Example }
func (*File) node() {}
func (f *File) MarshalJSON() ([]byte, error) {
	type alias File
	return json.Marshal(struct {
		Type     NodeType `json:"type"`
		Required bool     `json:"required"`
		*alias
	}{FileType, !f.Optional, (*alias)(f)})
}

// Render resolves the content to write for this file.
func (f *File) Render() (string, error) {
	if f.Template != nil {
		return f.Template()
	}
	return f.Content, nil
}

// Directory describes an expected directory and, optionally, its contents.
type Directory struct {
	// Optional marks the directory as not required.
	Optional bool `json:"-"`
	// Example is the name materialized for wildcard keys.
	Example string `json:"example,omitempty"`
	// Children is the nested schema. Nil means the contents are not checked.
	Children *Schema `json:"children,omitempty"`
}

func (*Directory) Type() NodeType { return DirectoryType }
func (d *Directory) IsRequired() bool { return !d.Optional }
func (d *Directory) ExampleName() string { return d.Example }
func (*Directory) node() {}
func (d *Directory) MarshalJSON() ([]byte, error) {
	type alias Directory
	return json.Marshal(struct {
		Type     NodeType `json:"type"`
		Required bool     `json:"required"`
		*alias
	}{DirectoryType, !d.Optional, (*alias)(d)})
}

// Validator is a content check attached to a file node. Implementations may
// block; they should return promptly once ctx is done.
type Validator interface {
	Validate(ctx context.Context, content []byte) (bool, error)
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(ctx context.Context, content []byte) (bool, error)

func (f ValidatorFunc) Validate(ctx context.Context, content []byte) (bool, error) {
	return f(ctx, content)
}

// Predicate adapts a plain predicate over the file content.
func Predicate(fn func(content string) bool) Validator {
	return ValidatorFunc(func(_ context.Context, content []byte) (bool, error) {
		return fn(string(content)), nil
	})
}

// Entry is one (pattern, node) pair of a Schema.
type Entry struct {
	Pattern string
	Node    Node
}

// Schema maps patterns (literal names, "*" globs or /regex/ literals) to nodes.
// Keys keep their insertion order.
type Schema struct {
	m *orderedmap.OrderedMap[string, Node]
}

// NewSchema builds a schema from entries in the given order.
func NewSchema(entries ...Entry) *Schema {
	s := &Schema{m: orderedmap.New[string, Node]()}
	for _, e := range entries {
		s.Set(e.Pattern, e.Node)
	}
	return s
}

// Set adds or replaces the node for pattern. A replaced key keeps its position.
func (s *Schema) Set(pattern string, n Node) *Schema {
	if s.m == nil {
		s.m = orderedmap.New[string, Node]()
	}
	s.m.Set(pattern, n)
	return s
}

// Get returns the node registered under pattern.
func (s *Schema) Get(pattern string) (Node, bool) {
	if s == nil || s.m == nil {
		return nil, false
	}
	return s.m.Get(pattern)
}

// Delete removes pattern from the schema.
func (s *Schema) Delete(pattern string) {
	if s == nil || s.m == nil {
		return
	}
	s.m.Delete(pattern)
}

// Len returns the number of entries.
func (s *Schema) Len() int {
	if s == nil || s.m == nil {
		return 0
	}
	return s.m.Len()
}

// Entries returns the entries in insertion order.
func (s *Schema) Entries() []Entry {
	if s == nil || s.m == nil {
		return nil
	}
	out := make([]Entry, 0, s.m.Len())
	for pair := s.m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, Entry{Pattern: pair.Key, Node: pair.Value})
	}
	return out
}

// MarshalJSON encodes the schema as an object whose keys keep their order.
func (s *Schema) MarshalJSON() ([]byte, error) {
	if s == nil || s.m == nil {
		return []byte("{}"), nil
	}
	return s.m.MarshalJSON()
}
