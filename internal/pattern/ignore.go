package pattern

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Ignore matches entries to skip during a walk. Each pattern is an exact name or
// a doublestar glob, tested against the entry name and against its slash path
// relative to the walk root.
type Ignore struct {
	root     string
	patterns []string
}

// NewIgnore validates patterns for a walk starting at root.
func NewIgnore(root string, patterns []string) (*Ignore, error) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid ignore pattern %q", p)
		}
	}
	return &Ignore{root: root, patterns: patterns}, nil
}

// Match reports whether the entry name at full path should be skipped.
func (ig *Ignore) Match(name, full string) bool {
	if ig == nil || len(ig.patterns) == 0 {
		return false
	}
	rel, err := filepath.Rel(ig.root, full)
	if err != nil {
		rel = full
	}
	rel = filepath.ToSlash(rel)
	for _, p := range ig.patterns {
		if p == name || p == rel {
			return true
		}
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
