// Package pattern compiles schema keys into name matchers.
//
// A key is one of:
//   - a literal name ("package.json"),
//   - a glob where each "*" matches any run of characters ("*.test.ts"),
//   - a regular expression literal wrapped in slashes ("/^v[0-9]+$/").
package pattern

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Matcher tests entry names against one compiled schema key.
type Matcher struct {
	pattern string
	re      *regexp.Regexp
}

// IsRegex reports whether p is a /regex/ literal.
func IsRegex(p string) bool {
	return len(p) >= 2 && strings.HasPrefix(p, "/") && strings.HasSuffix(p, "/")
}

// IsWildcard reports whether p is a glob containing "*".
func IsWildcard(p string) bool {
	return !IsRegex(p) && strings.Contains(p, "*")
}

// IsLiteral reports whether p names exactly one entry.
func IsLiteral(p string) bool {
	return !IsRegex(p) && !strings.Contains(p, "*")
}

// Compile converts a schema key into a Matcher.
func Compile(p string) (*Matcher, error) {
	if IsRegex(p) {
		re, err := regexp.Compile(p[1 : len(p)-1])
		if err != nil {
			return nil, fmt.Errorf("compile pattern %s: %w", p, err)
		}
		return &Matcher{pattern: p, re: re}, nil
	}

	parts := strings.Split(p, "*")
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}
	re := regexp.MustCompile("^" + strings.Join(parts, ".*") + "$")
	return &Matcher{pattern: p, re: re}, nil
}

// Match reports whether name satisfies the pattern.
func (m *Matcher) Match(name string) bool {
	return m.re.MatchString(name)
}

// String returns the source pattern.
func (m *Matcher) String() string {
	return m.pattern
}

// Precedence returns the indices of patterns ordered for claiming: keys
// without a "*" first, then keys containing one. A regex literal is ranked by
// its source text, so "/^v1$/" claims before "*" but "/.*/" does not.
// Authored order is kept within each group.
func Precedence(patterns []string) []int {
	idx := make([]int, len(patterns))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return !hasStar(patterns[idx[a]]) && hasStar(patterns[idx[b]])
	})
	return idx
}

func hasStar(p string) bool {
	return strings.Contains(p, "*")
}
