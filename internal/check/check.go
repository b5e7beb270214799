// Package check provides content validators for file nodes.
//
// Every rule implements api.Validator and fmt.Stringer; the string is what
// appears in a validation problem when the rule rejects a file. Rules that can
// say more than "no" (parsers, linters) return a *Failure alongside false.
package check

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/HenryVilani/directory-lint/api"
)

// Failure explains why a rule rejected content.
type Failure struct {
	Rule   string
	Line   int // 1-indexed, 0 when unknown
	Column int // 1-indexed, 0 when unknown
	Detail string
}

func (f *Failure) Error() string {
	var b strings.Builder
	b.WriteString(f.Rule)
	if f.Line > 0 {
		fmt.Fprintf(&b, " at %d:%d", f.Line, f.Column)
	}
	if f.Detail != "" {
		b.WriteString(": ")
		b.WriteString(f.Detail)
	}
	return b.String()
}

// Rule is a described content validator.
type Rule interface {
	api.Validator
	fmt.Stringer
}

type rule struct {
	desc string
	fn   func(ctx context.Context, content []byte) (bool, error)
}

func (r *rule) Validate(ctx context.Context, content []byte) (bool, error) { return r.fn(ctx, content) }
func (r *rule) String() string                                           { return r.desc }

func newRule(desc string, fn func(content []byte) bool) Rule {
	return &rule{desc: desc, fn: func(_ context.Context, c []byte) (bool, error) { return fn(c), nil }}
}

// NotEmpty rejects files that are empty or whitespace only.
func NotEmpty() Rule {
	return newRule("not empty", func(c []byte) bool {
		return len(strings.TrimSpace(string(c))) > 0
	})
}

// MinLength requires at least n characters.
func MinLength(n int) Rule {
	return newRule(fmt.Sprintf("min length %d", n), func(c []byte) bool {
		return utf8.RuneCount(c) >= n
	})
}

// MaxLength allows at most n characters.
func MaxLength(n int) Rule {
	return newRule(fmt.Sprintf("max length %d", n), func(c []byte) bool {
		return utf8.RuneCount(c) <= n
	})
}

// Contains requires every one of subs to appear in the content.
func Contains(subs ...string) Rule {
	return newRule(fmt.Sprintf("contains %q", subs), func(c []byte) bool {
		s := string(c)
		for _, sub := range subs {
			if !strings.Contains(s, sub) {
				return false
			}
		}
		return true
	})
}

// Matches requires the content to match the regular expression expr.
func Matches(expr string) (Rule, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("matches: %w", err)
	}
	return newRule(fmt.Sprintf("matches /%s/", expr), re.Match), nil
}

type all []Rule

// All combines rules with AND. The first rejecting rule decides the outcome
// and is reported through a *Failure.
func All(rules ...Rule) Rule {
	return all(rules)
}

func (a all) Validate(ctx context.Context, content []byte) (bool, error) {
	for _, r := range a {
		ok, err := r.Validate(ctx, content)
		if err != nil {
			var f *Failure
			if errors.As(err, &f) {
				return false, err
			}
			return false, fmt.Errorf("%s: %w", r, err)
		}
		if !ok {
			return false, &Failure{Rule: r.String()}
		}
	}
	return true, nil
}

func (a all) String() string {
	parts := make([]string, len(a))
	for i, r := range a {
		parts[i] = r.String()
	}
	return strings.Join(parts, " and ")
}
