package check

import (
	"fmt"
)

// Auto selects the language or format from the file name.
const Auto = "auto"

// Rules is the declarative form of a validator, as written in schema files
// under a file's validate key.
type Rules struct {
	NotEmpty   bool     `json:"not_empty,omitempty" yaml:"not_empty,omitempty" hcl:"not_empty,optional"`
	MinLength  *int     `json:"min_length,omitempty" yaml:"min_length,omitempty" hcl:"min_length,optional"`
	MaxLength  *int     `json:"max_length,omitempty" yaml:"max_length,omitempty" hcl:"max_length,optional"`
	Contains   []string `json:"contains,omitempty" yaml:"contains,omitempty" hcl:"contains,optional"`
	Matches    string   `json:"matches,omitempty" yaml:"matches,omitempty" hcl:"matches,optional"`
	JSONPath   string   `json:"json_path,omitempty" yaml:"json_path,omitempty" hcl:"json_path,optional"`
	CEL        string   `json:"cel,omitempty" yaml:"cel,omitempty" hcl:"cel,optional"`
	Syntax     string   `json:"syntax,omitempty" yaml:"syntax,omitempty" hcl:"syntax,optional"`
	Formatted  bool     `json:"formatted,omitempty" yaml:"formatted,omitempty" hcl:"formatted,optional"`
	GoLint     bool     `json:"go_lint,omitempty" yaml:"go_lint,omitempty" hcl:"go_lint,optional"`
	WellFormed string   `json:"well_formed,omitempty" yaml:"well_formed,omitempty" hcl:"well_formed,optional"`
}

// Build compiles r into one Rule for a file whose key is name. It returns nil
// when r declares nothing.
func (r Rules) Build(name string) (Rule, error) {
	var rules []Rule
	add := func(rule Rule, err error) error {
		if err != nil {
			return err
		}
		rules = append(rules, rule)
		return nil
	}

	if r.NotEmpty {
		rules = append(rules, NotEmpty())
	}
	if r.MinLength != nil {
		if *r.MinLength < 0 {
			return nil, fmt.Errorf("min_length must not be negative")
		}
		rules = append(rules, MinLength(*r.MinLength))
	}
	if r.MaxLength != nil {
		if *r.MaxLength < 0 {
			return nil, fmt.Errorf("max_length must not be negative")
		}
		rules = append(rules, MaxLength(*r.MaxLength))
	}
	if len(r.Contains) > 0 {
		rules = append(rules, Contains(r.Contains...))
	}
	if r.Matches != "" {
		if err := add(Matches(r.Matches)); err != nil {
			return nil, err
		}
	}
	if r.JSONPath != "" {
		if err := add(JSONPath(r.JSONPath)); err != nil {
			return nil, err
		}
	}
	if r.CEL != "" {
		if err := add(CEL(r.CEL)); err != nil {
			return nil, err
		}
	}
	if r.Syntax != "" {
		lang := r.Syntax
		if lang == Auto {
			if lang = LanguageFor(name); lang == "" {
				return nil, fmt.Errorf("syntax: no language known for %q", name)
			}
		}
		if err := add(Syntax(lang)); err != nil {
			return nil, err
		}
	}
	if r.Formatted {
		rules = append(rules, Formatted())
	}
	if r.GoLint {
		rules = append(rules, GoLint())
	}
	if r.WellFormed != "" {
		format := r.WellFormed
		if format == Auto {
			if format = FormatFor(name); format == "" {
				return nil, fmt.Errorf("well_formed: no format known for %q", name)
			}
		}
		if err := add(WellFormed(format)); err != nil {
			return nil, err
		}
	}

	switch len(rules) {
	case 0:
		return nil, nil
	case 1:
		return rules[0], nil
	}
	return All(rules...), nil
}
