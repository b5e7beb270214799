package check

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/ohler55/ojg/oj"
	"gopkg.in/yaml.v3"
)

// Document formats understood by WellFormed.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatHCL  = "hcl"
)

type wellFormed struct {
	format string
	parse  func(content []byte) error
}

// WellFormed requires the content to parse as the given document format.
func WellFormed(format string) (Rule, error) {
	var parse func([]byte) error
	switch format {
	case FormatJSON:
		parse = func(c []byte) error {
			_, err := oj.Parse(c)
			return err
		}
	case FormatYAML:
		parse = func(c []byte) error {
			var n yaml.Node
			return yaml.Unmarshal(c, &n)
		}
	case FormatHCL:
		parse = func(c []byte) error {
			_, diags := hclparse.NewParser().ParseHCL(c, "content.hcl")
			if diags.HasErrors() {
				return diags
			}
			return nil
		}
	default:
		return nil, fmt.Errorf("well_formed: unknown format %q", format)
	}
	return &wellFormed{format: format, parse: parse}, nil
}

func (r *wellFormed) Validate(_ context.Context, content []byte) (bool, error) {
	if err := r.parse(content); err != nil {
		return false, &Failure{Rule: r.String(), Detail: err.Error()}
	}
	return true, nil
}

func (r *wellFormed) String() string { return "well formed " + r.format }

// FormatFor maps a file name to a WellFormed format, or "" when none applies.
func FormatFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".hcl", ".tf":
		return FormatHCL
	}
	return ""
}
