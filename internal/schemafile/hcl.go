package schemafile

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/HenryVilani/directory-lint/internal/check"
)

var (
	rootSchema = &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{{Name: "ignore"}},
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "variable", LabelNames: []string{"name"}},
			{Type: "directory", LabelNames: []string{"pattern"}},
			{Type: "file", LabelNames: []string{"pattern"}},
		},
	}
	variableSchema = &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{{Name: "default"}},
	}
	directorySchema = &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{{Name: "required"}, {Name: "example"}},
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "directory", LabelNames: []string{"pattern"}},
			{Type: "file", LabelNames: []string{"pattern"}},
		},
	}
	fileSchema = &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{
			{Name: "required"}, {Name: "example"}, {Name: "content"}, {Name: "template"},
		},
		Blocks: []hcl.BlockHeaderSchema{{Type: "validate"}},
	}
)

func parseHCL(data []byte, name string, opts Options) (*Document, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, name)
	if diags.HasErrors() {
		return nil, &Error{Err: diags}
	}
	content, diags := file.Body.Content(rootSchema)
	if diags.HasErrors() {
		return nil, &Error{Err: diags}
	}

	declared := map[string]any{}
	for _, b := range content.Blocks.OfType("variable") {
		vc, diags := b.Body.Content(variableSchema)
		if diags.HasErrors() {
			return nil, &Error{Path: "var." + b.Labels[0], Err: diags}
		}
		var def string
		if attr, ok := vc.Attributes["default"]; ok {
			if diags := gohcl.DecodeExpression(attr.Expr, nil, &def); diags.HasErrors() {
				return nil, &Error{Path: "var." + b.Labels[0], Err: diags}
			}
		}
		declared[b.Labels[0]] = def
	}
	vars := mergeVars(declared, opts.Vars)
	evalCtx := evalContext(vars)

	var ignore []string
	if attr, ok := content.Attributes["ignore"]; ok {
		if diags := gohcl.DecodeExpression(attr.Expr, evalCtx, &ignore); diags.HasErrors() {
			return nil, &Error{Path: "ignore", Err: diags}
		}
	}

	entries, err := hclEntries(content.Blocks, "", evalCtx)
	if err != nil {
		return nil, err
	}
	schema, err := build(entries, "", vars)
	if err != nil {
		return nil, err
	}
	return &Document{Schema: schema, Ignore: ignore, Vars: vars}, nil
}

func evalContext(vars map[string]any) *hcl.EvalContext {
	vals := make(map[string]cty.Value, len(vars))
	for k, v := range vars {
		if s, ok := v.(string); ok {
			vals[k] = cty.StringVal(s)
			continue
		}
		vals[k] = cty.StringVal(fmt.Sprint(v))
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"var": cty.ObjectVal(vals)},
	}
}

// hclEntries converts directory and file blocks in source order.
func hclEntries(blocks hcl.Blocks, at string, evalCtx *hcl.EvalContext) ([]rawEntry, error) {
	var entries []rawEntry
	for _, b := range blocks {
		if b.Type != "directory" && b.Type != "file" {
			continue
		}
		pattern := b.Labels[0]
		p := joinKey(at, pattern)

		r := &rawNode{Type: b.Type}
		schema := fileSchema
		if b.Type == "directory" {
			schema = directorySchema
		}
		content, diags := b.Body.Content(schema)
		if diags.HasErrors() {
			return nil, &Error{Path: p, Err: diags}
		}

		if attr, ok := content.Attributes["required"]; ok {
			var required bool
			if diags := gohcl.DecodeExpression(attr.Expr, evalCtx, &required); diags.HasErrors() {
				return nil, &Error{Path: p, Err: diags}
			}
			r.Required = &required
		}
		if err := decodeAttrs(content.Attributes, evalCtx, map[string]*string{
			"example":  &r.Example,
			"content":  &r.Content,
			"template": &r.Template,
		}); err != nil {
			return nil, &Error{Path: p, Err: err}
		}

		switch b.Type {
		case "directory":
			nested := content.Blocks
			if len(nested) > 0 {
				children, err := hclEntries(nested, p, evalCtx)
				if err != nil {
					return nil, err
				}
				r.Children = children
			}
		case "file":
			for _, vb := range content.Blocks.OfType("validate") {
				if r.Validate != nil {
					return nil, &Error{Path: p, Err: fmt.Errorf("%s: duplicate validate block", vb.DefRange)}
				}
				var rules check.Rules
				if diags := gohcl.DecodeBody(vb.Body, evalCtx, &rules); diags.HasErrors() {
					return nil, &Error{Path: p, Err: diags}
				}
				r.Validate = &rules
			}
		}
		entries = append(entries, rawEntry{Pattern: pattern, Node: r})
	}
	return entries, nil
}

func decodeAttrs(attrs hcl.Attributes, evalCtx *hcl.EvalContext, targets map[string]*string) error {
	for name, attr := range attrs {
		target, ok := targets[name]
		if !ok {
			continue
		}
		if diags := gohcl.DecodeExpression(attr.Expr, evalCtx, target); diags.HasErrors() {
			return diags
		}
	}
	return nil
}
