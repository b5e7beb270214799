package schemafile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/HenryVilani/directory-lint/api"
)

var tmplFuncs = template.FuncMap{
	"json": func(v any) string {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("<json error: %v>", err)
		}
		return string(b)
	},
	"first": func(v any) any {
		switch s := v.(type) {
		case []any:
			if len(s) > 0 {
				return s[0]
			}
		case []string:
			if len(s) > 0 {
				return s[0]
			}
		}
		return nil
	},
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
}

// compileTemplate parses src now so syntax errors surface at load time; the
// returned function renders it against vars when the file is generated.
func compileTemplate(name, src string, vars map[string]any) (api.TemplateFunc, error) {
	t, err := template.New(name).Funcs(tmplFuncs).Option("missingkey=error").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("template: %w", err)
	}
	return func() (string, error) {
		var buf bytes.Buffer
		if err := t.Execute(&buf, vars); err != nil {
			return "", err
		}
		return buf.String(), nil
	}, nil
}
