package schemafile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HenryVilani/directory-lint/api"
)

func patterns(s *api.Schema) []string {
	var out []string
	for _, e := range s.Entries() {
		out = append(out, e.Pattern)
	}
	return out
}

func TestParseJSON(t *testing.T) {
	src := `{
	  "vars": {"name": "app"},
	  "ignore": ["node_modules"],
	  "schema": {
	    "src": {"type": "dir", "children": {
	      "main.ts": {"type": "file", "template": "// {{ .name }}\n"},
	      "*.ts": {"type": "file", "required": false, "example": "util.ts", "validate": {"not_empty": true}}
	    }},
	    "package.json": {"type": "file", "content": "{}"},
	    "docs": {"type": "directory"}
	  }
	}`

	doc, err := Parse([]byte(src), "schema.json", Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"node_modules"}, doc.Ignore)
	assert.Equal(t, []string{"src", "package.json", "docs"}, patterns(doc.Schema))

	n, _ := doc.Schema.Get("src")
	srcDir, ok := n.(*api.Directory)
	require.True(t, ok)
	assert.Equal(t, []string{"main.ts", "*.ts"}, patterns(srcDir.Children))

	mainNode, _ := srcDir.Children.Get("main.ts")
	out, err := mainNode.(*api.File).Render()
	require.NoError(t, err)
	assert.Equal(t, "// app\n", out)

	glob, _ := srcDir.Children.Get("*.ts")
	f := glob.(*api.File)
	assert.False(t, f.IsRequired())
	assert.Equal(t, "util.ts", f.ExampleName())
	require.NotNil(t, f.Validate)
	ok, err = f.Validate.Validate(context.Background(), []byte(" "))
	require.NoError(t, err)
	assert.False(t, ok)

	docs, _ := doc.Schema.Get("docs")
	assert.Nil(t, docs.(*api.Directory).Children)
}

func TestParseYAML(t *testing.T) {
	src := `
vars:
  name: web
schema:
  zeta.md:
    type: file
  alpha:
    type: directory
    required: false
    children:
      "/^v[0-9]+$/":
        type: directory
      index.html:
        type: file
        template: "<title>{{ upper .name }}</title>"
        validate:
          syntax: auto
  empty:
    type: directory
    children: {}
`
	doc, err := Parse([]byte(src), "schema.yaml", Options{Vars: map[string]string{"name": "shop"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta.md", "alpha", "empty"}, patterns(doc.Schema))
	assert.Equal(t, "shop", doc.Vars["name"])

	n, _ := doc.Schema.Get("alpha")
	alpha := n.(*api.Directory)
	assert.False(t, alpha.IsRequired())
	assert.Equal(t, []string{"/^v[0-9]+$/", "index.html"}, patterns(alpha.Children))

	idx, _ := alpha.Children.Get("index.html")
	out, err := idx.(*api.File).Render()
	require.NoError(t, err)
	assert.Equal(t, "<title>SHOP</title>", out)
	assert.Equal(t, "syntax html", idx.(*api.File).Validate.(interface{ String() string }).String())

	e, _ := doc.Schema.Get("empty")
	require.NotNil(t, e.(*api.Directory).Children)
	assert.Equal(t, 0, e.(*api.Directory).Children.Len())
}

func TestParseHCL(t *testing.T) {
	src := `
variable "name" {
  default = "api"
}

ignore = ["dist", "${var.name}/tmp"]

file "README.md" {
  content = "# ${var.name}\n"
  validate {
    not_empty = true
    contains  = ["#"]
  }
}

directory "src" {
  file "*.go" {
    example = "main.go"
    validate {
      syntax = "go"
    }
  }
  directory "internal" {
    required = false
  }
}
`
	doc, err := Parse([]byte(src), "schema.hcl", Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"dist", "api/tmp"}, doc.Ignore)
	assert.Equal(t, []string{"README.md", "src"}, patterns(doc.Schema))

	readme, _ := doc.Schema.Get("README.md")
	assert.Equal(t, "# api\n", readme.(*api.File).Content)
	ok, err := readme.(*api.File).Validate.Validate(context.Background(), []byte("# api"))
	require.NoError(t, err)
	assert.True(t, ok)

	n, _ := doc.Schema.Get("src")
	srcDir := n.(*api.Directory)
	assert.Equal(t, []string{"*.go", "internal"}, patterns(srcDir.Children))
	internal, _ := srcDir.Children.Get("internal")
	assert.False(t, internal.IsRequired())
	assert.Nil(t, internal.(*api.Directory).Children)

	doc, err = Parse([]byte(src), "schema.hcl", Options{Vars: map[string]string{"name": "svc"}})
	require.NoError(t, err)
	readme, _ = doc.Schema.Get("README.md")
	assert.Equal(t, "# svc\n", readme.(*api.File).Content)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		src  string
		path string
	}{
		{"unknown type", "s.yaml", "schema:\n  src:\n    type: dir\n    children:\n      x:\n        type: link\n", "src/x"},
		{"missing type", "s.json", `{"schema": {"a": {}}}`, "a"},
		{"children on file", "s.yaml", "schema:\n  a:\n    type: file\n    children: {}\n", "a"},
		{"content on directory", "s.json", `{"schema": {"a": {"type": "directory", "content": "x"}}}`, "a"},
		{"bad template", "s.yaml", "schema:\n  a:\n    type: file\n    template: \"{{ .x \"\n", "a"},
		{"bad rule", "s.json", `{"schema": {"a": {"type": "file", "validate": {"matches": "("}}}}`, "a"},
		{"children not a map", "s.yaml", "schema:\n  a:\n    type: directory\n    children: [1]\n", "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), tt.file, Options{})
			require.Error(t, err)
			var se *Error
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.path, se.Path)
			assert.Equal(t, tt.file, se.File)
		})
	}
}

func TestParse_MissingSchema(t *testing.T) {
	_, err := Parse([]byte(`{"vars": {}}`), "s.json", Options{})
	assert.Error(t, err)
	_, err = Parse([]byte("vars: {}\n"), "s.yml", Options{})
	assert.Error(t, err)
	_, err = Parse([]byte("x"), "s.toml", Options{})
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "dirlint.yaml")
	require.NoError(t, os.WriteFile(p, []byte("schema:\n  a.txt:\n    type: file\n"), 0o644))

	doc, err := Load(p, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, patterns(doc.Schema))

	_, err = Load(filepath.Join(dir, "missing.yaml"), Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
