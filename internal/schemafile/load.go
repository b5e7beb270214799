// Package schemafile loads schemas from JSON, YAML and HCL documents.
//
// JSON and YAML share one layout:
//
//	vars:   {name: app}          # template variables, overridable by the caller
//	ignore: [node_modules]       # validation ignore globs
//	schema:
//	  src:
//	    type: directory
//	    children:
//	      "*.ts": {type: file, example: index.ts, validate: {syntax: auto}}
//
// HCL uses nested directory and file blocks labelled with their pattern, and
// variable blocks whose defaults are visible to expressions as var.<name>.
package schemafile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/HenryVilani/directory-lint/api"
)

// Options tunes loading.
type Options struct {
	// Vars override the variables declared by the document.
	Vars map[string]string
}

// Document is a loaded schema file.
type Document struct {
	Schema *api.Schema
	Ignore []string
	Vars   map[string]any
}

// Error reports a problem at a schema key path such as "src/*.ts".
type Error struct {
	File string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.File, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.File, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Load reads path and decodes it by extension.
func Load(path string, opts Options) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	doc, err := Parse(data, filepath.Base(path), opts)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Parse decodes data; name selects the format by its extension.
func Parse(data []byte, name string, opts Options) (*Document, error) {
	var (
		doc *Document
		err error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		doc, err = parseJSON(data, opts)
	case ".yaml", ".yml":
		doc, err = parseYAML(data, opts)
	case ".hcl":
		doc, err = parseHCL(data, name, opts)
	default:
		return nil, fmt.Errorf("schema %s: unsupported format %q", name, filepath.Ext(name))
	}
	if err != nil {
		var se *Error
		if errors.As(err, &se) && se.File == "" {
			se.File = name
		}
		return nil, err
	}
	return doc, nil
}

func mergeVars(declared map[string]any, override map[string]string) map[string]any {
	vars := make(map[string]any, len(declared)+len(override))
	for k, v := range declared {
		vars[k] = v
	}
	for k, v := range override {
		vars[k] = v
	}
	return vars
}
