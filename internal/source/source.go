// Package source resolves where a command's schema comes from: a schema file
// or a named preset.
package source

import (
	"errors"

	"github.com/HenryVilani/directory-lint/internal/presets"
	"github.com/HenryVilani/directory-lint/internal/schemafile"
)

// ErrNoSchema is returned when neither a file nor a preset is given.
var ErrNoSchema = errors.New("no schema file or preset given")

// Source names a schema.
type Source struct {
	File          string
	Preset        string
	PresetOptions map[string]string
	Vars          map[string]string
}

// Name describes the source for logs and history.
func (s Source) Name() string {
	if s.Preset != "" {
		return "preset:" + s.Preset
	}
	return s.File
}

// Resolve loads the schema. A preset wins over a file.
func Resolve(s Source) (*schemafile.Document, error) {
	if s.Preset != "" {
		p, err := presets.Lookup(s.Preset)
		if err != nil {
			return nil, err
		}
		schema, err := p.Build(s.PresetOptions)
		if err != nil {
			return nil, err
		}
		return &schemafile.Document{Schema: schema}, nil
	}
	if s.File == "" {
		return nil, ErrNoSchema
	}
	return schemafile.Load(s.File, schemafile.Options{Vars: s.Vars})
}
