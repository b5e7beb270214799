package cmd

import (
	"github.com/spf13/cobra"

	"github.com/HenryVilani/directory-lint/internal/schemafile"
	"github.com/HenryVilani/directory-lint/internal/source"
)

type schemaFlags struct {
	file    string
	preset  string
	options map[string]string
	vars    map[string]string
}

func (f *schemaFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.file, "schema", "s", "", "Schema file (.json, .yaml, .yml or .hcl); defaults to the config schema")
	fl.StringVarP(&f.preset, "preset", "p", "", "Use a built-in preset instead of a schema file")
	fl.StringToStringVar(&f.options, "opt", nil, "Preset option as key=value (repeatable)")
	fl.StringToStringVar(&f.vars, "var", nil, "Schema variable as key=value (repeatable)")
}

func (f *schemaFlags) source() source.Source {
	file := f.file
	if file == "" && f.preset == "" {
		file = cfg.Schema
	}
	return source.Source{File: file, Preset: f.preset, PresetOptions: f.options, Vars: f.vars}
}

func (f *schemaFlags) load() (*schemafile.Document, source.Source, error) {
	src := f.source()
	doc, err := source.Resolve(src)
	return doc, src, err
}
