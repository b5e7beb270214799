package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/HenryVilani/directory-lint/api"
	"github.com/HenryVilani/directory-lint/internal/infer"
)

var (
	inferDepth  int
	inferIgnore []string
	inferOut    string
)

func init() {
	inferCmd.Flags().IntVar(&inferDepth, "max-depth", 0, "Directory levels to describe (0 = unlimited)")
	inferCmd.Flags().StringSliceVar(&inferIgnore, "ignore", nil, "Entry names or doublestar globs to leave out")
	inferCmd.Flags().StringVar(&inferOut, "out", "", "Write the schema to this file (.json, .yaml or .yml) instead of stdout")
	rootCmd.AddCommand(inferCmd)
}

var inferCmd = &cobra.Command{
	Use:   "infer [root]",
	Short: "Write a schema describing an existing tree",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		b, root, closeBackend, err := openBackend(rootArg(args))
		if err != nil {
			return err
		}
		defer closeBackend()

		ignore := append(append([]string{}, cfg.Ignore...), inferIgnore...)
		snap, err := infer.Snapshot(ctx, b, root, infer.Options{MaxDepth: inferDepth, Ignore: ignore})
		if err != nil {
			return err
		}
		for _, w := range snap.Warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning  %s  %s\n", w.Path, w.Message)
		}
		schema := snap.Schema

		if inferOut == "" {
			return writeSchema(cmd.OutOrStdout(), schema, "json")
		}
		f, err := os.Create(inferOut)
		if err != nil {
			return err
		}
		format := "json"
		if ext := strings.ToLower(filepath.Ext(inferOut)); ext == ".yaml" || ext == ".yml" {
			format = "yaml"
		}
		if err := writeSchema(f, schema, format); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", inferOut)
		return nil
	},
}

// writeSchema encodes schema as a loadable schema document.
func writeSchema(w io.Writer, schema *api.Schema, format string) error {
	data, err := json.MarshalIndent(struct {
		Schema *api.Schema `json:"schema"`
	}{schema}, "", "  ")
	if err != nil {
		return err
	}
	if format != "yaml" {
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	}
	// JSON is YAML; going through a node keeps key order.
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return err
	}
	clearStyle(&node)
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return err
	}
	return enc.Close()
}

func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}
