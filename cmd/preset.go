package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/HenryVilani/directory-lint/internal/presets"
)

var (
	presetOpts   map[string]string
	presetFormat string
)

func init() {
	presetShowCmd.Flags().StringToStringVar(&presetOpts, "opt", nil, "Preset option as key=value (repeatable)")
	presetShowCmd.Flags().StringVar(&presetFormat, "format", "yaml", "Schema document format: yaml or json")
	presetCmd.AddCommand(presetListCmd, presetShowCmd)
	rootCmd.AddCommand(presetCmd)
}

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Inspect the built-in project presets",
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List presets and their default options",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, p := range presets.List() {
			fmt.Fprintf(tw, "%s\t%s\n", p.Name, p.Description)
		}
		return tw.Flush()
	},
}

var presetShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print a preset as a schema document",
	Long: `Prints the schema the preset builds with the given options. The output
can be saved and edited as a schema file. Without --opt the default options
are listed as a leading comment.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := presets.Lookup(args[0])
		if err != nil {
			return err
		}
		schema, err := p.Build(presetOpts)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		switch presetFormat {
		case "yaml":
			if len(presetOpts) == 0 {
				defaults, err := yaml.Marshal(p.Defaults())
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "# %s options:\n", p.Name)
				for _, line := range strings.Split(strings.TrimRight(string(defaults), "\n"), "\n") {
					fmt.Fprintf(w, "#   %s\n", line)
				}
			}
			return writeSchema(w, schema, "yaml")
		case "json":
			return writeSchema(w, schema, "json")
		default:
			return fmt.Errorf("unknown format %q", presetFormat)
		}
	},
}
