package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/HenryVilani/directory-lint/internal/mcpserver"
)

func init() {
	rootCmd.AddCommand(mcpCmd)
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve validate_tree, generate_tree and list_presets as MCP tools over stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, _, closeBackend, err := openBackend("/")
		if err != nil {
			return err
		}
		defer closeBackend()
		srv := mcpserver.New(newLinter(b), version, cfg.Ignore)
		return srv.ServeStdio(cmd.Context(), os.Stdin, cmd.OutOrStdout())
	},
}
