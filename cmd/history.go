package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/HenryVilani/directory-lint/api"
	"github.com/HenryVilani/directory-lint/internal/history"
	"github.com/HenryVilani/directory-lint/internal/report"
)

var (
	historyLimit int
	historyKeep  int
)

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of runs to show")
	historyPruneCmd.Flags().IntVar(&historyKeep, "keep", 100, "Number of most recent runs to keep")
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded validation runs",
}

func openHistory() (*history.Store, error) {
	return history.Open(cfg.History.DBPath)
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()
		runs, err := store.List(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		p, err := printer(cmd)
		if err != nil {
			return err
		}
		if output != report.FormatText {
			return p.JSON(runs)
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSTARTED\tVALID\tERRORS\tROOT\tSCHEMA")
		for _, r := range runs {
			fmt.Fprintf(tw, "%s\t%s\t%t\t%d\t%s\t%s\n",
				r.ID, r.StartedAt.Local().Format(time.DateTime), r.Valid, r.Errors, r.Root, r.Schema)
		}
		return tw.Flush()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one run and its problems",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()
		run, problems, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		p, err := printer(cmd)
		if err != nil {
			return err
		}
		if output != report.FormatText {
			return p.JSON(struct {
				history.Run
				Problems []api.Problem `json:"problems"`
			}{run, problems})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "run %s (%s, %s, schema %s)\n",
			run.ID, run.StartedAt.Local().Format(time.DateTime), run.Duration.Round(time.Millisecond), run.Schema)
		return p.Validate(&api.ValidateResult{Root: run.Root, Valid: run.Valid, Errors: problems})
	},
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the most recent runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()
		n, err := store.Prune(cmd.Context(), historyKeep)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "pruned %d runs\n", n)
		return nil
	},
}
