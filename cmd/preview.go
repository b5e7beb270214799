package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/HenryVilani/directory-lint/internal/ctxlog"
	"github.com/HenryVilani/directory-lint/internal/nfsmount"
	"github.com/HenryVilani/directory-lint/internal/report"
	"github.com/HenryVilani/directory-lint/internal/storage"
	"github.com/HenryVilani/directory-lint/lint"
)

var (
	previewSchema   schemaFlags
	previewAddr     string
	previewMount    string
	previewWritable bool
)

func init() {
	previewSchema.register(previewCmd)
	previewCmd.Flags().StringVar(&previewAddr, "addr", "", "NFS listen address (default from config)")
	previewCmd.Flags().StringVar(&previewMount, "mount", "", "Mount the preview at this directory (needs sudo)")
	previewCmd.Flags().BoolVarP(&previewWritable, "writable", "w", false, "Mount read-write")
	rootCmd.AddCommand(previewCmd)
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Generate a schema in memory and serve it over NFS",
	Long: `Generates the schema into an in-memory tree and exports it as an NFSv3
share until interrupted. Nothing is written to disk; browse the share to see
what generate would create.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := ctxlog.FromContext(ctx)
		doc, src, err := previewSchema.load()
		if err != nil {
			return err
		}

		mem := storage.NewMemory()
		res, err := newLinter(mem).Generate(ctx, "/", doc.Schema, lint.GenerateOptions{})
		if err != nil {
			return err
		}
		if output == report.FormatText {
			for _, w := range res.Warnings {
				logger.Warn(w.Message, "path", w.Path)
			}
		}

		addr := previewAddr
		if addr == "" {
			addr = cfg.PreviewAddr
		}
		srv, err := nfsmount.NewServer(ctx, addr, mem.Filesystem())
		if err != nil {
			return err
		}
		defer srv.Close()
		fmt.Fprintf(cmd.OutOrStdout(), "serving %s (%d changes) on %s\n", src.Name(), len(res.Changes), srv.Addr())

		if previewMount != "" {
			if err := nfsmount.Mount(ctx, srv.Port(), previewMount, previewWritable); err != nil {
				return err
			}
			logger.Info("mounted preview", "mountpoint", previewMount)
			defer func() {
				uctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
				defer cancel()
				if err := nfsmount.Unmount(uctx, previewMount); err != nil {
					logger.Error("unmount failed", "mountpoint", previewMount, "error", err)
				}
			}()
		}

		waitErr := make(chan error, 1)
		go func() { waitErr <- srv.Wait() }()
		select {
		case <-ctx.Done():
			logger.Info("stopping preview")
			return nil
		case err := <-waitErr:
			return err
		}
	},
}
