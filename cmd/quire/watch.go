package main

import (
	"fmt"

	"github.com/aretw0/lifecycle"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	notebooksource "github.com/aretw0/quire/pkg/adapters/lifecycle"
	"github.com/aretw0/quire/pkg/core"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload and report whenever the notebook changes on storage",
	Long: `Watch follows the notebook document and reloads it after every external
change, printing one line per event. Only the fs and git backends can be watched.
The first interrupt stops watching; a second one exits immediately.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := lifecycle.NewSignalContext(cmd.Context())
		defer ctx.Stop()
		ctx.OnShutdown(func() {
			logger.Info("watch interrupted", zap.Stringer("reason", ctx.Reason()))
		})

		w, err := openWorkspace(ctx)
		if err != nil {
			return err
		}
		defer w.Close()

		events, err := w.Notebook.Watch(ctx)
		if err != nil {
			return err
		}

		src := notebooksource.NewSource(events, w.Notebook, core.EventReload, core.EventDelete)
		if err := src.Start(ctx); err != nil {
			return err
		}

		logger.Info("watching notebook", zap.String("dir", w.Dir), zap.String("file", cfg.Notebook.FileName))
		for e := range src.Events() {
			fmt.Fprintln(cmd.OutOrStdout(), e)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
