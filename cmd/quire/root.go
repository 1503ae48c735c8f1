package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aretw0/quire/internal/platform"
)

var (
	configPath string
	verbose    bool

	cfg    *platform.Config
	logger = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "quire",
	Short: "A tiny personal note store",
	Long: `Quire keeps an ordered list of notes in a single JSON document.
The document can live on disk (optionally versioned with git), in Redis,
S3, WebDAV, MongoDB or a SQL database, as configured in quire.yaml.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		cfg, err = platform.ResolveConfig(configPath, wd)
		if err != nil {
			return err
		}

		level, pretty := cfg.Log.Level, cfg.Log.Pretty
		if verbose {
			level, pretty = "debug", true
		}
		logger, err = platform.NewLogger(level, pretty)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openWorkspace opens the configured notebook, logging load warnings.
func openWorkspace(ctx context.Context) (*platform.Workspace, error) {
	w, err := platform.Open(ctx, cfg, platform.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("open notebook: %w", err)
	}
	return w, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to quire.yaml (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}
