package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"pdfshrink/internal/config"
	"pdfshrink/internal/container"
)

var (
	verbose bool
	deps    *container.Container
)

var rootCmd = &cobra.Command{
	Use:   "pdfshrink",
	Short: "Reduce the size of PDF documents",
	Long: `Rewrites PDF documents into a smaller, structurally valid form:
strips non-essential metadata, recompresses content streams, downsamples
embedded images and repacks the object graph.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		deps = container.New(config.New(logger))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(compressCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(prefsCmd)
}
