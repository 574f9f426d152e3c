package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"pdfshrink/internal/common"
	domain "pdfshrink/internal/domain/compression"
	"pdfshrink/internal/worker"
)

var (
	compressOutput  string
	compressLevel   string
	compressQuality int
	preserveQuality bool
)

var compressCmd = &cobra.Command{
	Use:   "compress <input.pdf> [more.pdf ...]",
	Short: "Compress one or more PDF files",
	Long: `Compresses each input into a smaller, valid PDF. With a single input
the -o flag names the output file; otherwise outputs are written next to
their inputs with a timestamp suffix. Options left unset fall back to the
stored preferences.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := resolveOptions(cmd)
		if err := opts.Validate(); err != nil {
			return err
		}

		if len(args) == 1 {
			return runCompressSingle(cmd, args[0], opts)
		}
		if compressOutput != "" {
			return fmt.Errorf("-o is only valid with a single input file")
		}
		return runCompressBatch(cmd, args, opts)
	},
}

func init() {
	compressCmd.Flags().StringVarP(&compressOutput, "output", "o", "", "Output file (single input only)")
	compressCmd.Flags().StringVarP(&compressLevel, "level", "l", "", "Compression level: low, medium or high")
	compressCmd.Flags().IntVarP(&compressQuality, "quality", "q", -1, "Image quality 0-100")
	compressCmd.Flags().BoolVar(&preserveQuality, "preserve-quality", false, "Keep annotations and rendering hints intact")
}

// resolveOptions merges the command-line flags over the stored
// preference defaults; only flags the user actually set win.
func resolveOptions(cmd *cobra.Command) domain.Options {
	opts := deps.GetPreferencesService().DefaultOptions()

	if cmd.Flags().Changed("level") {
		opts.Level = domain.Level(compressLevel)
	}
	if cmd.Flags().Changed("quality") {
		opts.Quality = compressQuality
	}
	if cmd.Flags().Changed("preserve-quality") {
		opts.PreserveQuality = preserveQuality
	}
	return opts
}

func runCompressSingle(cmd *cobra.Command, inputPath string, opts domain.Options) error {
	logger := slog.Default()

	result, err := deps.GetCompressionService().CompressFile(
		cmd.Context(), inputPath, compressOutput, opts,
		func(update domain.ProgressUpdate) {
			logger.Info("progress", "percent", update.Progress, "stage", update.Message)
		})
	if err != nil {
		return err
	}

	printFileResult(*result)
	return nil
}

func runCompressBatch(cmd *cobra.Command, inputPaths []string, opts domain.Options) error {
	items := make([]worker.WorkItem, 0, len(inputPaths))
	for _, path := range inputPaths {
		items = append(items, worker.WorkItem{ID: common.GenerateUUID(), Path: path})
	}

	service := deps.GetCompressionService()
	pool := worker.NewPool(func(ctx context.Context, item worker.WorkItem) (*domain.FileResult, error) {
		result, err := service.CompressFile(ctx, item.Path, "", opts, nil)
		if err != nil {
			return nil, err
		}
		result.FileID = item.ID
		return result, nil
	}, slog.Default())

	batch := pool.ProcessBatch(cmd.Context(), items)
	if !batch.Success {
		return fmt.Errorf("%s", batch.Error)
	}

	for _, file := range batch.Files {
		printFileResult(file)
	}
	fmt.Printf("total: %s -> %s (%.1f%% saved across %d files)\n",
		humanSize(batch.TotalOriginalSize),
		humanSize(batch.TotalCompressedSize),
		batch.OverallCompressionRatio*100,
		batch.TotalFiles)
	return nil
}

func printFileResult(file domain.FileResult) {
	if file.Error != "" {
		fmt.Printf("%s: failed: %s\n", file.OriginalFilename, file.Error)
		return
	}
	fmt.Printf("%s -> %s (%s -> %s, %.1f%% saved)\n",
		file.OriginalFilename,
		file.CompressedFilename,
		humanSize(file.OriginalSize),
		humanSize(file.CompressedSize),
		file.CompressionRatio*100)
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	value := fmt.Sprintf("%.1f", float64(n)/float64(div))
	value = strings.TrimSuffix(value, ".0")
	return fmt.Sprintf("%s %ciB", value, "KMGTPE"[exp])
}
