package worker

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"pdfshrink/internal/common"
	domain "pdfshrink/internal/domain/compression"
)

// ProcessorFunc defines the function signature for processing a single file
type ProcessorFunc func(ctx context.Context, item WorkItem) (*domain.FileResult, error)

// Pool processes batches of files concurrently. Files are independent
// requests: one failing file never aborts the batch.
type Pool struct {
	processor ProcessorFunc
	logger    *slog.Logger
}

// NewPool creates a new pool instance
func NewPool(processor ProcessorFunc, logger *slog.Logger) *Pool {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool{processor: processor, logger: logger}
}

// ProcessBatch compresses all items and aggregates the results.
func (p *Pool) ProcessBatch(ctx context.Context, items []WorkItem) domain.BatchResult {
	if len(items) == 0 {
		return domain.BatchResult{
			Success: false,
			Error:   common.ErrNoFilesProvided.Error(),
		}
	}

	var (
		mu      sync.Mutex
		results []domain.FileResult
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers())

	for _, item := range items {
		item := item
		g.Go(func() error {
			result, err := p.processor(ctx, item)
			if err != nil {
				p.logger.Error("file processing failed", "file", item.Path, "error", err)
				result = &domain.FileResult{
					FileID:           item.ID,
					OriginalFilename: filepath.Base(item.Path),
					Status:           "error",
					Error:            err.Error(),
				}
			} else {
				result.Status = "completed"
			}

			mu.Lock()
			results = append(results, *result)
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	return aggregate(results)
}

func maxWorkers() int {
	n := runtime.NumCPU()
	if n > common.MaxConcurrencyLimit {
		n = common.MaxConcurrencyLimit
	}
	return n
}

func aggregate(results []domain.FileResult) domain.BatchResult {
	var totalOriginalSize, totalCompressedSize int64
	for _, result := range results {
		if result.Status == "completed" {
			totalOriginalSize += result.OriginalSize
			totalCompressedSize += result.CompressedSize
		}
	}

	var overallRatio float64
	if totalOriginalSize > 0 {
		overallRatio = float64(totalOriginalSize-totalCompressedSize) / float64(totalOriginalSize)
	}

	return domain.BatchResult{
		Success:                 true,
		Files:                   results,
		TotalFiles:              len(results),
		TotalOriginalSize:       totalOriginalSize,
		TotalCompressedSize:     totalCompressedSize,
		OverallCompressionRatio: overallRatio,
	}
}
