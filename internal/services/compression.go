package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pdfshrink/internal/database"
	domain "pdfshrink/internal/domain/compression"
	"pdfshrink/internal/worker"
)

// CompressionService handles PDF compression operations. Every request
// is handed to the worker so it runs in its own isolated background
// goroutine; the service consumes the request's message channel and
// adapts it to a plain call-and-return API.
type CompressionService struct {
	worker *worker.Worker
	db     *database.Database
	logger *slog.Logger
}

// NewCompressionService creates a new compression service
func NewCompressionService(w *worker.Worker, db *database.Database, logger *slog.Logger) *CompressionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompressionService{worker: w, db: db, logger: logger}
}

// Compress runs one in-memory compression request.
func (s *CompressionService) Compress(ctx context.Context, request domain.Request, emit func(domain.ProgressUpdate)) (*domain.Result, error) {
	if emit == nil {
		emit = func(domain.ProgressUpdate) {}
	}

	var (
		result *domain.Result
		errMsg string
	)
	for msg := range s.worker.Submit(ctx, request) {
		switch {
		case msg.Progress != nil:
			emit(*msg.Progress)
		case msg.Result != nil:
			result = msg.Result
		case msg.Error != "":
			errMsg = msg.Error
		}
	}

	if errMsg != "" {
		return nil, errors.New(errMsg)
	}
	if result == nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, errors.New("compression request ended without a result")
	}
	return result, nil
}

// CompressFile compresses a PDF file on disk and records the run in the
// history database.
func (s *CompressionService) CompressFile(ctx context.Context, inputPath, outputPath string, opts domain.Options, emit func(domain.ProgressUpdate)) (*domain.FileResult, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", inputPath, err)
	}

	request := domain.Request{Data: data, Options: opts}
	result, err := s.Compress(ctx, request, emit)
	if err != nil {
		return nil, err
	}

	if outputPath == "" {
		outputPath = defaultOutputPath(inputPath)
	}
	if err := os.WriteFile(outputPath, result.Output, 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", outputPath, err)
	}

	s.record(inputPath, result, opts)

	return &domain.FileResult{
		OriginalFilename:   filepath.Base(inputPath),
		CompressedFilename: filepath.Base(outputPath),
		OriginalSize:       result.OriginalSize,
		CompressedSize:     result.CompressedSize,
		CompressionRatio:   result.Ratio,
	}, nil
}

func (s *CompressionService) record(inputPath string, result *domain.Result, opts domain.Options) {
	if s.db == nil {
		return
	}
	err := s.db.RecordCompression(&database.CompressionRecord{
		Filename:         filepath.Base(inputPath),
		OriginalSize:     result.OriginalSize,
		CompressedSize:   result.CompressedSize,
		CompressionRatio: result.Ratio,
		Level:            string(opts.Level),
		Quality:          opts.Quality,
		CreatedAt:        time.Now().UTC(),
	})
	if err != nil {
		s.logger.Warn("failed to record compression history", "error", err)
	}
}

func defaultOutputPath(inputPath string) string {
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	timestamp := time.Now().UTC().Format("20060102_150405")
	return fmt.Sprintf("%s_%s.pdf", base, timestamp)
}
