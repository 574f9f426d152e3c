package compression

import (
	"context"
	"fmt"
	"log/slog"

	domain "pdfshrink/internal/domain/compression"
	"pdfshrink/internal/pdf"
)

// Stage progress milestones. Values are ordered so emitted progress is
// monotonically non-decreasing; 100 is reached only on success.
const (
	progressLoad      = 5
	progressMetadata  = 25
	progressContent   = 45
	progressImages    = 70
	progressStructure = 85
	progressSave      = 95
	progressDone      = 100
)

// Compressor drives the compression pipeline for one request at a time:
// parse, strip metadata, optimize content streams, process images,
// optimize structure, serialize. Interior stages are isolated — a
// failure in one is logged and the pipeline continues — while load and
// save failures abort the request.
type Compressor struct {
	provider *pdf.Provider
	logger   *slog.Logger
	stages   []stage
}

// NewCompressor creates a new compressor instance
func NewCompressor(provider *pdf.Provider, logger *slog.Logger) *Compressor {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Compressor{provider: provider, logger: logger}
	c.stages = []stage{
		{"strip metadata", progressMetadata, c.stripMetadata},
		{"optimize content streams", progressContent, c.optimizeContentStreams},
		{"process images", progressImages, c.processImages},
		{"optimize structure", progressStructure, c.optimizeStructure},
	}
	return c
}

type stage struct {
	name     string
	progress int
	run      func(doc *pdf.Document, opts domain.Options) error
}

// Compress runs one request to completion and returns exactly one
// terminal outcome. Progress updates are delivered through emit.
func (c *Compressor) Compress(ctx context.Context, request domain.Request, emit func(domain.ProgressUpdate)) (*domain.Result, error) {
	if emit == nil {
		emit = func(domain.ProgressUpdate) {}
	}
	if err := request.Options.Validate(); err != nil {
		return nil, &LoadError{Err: err}
	}

	emit(domain.ProgressUpdate{Progress: progressLoad, Message: "loading document"})

	doc, err := c.provider.Parse(request.Data)
	if err != nil {
		return nil, &LoadError{Err: err}
	}

	for _, s := range c.stages {
		if err := ctx.Err(); err != nil {
			return nil, &LoadError{Err: err}
		}

		emit(domain.ProgressUpdate{Progress: s.progress, Message: s.name})

		if err := c.runStage(s, doc, request.Options); err != nil {
			// Graceful degradation: a malformed sub-object must not
			// prevent the rest of the document from being compressed.
			c.logger.Warn("pipeline stage failed, continuing",
				"stage", s.name, "error", err)
		}
	}

	emit(domain.ProgressUpdate{Progress: progressSave, Message: "saving document"})

	output, err := c.provider.Serialize(doc)
	if err != nil {
		return nil, &SaveError{Err: err}
	}

	result := packageResult(output, int64(len(request.Data)))
	emit(domain.ProgressUpdate{Progress: progressDone, Message: "done"})
	return result, nil
}

// runStage executes one interior stage and converts both returned
// errors and panics into a StageError the orchestrator can inspect.
func (c *Compressor) runStage(s stage, doc *pdf.Document, opts domain.Options) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &StageError{Stage: s.name, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if stageErr := s.run(doc, opts); stageErr != nil {
		return &StageError{Stage: s.name, Err: stageErr}
	}
	return nil
}

func (c *Compressor) stripMetadata(doc *pdf.Document, opts domain.Options) error {
	catalog, err := doc.Catalog()
	if err != nil {
		return err
	}

	pruneCatalog(doc, catalog, opts)
	doc.DropInfo()

	for _, page := range doc.Pages() {
		prunePage(page, opts)
	}
	return nil
}

func (c *Compressor) optimizeStructure(doc *pdf.Document, opts domain.Options) error {
	return c.provider.OptimizeStructure(doc)
}
