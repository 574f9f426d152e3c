package pdf

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"pdfshrink/internal/common"
)

// Provider parses raw PDF bytes into a document graph and serializes a
// mutated graph back into bytes. It wraps pdfcpu, which owns the
// low-level tokenizing, cross-reference handling and object-stream
// packing.
type Provider struct {
	conf   *model.Configuration
	logger *slog.Logger
}

// NewProvider creates a provider using the given pdfcpu configuration.
func NewProvider(conf *model.Configuration, logger *slog.Logger) *Provider {
	if conf == nil {
		conf = model.NewDefaultConfiguration()
		conf.ValidationMode = model.ValidationRelaxed
		conf.WriteObjectStream = true
		conf.WriteXRefStream = true
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{conf: conf, logger: logger}
}

// Parse builds the document graph for one compression request. Relaxed
// validation lets pdfcpu repair recoverable damage; anything it cannot
// recover from is returned as an error and treated as fatal upstream.
func (p *Provider) Parse(data []byte) (*Document, error) {
	if len(data) == 0 {
		return nil, common.ErrEmptyDocument
	}

	ctx, err := api.ReadContext(bytes.NewReader(data), p.conf)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("validating document: %w", err)
	}

	return &Document{ctx: ctx}, nil
}

// Serialize writes the mutated graph back into a compact byte stream.
// Object-stream packing and object renumbering are governed by the
// provider configuration; unreachable objects are dropped.
func (p *Provider) Serialize(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := api.WriteContext(doc.ctx, &buf); err != nil {
		return nil, fmt.Errorf("serializing document: %w", err)
	}
	return buf.Bytes(), nil
}

// OptimizeStructure deduplicates resources and compacts the
// cross-reference table in place.
func (p *Provider) OptimizeStructure(doc *Document) error {
	return pdfcpu.OptimizeXRefTable(doc.ctx)
}
