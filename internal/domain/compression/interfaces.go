package compression

import "context"

// Service compresses PDF documents. Implementations own the full
// pipeline for one request: parse, prune, image processing, structure
// optimization and serialization.
type Service interface {
	// Compress runs one request to completion. Progress updates are
	// delivered through emit (may be nil); exactly one of the returned
	// values is meaningful.
	Compress(ctx context.Context, request Request, emit func(ProgressUpdate)) (*Result, error)
}
