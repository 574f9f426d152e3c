package compression

import "fmt"

// Level is the coarse policy knob governing how aggressively structural
// entries are pruned and images are downsampled.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// ParseLevel validates a user-supplied compression level string.
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case LevelLow, LevelMedium, LevelHigh:
		return Level(s), nil
	}
	return "", fmt.Errorf("invalid compression level %q (expected low, medium or high)", s)
}

// Options holds the user-chosen knobs for one compression request.
type Options struct {
	Quality         int   `json:"quality"`
	Level           Level `json:"compressionLevel"`
	PreserveQuality bool  `json:"preserveQuality"`
}

// DefaultOptions returns the options applied when a request leaves them unset.
func DefaultOptions() Options {
	return Options{
		Quality:         75,
		Level:           LevelMedium,
		PreserveQuality: false,
	}
}

// Validate checks option ranges before a request is submitted.
func (o Options) Validate() error {
	if o.Quality < 0 || o.Quality > 100 {
		return fmt.Errorf("quality %d out of range [0,100]", o.Quality)
	}
	if _, err := ParseLevel(string(o.Level)); err != nil {
		return err
	}
	return nil
}

// Request is the immutable input of one compression run: raw document
// bytes plus options. The document graph built from Data belongs to this
// request alone and is discarded when the request terminates.
type Request struct {
	Data    []byte  `json:"documentBytes"`
	Options Options `json:"options"`
}

// ProgressUpdate reports pipeline progress. Within one request the
// Progress values are monotonically non-decreasing and reach 100 only
// when the request succeeds.
type ProgressUpdate struct {
	Progress int    `json:"progress"`
	Message  string `json:"message,omitempty"`
}

// Result is the success payload of a compression request. Ratio is
// (original-compressed)/original and may be negative when the output
// grew; it is reported as-is, never clamped.
type Result struct {
	Output         []byte  `json:"outputBytes"`
	OriginalSize   int64   `json:"original_size"`
	CompressedSize int64   `json:"compressed_size"`
	Ratio          float64 `json:"compression_ratio"`
}

// FileResult describes the outcome for a single file of a batch run.
type FileResult struct {
	FileID             string  `json:"file_id"`
	OriginalFilename   string  `json:"original_filename"`
	CompressedFilename string  `json:"compressed_filename"`
	OriginalSize       int64   `json:"original_size"`
	CompressedSize     int64   `json:"compressed_size"`
	CompressionRatio   float64 `json:"compression_ratio"`
	Status             string  `json:"status"`
	Error              string  `json:"error,omitempty"`
}

// BatchResult aggregates a multi-file compression run.
type BatchResult struct {
	Success                 bool         `json:"success"`
	Files                   []FileResult `json:"files"`
	TotalFiles              int          `json:"total_files"`
	TotalOriginalSize       int64        `json:"total_original_size"`
	TotalCompressedSize     int64        `json:"total_compressed_size"`
	OverallCompressionRatio float64      `json:"overall_compression_ratio"`
	Error                   string       `json:"error,omitempty"`
}
