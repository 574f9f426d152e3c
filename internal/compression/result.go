package compression

import domain "pdfshrink/internal/domain/compression"

// Ratio computes the size reduction (original-compressed)/original.
// Pathological inputs can grow on rewrite; the negative ratio is
// reported as-is, never clamped.
func Ratio(originalSize, compressedSize int64) float64 {
	if originalSize == 0 {
		return 0
	}
	return float64(originalSize-compressedSize) / float64(originalSize)
}

func packageResult(output []byte, originalSize int64) *domain.Result {
	compressedSize := int64(len(output))
	return &domain.Result{
		Output:         output,
		OriginalSize:   originalSize,
		CompressedSize: compressedSize,
		Ratio:          Ratio(originalSize, compressedSize),
	}
}
