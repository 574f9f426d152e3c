package compression

import (
	"math"

	domain "pdfshrink/internal/domain/compression"
)

// Images below this edge length are never touched: downsampling them
// saves next to nothing and risks visible artifacts.
const minImageDimension = 100

// Decision is the outcome of the image transform policy for one image.
type Decision struct {
	Skip  bool
	Scale float64
}

// TargetDimensions returns the pixel dimensions an image should be
// re-encoded at.
func (d Decision) TargetDimensions(width, height int) (int, int) {
	w := int(math.Round(float64(width) * d.Scale))
	h := int(math.Round(float64(height) * d.Scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// decideScale maps image dimensions and request options to a target
// scale factor. It is deterministic and side-effect free; the same
// inputs always yield the same decision.
func decideScale(width, height int, opts domain.Options) Decision {
	if width < minImageDimension || height < minImageDimension {
		return Decision{Skip: true, Scale: 1.0}
	}

	var scale float64
	switch opts.Level {
	case domain.LevelLow:
		if opts.Quality > 80 {
			scale = 1.0
		} else {
			scale = 0.9
		}
	case domain.LevelMedium:
		if opts.Quality > 60 {
			scale = 0.8
		} else {
			scale = 0.7
		}
	case domain.LevelHigh:
		if opts.Quality > 40 {
			scale = 0.6
		} else {
			scale = 0.5
		}
	default:
		return Decision{Skip: true, Scale: 1.0}
	}

	if width > 1000 || height > 1000 {
		scale *= 0.8
	}
	if opts.Level == domain.LevelHigh && opts.Quality < 30 {
		scale *= 0.7
	}

	if scale >= 1.0 {
		// Nothing to gain from resampling at an identical resolution.
		return Decision{Skip: true, Scale: 1.0}
	}
	return Decision{Scale: scale}
}
