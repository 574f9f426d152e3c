package compression

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	domain "pdfshrink/internal/domain/compression"
	"pdfshrink/internal/pdf"
	"pdfshrink/internal/testutil"
)

// grayImageStream builds an uncompressed grayscale image XObject with a
// smooth gradient payload, which re-encodes far smaller as JPEG.
func grayImageStream(size int) *pdf.StreamRef {
	samples := make([]byte, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			samples[y*size+x] = byte((x + y) / 4)
		}
	}
	return &pdf.StreamRef{
		ObjNr: 5,
		Stream: types.StreamDict{
			Dict: types.Dict{
				"Type":             types.Name("XObject"),
				"Subtype":          types.Name("Image"),
				"Width":            types.Integer(size),
				"Height":           types.Integer(size),
				"ColorSpace":       types.Name("DeviceGray"),
				"BitsPerComponent": types.Integer(8),
				"Length":           types.Integer(len(samples)),
			},
			Raw: samples,
		},
	}
}

func TestTransformImageRewritesDecodableImage(t *testing.T) {
	compressor, _ := newTestCompressor()
	ref := grayImageStream(300)

	if !compressor.transformImage(ref, domain.Options{Quality: 50, Level: domain.LevelMedium}) {
		t.Fatal("Expected decodable image to be rewritten")
	}

	// Medium with quality <= 60 scales by 0.7.
	if got := intEntry(ref.Stream.Dict, "Width"); got != 210 {
		t.Errorf("Expected width 210, got %d", got)
	}
	if got := intEntry(ref.Stream.Dict, "Height"); got != 210 {
		t.Errorf("Expected height 210, got %d", got)
	}
	if got := nameEntry(ref.Stream.Dict, "Filter"); got != "DCTDecode" {
		t.Errorf("Expected DCTDecode filter, got %q", got)
	}
	if len(ref.Stream.Raw) >= 300*300 {
		t.Errorf("Expected re-encoded payload to shrink, got %d bytes", len(ref.Stream.Raw))
	}
}

func TestTransformImageWaveletGate(t *testing.T) {
	compressor, _ := newTestCompressor()

	newJPXStream := func() *pdf.StreamRef {
		payload := []byte("not decodable wavelet data")
		return &pdf.StreamRef{
			ObjNr: 5,
			Stream: types.StreamDict{
				Dict: types.Dict{
					"Subtype":          types.Name("Image"),
					"Width":            types.Integer(300),
					"Height":           types.Integer(300),
					"ColorSpace":       types.Name("DeviceRGB"),
					"BitsPerComponent": types.Integer(8),
					"Filter":           types.Name("JPXDecode"),
					"Length":           types.Integer(len(payload)),
				},
				Raw: payload,
			},
		}
	}

	for _, level := range []domain.Level{domain.LevelLow, domain.LevelMedium, domain.LevelHigh} {
		ref := newJPXStream()
		if compressor.transformImage(ref, domain.Options{Quality: 20, Level: level}) {
			t.Errorf("Expected wavelet image to stay unmodified at level %s", level)
		}
		if got := nameEntry(ref.Stream.Dict, "Filter"); got != "JPXDecode" {
			t.Errorf("Expected filter to survive at level %s, got %q", level, got)
		}
		if got := intEntry(ref.Stream.Dict, "Width"); got != 300 {
			t.Errorf("Expected width to survive at level %s, got %d", level, got)
		}
	}

	// The gate is codec-specific: an otherwise identical decodable image
	// is rewritten below the high level.
	if !compressor.transformImage(grayImageStream(300), domain.Options{Quality: 20, Level: domain.LevelMedium}) {
		t.Error("Expected decodable image to be rewritten at medium")
	}
}

func TestTransformImageKeepsOriginalWhenNotSmaller(t *testing.T) {
	compressor, _ := newTestCompressor()

	// A noise image stored as a minimum-quality JPEG: re-encoding the
	// decoded pixels at maximum quality is guaranteed to grow, even
	// scaled down.
	noise := image.NewGray(image.Rect(0, 0, 300, 300))
	for i := range noise.Pix {
		noise.Pix[i] = byte(i * 239)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, noise, &jpeg.Options{Quality: 1}); err != nil {
		t.Fatalf("Failed to build fixture payload: %v", err)
	}
	payload := buf.Bytes()

	ref := &pdf.StreamRef{
		ObjNr: 5,
		Stream: types.StreamDict{
			Dict: types.Dict{
				"Subtype":          types.Name("Image"),
				"Width":            types.Integer(300),
				"Height":           types.Integer(300),
				"ColorSpace":       types.Name("DeviceGray"),
				"BitsPerComponent": types.Integer(8),
				"Filter":           types.Name("DCTDecode"),
				"Length":           types.Integer(len(payload)),
			},
			Raw: payload,
		},
	}

	if compressor.transformImage(ref, domain.Options{Quality: 100, Level: domain.LevelHigh}) {
		t.Fatal("Expected original payload to be kept when re-encoding does not shrink it")
	}
	if got := intEntry(ref.Stream.Dict, "Width"); got != 300 {
		t.Errorf("Expected width to survive, got %d", got)
	}
	if len(ref.Stream.Raw) != len(payload) {
		t.Errorf("Expected payload to survive, got %d bytes instead of %d",
			len(ref.Stream.Raw), len(payload))
	}
}

func TestCompressRewritesImageInOutput(t *testing.T) {
	compressor, provider := newTestCompressor()
	input := testutil.MinimalPDF(testutil.FixtureOptions{ImageSize: 300})

	result, err := compressor.Compress(context.Background(), domain.Request{
		Data:    input,
		Options: domain.Options{Quality: 20, Level: domain.LevelHigh},
	}, nil)
	if err != nil {
		t.Fatalf("Expected successful compression, got %v", err)
	}

	doc, err := provider.Parse(result.Output)
	if err != nil {
		t.Fatalf("Expected output to be parseable, got %v", err)
	}
	pages := doc.Pages()
	if len(pages) != 1 {
		t.Fatalf("Expected 1 page, got %d", len(pages))
	}

	resources := doc.ResolveDict(pages[0]["Resources"])
	if resources == nil {
		t.Fatal("Expected resolvable page resources")
	}
	xObjects := doc.ResolveDict(resources["XObject"])
	if xObjects == nil {
		t.Fatal("Expected XObject map in output")
	}
	ref, ok := doc.ResolveStream(xObjects["Im0"])
	if !ok {
		t.Fatal("Expected Im0 to resolve to a stream in the output")
	}

	// High with quality 20 scales by 0.5*0.7.
	if got := intEntry(ref.Stream.Dict, "Width"); got != 105 {
		t.Errorf("Expected output image width 105, got %d", got)
	}
	if got := intEntry(ref.Stream.Dict, "Height"); got != 105 {
		t.Errorf("Expected output image height 105, got %d", got)
	}
	if got := firstFilterName(ref.Stream.Dict); got != "DCTDecode" {
		t.Errorf("Expected output image filter DCTDecode, got %q", got)
	}
	if len(ref.Stream.Raw) >= 300*300 {
		t.Errorf("Expected image payload to shrink, got %d bytes", len(ref.Stream.Raw))
	}
}
