// Package testutil builds small PDF fixtures for tests. The generator
// writes real cross-reference offsets, so its output is a structurally
// valid single-page document.
package testutil

import (
	"bytes"
	"fmt"
)

// FixtureOptions controls the shape of the generated document.
type FixtureOptions struct {
	// ImageSize is the pixel edge length of the embedded grayscale
	// image; 0 omits the image entirely.
	ImageSize int
	// DanglingResources points the page's Resources entry at an object
	// number that does not exist.
	DanglingResources bool
}

// MinimalPDF returns the bytes of a one-page PDF containing an
// uncompressed content stream, an optional uncompressed grayscale
// image, a document information dictionary and several prunable
// catalog entries.
func MinimalPDF(opts FixtureOptions) []byte {
	var objects []string

	resources := "<< >>"
	if opts.ImageSize > 0 {
		resources = "<< /XObject << /Im0 5 0 R >> /ProcSet [/PDF /ImageB] >>"
	}
	if opts.DanglingResources {
		resources = "97 0 R"
	}

	content := "q 100 0 0 100 0 0 cm Q"
	if opts.ImageSize > 0 {
		content = "q 100 0 0 100 0 0 cm /Im0 Do Q"
	}

	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R /PageLayout /SinglePage /PageMode /UseThumbs /ViewerPreferences << /HideToolbar true >> >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources %s /Contents 4 0 R >>", resources),
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
	)

	if opts.ImageSize > 0 {
		samples := make([]byte, opts.ImageSize*opts.ImageSize)
		for i := range samples {
			samples[i] = byte(i % 251)
		}
		objects = append(objects, fmt.Sprintf(
			"<< /Type /XObject /Subtype /Image /Width %d /Height %d /ColorSpace /DeviceGray /BitsPerComponent 8 /Length %d >>\nstream\n%s\nendstream",
			opts.ImageSize, opts.ImageSize, len(samples), samples))
	} else {
		// Keep object numbering stable across fixture variants.
		objects = append(objects, "<< /Unused true >>")
	}

	objects = append(objects, "<< /Producer (pdfshrink test fixture) /Title (fixture) >>")

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.7\n")

	offsets := make([]int, len(objects)+1)
	for i, body := range objects {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R /Info 6 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xrefOffset)

	return buf.Bytes()
}
