package compression

import (
	"bytes"
	"compress/zlib"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	domain "pdfshrink/internal/domain/compression"
	"pdfshrink/internal/pdf"
)

// optimizeContentStreams flate-compresses content streams that are
// stored uncompressed and applies the resource-dictionary policy per
// page. Pages whose content or resources cannot be resolved are
// skipped.
func (c *Compressor) optimizeContentStreams(doc *pdf.Document, opts domain.Options) error {
	for _, page := range doc.Pages() {
		if resObj, found := page.Find("Resources"); found {
			pruneResources(doc.ResolveDict(resObj), opts)
		}

		contentsObj, found := page.Find("Contents")
		if !found {
			continue
		}

		switch contents := doc.Resolve(contentsObj).(type) {
		case types.Array:
			for _, part := range contents {
				c.compressContentStream(doc, part)
			}
		default:
			c.compressContentStream(doc, contentsObj)
		}
	}
	return nil
}

// compressContentStream flate-encodes one unfiltered content stream in
// place. Streams that already carry a filter are left alone.
func (c *Compressor) compressContentStream(doc *pdf.Document, obj types.Object) {
	ref, ok := doc.ResolveStream(obj)
	if !ok {
		return
	}

	sd := &ref.Stream
	if len(sd.FilterPipeline) > 0 {
		return
	}
	if _, found := sd.Dict.Find("Filter"); found {
		return
	}

	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(sd.Raw); err != nil {
		w.Close()
		return
	}
	w.Close()

	if buf.Len() >= len(sd.Raw) {
		return
	}

	compressed := buf.Bytes()
	sd.Raw = compressed
	sd.Content = nil
	sd.FilterPipeline = []types.PDFFilter{{Name: "FlateDecode"}}

	length := int64(len(compressed))
	sd.StreamLength = &length
	sd.Dict["Length"] = types.Integer(length)
	sd.Dict["Filter"] = types.Name("FlateDecode")
	delete(sd.Dict, "DecodeParms")

	doc.ReplaceStream(ref)
}
