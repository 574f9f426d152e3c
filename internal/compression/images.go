package compression

import (
	"bytes"
	"image"
	"image/jpeg"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"golang.org/x/image/draw"

	domain "pdfshrink/internal/domain/compression"
	"pdfshrink/internal/pdf"
)

// processImages walks every page's resource dictionary, including the
// resources of nested form XObjects, and re-encodes each eligible image
// at the resolution chosen by the transform policy.
func (c *Compressor) processImages(doc *pdf.Document, opts domain.Options) error {
	visited := make(map[int]bool)

	for _, page := range doc.Pages() {
		resObj, found := page.Find("Resources")
		if !found {
			continue
		}
		// An unresolved or wrong-typed resource dictionary means there
		// is nothing to process on this page.
		resources := doc.ResolveDict(resObj)
		if resources == nil {
			continue
		}
		c.visitResources(doc, resources, visited, opts)
	}
	return nil
}

func (c *Compressor) visitResources(doc *pdf.Document, resources types.Dict, visited map[int]bool, opts domain.Options) {
	pruneResources(resources, opts)

	xObjectsObj, found := resources.Find("XObject")
	if !found {
		return
	}
	xObjects := doc.ResolveDict(xObjectsObj)
	if xObjects == nil {
		return
	}

	for _, obj := range xObjects {
		ref, ok := doc.ResolveStream(obj)
		if !ok || visited[ref.ObjNr] {
			continue
		}
		visited[ref.ObjNr] = true

		switch nameEntry(ref.Stream.Dict, "Subtype") {
		case "Image":
			if c.transformImage(ref, opts) {
				doc.ReplaceStream(ref)
			}
		case "Form":
			if nested := doc.ResolveDict(ref.Stream.Dict["Resources"]); nested != nil {
				c.visitResources(doc, nested, visited, opts)
			}
		}
	}
}

// transformImage re-encodes a single image XObject in place and reports
// whether the stream was modified. Any image we cannot decode is left
// unchanged.
func (c *Compressor) transformImage(ref *pdf.StreamRef, opts domain.Options) bool {
	sd := &ref.Stream
	width := intEntry(sd.Dict, "Width")
	height := intEntry(sd.Dict, "Height")
	if width <= 0 || height <= 0 {
		return false
	}

	decision := decideScale(width, height, opts)
	if decision.Skip {
		return false
	}

	// Wavelet codecs are already byte-efficient; recompressing them for
	// quality alone trades visible degradation for little gain, so they
	// are only attempted at the high level.
	filterName := firstFilterName(sd.Dict)
	if filterName == "JPXDecode" && opts.Level != domain.LevelHigh {
		return false
	}

	img := decodeImage(sd, filterName)
	if img == nil {
		return false
	}

	targetW, targetH := decision.TargetDimensions(width, height)
	scaled := resample(img, targetW, targetH)

	quality := opts.Quality
	if quality < 1 {
		quality = 1
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: quality}); err != nil {
		return false
	}

	// Keep the original payload when re-encoding did not help.
	if buf.Len() >= len(sd.Raw) && len(sd.Raw) > 0 {
		return false
	}

	encoded := buf.Bytes()
	sd.Raw = encoded
	sd.Content = nil
	sd.FilterPipeline = []types.PDFFilter{{Name: "DCTDecode"}}

	length := int64(len(encoded))
	sd.StreamLength = &length
	sd.Dict["Length"] = types.Integer(length)
	sd.Dict["Filter"] = types.Name("DCTDecode")
	sd.Dict["Width"] = types.Integer(targetW)
	sd.Dict["Height"] = types.Integer(targetH)
	sd.Dict["BitsPerComponent"] = types.Integer(8)
	if isGray(scaled) {
		sd.Dict["ColorSpace"] = types.Name("DeviceGray")
	} else {
		sd.Dict["ColorSpace"] = types.Name("DeviceRGB")
	}
	delete(sd.Dict, "DecodeParms")
	delete(sd.Dict, "Decode")

	return true
}

func resample(img image.Image, targetW, targetH int) image.Image {
	var dst draw.Image
	if isGray(img) {
		dst = image.NewGray(image.Rect(0, 0, targetW, targetH))
	} else {
		dst = image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// decodeImage turns an image XObject payload into an image.Image.
// Returns nil for payloads in codecs we cannot decode.
func decodeImage(sd *types.StreamDict, filterName string) image.Image {
	switch filterName {
	case "DCTDecode":
		img, err := jpeg.Decode(bytes.NewReader(sd.Raw))
		if err != nil {
			return nil
		}
		return img
	case "":
		return imageFromSamples(sd, sd.Raw)
	case "FlateDecode", "LZWDecode", "RunLengthDecode", "ASCIIHexDecode", "ASCII85Decode":
		if err := sd.Decode(); err != nil {
			return nil
		}
		return imageFromSamples(sd, sd.Content)
	}
	return nil
}

// imageFromSamples builds an image from raw component samples based on
// the declared color space and bit depth.
func imageFromSamples(sd *types.StreamDict, data []byte) image.Image {
	width := intEntry(sd.Dict, "Width")
	height := intEntry(sd.Dict, "Height")
	if width <= 0 || height <= 0 {
		return nil
	}

	bpc := intEntry(sd.Dict, "BitsPerComponent")
	if bpc == 0 {
		bpc = 8
	}
	if bpc != 8 {
		return nil
	}

	switch nameEntry(sd.Dict, "ColorSpace") {
	case "DeviceGray":
		if len(data) < width*height {
			return nil
		}
		return &image.Gray{
			Pix:    data,
			Stride: width,
			Rect:   image.Rect(0, 0, width, height),
		}
	case "DeviceRGB":
		if len(data) < width*height*3 {
			return nil
		}
		img := image.NewNRGBA(image.Rect(0, 0, width, height))
		i := 0
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				offset := (y*width + x) * 4
				img.Pix[offset] = data[i]
				img.Pix[offset+1] = data[i+1]
				img.Pix[offset+2] = data[i+2]
				img.Pix[offset+3] = 255
				i += 3
			}
		}
		return img
	case "DeviceCMYK":
		if len(data) < width*height*4 {
			return nil
		}
		img := image.NewCMYK(image.Rect(0, 0, width, height))
		copy(img.Pix, data)
		return img
	}
	return nil
}

func isGray(img image.Image) bool {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return true
	}
	return false
}
