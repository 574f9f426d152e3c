package compression

import "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

// intEntry reads an integer dictionary entry, 0 when absent or not an
// integer.
func intEntry(d types.Dict, key string) int {
	obj, found := d.Find(key)
	if !found {
		return 0
	}
	if i, ok := obj.(types.Integer); ok {
		return i.Value()
	}
	return 0
}

// nameEntry reads a name dictionary entry, "" when absent or not a name.
func nameEntry(d types.Dict, key string) string {
	obj, found := d.Find(key)
	if !found {
		return ""
	}
	if name, ok := obj.(types.Name); ok {
		return string(name)
	}
	return ""
}

// firstFilterName returns the first (outermost) filter of a stream
// dictionary. Filter may be a single name or an array of names.
func firstFilterName(d types.Dict) string {
	obj, found := d.Find("Filter")
	if !found {
		return ""
	}
	switch f := obj.(type) {
	case types.Name:
		return string(f)
	case types.Array:
		if len(f) > 0 {
			if name, ok := f[0].(types.Name); ok {
				return string(name)
			}
		}
	}
	return ""
}
