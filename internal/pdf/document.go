package pdf

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Document is the object graph of one PDF, owned by exactly one
// compression request. All mutation happens through the dictionaries
// and streams handed out here; the underlying pdfcpu context is never
// shared across requests.
type Document struct {
	ctx *model.Context
}

// NewDocument wraps an already-built pdfcpu context.
func NewDocument(ctx *model.Context) *Document {
	return &Document{ctx: ctx}
}

// Context exposes the underlying pdfcpu context.
func (d *Document) Context() *model.Context {
	return d.ctx
}

// Catalog returns the document's root dictionary.
func (d *Document) Catalog() (types.Dict, error) {
	if d.ctx.Root == nil {
		return nil, fmt.Errorf("document has no root reference")
	}
	dict, err := d.ctx.DereferenceDict(*d.ctx.Root)
	if err != nil {
		return nil, fmt.Errorf("catalog is not resolvable: %w", err)
	}
	if dict == nil {
		return nil, fmt.Errorf("catalog is not a dictionary")
	}
	return dict, nil
}

// Resolve dereferences an object. A dangling or malformed reference
// yields nil; absence is a representable state, never an error.
func (d *Document) Resolve(obj types.Object) types.Object {
	if obj == nil {
		return nil
	}
	resolved, err := d.ctx.Dereference(obj)
	if err != nil {
		return nil
	}
	return resolved
}

// ResolveDict dereferences an object expected to be a dictionary.
// Unresolvable or wrong-typed references yield nil.
func (d *Document) ResolveDict(obj types.Object) types.Dict {
	switch o := d.Resolve(obj).(type) {
	case types.Dict:
		return o
	case types.StreamDict:
		return o.Dict
	case *types.StreamDict:
		return o.Dict
	}
	return nil
}

// DropInfo detaches the document information dictionary from the
// trailer. The orphaned object is compacted away at serialization.
func (d *Document) DropInfo() bool {
	if d.ctx.Info == nil {
		return false
	}
	d.ctx.Info = nil
	return true
}

// Pages returns every page dictionary reachable from the catalog's page
// tree. The walk is cycle-safe: the parent/child links of the page tree
// are cyclic by construction, so visited nodes are tracked by object
// number.
func (d *Document) Pages() []types.Dict {
	catalog, err := d.Catalog()
	if err != nil {
		return nil
	}

	rootObj, found := catalog.Find("Pages")
	if !found {
		return nil
	}

	var pages []types.Dict
	visited := make(map[int]bool)
	d.walkPageTree(rootObj, visited, &pages)
	return pages
}

func (d *Document) walkPageTree(obj types.Object, visited map[int]bool, pages *[]types.Dict) {
	if ref, ok := obj.(types.IndirectRef); ok {
		objNr := ref.ObjectNumber.Value()
		if visited[objNr] {
			return
		}
		visited[objNr] = true
	}

	node := d.ResolveDict(obj)
	if node == nil {
		return
	}

	switch nodeType(node) {
	case "Pages":
		kidsObj, found := node.Find("Kids")
		if !found {
			return
		}
		kids, ok := d.Resolve(kidsObj).(types.Array)
		if !ok {
			return
		}
		for _, kid := range kids {
			d.walkPageTree(kid, visited, pages)
		}
	case "Page":
		*pages = append(*pages, node)
	}
}

func nodeType(d types.Dict) string {
	obj, found := d.Find("Type")
	if !found {
		return ""
	}
	if name, ok := obj.(types.Name); ok {
		return string(name)
	}
	return ""
}

// StreamRef pairs a stream dictionary with its position in the object
// table so mutations can be written back.
type StreamRef struct {
	ObjNr  int
	GenNr  int
	Stream types.StreamDict
}

// ResolveStream dereferences an object expected to be a stream.
func (d *Document) ResolveStream(obj types.Object) (*StreamRef, bool) {
	ref, ok := obj.(types.IndirectRef)
	if !ok {
		return nil, false
	}

	objNr := ref.ObjectNumber.Value()
	entry, ok := d.ctx.Table[objNr]
	if !ok || entry == nil || entry.Free || entry.Object == nil {
		return nil, false
	}
	// A stale generation means the reference predates a reuse of this
	// object number.
	if entry.Generation != nil && *entry.Generation != ref.GenerationNumber.Value() {
		return nil, false
	}

	switch sd := entry.Object.(type) {
	case types.StreamDict:
		return &StreamRef{ObjNr: objNr, GenNr: ref.GenerationNumber.Value(), Stream: sd}, true
	case *types.StreamDict:
		return &StreamRef{ObjNr: objNr, GenNr: ref.GenerationNumber.Value(), Stream: *sd}, true
	}
	return nil, false
}

// ReplaceStream writes a mutated stream back into the object table.
func (d *Document) ReplaceStream(ref *StreamRef) {
	entry, ok := d.ctx.Table[ref.ObjNr]
	if !ok || entry == nil {
		return
	}
	if _, isPtr := entry.Object.(*types.StreamDict); isPtr {
		sd := ref.Stream
		entry.Object = &sd
		return
	}
	entry.Object = ref.Stream
}
