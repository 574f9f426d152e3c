package compression

import (
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	domain "pdfshrink/internal/domain/compression"
	"pdfshrink/internal/pdf"
)

// Catalog entries that never affect rendering fidelity.
var catalogAlwaysKeys = []string{
	"Metadata",
	"MarkInfo",
	"Outlines",
	"PageLabels",
	"ViewerPreferences",
	"PageLayout",
	"PageMode",
	"Threads",
	"OpenAction",
}

// Heavier structural entries, dropped only at the high level: structure
// trees and optional-content configuration carry accessibility and
// layer metadata that some workflows still want at lower levels.
var catalogHighKeys = []string{
	"StructTreeRoot",
	"OCProperties",
}

var pageHighKeys = []string{
	"Dur",
	"Trans",
	"AA",
	"StructParents",
	"PZ",
	"SeparationInfo",
	"Group",
	"Tabs",
	"TemplateInstantiated",
	"PresSteps",
	"UserUnit",
}

// deleteIfPresent removes key from the dictionary and reports whether a
// removal occurred. Deleting an absent key is a no-op, never an error.
func deleteIfPresent(d types.Dict, key string) bool {
	if d == nil {
		return false
	}
	if _, found := d.Find(key); !found {
		return false
	}
	delete(d, key)
	return true
}

// pruneCatalog applies the catalog policy. Document-wide viewer and
// metadata entries go unconditionally; structure trees and
// optional-content properties only at the high level.
func pruneCatalog(doc *pdf.Document, catalog types.Dict, opts domain.Options) {
	for _, key := range catalogAlwaysKeys {
		deleteIfPresent(catalog, key)
	}

	// Embedded file attachments live inside the names tree; the rest of
	// the tree (named destinations) stays intact.
	if namesObj, found := catalog.Find("Names"); found {
		if names := doc.ResolveDict(namesObj); names != nil {
			deleteIfPresent(names, "EmbeddedFiles")
		}
	}

	if opts.Level == domain.LevelHigh {
		for _, key := range catalogHighKeys {
			deleteIfPresent(catalog, key)
		}
	}
}

// prunePage applies the page policy to one already-resolved page
// dictionary.
func prunePage(page types.Dict, opts domain.Options) {
	deleteIfPresent(page, "Thumb")

	if opts.Level != domain.LevelHigh {
		return
	}

	if !opts.PreserveQuality {
		deleteIfPresent(page, "Annots")
	}

	for _, key := range pageHighKeys {
		deleteIfPresent(page, key)
	}
}

// pruneResources applies the resource-dictionary policy. The caller is
// responsible for resolving the Resources reference; an unresolved or
// wrong-typed reference means there is nothing to prune.
func pruneResources(resources types.Dict, opts domain.Options) {
	if resources == nil {
		return
	}
	if opts.Level == domain.LevelHigh && !opts.PreserveQuality {
		deleteIfPresent(resources, "ProcSet")
	}
}
