// Package reconstruct orchestrates the full pipeline: per-page layout,
// column detection, reading order, media resolution and paragraph grouping,
// followed by document-wide font-role derivation and labelling, producing a
// single *fb2.FictionBook plus its media reference map.
package reconstruct

import (
	"iter"

	"pdfreflow/layout"
	"pdfreflow/media"
)

// PageInput is one page's raw extracted content: the external glyph
// extractor's positioned text fragments, plus candidate raster/vector/table
// regions, before any of this module's processing.
type PageInput struct {
	Number  int
	Width   float64
	Height  float64
	Frags   []layout.Fragment
	Rasters []media.Region
	Vectors []media.Region
	Tables  []media.Region

	// Bookmark is the PDF outline entry that starts on this page, if any.
	Bookmark string
}

// Source supplies the document's pages, in page-number order, along with
// any per-page extraction error. Pages stops calling yield once it returns
// false, the usual iter.Seq2 idiom.
type Source interface {
	Pages() iter.Seq2[PageInput, error]
}
