// Package media deduplicates raster/vector/table regions and places the
// survivors into a page's reading order.
package media

import "pdfreflow/reading"

// Kind distinguishes the three media region shapes.
type Kind int

const (
	KindRaster Kind = iota
	KindVector
	KindTable
)

func (k Kind) String() string {
	switch k {
	case KindRaster:
		return "raster"
	case KindVector:
		return "vector"
	case KindTable:
		return "table"
	default:
		return "unknown"
	}
}

// Cell is one table cell: text and its bounding box.
type Cell struct {
	Text                  string
	Left, Top, Width, Height float64
}

// Region is one media region as produced by the extractor.
type Region struct {
	Page             int
	Left, Top, Width, Height float64
	Kind             Kind
	SourceID         string
	Rows             [][]Cell // non-nil only for KindTable

	// Derived by Resolve.
	ReadingOrderIndex float64
	ReadingBlock      int
	SkippedDuplicate  bool
}

func (r Region) Right() float64  { return r.Left + r.Width }
func (r Region) Bottom() float64 { return r.Top + r.Height }
func (r Region) Area() float64   { return r.Width * r.Height }

// Page groups one page's reading-ordered text fragments and candidate media
// regions for resolution.
type Page struct {
	Number int
	Width  float64
	Height float64
	Frags  []reading.Fragment
	Rasters []Region
	Vectors []Region
	Tables  []Region
}

// Placed is the per-page result of resolving media regions: the survivors,
// placed in reading order, and the text fragments still standing after
// caption/capture removal.
type Placed struct {
	Regions []Region
	Frags   []reading.Fragment
	// SharedRasters groups surviving raster regions by source identifier
	// (rule 5): entries with more than one member should share a single
	// encoded image resource downstream rather than each minting their own.
	SharedRasters map[string][]Region
}
