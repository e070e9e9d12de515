// Package column detects per-page column structure and assigns a column id
// to every fragment, smoothing spurious weaving on single-column pages.
package column

import "pdfreflow/layout"

// FullWidth is the column id meaning "spans columns or wider than a column".
const FullWidth = 0

// Fragment is the subset of layout.Fragment the resolver needs, plus the
// column id it derives.
type Fragment struct {
	layout.Fragment
	ColumnID int
	// Excluded marks fragments pre-filtered out of column detection (crop
	// marks, tiny text, running headers/footers) that still receive a
	// column id in the final assignment.
	Excluded bool
}

// Page groups one page's fragments for column resolution.
type Page struct {
	Number int
	Width  float64
	Height float64
	Frags  []Fragment
}

// Assignment is the per-fragment column id result of resolving one page.
type Assignment struct {
	Frags        []Fragment
	SingleColumn bool
	ColStarts    []float64
}
