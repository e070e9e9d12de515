// Package reading assigns a total reading order and reading-block numbering
// to the column-resolved fragments of a page.
package reading

import "pdfreflow/column"

// Fragment is a column-resolved fragment carrying its final reading-order
// position.
type Fragment struct {
	column.Fragment
	ReadingOrderIndex int
	ReadingBlock      int
}

// Page groups one page's column-resolved fragments for ordering.
type Page struct {
	Number int
	Width  float64
	Height float64
	Frags  []column.Fragment
}

// Ordered is the per-fragment reading-order result of ordering one page.
type Ordered struct {
	Frags []Fragment
}
