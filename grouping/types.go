// Package grouping turns a page's reading-ordered, media-interleaved
// fragment sequence into paragraphs, and merges paragraphs split across a
// page boundary.
package grouping

import (
	"pdfreflow/layout"
	"pdfreflow/media"
	"pdfreflow/reading"
)

// Item is one element of a page's linearised sequence: either a text
// fragment or a placed media region, ordered by reading-order index.
type Item struct {
	Frag   *reading.Fragment
	Region *media.Region
}

func (it Item) orderIndex() float64 {
	if it.Frag != nil {
		return float64(it.Frag.ReadingOrderIndex)
	}
	return it.Region.ReadingOrderIndex
}

func (it Item) columnID() int {
	if it.Frag != nil {
		return it.Frag.ColumnID
	}
	return -1 // media items don't gate continuation by column id; see GroupPage
}

func (it Item) readingBlock() int {
	if it.Frag != nil {
		return it.Frag.ReadingBlock
	}
	return it.Region.ReadingBlock
}

// Page is one page's linearised, reading-ordered sequence of text fragments
// and placed media, ready for paragraph grouping.
type Page struct {
	Number int
	Items  []Item
}

// Paragraph is an ordered, non-empty sequence of fragments judged to belong
// together by §4.E's continuation rules, or a single media placement.
type Paragraph struct {
	Page     int
	ColumnID int
	Block    int
	FontID   string
	FontSize float64
	Bold     bool
	IsList   bool
	Frags    []layout.Fragment
	Region   *media.Region // non-nil for a figure/table paragraph
}

// Text concatenates the paragraph's fragment text in order.
func (p Paragraph) Text() string {
	s := ""
	for i, f := range p.Frags {
		if i > 0 {
			s += " "
		}
		s += f.Text
	}
	return s
}
