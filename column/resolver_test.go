package column

import (
	"testing"

	"pdfreflow/layout"
)

func frag(streamIdx int, left, top, width, height float64) Fragment {
	return Fragment{Fragment: layout.Fragment{StreamIndex: streamIdx, Left: left, Top: top, Width: width, Height: height}}
}

func TestResolvePage_SingleColumnWeavePrevented(t *testing.T) {
	// "Chapter 1" (16% wide), three ~75%-wide paragraphs, "1.1 Methods"
	// (20% wide), another 76% paragraph — all left-aligned at the same
	// margin. This page previously wove between col-id 0 and 1; it must now
	// resolve to a single column.
	pageWidth := 600.0
	frags := []Fragment{
		frag(0, 50, 50, 0.16*pageWidth, 20),
		frag(1, 50, 90, 0.70*pageWidth, 200),
		frag(2, 50, 300, 0.78*pageWidth, 200),
		frag(3, 50, 510, 0.20*pageWidth, 20),
		frag(4, 50, 540, 0.76*pageWidth, 200),
	}
	page := Page{Number: 1, Width: pageWidth, Height: 800, Frags: frags}

	r := NewResolver(DefaultConfig())
	assignment := r.ResolvePage(page)

	if !assignment.SingleColumn {
		t.Fatalf("expected single-column page, got multi-column with starts %v", assignment.ColStarts)
	}
	for _, f := range assignment.Frags {
		if f.ColumnID != 1 {
			t.Fatalf("expected every fragment to get column id 1, got %d", f.ColumnID)
		}
	}
}

func TestResolvePage_TwoColumnAssignment(t *testing.T) {
	pageWidth := 600.0
	var frags []Fragment
	idx := 0
	for row := 0; row < 14; row++ {
		top := float64(50 + row*20)
		frags = append(frags, frag(idx, 50, top, 220, 14))
		idx++
		frags = append(frags, frag(idx, 330, top, 220, 14))
		idx++
	}
	page := Page{Number: 1, Width: pageWidth, Height: 800, Frags: frags}

	r := NewResolver(DefaultConfig())
	assignment := r.ResolvePage(page)
	if assignment.SingleColumn {
		t.Fatalf("expected a two-column page")
	}

	seen := map[int]bool{}
	for _, f := range assignment.Frags {
		seen[f.ColumnID] = true
	}
	if !seen[1] || !seen[2] {
		t.Fatalf("expected fragments in both column 1 and 2, got %+v", seen)
	}
}

func TestResolvePage_FullWidthInterrupter(t *testing.T) {
	pageWidth := 600.0
	var frags []Fragment
	idx := 0
	for row := 0; row < 14; row++ {
		top := float64(50 + row*20)
		frags = append(frags, frag(idx, 50, top, 220, 14))
		idx++
		frags = append(frags, frag(idx, 330, top, 220, 14))
		idx++
	}
	// a full-width title spanning the page, inserted between the columns.
	frags = append(frags, frag(idx, 20, 340, 560, 18))

	page := Page{Number: 1, Width: pageWidth, Height: 800, Frags: frags}
	r := NewResolver(DefaultConfig())
	assignment := r.ResolvePage(page)

	foundWide := false
	for _, f := range assignment.Frags {
		if f.Width == 560 {
			foundWide = true
			if f.ColumnID != FullWidth {
				t.Fatalf("expected the full-width interrupter to get column id 0, got %d", f.ColumnID)
			}
		}
	}
	if !foundWide {
		t.Fatalf("full-width fragment missing from assignment")
	}
}

func TestResolvePage_EmptyPage(t *testing.T) {
	r := NewResolver(DefaultConfig())
	assignment := r.ResolvePage(Page{Number: 1, Width: 600, Height: 800})
	if len(assignment.Frags) != 0 {
		t.Fatalf("expected no fragments")
	}
}
