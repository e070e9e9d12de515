package grouping

import (
	"testing"

	"pdfreflow/column"
	"pdfreflow/layout"
	"pdfreflow/reading"
)

func rf(idx, col, block int, left, top, width, height, size float64, text, fontID string) reading.Fragment {
	return reading.Fragment{
		Fragment: column.Fragment{
			Fragment: layout.Fragment{
				StreamIndex: idx, Left: left, Top: top, Width: width, Height: height,
				Text: text, FontID: fontID, FontSize: size,
			},
			ColumnID: col,
		},
		ReadingOrderIndex: idx + 1,
		ReadingBlock:      block,
	}
}

func TestGroupPage_SimpleTwoLineParagraph(t *testing.T) {
	f1 := rf(0, 1, 1, 50, 50, 400, 14, 10, "This is the first line", "F1")
	f2 := rf(1, 1, 1, 50, 64, 400, 14, 10, "continuing right below.", "F1")
	page := Page{Number: 1, Items: []Item{{Frag: &f1}, {Frag: &f2}}}

	paras := NewGrouper(DefaultConfig()).GroupPage(page)
	if len(paras) != 1 {
		t.Fatalf("expected one paragraph, got %d", len(paras))
	}
	if len(paras[0].Frags) != 2 {
		t.Fatalf("expected both lines merged into one paragraph, got %d fragments", len(paras[0].Frags))
	}
}

func TestGroupPage_FontSizeChangeBreaksParagraph(t *testing.T) {
	f1 := rf(0, 1, 1, 50, 50, 400, 14, 10, "Body text line one.", "F1")
	f2 := rf(1, 1, 1, 50, 64, 400, 20, 16, "A Big Heading", "F2")
	page := Page{Number: 1, Items: []Item{{Frag: &f1}, {Frag: &f2}}}

	paras := NewGrouper(DefaultConfig()).GroupPage(page)
	if len(paras) != 2 {
		t.Fatalf("expected two paragraphs across the font-size jump, got %d", len(paras))
	}
}

func TestGroupPage_ColumnChangeBreaksParagraph(t *testing.T) {
	f1 := rf(0, 1, 1, 50, 50, 220, 14, 10, "Left column text.", "F1")
	f2 := rf(1, 2, 2, 330, 50, 220, 14, 10, "Right column text.", "F1")
	page := Page{Number: 1, Items: []Item{{Frag: &f1}, {Frag: &f2}}}

	paras := NewGrouper(DefaultConfig()).GroupPage(page)
	if len(paras) != 2 {
		t.Fatalf("expected a paragraph break at the column change, got %d", len(paras))
	}
}

func TestGroupPage_BulletMergeAndListOpen(t *testing.T) {
	bullet := rf(0, 1, 1, 50, 50, 10, 14, 10, "•", "F1")
	text := rf(1, 1, 1, 65, 50, 300, 14, 10, "first item", "F1")
	page := Page{Number: 1, Items: []Item{{Frag: &bullet}, {Frag: &text}}}

	paras := NewGrouper(DefaultConfig()).GroupPage(page)
	if len(paras) != 1 {
		t.Fatalf("expected the bullet merged into one paragraph, got %d", len(paras))
	}
	if !paras[0].IsList {
		t.Fatalf("expected the merged paragraph to be flagged as a list item")
	}
	if paras[0].Text() != "• first item" {
		t.Fatalf("expected merged text \"• first item\", got %q", paras[0].Text())
	}
}

func TestMergeAcrossPages_ContinuesSentence(t *testing.T) {
	last := rf(0, 1, 1, 50, 700, 400, 14, 10, "…and this discussion continues", "F1")
	page10 := []Paragraph{{Page: 10, ColumnID: 1, FontID: "F1", FontSize: 10, Frags: []layout.Fragment{last.Fragment.Fragment}}}

	first := rf(0, 1, 1, 50, 50, 400, 14, 10, "into the next page.", "F1")
	page11 := []Paragraph{{Page: 11, ColumnID: 1, FontID: "F1", FontSize: 10, Frags: []layout.Fragment{first.Fragment.Fragment}}}

	merged := NewGrouper(DefaultConfig()).MergeAcrossPages([][]Paragraph{page10, page11})
	if len(merged) != 1 {
		t.Fatalf("expected the two paragraphs merged into one, got %d", len(merged))
	}
	if len(merged[0].Frags) != 2 {
		t.Fatalf("expected the merged paragraph to carry fragments from both pages, got %d", len(merged[0].Frags))
	}
}

func TestMergeAcrossPages_HeadingVetoesMerge(t *testing.T) {
	last := rf(0, 1, 1, 50, 700, 400, 14, 10, "…and this discussion continues", "F1")
	page10 := []Paragraph{{Page: 10, ColumnID: 1, FontID: "F1", FontSize: 10, Frags: []layout.Fragment{last.Fragment.Fragment}}}

	first := rf(0, 1, 1, 50, 50, 400, 14, 12, "Chapter 11", "F2")
	page11 := []Paragraph{{Page: 11, ColumnID: 1, FontID: "F2", FontSize: 12, Frags: []layout.Fragment{first.Fragment.Fragment}}}

	merged := NewGrouper(DefaultConfig()).MergeAcrossPages([][]Paragraph{page10, page11})
	if len(merged) != 2 {
		t.Fatalf("expected the heading to veto the cross-page merge, got %d paragraphs", len(merged))
	}
}
