package structure

import (
	"testing"

	"pdfreflow/fb2"
	"pdfreflow/grouping"
	"pdfreflow/layout"
	"pdfreflow/media"
)

func para(page int, fontID string, size float64, text string, isList bool) grouping.Paragraph {
	return grouping.Paragraph{
		Page:     page,
		FontID:   fontID,
		FontSize: size,
		IsList:   isList,
		Frags:    []layout.Fragment{{Text: text, FontID: fontID, FontSize: size}},
	}
}

func mediaPara(page int, kind media.Kind, sourceID string) grouping.Paragraph {
	return grouping.Paragraph{Page: page, Region: &media.Region{Page: page, Kind: kind, SourceID: sourceID}}
}

func findSection(sections []fb2.Section, role fb2.SectionRole) *fb2.Section {
	for i := range sections {
		if sections[i].Role == role {
			return &sections[i]
		}
	}
	return nil
}

func TestLabel_TitleAndChapterParagraph(t *testing.T) {
	roles := Table{"FTITLE": RoleTitle, "FH1": headingRole(1), "FBODY": RoleBody}
	in := Input{
		Roles: roles,
		Paragraphs: []grouping.Paragraph{
			para(1, "FTITLE", 24, "My Great Book", false),
			para(2, "FH1", 16, "Chapter 1", false),
			para(2, "FBODY", 10, "Once upon a time.", false),
		},
	}

	book, err := NewLabeller(DefaultConfig()).Label(in, nil)
	if err != nil {
		t.Fatalf("Label: %v", err)
	}
	if book.Description.TitleInfo.BookTitle.Value != "My Great Book" {
		t.Fatalf("expected book title captured, got %q", book.Description.TitleInfo.BookTitle.Value)
	}
	if len(book.Bodies) != 1 || len(book.Bodies[0].Sections) != 1 {
		t.Fatalf("expected one chapter section, got %+v", book.Bodies)
	}
	ch := book.Bodies[0].Sections[0]
	if ch.Role != fb2.SectionChapter {
		t.Fatalf("expected chapter role, got %v", ch.Role)
	}
	if len(ch.Content) != 1 || ch.Content[0].Kind != fb2.FlowParagraph {
		t.Fatalf("expected one body paragraph in the chapter, got %+v", ch.Content)
	}
	if got := ch.Content[0].Paragraph.AsPlainText(); got != "Once upon a time." {
		t.Fatalf("unexpected paragraph text %q", got)
	}
}

func TestLabel_ListAccumulatesThenFlushesOnParagraph(t *testing.T) {
	roles := Table{"FH1": headingRole(1), "FBODY": RoleBody}
	in := Input{
		Roles: roles,
		Paragraphs: []grouping.Paragraph{
			para(1, "FH1", 16, "Chapter 1", false),
			para(1, "FBODY", 10, "• first item", true),
			para(1, "FBODY", 10, "• second item", true),
			para(1, "FBODY", 10, "Back to prose.", false),
		},
	}

	book, err := NewLabeller(DefaultConfig()).Label(in, nil)
	if err != nil {
		t.Fatalf("Label: %v", err)
	}
	ch := book.Bodies[0].Sections[0]
	if len(ch.Content) != 2 {
		t.Fatalf("expected [list, paragraph], got %d items", len(ch.Content))
	}
	if ch.Content[0].Kind != fb2.FlowList || len(ch.Content[0].List.Items) != 2 {
		t.Fatalf("expected a two-item list first, got %+v", ch.Content[0])
	}
	if ch.Content[1].Kind != fb2.FlowParagraph {
		t.Fatalf("expected the trailing paragraph to close the list, got %+v", ch.Content[1])
	}
}

func TestLabel_FigureCaptionConsumed(t *testing.T) {
	roles := Table{"FH1": headingRole(1), "FBODY": RoleBody}
	in := Input{
		Roles: roles,
		Paragraphs: []grouping.Paragraph{
			para(1, "FH1", 16, "Chapter 1", false),
			mediaPara(1, media.KindRaster, "img-1"),
			para(1, "FBODY", 9, "Figure 1. A cat sitting on a mat.", false),
			para(1, "FBODY", 10, "The story continues.", false),
		},
	}

	book, err := NewLabeller(DefaultConfig()).Label(in, nil)
	if err != nil {
		t.Fatalf("Label: %v", err)
	}
	ch := book.Bodies[0].Sections[0]
	if len(ch.Content) != 2 {
		t.Fatalf("expected [image, paragraph] with the caption consumed, got %d items: %+v", len(ch.Content), ch.Content)
	}
	if ch.Content[0].Kind != fb2.FlowImage {
		t.Fatalf("expected an image flow item first, got %+v", ch.Content[0])
	}
	if ch.Content[0].Image.Title != "Figure 1. A cat sitting on a mat." {
		t.Fatalf("expected the caption captured on the image, got %q", ch.Content[0].Image.Title)
	}
}

// TestLabel_IndexAlphabetHeaderSurvives covers the index section's guarded
// exit trigger: a single uppercase letter at or above the index heading's
// font size is an alphabet header, not a new chapter, and must stay inside
// the index section rather than being treated as an exit signal.
func TestLabel_IndexAlphabetHeaderSurvives(t *testing.T) {
	roles := Table{"FIDX": RoleIndex, "FBODY": RoleOther}
	in := Input{
		Roles: roles,
		Paragraphs: []grouping.Paragraph{
			para(40, "FIDX", 16, "Index", false),
			para(40, "FBODY", 10, "apple, 12", false),
			para(40, "FBODY", 16, "C", false),
			para(41, "FBODY", 10, "cat, 45", false),
		},
	}

	book, err := NewLabeller(DefaultConfig()).Label(in, nil)
	if err != nil {
		t.Fatalf("Label: %v", err)
	}
	idx := findSection(book.Bodies[0].Sections, fb2.SectionIndex)
	if idx == nil {
		t.Fatalf("expected an index section, got %+v", book.Bodies[0].Sections)
	}
	if len(idx.Content) != 3 {
		t.Fatalf("expected three index entries including the alphabet header, got %d: %+v", len(idx.Content), idx.Content)
	}
	texts := []string{idx.Content[0].Paragraph.AsPlainText(), idx.Content[1].Paragraph.AsPlainText(), idx.Content[2].Paragraph.AsPlainText()}
	want := []string{"apple, 12", "C", "cat, 45"}
	for i, w := range want {
		if texts[i] != w {
			t.Fatalf("index entry %d: want %q, got %q", i, w, texts[i])
		}
	}
}

func TestLabel_NoChapterMarkersGetsImplicitChapter(t *testing.T) {
	roles := Table{"FBODY": RoleBody}
	in := Input{
		Roles: roles,
		Paragraphs: []grouping.Paragraph{
			para(1, "FBODY", 10, "Just some text with no headings at all.", false),
		},
	}

	book, err := NewLabeller(DefaultConfig()).Label(in, nil)
	if err != nil {
		t.Fatalf("Label: %v", err)
	}
	if len(book.Bodies[0].Sections) != 1 {
		t.Fatalf("expected a single implicit chapter, got %d sections", len(book.Bodies[0].Sections))
	}
	if len(book.Bodies[0].Sections[0].Content) != 1 {
		t.Fatalf("expected the lone paragraph inside the implicit chapter")
	}
}
