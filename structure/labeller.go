package structure

import (
	"fmt"
	"regexp"

	"github.com/gosimple/slug"

	"pdfreflow/fb2"
	"pdfreflow/grouping"
	"pdfreflow/layout"
	"pdfreflow/media"
	"pdfreflow/refmap"
)

// Labeller turns font roles and a merged paragraph stream into the output
// document tree, anchoring media resources into chapters via a Mapper.
type Labeller struct {
	Config Config
}

// NewLabeller builds a Labeller with the given tunables.
func NewLabeller(cfg Config) Labeller {
	return Labeller{Config: cfg}
}

func textSegments(text string) []fb2.InlineSegment {
	return []fb2.InlineSegment{{Kind: fb2.InlineText, Text: text}}
}

func styleKind(s layout.Style) fb2.InlineSegmentKind {
	switch {
	case s.Bold:
		return fb2.InlineStrong
	case s.Italic:
		return fb2.InlineEmphasis
	default:
		return fb2.InlineText
	}
}

// inlineSegmentsFor expands one merged fragment's pre-fold constituents
// (§4.A's original_fragments) back into inline spans, wrapping folded
// super/subscripts in the matching inline kind.
func inlineSegmentsFor(f layout.Fragment) []fb2.InlineSegment {
	if len(f.OriginalFragments) == 0 {
		return []fb2.InlineSegment{{Kind: styleKind(f.Style), Text: f.Text}}
	}
	segs := make([]fb2.InlineSegment, 0, len(f.OriginalFragments))
	for _, of := range f.OriginalFragments {
		seg := fb2.InlineSegment{Kind: styleKind(of.Style), Text: of.Text}
		switch {
		case of.IsScript && of.ScriptKind == layout.ScriptSuper:
			seg = fb2.InlineSegment{Kind: fb2.InlineSup, Text: seg.Text}
		case of.IsScript && of.ScriptKind == layout.ScriptSub:
			seg = fb2.InlineSegment{Kind: fb2.InlineSub, Text: seg.Text}
		}
		segs = append(segs, seg)
	}
	return segs
}

func buildParagraph(p grouping.Paragraph, style string) fb2.Paragraph {
	var segs []fb2.InlineSegment
	for _, f := range p.Frags {
		segs = append(segs, inlineSegmentsFor(f)...)
	}
	return fb2.Paragraph{Style: style, Text: segs}
}

func buildTitle(text string) *fb2.Title {
	return &fb2.Title{Items: []fb2.TitleItem{{Paragraph: &fb2.Paragraph{Text: textSegments(text)}}}}
}

func buildImage(r *media.Region, caption string) fb2.Image {
	return fb2.Image{Href: "#" + r.SourceID, Title: caption}
}

func buildTable(r *media.Region) fb2.Table {
	t := fb2.Table{}
	for _, row := range r.Rows {
		tr := fb2.TableRow{}
		for _, cell := range row {
			tr.Cells = append(tr.Cells, fb2.TableCell{Content: textSegments(cell.Text)})
		}
		t.Rows = append(t.Rows, tr)
	}
	return t
}

// state carries the mutable assembly context across the single pass over
// the paragraph stream.
type state struct {
	chapters      []*fb2.Section
	chapterIDs    map[*fb2.Section]string
	currentCh     *fb2.Section
	currentSec    *fb2.Section
	currentList   *fb2.List
	inTOC         bool
	tocFontSize   float64
	inIndex       bool
	indexFontSize float64
	chapterSeq    int
}

func newState() *state {
	return &state{chapterIDs: map[*fb2.Section]string{}}
}

func (s *state) ensureChapter() *fb2.Section {
	if s.currentCh == nil {
		s.openChapter("")
	}
	return s.currentCh
}

func (s *state) openChapter(title string) {
	s.flushList()
	s.chapterSeq++
	id := fmt.Sprintf("ch%04d", s.chapterSeq)
	if slugged := slug.Make(title); slugged != "" {
		id = fmt.Sprintf("ch%04d-%s", s.chapterSeq, slugged)
	}
	sec := &fb2.Section{ID: id, Role: fb2.SectionChapter}
	if title != "" {
		sec.Title = buildTitle(title)
	}
	s.chapters = append(s.chapters, sec)
	s.chapterIDs[sec] = id
	s.currentCh = sec
	s.currentSec = nil
}

func (s *state) openTOC(title string) {
	s.flushList()
	s.chapterSeq++
	id := fmt.Sprintf("toc%04d", s.chapterSeq)
	sec := &fb2.Section{ID: id, Role: fb2.SectionTOC, Title: buildTitle(title)}
	s.chapters = append(s.chapters, sec)
	s.chapterIDs[sec] = id
	s.currentCh = sec
	s.currentSec = nil
}

func (s *state) openIndex(title string) {
	s.flushList()
	s.chapterSeq++
	id := fmt.Sprintf("idx%04d", s.chapterSeq)
	sec := &fb2.Section{ID: id, Role: fb2.SectionIndex, Title: buildTitle(title)}
	s.chapters = append(s.chapters, sec)
	s.chapterIDs[sec] = id
	s.currentCh = sec
	s.currentSec = nil
}

func (s *state) openSection(title string) {
	s.flushList()
	ch := s.ensureChapter()
	sec := &fb2.Section{Title: buildTitle(title)}
	ch.Content = append(ch.Content, fb2.FlowItem{Kind: fb2.FlowSection, Section: sec})
	s.currentSec = sec
}

func (s *state) targetContent() *[]fb2.FlowItem {
	if s.currentSec != nil {
		return &s.currentSec.Content
	}
	return &s.ensureChapter().Content
}

func (s *state) currentChapterID() string {
	ch := s.ensureChapter()
	return s.chapterIDs[ch]
}

func (s *state) flushList() {
	if s.currentList == nil {
		return
	}
	target := s.targetContent()
	*target = append(*target, fb2.FlowItem{Kind: fb2.FlowList, List: s.currentList})
	s.currentList = nil
}

func (s *state) appendListItem(p fb2.Paragraph) {
	if s.currentList == nil {
		s.currentList = &fb2.List{}
	}
	s.currentList.Items = append(s.currentList.Items, fb2.ListItem{Paragraph: p})
}

func (s *state) appendParagraph(p fb2.Paragraph) {
	s.flushList()
	target := s.targetContent()
	*target = append(*target, fb2.FlowItem{Kind: fb2.FlowParagraph, Paragraph: &p})
}

var chapterPatternDefault = regexp.MustCompile(`^(Chapter|CHAPTER)\s+\d+`)

// Label implements §4.F's block labelling end to end: font-role-driven
// chapter/section/TOC/index assignment, list grouping, figure/table
// placement with caption capture, and assembly into a *fb2.FictionBook. It
// anchors each surviving media region to its chapter via mapper.
func (l Labeller) Label(in Input, mapper *refmap.Mapper) (*fb2.FictionBook, error) {
	chapterPattern := chapterPatternDefault
	if l.Config.ChapterPattern != "" {
		if re, err := regexp.Compile(l.Config.ChapterPattern); err == nil {
			chapterPattern = re
		}
	}

	book := &fb2.FictionBook{}
	st := newState()
	var titleSet bool

	n := len(in.Paragraphs)
	skip := map[int]bool{}
	for i := 0; i < n; i++ {
		if skip[i] {
			continue
		}
		p := in.Paragraphs[i]

		if p.Region != nil {
			consumed, err := l.handleMedia(st, mapper, in, i)
			if err != nil {
				return nil, fmt.Errorf("structure: place media on page %d: %w", p.Page, err)
			}
			if consumed >= 0 {
				skip[consumed] = true
			}
			continue
		}

		role := in.Roles[p.FontID]
		text := p.Text()

		switch role {
		case RoleTitle:
			if !titleSet {
				book.Description.TitleInfo.BookTitle = fb2.TextField{Value: text}
				titleSet = true
				continue
			}
		case RoleTOC:
			st.openTOC(text)
			st.inTOC, st.inIndex = true, false
			st.tocFontSize = p.FontSize
			continue
		case RoleIndex:
			st.openIndex(text)
			st.inIndex, st.inTOC = true, false
			st.indexFontSize = p.FontSize
			continue
		}

		if st.inTOC {
			if p.FontSize >= st.tocFontSize {
				st.inTOC = false
			} else {
				st.appendParagraph(buildParagraph(p, "toc-entry"))
				continue
			}
		}
		if st.inIndex {
			if p.FontSize >= st.indexFontSize && !isSingleUppercaseLetter(text) {
				st.inIndex = false
			} else {
				st.appendParagraph(buildParagraph(p, "index-entry"))
				continue
			}
		}

		if level, ok := role.Heading(); ok {
			_, bookmarked := in.Bookmarks[p.Page]
			if level == 1 && (chapterPattern.MatchString(text) || bookmarked) {
				title := text
				if bookmarked && in.Bookmarks[p.Page] != "" {
					title = in.Bookmarks[p.Page]
				}
				st.openChapter(title)
			} else {
				st.openSection(text)
			}
			continue
		}

		if p.IsList {
			st.appendListItem(buildParagraph(p, ""))
			continue
		}
		st.appendParagraph(buildParagraph(p, ""))
	}
	st.flushList()

	mainBody := &fb2.Body{Kind: fb2.BodyMain}
	for _, ch := range st.chapters {
		mainBody.Sections = append(mainBody.Sections, *ch)
	}
	if len(mainBody.Sections) == 0 {
		// Failure semantics: no chapter markers found anywhere -> a single
		// implicit chapter holding everything.
		mainBody.Sections = append(mainBody.Sections, fb2.Section{ID: "ch0001", Role: fb2.SectionChapter})
	}
	book.Bodies = append(book.Bodies, *mainBody)
	return book, nil
}

// handleMedia implements the figure/table half of block labelling: the
// surviving region becomes a figure or table FlowItem, and the resource is
// registered with the chapter it was anchored to. For a figure, the adjacent
// paragraph matching the caption pattern (the following one, else the
// preceding one) becomes the image title; a following caption is consumed
// rather than re-emitted, while a preceding one has already been emitted and
// stays in the flow. A table caption is never consumed, since fb2.Table has no
// caption field. It returns the index of the paragraph consumed as a caption,
// or -1 if none was.
func (l Labeller) handleMedia(st *state, mapper *refmap.Mapper, in Input, i int) (int, error) {
	p := in.Paragraphs[i]
	r := p.Region

	caption, consumed := "", -1
	if i+1 < len(in.Paragraphs) && in.Paragraphs[i+1].Region == nil && looksLikeCaption(in.Paragraphs[i+1].Text()) {
		caption, consumed = in.Paragraphs[i+1].Text(), i+1
	} else if i > 0 && in.Paragraphs[i-1].Region == nil && looksLikeCaption(in.Paragraphs[i-1].Text()) {
		caption = in.Paragraphs[i-1].Text()
	}

	target := st.targetContent()
	switch r.Kind {
	case media.KindTable:
		t := buildTable(r)
		*target = append(*target, fb2.FlowItem{Kind: fb2.FlowTable, Table: &t})
		consumed = -1 // no caption field on fb2.Table: the caption paragraph stays in the flow
	default:
		img := buildImage(r, caption)
		*target = append(*target, fb2.FlowItem{Kind: fb2.FlowImage, Image: &img})
	}

	if mapper == nil {
		return consumed, nil
	}
	kind := refmap.KindRaster
	if r.Kind == media.KindVector {
		kind = refmap.KindVector
	} else if r.Kind == media.KindTable {
		kind = refmap.KindTable
	}
	if err := mapper.AddResource(refmap.Resource{
		OriginalID:       r.SourceID,
		IntermediateName: r.SourceID,
		Kind:             kind,
		Geometry:         fmt.Sprintf("%g,%g,%g,%g", r.Left, r.Top, r.Width, r.Height),
		FirstSeenPage:    p.Page,
	}); err != nil {
		return consumed, err
	}
	if err := mapper.AssignChapter(p.Page, st.currentChapterID()); err != nil {
		return consumed, err
	}
	return consumed, nil
}
