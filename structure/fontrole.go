package structure

import (
	"sort"
	"strings"

	"pdfreflow/layout"
)

// Role is a font-spec's assigned semantic role.
type Role string

const (
	RoleBody      Role = "body"
	RoleTitle     Role = "title"
	RoleTOC       Role = "toc-heading"
	RoleIndex     Role = "index-heading"
	RoleOther     Role = "other"
	headingPrefix      = "heading-"
)

// Heading returns the (1-based) heading level this role names, and whether
// it is a heading role at all.
func (r Role) Heading() (level int, ok bool) {
	if !strings.HasPrefix(string(r), headingPrefix) {
		return 0, false
	}
	n := 0
	for _, c := range string(r)[len(headingPrefix):] {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

func headingRole(level int) Role {
	digits := []byte{}
	if level == 0 {
		digits = []byte{'0'}
	}
	for level > 0 {
		digits = append([]byte{byte('0' + level%10)}, digits...)
		level /= 10
	}
	return Role(headingPrefix + string(digits))
}

// fontStat aggregates per-font-id statistics across the whole document.
type fontStat struct {
	FontID     string
	Size       float64
	Count      int
	Pages      map[int]bool
	FirstPage  int
}

func (s *fontStat) weight() int {
	return s.Count * len(s.Pages)
}

// Table maps font ids to their derived role.
type Table map[string]Role

// BodyFontID returns the font id assigned the body role, or "" if none.
func (t Table) BodyFontID() string {
	for id, r := range t {
		if r == RoleBody {
			return id
		}
	}
	return ""
}

// DeriveRoles implements §4.F's font-role derivation: frequency x
// page-coverage statistics keyed by font id, the body role assigned to the
// heaviest font in [BodySizeMin, BodySizeMax], heading levels clustered by
// size above body, and a title role for the rare, large, early font.
//
// tocPage and indexPage are the first-appearance pages of the literal
// texts "Table of Contents" and "Index", used to seed the TOC-heading /
// Index-heading roles; either may be -1 if never seen.
func DeriveRoles(frags []layout.Fragment, tocPage, indexPage int, cfg Config) Table {
	stats := map[string]*fontStat{}
	for _, f := range frags {
		if f.IsScript {
			continue // super/subscript runs don't drive role statistics
		}
		s, ok := stats[f.FontID]
		if !ok {
			s = &fontStat{FontID: f.FontID, Size: f.FontSize, Pages: map[int]bool{}, FirstPage: f.Page}
			stats[f.FontID] = s
		}
		s.Count++
		s.Pages[f.Page] = true
		if f.Page < s.FirstPage {
			s.FirstPage = f.Page
		}
	}

	table := Table{}
	if len(stats) == 0 {
		return table
	}

	var ordered []*fontStat
	for _, s := range stats {
		ordered = append(ordered, s)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].FontID < ordered[j].FontID })

	// Body: heaviest weighted count among sizes in the configured window.
	var body *fontStat
	for _, s := range ordered {
		if s.Size < cfg.BodySizeMin || s.Size > cfg.BodySizeMax {
			continue
		}
		if body == nil || s.weight() > body.weight() {
			body = s
		}
	}
	if body == nil {
		// Failure semantics: missing body font -> most frequent font. No
		// warning is emitted for this fallback.
		for _, s := range ordered {
			if body == nil || s.weight() > body.weight() {
				body = s
			}
		}
	}
	table[body.FontID] = RoleBody

	// Heading levels: fonts strictly larger than body, clustered by size,
	// rarer (larger) sizes get more senior (lower-numbered) levels.
	var headingSizes []float64
	seen := map[float64]bool{}
	for _, s := range ordered {
		if s.FontID == body.FontID || s.Size <= body.Size {
			continue
		}
		if !seen[s.Size] {
			seen[s.Size] = true
			headingSizes = append(headingSizes, s.Size)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(headingSizes)))
	if len(headingSizes) > cfg.MaxHeadingLevels {
		headingSizes = headingSizes[:cfg.MaxHeadingLevels]
	}
	sizeLevel := map[float64]int{}
	for i, sz := range headingSizes {
		sizeLevel[sz] = i + 1
	}

	// Title: the unique highest-size, low-count font appearing on an early
	// page, distinct from any heading level already assigned.
	var title *fontStat
	for _, s := range ordered {
		if s.FontID == body.FontID {
			continue
		}
		if title == nil || s.Size > title.Size {
			title = s
		}
	}
	if title != nil && title.Count <= 3 && title.FirstPage <= 2 {
		table[title.FontID] = RoleTitle
	}

	for _, s := range ordered {
		if _, already := table[s.FontID]; already {
			continue
		}
		if level, ok := sizeLevel[s.Size]; ok {
			table[s.FontID] = headingRole(level)
			continue
		}
		table[s.FontID] = RoleOther
	}

	// TOC-heading / Index-heading: a heading-level font whose first
	// appearance coincides with the "Table of Contents" / "Index" page.
	level1 := Role("")
	if len(headingSizes) > 0 {
		level1 = headingRole(1)
	}
	for id, r := range table {
		if r != level1 || level1 == "" {
			continue
		}
		s := stats[id]
		if tocPage >= 0 && s.FirstPage == tocPage {
			table[id] = RoleTOC
		}
		if indexPage >= 0 && s.FirstPage == indexPage {
			table[id] = RoleIndex
		}
	}

	return table
}
