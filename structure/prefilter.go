package structure

import (
	"math"
	"regexp"
	"strings"

	"pdfreflow/layout"
)

// PageFragments is one page's surviving text fragments plus its dimensions,
// the input to the document-wide header/footer pre-filter.
type PageFragments struct {
	Number     int
	Width      float64
	Height     float64
	Frags      []layout.Fragment
}

var romanNumeralPattern = regexp.MustCompile(`(?i)^[ivxlcdm]+$`)

func isRomanNumeral(text string) bool {
	t := strings.TrimSpace(text)
	return t != "" && romanNumeralPattern.MatchString(t)
}

// position buckets a fragment's normalised (top/height, left/width)
// location to two decimal places, so near-identical repeated placements
// across pages (sub-point jitter from the extractor) still match.
type position struct {
	top, left float64
}

func normalisedPosition(f layout.Fragment, pageWidth, pageHeight float64) position {
	round := func(v float64) float64 { return math.Round(v*100) / 100 }
	return position{top: round(f.Top / pageHeight), left: round(f.Left / pageWidth)}
}

type repeatKey struct {
	pos  position
	text string
}

// FilterHeadersFooters implements §4.F's pre-filter: document-wide repeated
// running headers/footers are dropped except on first occurrence; per-page
// print artefacts, invisible text, and off-page text are dropped outright;
// Roman-numeral folios are only dropped in the top/bottom margin zone, and a
// single uppercase Roman letter in the page body (an index alphabet header)
// is always exempt.
func FilterHeadersFooters(pages []PageFragments, cfg Config) []PageFragments {
	threshold := cfg.HeaderFooterMinPagesAbs
	if ratio := int(math.Ceil(cfg.HeaderFooterMinPagesRatio * float64(len(pages)))); ratio > threshold {
		threshold = ratio
	}

	firstPage := map[repeatKey]int{}
	pageCount := map[repeatKey]map[int]bool{}
	for _, p := range pages {
		for _, f := range p.Frags {
			if len([]rune(f.Text)) < cfg.HeaderFooterMinTextLen {
				continue
			}
			key := repeatKey{pos: normalisedPosition(f, p.Width, p.Height), text: f.Text}
			if pageCount[key] == nil {
				pageCount[key] = map[int]bool{}
				firstPage[key] = p.Number
			}
			pageCount[key][p.Number] = true
			if p.Number < firstPage[key] {
				firstPage[key] = p.Number
			}
		}
	}

	out := make([]PageFragments, len(pages))
	for i, p := range pages {
		var kept []layout.Fragment
		for _, f := range p.Frags {
			if dropPerPage(f, p, cfg) {
				continue
			}
			if len([]rune(f.Text)) >= cfg.HeaderFooterMinTextLen {
				key := repeatKey{pos: normalisedPosition(f, p.Width, p.Height), text: f.Text}
				if len(pageCount[key]) >= threshold && p.Number != firstPage[key] {
					continue
				}
			}
			kept = append(kept, f)
		}
		out[i] = PageFragments{Number: p.Number, Width: p.Width, Height: p.Height, Frags: kept}
	}
	return out
}

func dropPerPage(f layout.Fragment, p PageFragments, cfg Config) bool {
	if strings.Contains(f.Text, ".indd") {
		return true
	}
	if f.Height < cfg.InvisibleTextMaxHeight {
		return true
	}
	if f.Top > cfg.PageOverflowRatio*p.Height {
		return true
	}
	if !isRomanNumeral(f.Text) {
		return false
	}
	topZone := f.Top <= cfg.RomanNumeralZoneRatio*p.Height
	bottomZone := f.Top >= (1-cfg.RomanNumeralZoneRatio)*p.Height
	if !topZone && !bottomZone {
		return false // body-region Roman letter: likely an index alphabet header, exempt
	}
	return true
}
