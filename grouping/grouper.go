package grouping

import (
	"sort"
	"strings"

	"pdfreflow/layout"
	"pdfreflow/reading"
)

// layoutFragmentOf unwraps the base layout.Fragment carried inside a
// reading-ordered, column-resolved fragment.
func layoutFragmentOf(f *reading.Fragment) layout.Fragment {
	return f.Fragment.Fragment
}

// Grouper groups a page's reading-ordered items into paragraphs and merges
// paragraphs split across a page boundary.
type Grouper struct {
	Config Config
}

// NewGrouper builds a Grouper with the given tunables.
func NewGrouper(cfg Config) Grouper {
	return Grouper{Config: cfg}
}

// isBareBullet reports whether text is nothing but a bullet glyph, the
// marker fragment the extractor emits separately from its following word.
func isBareBullet(text string) bool {
	trimmed := strings.TrimSpace(text)
	for _, g := range bulletGlyphs {
		if trimmed == g {
			return true
		}
	}
	return false
}

// mergeBullets implements §4.E's bullet-merge: a bare bullet glyph fragment
// is folded into its immediately following text fragment when the
// horizontal gap is within tolerance, producing one "• text" fragment.
func mergeBullets(items []Item, cfg Config) []Item {
	out := make([]Item, 0, len(items))
	for i := 0; i < len(items); i++ {
		it := items[i]
		if it.Frag != nil && isBareBullet(it.Frag.Text) && i+1 < len(items) && items[i+1].Frag != nil {
			next := items[i+1].Frag
			gap := next.Left - it.Frag.Right()
			if gap >= 0 && gap <= cfg.BulletMergeGapMax {
				merged := *it.Frag
				merged.Text = it.Frag.Text + " " + next.Text
				merged.Width = next.Right() - it.Frag.Left
				if next.Height > merged.Height {
					merged.Height = next.Height
				}
				out = append(out, Item{Frag: &merged})
				i++
				continue
			}
		}
		out = append(out, it)
	}
	return out
}

func medianLineHeight(items []Item) float64 {
	var heights []float64
	for _, it := range items {
		if it.Frag != nil {
			heights = append(heights, it.Frag.Height)
		}
	}
	if len(heights) == 0 {
		return 0
	}
	sort.Float64s(heights)
	mid := len(heights) / 2
	if len(heights)%2 == 0 {
		return (heights[mid-1] + heights[mid]) / 2
	}
	return heights[mid]
}

// shouldBreak implements §4.E's continuation/break decision for a pair of
// consecutive text fragments already known to be on the same page.
func shouldBreak(prev, curr *reading.Fragment, medianHeight float64, cfg Config) bool {
	if curr.ColumnID != prev.ColumnID {
		return true
	}
	if curr.ReadingBlock != prev.ReadingBlock {
		return true
	}
	if curr.FontID != prev.FontID {
		return true
	}
	if absf(prev.FontSize-curr.FontSize) >= cfg.MaxFontSizeDelta {
		return true
	}

	vGap := curr.Top - (prev.Top + prev.Height)

	if startsWithBullet(curr.Text) && vGap > cfg.BulletGapThreshold {
		return true
	}

	sameBaseline := absf(curr.Baseline()-prev.Baseline()) < 0.01
	affirmative := (sameBaseline && (strings.HasSuffix(prev.Text, " ") || strings.HasSuffix(prev.Text, "-") ||
		strings.HasPrefix(curr.Text, " "))) || vGap <= curr.FontSize
	if affirmative {
		return false
	}

	threshold := maxf(0.7*curr.FontSize, cfg.BaseGapFactor*medianHeight)
	return vGap > threshold
}

// GroupPage implements §4.E's per-page pass: bullet-merge, then a linear
// continuation/break scan producing one Paragraph per text run or media
// placement.
func (g Grouper) GroupPage(page Page) []Paragraph {
	items := mergeBullets(page.Items, g.Config)
	median := medianLineHeight(items)

	var paras []Paragraph
	var cur *Paragraph
	var prev *reading.Fragment

	flush := func() {
		if cur != nil {
			paras = append(paras, *cur)
			cur = nil
		}
	}

	for _, it := range items {
		if it.Region != nil {
			flush()
			paras = append(paras, Paragraph{Page: page.Number, Block: it.Region.ReadingBlock, Region: it.Region})
			prev = nil
			continue
		}
		f := it.Frag
		if cur == nil || prev == nil || shouldBreak(prev, f, median, g.Config) {
			flush()
			cur = &Paragraph{
				Page:     page.Number,
				ColumnID: f.ColumnID,
				Block:    f.ReadingBlock,
				FontID:   f.FontID,
				FontSize: f.FontSize,
				Bold:     f.Style.Bold,
				IsList:   startsWithBullet(f.Text),
				Frags:    []layout.Fragment{layoutFragmentOf(f)},
			}
		} else {
			cur.Frags = append(cur.Frags, layoutFragmentOf(f))
		}
		prev = f
	}
	flush()
	return paras
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
