package layout

import (
	"sort"
	"strings"
)

// mergeRow implements §4.A Phase 3: within a row sorted by left, merge
// adjacent fragments under the three-gap rule.
func mergeRow(r row, cfg Config) []Fragment {
	if len(r.frags) == 0 {
		return nil
	}
	frags := make([]Fragment, len(r.frags))
	copy(frags, r.frags)
	sort.Slice(frags, func(i, j int) bool { return frags[i].Left < frags[j].Left })

	out := []Fragment{frags[0]}
	for _, next := range frags[1:] {
		prev := out[len(out)-1]
		if shouldMerge(prev, next, cfg) {
			out[len(out)-1] = mergeFragments(prev, next)
			continue
		}
		out = append(out, next)
	}
	return out
}

func shouldMerge(prev, next Fragment, cfg Config) bool {
	gap := next.Left - prev.Right()
	prevEndsSpace := strings.HasSuffix(prev.Text, " ")
	nextStartsSpace := strings.HasPrefix(next.Text, " ")

	// rule 1: previous ends in space, next does not start in space, gap small
	if prevEndsSpace && !nextStartsSpace && absf(gap) <= cfg.MergeGapTolerance {
		return true
	}
	// rule 2: gap small regardless of spacing
	if absf(gap) <= cfg.MergeGapTolerance {
		return true
	}
	// rule 3: next starts in space, gap close to the nominal space width
	nominal := cfg.NominalSpaceWidthFactor * prev.FontSize
	if nextStartsSpace && absf(gap-nominal) <= cfg.MergeGapTolerance {
		return true
	}
	return false
}

func mergeFragments(prev, next Fragment) Fragment {
	merged := prev
	merged.Text = prev.Text + next.Text

	left := minf(prev.Left, next.Left)
	top := minf(prev.Top, next.Top)
	right := maxf(prev.Right(), next.Right())
	bottom := maxf(prev.Top+prev.Height, next.Top+next.Height)
	merged.Left = left
	merged.Top = top
	merged.Width = right - left
	merged.Height = bottom - top

	if len(prev.OriginalFragments) > 0 {
		merged.OriginalFragments = append(append([]Fragment{}, prev.OriginalFragments...), flattenedOriginal(next)...)
	} else {
		merged.OriginalFragments = append([]Fragment{prev}, flattenedOriginal(next)...)
	}
	return merged
}

func flattenedOriginal(f Fragment) []Fragment {
	if len(f.OriginalFragments) > 0 {
		return f.OriginalFragments
	}
	return []Fragment{f}
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
