package column

import "sort"

// weaveTransitions implements the single-column heuristic's third test: a
// width-only first pass (ignore real column logic) that would produce more
// than cfg.SingleColumnMaxWeaves 0<->1 transitions in top-to-bottom order.
func weaveTransitions(frags []Fragment, pageWidth float64, cfg Config) int {
	var candidates []Fragment
	for _, f := range frags {
		if !f.Excluded {
			candidates = append(candidates, f)
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Top < candidates[j].Top })

	transitions := 0
	prevWide := true
	first := true
	for _, f := range candidates {
		wide := f.Width >= cfg.WideColumnRatio*pageWidth
		if !first && wide != prevWide {
			transitions++
		}
		prevWide, first = wide, false
	}
	return transitions
}

// isSingleColumn implements §4.B's single-column heuristic: any of the three
// conditions is sufficient.
func isSingleColumn(frags []Fragment, colStarts []float64, pageWidth float64, cfg Config) bool {
	if len(colStarts) <= 1 {
		return true
	}
	if dominantClusterShare(frags, cfg) >= cfg.SingleColumnAlignmentRatio {
		return true
	}
	if weaveTransitions(frags, pageWidth, cfg) > cfg.SingleColumnMaxWeaves {
		return true
	}
	return false
}

// boundaries computes the midpoints between consecutive cluster centres
// used to assign a column index by left position (§4.B step 3).
func boundaries(colStarts []float64) []float64 {
	if len(colStarts) < 2 {
		return nil
	}
	b := make([]float64, len(colStarts)-1)
	for i := 0; i < len(colStarts)-1; i++ {
		b[i] = (colStarts[i] + colStarts[i+1]) / 2
	}
	return b
}

// columnIndexFor returns the 1-based column index whose boundary interval
// contains left.
func columnIndexFor(left float64, bounds []float64) int {
	idx := 1
	for _, b := range bounds {
		if left < b {
			break
		}
		idx++
	}
	return idx
}

// assignMultiColumn implements §4.B's multi-column assignment rules,
// including footnote-zone propagation of column id 0.
func assignMultiColumn(frags []Fragment, pageWidth, pageHeight float64, colStarts []float64, cfg Config) []Fragment {
	bounds := boundaries(colStarts)
	out := make([]Fragment, len(frags))
	copy(out, frags)

	for i := range out {
		f := out[i]
		spans := f.Left <= cfg.SpanWidthMargin*pageWidth && f.Left+f.Width >= (1-cfg.SpanWidthMargin)*pageWidth
		wide := f.Width >= cfg.WideColumnRatio*pageWidth
		switch {
		case spans, wide:
			out[i].ColumnID = FullWidth
		default:
			out[i].ColumnID = columnIndexFor(f.Left, bounds)
		}
	}

	propagateFootnoteZone(out, pageWidth, pageHeight, cfg)
	return out
}

// propagateFootnoteZone implements §4.B's footnote-zone propagation: within
// the footnote zone, a wide (column-id-0) fragment's id propagates to
// vertically adjacent narrow continuation lines even when they are narrow;
// outside the footnote zone the same propagation requires the narrow
// fragment to already be at least 40% of page width.
func propagateFootnoteZone(frags []Fragment, pageWidth, pageHeight float64, cfg Config) {
	sort.Slice(frags, func(i, j int) bool { return frags[i].Top < frags[j].Top })
	lineHeight := medianHeight(frags)

	for i := 1; i < len(frags); i++ {
		prev, cur := frags[i-1], frags[i]
		if prev.ColumnID != FullWidth || cur.ColumnID == FullWidth {
			continue
		}
		gap := cur.Top - (prev.Top + prev.Height)
		inFootnoteZone := cur.Top >= cfg.FootnoteZoneTop*pageHeight

		if inFootnoteZone {
			if gap <= cfg.FootnoteLineHeightFactor*lineHeight {
				frags[i].ColumnID = FullWidth
			}
			continue
		}
		if cur.Width >= cfg.NarrowWideOutsideRatio*pageWidth && gap <= cfg.FootnoteLineHeightFactor*lineHeight {
			frags[i].ColumnID = FullWidth
		}
	}
}

func medianHeight(frags []Fragment) float64 {
	if len(frags) == 0 {
		return 0
	}
	heights := make([]float64, len(frags))
	for i, f := range frags {
		heights[i] = f.Height
	}
	sort.Float64s(heights)
	mid := len(heights) / 2
	if len(heights)%2 == 0 {
		return (heights[mid-1] + heights[mid]) / 2
	}
	return heights[mid]
}
