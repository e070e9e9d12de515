package column

import "sort"

// OrderPage implements the column-major, top-to-bottom reading-order flow
// summarised in §2's component table and detailed in §4.C: each full-width
// (column id 0) fragment acts as a band boundary; inside a band, every
// column's fragments (in ascending column id order) are emitted as one
// contiguous run, sorted by (baseline, left). This is the reading-order
// proxy used both by §4.B's transition smoothing and, with index/block
// numbering added, by package reading's final assignment.
func OrderPage(frags []Fragment) []Fragment {
	if len(frags) == 0 {
		return nil
	}

	var zero []Fragment
	columns := map[int][]Fragment{}
	var colIDs []int
	for _, f := range frags {
		if f.ColumnID == FullWidth {
			zero = append(zero, f)
			continue
		}
		if _, ok := columns[f.ColumnID]; !ok {
			colIDs = append(colIDs, f.ColumnID)
		}
		columns[f.ColumnID] = append(columns[f.ColumnID], f)
	}
	sort.Ints(colIDs)
	byBaselineLeft := func(s []Fragment) {
		sort.Slice(s, func(i, j int) bool {
			if s[i].Baseline() != s[j].Baseline() {
				return s[i].Baseline() < s[j].Baseline()
			}
			return s[i].Left < s[j].Left
		})
	}
	byBaselineLeft(zero)
	for _, id := range colIDs {
		byBaselineLeft(columns[id])
	}

	out := make([]Fragment, 0, len(frags))
	pos := make(map[int]int, len(colIDs))

	emitBandBefore := func(baseline float64) {
		for _, id := range colIDs {
			q := columns[id]
			start := pos[id]
			end := start
			for end < len(q) && (baseline < 0 || q[end].Baseline() < baseline) {
				end++
			}
			out = append(out, q[start:end]...)
			pos[id] = end
		}
	}

	for _, z := range zero {
		emitBandBefore(z.Baseline())
		out = append(out, z)
	}
	emitBandBefore(-1) // trailing band: emit everything still queued
	return out
}
