package layout

import "sort"

// row is an ephemeral, ordered run of fragments sharing a baseline within
// tolerance (spec §3 "Row").
type row struct {
	baseline float64
	frags    []Fragment
}

func medianLineSpacing(sorted []Fragment) float64 {
	if len(sorted) < 2 {
		return 0
	}
	var gaps []float64
	var last float64
	haveLast := false
	for _, f := range sorted {
		b := f.Baseline()
		if haveLast {
			if g := b - last; g > 0.01 {
				gaps = append(gaps, g)
			}
		}
		last, haveLast = b, true
	}
	if len(gaps) == 0 {
		return 0
	}
	sort.Float64s(gaps)
	mid := len(gaps) / 2
	if len(gaps)%2 == 0 {
		return (gaps[mid-1] + gaps[mid]) / 2
	}
	return gaps[mid]
}

// groupRows implements §4.A Phase 2: sort by (baseline, left), then walk
// linearly opening a new row whenever the baseline drifts past tolerance.
// The second return value counts rows dropped for being empty.
func groupRows(frags []Fragment, cfg Config) ([]row, int) {
	if len(frags) == 0 {
		return nil, 0
	}
	sorted := make([]Fragment, len(frags))
	copy(sorted, frags)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Baseline() != sorted[j].Baseline() {
			return sorted[i].Baseline() < sorted[j].Baseline()
		}
		return sorted[i].Left < sorted[j].Left
	})

	tolerance := cfg.RowBaselineTolFactor * medianLineSpacing(sorted)
	if tolerance > cfg.RowBaselineTolCap {
		tolerance = cfg.RowBaselineTolCap
	}

	var rows []row
	cur := row{baseline: sorted[0].Baseline(), frags: []Fragment{sorted[0]}}
	for _, f := range sorted[1:] {
		if absf(f.Baseline()-cur.baseline) <= tolerance {
			cur.frags = append(cur.frags, f)
			continue
		}
		rows = append(rows, cur)
		cur = row{baseline: f.Baseline(), frags: []Fragment{f}}
	}
	rows = append(rows, cur)

	// A row with no fragments is dropped; groupRows never produces one, but
	// guard the invariant explicitly per the spec's failure semantics.
	out := rows[:0]
	dropped := 0
	for _, r := range rows {
		if len(r.frags) > 0 {
			out = append(out, r)
		} else {
			dropped++
		}
	}
	return out, dropped
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
