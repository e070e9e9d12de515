package layout

// Engine runs the four-phase fragment layout algorithm over one page at a
// time; it holds no cross-page state (see spec §5 memory discipline).
type Engine struct {
	Config Config
}

// NewEngine builds an Engine with the given tunables.
func NewEngine(cfg Config) Engine {
	return Engine{Config: cfg}
}

// ProcessPage runs script detection, row grouping, same-row merge, and
// cross-row script folding over one page's fragments. It never errors: a
// script candidate with an ambiguous parent is simply left as normal text,
// and an empty row is dropped (spec §4.A "Failure semantics").
func (e Engine) ProcessPage(page Page) (Page, Diagnostics) {
	var diag Diagnostics
	if len(page.Frags) == 0 {
		return page, diag
	}

	marked, ambiguous := detectScripts(page.Frags, e.Config)
	diag.AmbiguousScripts = ambiguous

	rows, dropped := groupRows(marked, e.Config)
	diag.DroppedEmptyRows = dropped

	merged := make([][]Fragment, len(rows))
	before := 0
	for i, r := range rows {
		before += len(r.frags)
		merged[i] = mergeRow(r, e.Config)
	}
	after := 0
	for _, r := range merged {
		after += len(r)
	}
	diag.FragmentsMerged = before - after

	folded, foldedCount := foldScripts(merged)
	diag.ScriptsFolded = foldedCount

	// A fold widens its parent fragment, which can close a gap that Phase 3
	// rejected before the parent absorbed its script (spec §8 Scenario 1: a
	// folded superscript must still let its two straddled bases merge). Re-run
	// the same-row merge once more over any row a fold touched.
	if foldedCount > 0 {
		before2 := 0
		for _, r := range folded {
			before2 += len(r)
		}
		for i, r := range folded {
			folded[i] = mergeRow(row{frags: r}, e.Config)
		}
		after2 := 0
		for _, r := range folded {
			after2 += len(r)
		}
		diag.FragmentsMerged += before2 - after2
	}

	out := page
	out.Frags = nil
	for _, r := range folded {
		out.Frags = append(out.Frags, r...)
	}
	return out, diag
}

// Idempotent reports whether running ProcessPage again over page would
// produce no further merges or script folds (spec §8 round-trip property).
// It compares only the merge and fold counts of that second run; it does not
// check original_fragments bounding-box coverage or leftover script marks.
func (e Engine) Idempotent(page Page) bool {
	_, diag := e.ProcessPage(page)
	return diag.FragmentsMerged == 0 && diag.ScriptsFolded == 0
}
