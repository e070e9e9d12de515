package column

// Resolver detects column structure and assigns column ids, page by page.
type Resolver struct {
	Config Config
}

// NewResolver builds a Resolver with the given tunables.
func NewResolver(cfg Config) Resolver {
	return Resolver{Config: cfg}
}

// ResolvePage implements §4.B end to end: clustering, the single-column
// heuristic, multi-column assignment, footnote-zone propagation, and
// transition smoothing.
func (r Resolver) ResolvePage(page Page) Assignment {
	if len(page.Frags) == 0 {
		return Assignment{}
	}

	colStarts := clusterLefts(page.Frags, r.Config)
	if isSingleColumn(page.Frags, colStarts, page.Width, r.Config) {
		out := make([]Fragment, len(page.Frags))
		copy(out, page.Frags)
		for i := range out {
			out[i].ColumnID = 1
		}
		return Assignment{Frags: out, SingleColumn: true, ColStarts: colStarts}
	}

	assigned := assignMultiColumn(page.Frags, page.Width, page.Height, colStarts, r.Config)
	smoothed := smoothTransitions(assigned, page.Width, r.Config)
	return Assignment{Frags: smoothed, SingleColumn: false, ColStarts: colStarts}
}
