package reading

import "pdfreflow/column"

// noColumn is the defensive fallback for a fragment that reached this stage
// without a column id assigned by package column. §4.C calls this "should
// never happen after §4.B"; when it does, the fragment is pushed to the end
// of its own trailing block rather than dropped.
const noColumn = -1

// Assigner produces the per-page reading order and block numbering.
type Assigner struct{}

// NewAssigner returns a Assigner; there are no tunables at this stage.
func NewAssigner() Assigner {
	return Assigner{}
}

// Order implements §4.C end to end: baseline-based interleaving of the
// column runs (delegated to column.OrderPage, which already keeps each
// column's step-1 ordering intact and only interleaves at full-width
// boundaries), followed by reading_order_index and reading_block numbering.
func (Assigner) Order(page Page) Ordered {
	if len(page.Frags) == 0 {
		return Ordered{}
	}

	var withCol, withoutCol []column.Fragment
	for _, f := range page.Frags {
		if f.ColumnID == noColumn {
			withoutCol = append(withoutCol, f)
			continue
		}
		withCol = append(withCol, f)
	}

	ordered := column.OrderPage(withCol)
	ordered = append(ordered, withoutCol...)

	out := make([]Fragment, len(ordered))
	block := 0
	for i, f := range ordered {
		if i == 0 || f.ColumnID != ordered[i-1].ColumnID {
			block++
		}
		out[i] = Fragment{Fragment: f, ReadingOrderIndex: i + 1, ReadingBlock: block}
	}
	return Ordered{Frags: out}
}
