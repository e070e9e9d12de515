package grouping

// MergeAcrossPages implements §4.E's cross-page merge: examines each pair of
// (last paragraph on page N, first paragraph on page N+1) across the whole
// document and joins them into one paragraph when every condition holds.
// pages must already be grouped and sorted by ascending page number.
func (g Grouper) MergeAcrossPages(pages [][]Paragraph) []Paragraph {
	var out []Paragraph
	for _, page := range pages {
		if len(page) == 0 {
			continue
		}
		if len(out) > 0 && canMerge(out[len(out)-1], page[0], g.Config) {
			last := &out[len(out)-1]
			last.Frags = append(last.Frags, page[0].Frags...)
			out = append(out, page[1:]...)
			continue
		}
		out = append(out, page...)
	}
	return out
}

func canMerge(last, first Paragraph, cfg Config) bool {
	if last.Region != nil || first.Region != nil {
		return false
	}
	if len(last.Frags) == 0 || len(first.Frags) == 0 {
		return false
	}
	if first.Page != last.Page+1 {
		return false
	}
	if last.ColumnID != first.ColumnID {
		return false
	}
	if last.FontID != first.FontID {
		return false
	}
	if absf(last.FontSize-first.FontSize) >= cfg.CrossPageMaxSizeDelta {
		return false
	}
	if endsWithTerminator(last.Text()) {
		return false
	}
	if looksLikeHeading(first.Text()) {
		return false
	}
	if last.Bold != first.Bold {
		return false
	}
	return true
}
