package layout

import "sort"

// scriptFold is a script fragment still waiting to be appended to its parent.
type scriptFold struct {
	rowIdx int
	frag   Fragment
}

// foldScripts implements §4.A Phase 4: fold cross-row scripts into their
// parent fragment's text as "parent^s" or "parent_s", ordering multiple
// scripts folded into the same parent by left.
func foldScripts(rows [][]Fragment) ([][]Fragment, int) {
	locate := locateByStreamIndex(rows)

	var folds []scriptFold
	removed := make(map[[2]int]bool)
	for ri, r := range rows {
		for fi, f := range r {
			if !f.IsScript {
				continue
			}
			loc, ok := locate[f.ScriptParent]
			if !ok || loc[0] == ri {
				// same row or unresolved parent: nothing to fold across rows.
				continue
			}
			folds = append(folds, scriptFold{rowIdx: ri, frag: f})
			removed[[2]int{ri, fi}] = true
		}
	}
	if len(folds) == 0 {
		return rows, 0
	}

	byParent := make(map[int][]scriptFold)
	for _, sf := range folds {
		byParent[sf.frag.ScriptParent] = append(byParent[sf.frag.ScriptParent], sf)
	}
	for parent, group := range byParent {
		sort.Slice(group, func(i, j int) bool { return group[i].frag.Left < group[j].frag.Left })
		byParent[parent] = group
	}

	out := make([][]Fragment, len(rows))
	for ri, r := range rows {
		for fi, f := range r {
			if removed[[2]int{ri, fi}] {
				continue
			}
			out[ri] = append(out[ri], f)
		}
	}

	// removal may have shifted indices within a row, so relocate parents in
	// `out` fresh rather than reusing `locate`.
	outLocate := locateByStreamIndex(out)

	folded := 0
	for parentStream, group := range byParent {
		loc, ok := outLocate[parentStream]
		if !ok {
			continue
		}
		parent := &out[loc[0]][loc[1]]
		for _, sf := range group {
			sep := "^"
			if sf.frag.ScriptKind == ScriptSub {
				sep = "_"
			}
			parent.Text += sep + sf.frag.Text
			parent.Width = maxf(parent.Right(), sf.frag.Right()) - parent.Left
			if sf.frag.Top+sf.frag.Height > parent.Top+parent.Height {
				parent.Height = sf.frag.Top + sf.frag.Height - parent.Top
			}
			parent.OriginalFragments = append(flattenedOriginal(*parent), flattenedOriginal(sf.frag)...)
			folded++
		}
	}
	return out, folded
}

// locateByStreamIndex maps every original StreamIndex absorbed by a
// fragment (directly or through an earlier merge) to its current
// [rowIdx, fragIdx] position.
func locateByStreamIndex(rows [][]Fragment) map[int][2]int {
	locate := make(map[int][2]int)
	for ri, r := range rows {
		for fi, f := range r {
			for _, orig := range flattenedOriginal(f) {
				locate[orig.StreamIndex] = [2]int{ri, fi}
			}
			locate[f.StreamIndex] = [2]int{ri, fi}
		}
	}
	return locate
}
