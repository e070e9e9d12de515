package layout

import "unicode"

// scriptExclusions holds glyphs that look like scripts by size but never are:
// degree/trademark/copyright marks, bullets, middle dots, fraction glyphs.
var scriptExclusions = map[rune]bool{
	'°': true, '™': true, '®': true, '©': true,
	'•': true, '·': true,
	'¼': true, '½': true, '¾': true, '⅓': true, '⅔': true,
	'●': true, '○': true, '■': true, '□': true, '▪': true, '▫': true,
}

func isScriptExcluded(text string) bool {
	for _, r := range text {
		if scriptExclusions[r] {
			return true
		}
	}
	return false
}

func isAlphanumericText(text string) bool {
	hasAny := false
	for _, r := range text {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
		hasAny = true
	}
	return hasAny
}

// isScriptCandidate implements §4.A Phase 1's candidate test (uses top, not
// baseline, as the spec requires).
func isScriptCandidate(f Fragment, cfg Config) bool {
	if f.Width >= cfg.ScriptMaxWidth || f.Height >= cfg.ScriptMaxHeight {
		return false
	}
	if len([]rune(f.Text)) > cfg.ScriptMaxTextLen {
		return false
	}
	if !isAlphanumericText(f.Text) {
		return false
	}
	if isScriptExcluded(f.Text) {
		return false
	}
	return true
}

// nearestNeighbor finds the closest non-candidate fragment horizontally
// adjacent to candidate (left or right), within cfg.ScriptNeighborGap. It
// returns ok=false when no neighbour qualifies, or when the left and right
// neighbours are equally close (ambiguous parent, left as normal text per
// spec's failure semantics).
func nearestNeighbor(candidate Fragment, others []Fragment, cfg Config) (Fragment, bool) {
	var (
		left, right       Fragment
		leftGap, rightGap = -1.0, -1.0
	)
	for _, o := range others {
		if o.StreamIndex == candidate.StreamIndex {
			continue
		}
		if isScriptCandidate(o, cfg) {
			continue
		}
		// a neighbour on the left ends before candidate starts
		if o.Right() <= candidate.Left {
			gap := candidate.Left - o.Right()
			if gap <= cfg.ScriptNeighborGap && (leftGap < 0 || gap < leftGap) {
				leftGap, left = gap, o
			}
		}
		// a neighbour on the right starts after candidate ends
		if o.Left >= candidate.Right() {
			gap := o.Left - candidate.Right()
			if gap <= cfg.ScriptNeighborGap && (rightGap < 0 || gap < rightGap) {
				rightGap, right = gap, o
			}
		}
	}

	switch {
	case leftGap < 0 && rightGap < 0:
		return Fragment{}, false
	case leftGap < 0:
		return right, true
	case rightGap < 0:
		return left, true
	case leftGap == rightGap:
		// ambiguous: two equally close neighbours, demote to normal text
		return Fragment{}, false
	case leftGap < rightGap:
		return left, true
	default:
		return right, true
	}
}

// classifyScript applies the candidate/neighbour test and top-diff
// classification of §4.A Phase 1. It returns ScriptNone when the candidate
// cannot be unambiguously resolved against a larger neighbour.
func classifyScript(candidate Fragment, page []Fragment, cfg Config) (ScriptKind, int) {
	if !isScriptCandidate(candidate, cfg) {
		return ScriptNone, -1
	}
	neighbor, ok := nearestNeighbor(candidate, page, cfg)
	if !ok {
		return ScriptNone, -1
	}
	if candidate.Height >= cfg.ScriptHeightRatio*neighbor.Height {
		return ScriptNone, -1
	}

	topDiff := candidate.Top - neighbor.Top
	switch {
	case topDiff >= cfg.SuperTopDiffMin && topDiff <= cfg.SuperTopDiffMax:
		return ScriptSuper, neighbor.StreamIndex
	case topDiff > cfg.SubTopDiffMin && topDiff <= cfg.SubTopDiffMax:
		return ScriptSub, neighbor.StreamIndex
	default:
		return ScriptNone, -1
	}
}

// detectScripts runs Phase 1 over a whole page, marking candidates in place.
func detectScripts(frags []Fragment, cfg Config) (marked []Fragment, ambiguous int) {
	marked = make([]Fragment, len(frags))
	copy(marked, frags)
	for i := range marked {
		kind, parent := classifyScript(marked[i], frags, cfg)
		if kind == ScriptNone {
			if isScriptCandidate(marked[i], cfg) {
				ambiguous++
			}
			continue
		}
		marked[i].IsScript = true
		marked[i].ScriptKind = kind
		marked[i].ScriptParent = parent
	}
	return marked, ambiguous
}
