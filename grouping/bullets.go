package grouping

import (
	"regexp"
	"strings"
)

var bulletGlyphs = []string{
	"•", "●", "○", "■", "□", "▪", "▫", "·", "-", "*", "–", "—", "→", "⇒", "▸", "►",
}

var orderedListPattern = regexp.MustCompile(`^(\(?\d+[.\)]|[A-HJ-Za-hj-z][.\)])\s+\w{2,}`)

// startsWithBullet reports whether text opens with a bullet glyph or an
// ordered-list marker, per §4.E's bullet set.
func startsWithBullet(text string) bool {
	trimmed := strings.TrimLeft(text, " \t")
	for _, g := range bulletGlyphs {
		if strings.HasPrefix(trimmed, g) {
			return true
		}
	}
	return orderedListPattern.MatchString(trimmed)
}

var headingLikePattern = regexp.MustCompile(`^(Chapter\s+\d+|\d+(\.\d+)+)`)

// looksLikeHeading matches the cross-page merge veto patterns: "Chapter N",
// dotted section numbers, or a bullet marker.
func looksLikeHeading(text string) bool {
	trimmed := strings.TrimLeft(text, " \t")
	if headingLikePattern.MatchString(trimmed) {
		return true
	}
	return startsWithBullet(trimmed)
}

var sentenceTerminators = map[byte]bool{'.': true, '!': true, '?': true, ';': true, ':': true}

// endsWithTerminator reports whether text ends in a sentence terminator.
func endsWithTerminator(text string) bool {
	trimmed := strings.TrimRight(text, " \t")
	if trimmed == "" {
		return false
	}
	return sentenceTerminators[trimmed[len(trimmed)-1]]
}
