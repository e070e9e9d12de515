package structure

import (
	"regexp"
	"strings"
)

var captionPattern = regexp.MustCompile(`^(Figure|Table)\s+\d+\.`)

// looksLikeCaption reports whether text matches the "Figure N." / "Table N."
// caption pattern §4.F associates with adjacent media paragraphs.
func looksLikeCaption(text string) bool {
	return captionPattern.MatchString(strings.TrimSpace(text))
}

var singleUppercaseLetterPattern = regexp.MustCompile(`^[A-Z]$`)

// isSingleUppercaseLetter reports whether text is exactly one uppercase
// letter — the index alphabet headers ("A", "B", …) that must survive both
// the header/footer pre-filter and the index section's exit heuristic.
func isSingleUppercaseLetter(text string) bool {
	return singleUppercaseLetterPattern.MatchString(strings.TrimSpace(text))
}
