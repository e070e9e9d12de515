package structure

// Config holds the tunable constants for font-role derivation, block
// labelling, and the header/footer pre-filter.
type Config struct {
	BodySizeMin      float64 `yaml:"body_size_min" validate:"gt=0"`   // lower bound of the body-role size window, pt
	BodySizeMax      float64 `yaml:"body_size_max" validate:"gt=0"`   // upper bound of the body-role size window, pt
	MaxHeadingLevels int     `yaml:"max_heading_levels" validate:"gt=0"` // L in §4.F: heading levels 1..L

	HeaderFooterMinPagesAbs   int     `yaml:"header_footer_min_pages_abs" validate:"gt=0"`      // absolute floor for "repeated on >= N pages"
	HeaderFooterMinPagesRatio float64 `yaml:"header_footer_min_pages_ratio" validate:"gt=0,lt=1"` // fraction-of-pages floor, the other half of max(10, 1%)
	HeaderFooterMinTextLen    int     `yaml:"header_footer_min_text_len" validate:"gt=0"`       // minimum text length to count as header/footer noise

	InvisibleTextMaxHeight float64 `yaml:"invisible_text_max_height" validate:"gt=0"` // pt; text this short (or shorter) is print-invisible
	PageOverflowRatio      float64 `yaml:"page_overflow_ratio" validate:"gt=1"`       // top > this * page_height is off-page

	RomanNumeralZoneRatio float64 `yaml:"roman_numeral_zone_ratio" validate:"gt=0,lt=1"` // top/bottom fraction of the page where Roman-numeral folios are dropped

	ChapterPattern string `yaml:"chapter_pattern" validate:"required"` // regex matched against a paragraph's text to detect a chapter heading
}

// DefaultConfig returns the constants named explicitly in the specification.
func DefaultConfig() Config {
	return Config{
		BodySizeMin:      8,
		BodySizeMax:      14,
		MaxHeadingLevels: 6,

		HeaderFooterMinPagesAbs:   10,
		HeaderFooterMinPagesRatio: 0.01,
		HeaderFooterMinTextLen:    5,

		InvisibleTextMaxHeight: 6,
		PageOverflowRatio:      1.05,

		RomanNumeralZoneRatio: 0.08,

		ChapterPattern: `^(Chapter|CHAPTER)\s+\d+`,
	}
}
