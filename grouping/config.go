package grouping

// Config holds the tunable constants for paragraph grouping.
type Config struct {
	MaxFontSizeDelta   float64 `yaml:"max_font_size_delta" validate:"gt=0"`   // prev/curr size delta at or above which a new paragraph opens
	BulletGapThreshold float64 `yaml:"bullet_gap_threshold" validate:"gt=0"`  // vertical gap above which a bullet glyph forces a new paragraph
	BaseGapFactor      float64 `yaml:"base_gap_factor" validate:"gt=0"`       // multiplier of median line height for the generic gap threshold
	BulletMergeGapMax  float64 `yaml:"bullet_merge_gap_max" validate:"gt=0"`  // horizontal gap tolerance merging a bullet glyph into its text, pt

	CrossPageMaxSizeDelta float64 `yaml:"cross_page_max_size_delta" validate:"gt=0"` // cross-page merge: max |size difference|
}

// DefaultConfig returns the constants named explicitly in the specification.
func DefaultConfig() Config {
	return Config{
		MaxFontSizeDelta:   2.0,
		BulletGapThreshold: 2.0,
		BaseGapFactor:      2.0,
		BulletMergeGapMax:  20.0,

		CrossPageMaxSizeDelta: 2.0,
	}
}
