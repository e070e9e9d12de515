package column

// Config holds the tunable constants for column clustering, single-column
// detection, multi-column assignment, and transition smoothing.
type Config struct {
	ClusterTolerance    float64 `yaml:"cluster_tolerance" validate:"gt=0"`     // left-coordinate clustering tolerance, pt
	MinClusterBaselines int     `yaml:"min_cluster_baselines" validate:"gt=0"` // minimum unique baselines to count a cluster as a real column
	MinClusterRatio     float64 `yaml:"min_cluster_ratio" validate:"gt=0,lt=1"` // minimum-fraction-of-fragments setting; the clustering in this package does not read it

	SingleColumnAlignmentRatio float64 `yaml:"single_column_alignment_ratio" validate:"gt=0,lt=1"` // fraction of fragments within tolerance of dominant cluster
	SingleColumnMaxWeaves      int     `yaml:"single_column_max_weaves" validate:"gte=0"`           // max 0<->1 transitions tolerated before declaring single-column

	SpanWidthMargin float64 `yaml:"span_width_margin" validate:"gt=0,lt=1"` // fraction of page width defining "spans the page"
	WideColumnRatio float64 `yaml:"wide_column_ratio" validate:"gt=0,lt=1"` // fraction of page width defining "wide" (col id 0)

	FootnoteZoneTop          float64 `yaml:"footnote_zone_top" validate:"gt=0,lt=1"`    // fraction of page height where footnote-zone propagation applies
	FootnoteLineHeightFactor float64 `yaml:"footnote_line_height_factor" validate:"gt=0"` // multiplier of line height for vertical adjacency in the footnote zone
	NarrowWideOutsideRatio   float64 `yaml:"narrow_wide_outside_ratio" validate:"gt=0,lt=1"` // minimum width fraction for narrow-fragment propagation outside the footnote zone

	SmoothingMinRun    int     `yaml:"smoothing_min_run" validate:"gt=0"`      // runs smaller than this, sandwiched identically, get reassigned
	SmoothingWideRatio float64 `yaml:"smoothing_wide_ratio" validate:"gt=0,lt=1"` // a run containing a fragment this wide is never smoothed away
}

// DefaultConfig returns the constants named explicitly in the specification.
func DefaultConfig() Config {
	return Config{
		ClusterTolerance:    20,
		MinClusterBaselines: 12,
		MinClusterRatio:     0.10,

		SingleColumnAlignmentRatio: 0.80,
		SingleColumnMaxWeaves:      5,

		SpanWidthMargin: 0.05,
		WideColumnRatio: 0.45,

		FootnoteZoneTop:          0.75,
		FootnoteLineHeightFactor: 1.5,
		NarrowWideOutsideRatio:   0.40,

		SmoothingMinRun:    3,
		SmoothingWideRatio: 0.60,
	}
}
