package media

// Config holds the tunable thresholds for deduplication and placement.
type Config struct {
	VectorTableIoU      float64 `yaml:"vector_table_iou" validate:"gt=0,lt=1"`      // rule 1: drop vector overlapping a table above this IoU
	VectorRasterIoU     float64 `yaml:"vector_raster_iou" validate:"gt=0,lt=1"`     // rule 2: drop vector overlapping a raster above this IoU
	VectorEnvelopeRatio float64 `yaml:"vector_envelope_ratio" validate:"gt=0,lt=1"` // rule 3: drop vector enveloping a raster above this area ratio

	TableDuplicateIoU      float64 `yaml:"table_duplicate_iou" validate:"gt=0,lt=1"`      // rule 4: same-table IoU threshold
	TableDuplicateCentroid float64 `yaml:"table_duplicate_centroid" validate:"gt=0"`      // rule 4: centroid distance threshold, pt
	TableDuplicateLooseIoU float64 `yaml:"table_duplicate_loose_iou" validate:"gt=0,lt=1"` // rule 4: looser IoU paired with the centroid test
	BulletColumnGlyphRatio float64 `yaml:"bullet_column_glyph_ratio" validate:"gt=0,lt=1"` // rule 4: first-column single-char/bullet ratio rejecting a table candidate

	CaptureAreaRatio float64 `yaml:"capture_area_ratio" validate:"gt=0,lt=1"` // fraction of a fragment's area inside a region before it's considered captured
}

// DefaultConfig returns the constants named explicitly in the specification.
func DefaultConfig() Config {
	return Config{
		VectorTableIoU:      0.3,
		VectorRasterIoU:     0.3,
		VectorEnvelopeRatio: 0.2,

		TableDuplicateIoU:      0.5,
		TableDuplicateCentroid: 50,
		TableDuplicateLooseIoU: 0.1,
		BulletColumnGlyphRatio: 0.7,

		CaptureAreaRatio: 0.5,
	}
}
