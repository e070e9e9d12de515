package media

import "strings"

// dedupVectors implements rules 1–3: a vector is dropped if it substantially
// overlaps a table or raster, or if it envelops a raster.
func dedupVectors(vectors, rasters, tables []Region, cfg Config) []Region {
	var out []Region
	for _, v := range vectors {
		drop := false
		for _, t := range tables {
			if iou(v, t) > cfg.VectorTableIoU {
				drop = true
				break
			}
		}
		if !drop {
			for _, r := range rasters {
				if iou(v, r) > cfg.VectorRasterIoU {
					drop = true
					break
				}
			}
		}
		if !drop {
			for _, r := range rasters {
				if r.Area() <= 0 {
					continue
				}
				if intersectionArea(v, r)/r.Area() > cfg.VectorEnvelopeRatio {
					drop = true
					break
				}
			}
		}
		if !drop {
			out = append(out, v)
		}
	}
	return out
}

// isBulletList implements rule 4's rejection test: a >=2-column table whose
// first column is mostly single-character or bullet glyphs is a bullet list
// mis-detected as a table, not a real table.
func isBulletList(t Region, cfg Config) bool {
	if len(t.Rows) == 0 || len(t.Rows[0]) < 2 {
		return false
	}
	bulletLike := 0
	for _, row := range t.Rows {
		if len(row) == 0 {
			continue
		}
		cell := strings.TrimSpace(row[0].Text)
		if cell == "" {
			continue
		}
		if len([]rune(cell)) == 1 || isBulletGlyph(cell) {
			bulletLike++
		}
	}
	return float64(bulletLike)/float64(len(t.Rows)) > cfg.BulletColumnGlyphRatio
}

func isBulletGlyph(s string) bool {
	switch s {
	case "•", "◦", "▪", "‣", "-", "*", "·":
		return true
	default:
		return false
	}
}

// dedupTables implements rule 4: duplicate table regions are collapsed to
// one survivor, and bullet-list false positives are rejected outright.
func dedupTables(tables []Region, cfg Config) []Region {
	var candidates []Region
	for _, t := range tables {
		if !isBulletList(t, cfg) {
			candidates = append(candidates, t)
		}
	}

	dropped := make([]bool, len(candidates))
	for i := range candidates {
		if dropped[i] {
			continue
		}
		for j := i + 1; j < len(candidates); j++ {
			if dropped[j] {
				continue
			}
			a, b := candidates[i], candidates[j]
			overlap := iou(a, b)
			duplicate := overlap > cfg.TableDuplicateIoU ||
				(centroidDistance(a, b) < cfg.TableDuplicateCentroid && overlap > cfg.TableDuplicateLooseIoU)
			if duplicate {
				dropped[j] = true
			}
		}
	}

	var out []Region
	for i, t := range candidates {
		if !dropped[i] {
			out = append(out, t)
		}
	}
	return out
}

// GroupRasters implements rule 5: rasters sharing a source identifier are
// grouped (not dropped) so downstream stages can reference one shared image.
func GroupRasters(rasters []Region) map[string][]Region {
	groups := map[string][]Region{}
	for _, r := range rasters {
		key := r.SourceID
		groups[key] = append(groups[key], r)
	}
	return groups
}
