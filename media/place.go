package media

import (
	"sort"

	"pdfreflow/reading"
)

// place implements §4.D's placement rule: each surviving region takes the
// reading-order position of the nearest fragment above it by bottom edge,
// offset by 0.5, and inherits that fragment's reading block. A page with no
// text fragments at all still gets its media placed, starting at 0.5.
func place(regions []Region, frags []reading.Fragment) []Region {
	sorted := make([]reading.Fragment, len(frags))
	copy(sorted, frags)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Baseline() < sorted[j].Baseline() })

	out := make([]Region, len(regions))
	copy(out, regions)
	for i, r := range out {
		var nearest *reading.Fragment
		for j := range sorted {
			f := sorted[j]
			if f.Baseline() <= r.Top {
				nearest = &sorted[j]
				continue
			}
			break
		}
		if nearest == nil {
			out[i].ReadingOrderIndex = 0.5
			out[i].ReadingBlock = 1
			continue
		}
		out[i].ReadingOrderIndex = float64(nearest.ReadingOrderIndex) + 0.5
		out[i].ReadingBlock = nearest.ReadingBlock
	}
	return out
}

// removeCaptured drops text fragments whose centre lies inside a surviving
// region and at least cfg.CaptureAreaRatio of whose own area lies within
// that region (or whose area is zero) — they are text captured
// inside the media region (e.g. a caption baked into a raster), not separate
// readable content.
func removeCaptured(frags []reading.Fragment, regions []Region, cfg Config) []reading.Fragment {
	var out []reading.Fragment
	for _, f := range frags {
		captured := false
		cx, cy := f.Left+f.Width/2, f.Top+f.Height/2
		for _, r := range regions {
			if cx < r.Left || cx > r.Right() || cy < r.Top || cy > r.Bottom() {
				continue
			}
			fragArea := f.Width * f.Height
			if fragArea <= 0 {
				captured = true
				break
			}
			inside := intersectionArea(Region{Left: f.Left, Top: f.Top, Width: f.Width, Height: f.Height}, r)
			if inside/fragArea >= cfg.CaptureAreaRatio {
				captured = true
				break
			}
		}
		if !captured {
			out = append(out, f)
		}
	}
	return out
}
