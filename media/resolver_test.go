package media

import (
	"testing"

	"pdfreflow/column"
	"pdfreflow/layout"
	"pdfreflow/reading"
)

func textFrag(idx int, left, top, width, height float64, order, block int) reading.Fragment {
	return reading.Fragment{
		Fragment: column.Fragment{
			Fragment: layout.Fragment{StreamIndex: idx, Left: left, Top: top, Width: width, Height: height},
			ColumnID: 1,
		},
		ReadingOrderIndex: order,
		ReadingBlock:      block,
	}
}

func TestResolve_VectorEnvelopingTwoRastersDropped(t *testing.T) {
	rasterA := Region{Left: 100, Top: 100, Width: 300, Height: 300, Kind: KindRaster, SourceID: "imgA"}
	rasterB := Region{Left: 450, Top: 100, Width: 300, Height: 300, Kind: KindRaster, SourceID: "imgB"}
	vector := Region{Left: 50, Top: 80, Width: 750, Height: 370, Kind: KindVector, SourceID: "vecV"}
	preceding := textFrag(0, 100, 20, 200, 20, 1, 1) // text above the figure, e.g. the chapter body
	caption := textFrag(1, 100, 460, 200, 20, 2, 2)  // "Figure 4." below the figure, not used as an anchor

	page := Page{
		Number:  4,
		Width:   900,
		Height:  600,
		Frags:   []reading.Fragment{preceding, caption},
		Rasters: []Region{rasterA, rasterB},
		Vectors: []Region{vector},
	}

	placed := NewResolver(DefaultConfig()).Resolve(page)

	for _, r := range placed.Regions {
		if r.Kind == KindVector {
			t.Fatalf("expected the enveloping vector to be dropped, found %+v", r)
		}
	}
	if len(placed.Regions) != 2 {
		t.Fatalf("expected both rasters to survive, got %d regions", len(placed.Regions))
	}

	for _, r := range placed.Regions {
		if r.ReadingOrderIndex != 1.5 {
			t.Fatalf("expected both rasters placed after reading_order_index 1 (got %v)", r.ReadingOrderIndex)
		}
		if r.ReadingBlock != 1 {
			t.Fatalf("expected the rasters to inherit the preceding fragment's reading block, got %d", r.ReadingBlock)
		}
	}
}

func TestResolve_VectorOverlappingTableDropped(t *testing.T) {
	table := Region{Left: 0, Top: 0, Width: 200, Height: 200, Kind: KindTable, SourceID: "t1",
		Rows: [][]Cell{{{Text: "Name"}, {Text: "Value"}}, {{Text: "a"}, {Text: "1"}}}}
	vector := Region{Left: 0, Top: 0, Width: 200, Height: 200, Kind: KindVector, SourceID: "vecOverTable"}

	page := Page{Number: 1, Width: 600, Height: 800, Tables: []Region{table}, Vectors: []Region{vector}}
	placed := NewResolver(DefaultConfig()).Resolve(page)

	for _, r := range placed.Regions {
		if r.Kind == KindVector {
			t.Fatalf("expected vector overlapping the table to be dropped")
		}
	}
}

func TestResolve_BulletListRejectedAsTable(t *testing.T) {
	bullets := Region{
		Left: 0, Top: 0, Width: 200, Height: 200, Kind: KindTable, SourceID: "maybeTable",
		Rows: [][]Cell{
			{{Text: "•"}, {Text: "first item"}},
			{{Text: "•"}, {Text: "second item"}},
			{{Text: "•"}, {Text: "third item"}},
		},
	}
	page := Page{Number: 1, Width: 600, Height: 800, Tables: []Region{bullets}}
	placed := NewResolver(DefaultConfig()).Resolve(page)

	if len(placed.Regions) != 0 {
		t.Fatalf("expected the bullet list to be rejected as a table, got %+v", placed.Regions)
	}
}

func TestResolve_DuplicateTablesCollapsed(t *testing.T) {
	t1 := Region{Left: 10, Top: 10, Width: 300, Height: 150, Kind: KindTable, SourceID: "dup1",
		Rows: [][]Cell{{{Text: "Name"}, {Text: "Value"}}, {{Text: "alpha"}, {Text: "1"}}}}
	t2 := Region{Left: 12, Top: 11, Width: 298, Height: 149, Kind: KindTable, SourceID: "dup2",
		Rows: [][]Cell{{{Text: "Name"}, {Text: "Value"}}, {{Text: "alpha"}, {Text: "1"}}}}

	page := Page{Number: 1, Width: 600, Height: 800, Tables: []Region{t1, t2}}
	placed := NewResolver(DefaultConfig()).Resolve(page)

	if len(placed.Regions) != 1 {
		t.Fatalf("expected duplicate tables collapsed to one survivor, got %d", len(placed.Regions))
	}
}

func TestResolve_MediaOnlyPageStartsAtHalf(t *testing.T) {
	raster := Region{Left: 50, Top: 50, Width: 200, Height: 200, Kind: KindRaster, SourceID: "onlyImg"}
	page := Page{Number: 7, Width: 600, Height: 800, Rasters: []Region{raster}}

	placed := NewResolver(DefaultConfig()).Resolve(page)
	if len(placed.Regions) != 1 || placed.Regions[0].ReadingOrderIndex != 0.5 {
		t.Fatalf("expected the only region on a text-free page to start at 0.5, got %+v", placed.Regions)
	}
}

func TestResolve_CapturedCaptionFragmentRemoved(t *testing.T) {
	raster := Region{Left: 100, Top: 100, Width: 300, Height: 300, Kind: KindRaster, SourceID: "img"}
	inside := textFrag(1, 150, 150, 100, 20, 1, 1) // centre well within the raster
	page := Page{Number: 1, Width: 600, Height: 800, Frags: []reading.Fragment{inside}, Rasters: []Region{raster}}

	placed := NewResolver(DefaultConfig()).Resolve(page)
	if len(placed.Frags) != 0 {
		t.Fatalf("expected the captured fragment to be removed, got %+v", placed.Frags)
	}
}
