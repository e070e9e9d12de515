package media

// Resolver deduplicates and places media regions, page by page.
type Resolver struct {
	Config Config
}

// NewResolver builds a Resolver with the given tunables.
func NewResolver(cfg Config) Resolver {
	return Resolver{Config: cfg}
}

// Resolve implements §4.D end to end: the five dedup rules, placement by
// nearest-fragment-above, and captured-fragment removal. A page with media
// but no text is still processed: its regions are placed starting at 0.5.
func (r Resolver) Resolve(page Page) Placed {
	tables := dedupTables(page.Tables, r.Config)
	vectors := dedupVectors(page.Vectors, page.Rasters, tables, r.Config)

	var survivors []Region
	survivors = append(survivors, page.Rasters...)
	survivors = append(survivors, vectors...)
	survivors = append(survivors, tables...)

	placed := place(survivors, page.Frags)
	frags := removeCaptured(page.Frags, placed, r.Config)

	return Placed{Regions: placed, Frags: frags, SharedRasters: GroupRasters(page.Rasters)}
}
