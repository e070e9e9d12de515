package reconstruct

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"pdfreflow/column"
	"pdfreflow/fb2"
	"pdfreflow/grouping"
	"pdfreflow/layout"
	"pdfreflow/media"
	"pdfreflow/reading"
	"pdfreflow/refmap"
	"pdfreflow/structure"
)

// Pipeline runs the whole reconstruction: per-page layout, column
// detection, reading order, media resolution, and paragraph grouping,
// followed by a document-wide font-role derivation and labelling pass.
type Pipeline struct {
	Config Config
	Log    *zap.Logger
}

// NewPipeline builds a Pipeline with the given tunables and logger.
func NewPipeline(cfg Config, log *zap.Logger) Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return Pipeline{Config: cfg, Log: log}
}

// Run pulls every page from src, processes stages A through E page by page,
// then runs F's document-wide font-role derivation and labelling, anchoring
// surviving media into mapper. mapper may be nil to skip reference tracking.
func (p Pipeline) Run(ctx context.Context, src Source, mapper *refmap.Mapper) (*fb2.FictionBook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var pages []PageInput
	for page, err := range src.Pages() {
		if err != nil {
			return nil, &Error{Kind: MalformedInput, Page: page.Number, Err: err}
		}
		pages = append(pages, page)
	}
	if len(pages) == 0 {
		return nil, &Error{Kind: MalformedInput, Err: fmt.Errorf("no pages supplied")}
	}

	pageFrags := make([]structure.PageFragments, len(pages))
	for i, pg := range pages {
		pageFrags[i] = structure.PageFragments{Number: pg.Number, Width: pg.Width, Height: pg.Height, Frags: pg.Frags}
	}
	filtered := structure.FilterHeadersFooters(pageFrags, p.Config.Structure)

	layoutEngine := layout.NewEngine(p.Config.Layout)
	colResolver := column.NewResolver(p.Config.Column)
	readingAssigner := reading.NewAssigner()
	mediaResolver := media.NewResolver(p.Config.Media)
	grouper := grouping.NewGrouper(p.Config.Grouping)

	var allLayoutFrags []layout.Fragment
	var perPageParagraphs [][]grouping.Paragraph
	bookmarks := structure.Bookmarks{}
	tocPage, indexPage := -1, -1

	for i, pg := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if pg.Bookmark != "" {
			bookmarks[pg.Number] = pg.Bookmark
		}

		layoutPage, diag := layoutEngine.ProcessPage(layout.Page{
			Number: pg.Number, Width: pg.Width, Height: pg.Height, Frags: filtered[i].Frags,
		})
		p.Log.Debug("processed page layout",
			zap.Int("page", pg.Number),
			zap.Int("fragments_merged", diag.FragmentsMerged),
			zap.Int("scripts_folded", diag.ScriptsFolded),
			zap.Int("ambiguous_scripts", diag.AmbiguousScripts))
		allLayoutFrags = append(allLayoutFrags, layoutPage.Frags...)

		for _, f := range layoutPage.Frags {
			switch strings.TrimSpace(f.Text) {
			case "Table of Contents":
				if tocPage < 0 {
					tocPage = pg.Number
				}
			case "Index":
				if indexPage < 0 {
					indexPage = pg.Number
				}
			}
		}

		colFrags := make([]column.Fragment, len(layoutPage.Frags))
		for j, f := range layoutPage.Frags {
			colFrags[j] = column.Fragment{Fragment: f}
		}
		assignment := colResolver.ResolvePage(column.Page{Number: pg.Number, Width: pg.Width, Height: pg.Height, Frags: colFrags})

		ordered := readingAssigner.Order(reading.Page{Number: pg.Number, Width: pg.Width, Height: pg.Height, Frags: assignment.Frags})

		placed := mediaResolver.Resolve(media.Page{
			Number: pg.Number, Width: pg.Width, Height: pg.Height,
			Frags: ordered.Frags, Rasters: pg.Rasters, Vectors: pg.Vectors, Tables: pg.Tables,
		})

		items := make([]grouping.Item, 0, len(placed.Frags)+len(placed.Regions))
		for j := range placed.Frags {
			items = append(items, grouping.Item{Frag: &placed.Frags[j]})
		}
		for j := range placed.Regions {
			items = append(items, grouping.Item{Region: &placed.Regions[j]})
		}
		sort.SliceStable(items, func(a, b int) bool { return itemOrderIndex(items[a]) < itemOrderIndex(items[b]) })

		paras := grouper.GroupPage(grouping.Page{Number: pg.Number, Items: items})
		perPageParagraphs = append(perPageParagraphs, paras)
	}

	merged := grouper.MergeAcrossPages(perPageParagraphs)
	roles := structure.DeriveRoles(allLayoutFrags, tocPage, indexPage, p.Config.Structure)

	labeller := structure.NewLabeller(p.Config.Structure)
	book, err := labeller.Label(structure.Input{Paragraphs: merged, Roles: roles, Bookmarks: bookmarks}, mapper)
	if err != nil {
		return nil, &Error{Kind: InconsistentState, Err: err}
	}
	return book, nil
}

func itemOrderIndex(it grouping.Item) float64 {
	if it.Frag != nil {
		return float64(it.Frag.ReadingOrderIndex)
	}
	return it.Region.ReadingOrderIndex
}
