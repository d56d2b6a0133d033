package engine

import (
	"context"

	"github.com/zabl/finextract/model"
	"github.com/zabl/finextract/pages"
	"github.com/zabl/finextract/reader"
	"github.com/zabl/finextract/tables"
)

// Lattice detects tables drawn with ruling lines. Each grid becomes one
// table, pages ascending and tables top to bottom within a page.
type Lattice struct{}

// Name returns "Lattice"
func (Lattice) Name() string { return NameLattice }

// Extract implements Engine.
func (l Lattice) Extract(ctx context.Context, path, pageSpec string) ([]model.RawTable, error) {
	var out []model.RawTable
	gd := tables.NewGridDetector()

	err := eachPage(ctx, l.Name(), path, resolver(pageSpec), func(page *reader.Page) error {
		horizontal, vertical, err := rulings(page)
		if err != nil {
			return err
		}
		grids := gd.Detect(horizontal, vertical)
		if len(grids) == 0 {
			return nil
		}

		frags, err := fragments(page)
		if err != nil {
			return err
		}
		for _, g := range grids {
			if t := gd.Fill(g, frags); t.RowCount() > 0 {
				out = append(out, rawTable(page.Index, t))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// resolver selects pages by resolving spec against the document's page
// count.
func resolver(spec string) func(int) ([]int, error) {
	return func(pageCount int) ([]int, error) {
		set, err := pages.Resolve(spec, pageCount)
		if err != nil {
			return nil, err
		}
		return set.Sorted(), nil
	}
}
