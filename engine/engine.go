package engine

import (
	"context"
	"fmt"
	"slices"

	"github.com/zabl/finextract/graphicsstate"
	"github.com/zabl/finextract/model"
	"github.com/zabl/finextract/reader"
	"github.com/zabl/finextract/tables"
	"github.com/zabl/finextract/text"
)

// Engine names, also used as sheet names.
const (
	NameStream    = "Stream"
	NamePlainText = "PlainText"
	NameLattice   = "Lattice"
)

// Engine extracts raw tables from the pages of a PDF selected by pageSpec.
type Engine interface {
	Name() string
	Extract(ctx context.Context, path string, pageSpec string) ([]model.RawTable, error)
}

// ExtractionError reports an engine that could not process a document.
type ExtractionError struct {
	Engine string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s extraction failed: %v", e.Engine, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Options configures the engines built by DefaultRegistry.
type Options struct {
	// Tables holds the stream detector thresholds.
	Tables tables.Config

	// OCR enables recognition of pages without a text layer.
	OCR bool

	// OCRLanguage is the Tesseract language, "eng" when empty.
	OCRLanguage string
}

// DefaultOptions returns options with default table thresholds and OCR off.
func DefaultOptions() Options {
	return Options{Tables: tables.DefaultConfig()}
}

// Registry is an ordered set of engines.
type Registry struct {
	engines []Engine
}

// NewRegistry creates a registry holding engines in the given order. A
// later engine with a duplicate name replaces the earlier one in place.
func NewRegistry(engines ...Engine) *Registry {
	r := &Registry{}
	for _, e := range engines {
		r.add(e)
	}
	return r
}

// DefaultRegistry returns the Stream, PlainText and Lattice engines, in
// workbook order.
func DefaultRegistry(opts Options) *Registry {
	return NewRegistry(
		Stream{Config: opts.Tables},
		PlainText{OCR: opts.OCR, OCRLanguage: opts.OCRLanguage},
		Lattice{},
	)
}

func (r *Registry) add(e Engine) {
	for i, existing := range r.engines {
		if existing.Name() == e.Name() {
			r.engines[i] = e
			return
		}
	}
	r.engines = append(r.engines, e)
}

// Get returns the engine with the given name.
func (r *Registry) Get(name string) (Engine, bool) {
	for _, e := range r.engines {
		if e.Name() == name {
			return e, true
		}
	}
	return nil, false
}

// Names returns the engine names in registry order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.engines))
	for i, e := range r.engines {
		names[i] = e.Name()
	}
	return names
}

// Select returns the named engines in registry order, whatever order the
// names come in. No names selects every engine.
func (r *Registry) Select(names ...string) ([]Engine, error) {
	if len(names) == 0 {
		return slices.Clone(r.engines), nil
	}

	for _, name := range names {
		if _, ok := r.Get(name); !ok {
			return nil, fmt.Errorf("unknown engine %q (have %v)", name, r.Names())
		}
	}

	var out []Engine
	for _, e := range r.engines {
		if slices.Contains(names, e.Name()) {
			out = append(out, e)
		}
	}
	return out, nil
}

// pageFunc handles one page of an open document.
type pageFunc func(page *reader.Page) error

// eachPage opens path and calls fn for each index in order, checking ctx
// between pages. Any failure comes back as an *ExtractionError.
func eachPage(ctx context.Context, name, path string, indices func(pageCount int) ([]int, error), fn pageFunc) error {
	fail := func(err error) error {
		return &ExtractionError{Engine: name, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	doc, err := reader.Open(path)
	if err != nil {
		return fail(err)
	}
	defer doc.Close()

	selected, err := indices(doc.PageCount())
	if err != nil {
		return fail(err)
	}

	for _, idx := range selected {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}
		page, err := doc.Page(idx)
		if err != nil {
			return fail(err)
		}
		if err := fn(page); err != nil {
			return fail(fmt.Errorf("page %d: %w", idx+1, err))
		}
	}
	return nil
}

// fragments merges the page's glyphs into word fragments.
func fragments(page *reader.Page) ([]text.Fragment, error) {
	glyphs, err := page.Glyphs()
	if err != nil {
		return nil, err
	}
	return text.NewMerger().Merge(glyphs), nil
}

// rulings returns the page's horizontal and vertical ruling lines.
func rulings(page *reader.Page) (horizontal, vertical []graphicsstate.Line, err error) {
	ex := graphicsstate.NewExtractor()
	if err := page.Walk(ex.Apply); err != nil {
		return nil, nil, err
	}
	horizontal, vertical = ex.Rulings()
	return horizontal, vertical, nil
}

// rawTable converts a detected table on the given page.
func rawTable(page int, t *tables.Table) model.RawTable {
	rows := make([]model.Row, len(t.Cells))
	for i, cells := range t.Cells {
		rows[i] = model.NewRow(page, cells...)
	}
	return model.RawTable{Page: page, Rows: rows, BBox: t.BBox}
}
