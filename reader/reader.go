package reader

import (
	"errors"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/zabl/finextract/format"
	"github.com/zabl/finextract/model"
)

// ErrMalformed is wrapped by errors raised while parsing a damaged document.
var ErrMalformed = errors.New("malformed PDF")

// defaultMediaBox is US Letter, used when a page declares no MediaBox.
var defaultMediaBox = model.BBox{Width: 612, Height: 792}

// Document is an open PDF file.
type Document struct {
	path      string
	file      *os.File
	pdf       *pdf.Reader
	pageCount int
}

// Glyph is a single shown character (or short run) in user space.
type Glyph struct {
	Text     string
	Font     string
	FontSize float64
	X        float64 // origin, left
	Y        float64 // baseline
	Width    float64 // advance; zero when the font carries no widths
}

// Page is a single page of an open Document.
type Page struct {
	Index    int // zero-based
	MediaBox model.BBox

	p pdf.Page
}

// Open opens the PDF at path for reading.
func Open(path string) (doc *Document, err error) {
	defer recoverTo(&err, "open "+path)

	if err := format.RequirePDF(path); err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	return &Document{
		path:      path,
		file:      f,
		pdf:       r,
		pageCount: r.NumPage(),
	}, nil
}

// Close releases the underlying file. It is safe to call more than once.
func (d *Document) Close() error {
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

// Path returns the file the document was opened from.
func (d *Document) Path() string {
	return d.path
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.pageCount
}

// Page returns the page at the given zero-based index.
func (d *Document) Page(index int) (page *Page, err error) {
	if index < 0 || index >= d.pageCount {
		return nil, fmt.Errorf("page %d out of range (0-%d)", index, d.pageCount-1)
	}
	defer recoverTo(&err, fmt.Sprintf("page %d", index))

	p := d.pdf.Page(index + 1)
	if p.V.IsNull() {
		return nil, fmt.Errorf("page %d: %w: missing page object", index, ErrMalformed)
	}

	return &Page{
		Index:    index,
		MediaBox: mediaBox(p),
		p:        p,
	}, nil
}

// Glyphs returns the page's shown text in content-stream order.
func (p *Page) Glyphs() (glyphs []Glyph, err error) {
	defer recoverTo(&err, fmt.Sprintf("glyphs on page %d", p.Index))

	content := p.p.Content()
	glyphs = make([]Glyph, 0, len(content.Text))
	for _, t := range content.Text {
		if t.S == "" {
			continue
		}
		glyphs = append(glyphs, Glyph{
			Text:     t.S,
			Font:     t.Font,
			FontSize: t.FontSize,
			X:        t.X,
			Y:        t.Y,
			Width:    t.W,
		})
	}
	return glyphs, nil
}

// Walk interprets the page's content streams and calls fn for every
// operator with its numeric operands in stream order. Non-numeric operands
// (names, strings, arrays) are reported as zero.
func (p *Page) Walk(fn func(op string, args []float64)) (err error) {
	defer recoverTo(&err, fmt.Sprintf("content of page %d", p.Index))

	contents := p.p.V.Key("Contents")
	switch contents.Kind() {
	case pdf.Array:
		for i := 0; i < contents.Len(); i++ {
			interpret(contents.Index(i), fn)
		}
	case pdf.Stream:
		interpret(contents, fn)
	}
	return nil
}

func interpret(strm pdf.Value, fn func(op string, args []float64)) {
	pdf.Interpret(strm, func(stk *pdf.Stack, op string) {
		n := stk.Len()
		args := make([]float64, n)
		for i := n - 1; i >= 0; i-- {
			args[i] = stk.Pop().Float64()
		}
		fn(op, args)
	})
}

// mediaBox reads the page's MediaBox, following inheritance up the page tree.
func mediaBox(p pdf.Page) model.BBox {
	for v := p.V; !v.IsNull(); v = v.Key("Parent") {
		box := v.Key("MediaBox")
		if box.Kind() != pdf.Array || box.Len() != 4 {
			continue
		}
		b := model.NewBBoxFromPoints(
			model.Point{X: box.Index(0).Float64(), Y: box.Index(1).Float64()},
			model.Point{X: box.Index(2).Float64(), Y: box.Index(3).Float64()},
		)
		if !b.IsEmpty() {
			return b
		}
	}
	return defaultMediaBox
}

func recoverTo(err *error, what string) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s: %w: %v", what, ErrMalformed, r)
	}
}
