// Package pdffixture writes small, deterministic PDF documents for tests.
package pdffixture

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/go-pdf/fpdf"
)

// Layout constants in millimetres.
const (
	marginTop  = 20.0
	marginLeft = 15.0
	lineHeight = 8.0
	colWidth   = 45.0
	rowHeight  = 8.0
	tableGap   = 25.0
	fontSize   = 11.0
)

// Page describes the content of one fixture page. Lines are drawn first,
// then ruled tables, then whitespace-aligned tables, top to bottom. Scan,
// when set, is placed as a full-width image below everything else.
type Page struct {
	Lines   []string
	Ruled   [][][]string
	Aligned [][][]string
	Scan    image.Image
}

// Write renders pages into an uncompressed A4 PDF at path.
func Write(path string, pages ...Page) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	doc.SetAutoPageBreak(false, 0)
	doc.SetFont("Helvetica", "", fontSize)

	if len(pages) == 0 {
		pages = []Page{{}}
	}

	for i, p := range pages {
		doc.AddPage()
		y := marginTop

		for _, line := range p.Lines {
			doc.SetXY(marginLeft, y)
			doc.CellFormat(0, lineHeight, line, "", 0, "L", false, 0, "")
			y += lineHeight
		}
		if len(p.Lines) > 0 {
			y += tableGap
		}

		for _, table := range p.Ruled {
			y = drawTable(doc, table, y, "1") + tableGap
		}
		for _, table := range p.Aligned {
			y = drawTable(doc, table, y, "") + tableGap
		}

		if p.Scan != nil {
			if err := drawScan(doc, fmt.Sprintf("scan%d", i), p.Scan, y); err != nil {
				return err
			}
		}
	}

	if err := doc.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return nil
}

func drawTable(doc *fpdf.Fpdf, rows [][]string, y float64, border string) float64 {
	for _, row := range rows {
		x := marginLeft
		for _, cell := range row {
			doc.SetXY(x, y)
			doc.CellFormat(colWidth, rowHeight, cell, border, 0, "L", false, 0, "")
			x += colWidth
		}
		y += rowHeight
	}
	return y
}

func drawScan(doc *fpdf.Fpdf, name string, img image.Image, y float64) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode scan: %w", err)
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader(name, opts, &buf)
	doc.ImageOptions(name, marginLeft, y, 3*colWidth, 0, false, opts, 0, "")
	return doc.Error()
}
