package engine

import (
	"context"
	"fmt"
	"image"

	"github.com/zabl/finextract/model"
	"github.com/zabl/finextract/ocr"
	"github.com/zabl/finextract/reader"
	"github.com/zabl/finextract/text"
)

// PlainTextColumn is the header of the plain-text sheet.
const PlainTextColumn = "Extracted Text"

// recognizer reads text lines from a scanned image.
type recognizer interface {
	RecognizeLines(img image.Image) ([]string, error)
	Close() error
}

func newOCR(lang string) (recognizer, error) {
	c, err := ocr.New(lang)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// PlainText returns each page's text as a single-column table, one row per
// non-blank line.
type PlainText struct {
	// OCR recognises the images of pages that carry no text.
	OCR bool

	OCRLanguage string

	newRecognizer func(lang string) (recognizer, error)
}

// Name returns "PlainText"
func (PlainText) Name() string { return NamePlainText }

// Extract implements Engine.
func (p PlainText) Extract(ctx context.Context, path, pageSpec string) ([]model.RawTable, error) {
	var (
		out []model.RawTable
		rec recognizer
	)
	defer func() {
		if rec != nil {
			rec.Close()
		}
	}()

	err := eachPage(ctx, p.Name(), path, resolver(pageSpec), func(page *reader.Page) error {
		frags, err := fragments(page)
		if err != nil {
			return err
		}
		lines := text.Lines(frags)

		if len(lines) == 0 && p.OCR {
			if rec == nil {
				if rec, err = p.recognizer(); err != nil {
					return err
				}
			}
			if lines, err = recognizePage(rec, path, page.Index); err != nil {
				return err
			}
		}

		if len(lines) == 0 {
			return nil
		}
		rows := make([]model.Row, len(lines))
		for i, line := range lines {
			rows[i] = model.NewRow(page.Index, line)
		}
		out = append(out, model.RawTable{
			Page:    page.Index,
			Columns: []string{PlainTextColumn},
			Rows:    rows,
			BBox:    page.MediaBox,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (p PlainText) recognizer() (recognizer, error) {
	newRec := p.newRecognizer
	if newRec == nil {
		newRec = newOCR
	}
	rec, err := newRec(p.OCRLanguage)
	if err != nil {
		return nil, fmt.Errorf("failed to start OCR: %w", err)
	}
	return rec, nil
}

// recognizePage runs OCR over every image on the page, in extraction order.
func recognizePage(rec recognizer, path string, index int) ([]string, error) {
	images, err := reader.PageImages(path, index)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, img := range images {
		got, err := rec.RecognizeLines(img.Image)
		if err != nil {
			return nil, fmt.Errorf("OCR of %s: %w", img.Name, err)
		}
		lines = append(lines, got...)
	}
	return lines, nil
}
