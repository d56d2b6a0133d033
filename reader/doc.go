// Package reader provides read-only access to PDF documents.
//
// It wraps github.com/ledongthuc/pdf for page counting, positioned glyphs and
// content-stream operators, and github.com/pdfcpu/pdfcpu for the raster
// images embedded in a page.
//
// # Opening Documents
//
//	doc, err := reader.Open("statement.pdf")
//	if err != nil {
//	    return err
//	}
//	defer doc.Close()
//
// # Page Access
//
// Pages are addressed by zero-based index:
//
//	page, err := doc.Page(0)
//	glyphs, err := page.Glyphs()
//	err = page.Walk(func(op string, args []float64) { ... })
//
// # Malformed Input
//
// Open sniffs the file first and names the detected format when it is not
// a PDF at all, so a spreadsheet passed by mistake reads "input is XLSX,
// not PDF" rather than a parser error.
//
// The underlying parser panics on some malformed files. Every exported
// method recovers such panics and reports them as errors wrapping
// [ErrMalformed].
package reader
