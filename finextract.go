// Package finextract digitizes financial-statement PDFs into a single xlsx
// workbook by running several table-extraction strategies over the same
// pages and writing one sheet per strategy.
//
// Basic usage:
//
//	report, err := finextract.Open("statement.pdf").
//	    Pages("1,3-5").
//	    Metadata(workbook.Metadata{Year: "2024", Period: "FY", AuditStatus: "Audited", ClientName: "acme"}).
//	    Run(ctx)
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println("saved", report.Output)
//
// Engines run independently; by default a failing engine is reported in
// [Report.Failures] while the others still produce output. Call
// [Extractor.Strict] to abort on the first failure instead.
//
// For lower-level access, see the engine, tables and reader packages.
package finextract

import (
	"errors"

	"github.com/zabl/finextract/reader"
)

// ErrNoFile is returned by Run when the extractor has no input file.
var ErrNoFile = errors.New("no input file specified")

// Open returns an Extractor for the PDF at filename. Nothing is read until
// a terminal operation such as Run.
//
// Example:
//
//	report, err := finextract.Open("statement.pdf").Run(ctx)
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// PageCount returns the number of pages in the PDF at filename.
func PageCount(filename string) (int, error) {
	doc, err := reader.Open(filename)
	if err != nil {
		return 0, err
	}
	defer doc.Close()
	return doc.PageCount(), nil
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := finextract.Must(finextract.PageCount("statement.pdf"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
