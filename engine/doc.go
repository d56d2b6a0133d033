// Package engine defines the extraction strategies run over a document.
//
// Each [Engine] opens the document itself, selects pages from a page
// specification and returns raw tables in page order:
//
//   - [Stream] finds tables from whitespace alignment.
//   - [PlainText] returns each page's text lines as a one-column table,
//     falling back to OCR for pages without a text layer.
//   - [Lattice] finds tables from ruling lines.
//
// Engines are stateless values and safe to run concurrently. A [Registry]
// holds them in the order their sheets appear in the workbook.
package engine
