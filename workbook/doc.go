// Package workbook writes engine results to an xlsx file.
//
// Each non-empty result becomes one sheet, named after its engine and in
// the order given. Output paths are derived from document metadata and
// never overwrite an existing file:
//
//	path, err := workbook.Compose(dir, meta, "statement.pdf", results)
//
// produces, for example,
// 2024_Q4_Audited_ACME_statement_Combined_Extracted.xlsx, or
// ..._Combined_Extracted_1.xlsx when that name is taken.
package workbook
