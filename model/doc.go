// Package model provides the intermediate representation shared by the
// extraction engines, the normalizer, the assembler and the workbook writer.
//
// # Cells
//
// Every extracted value is a [Cell] tagged with a [CellKind]. The kind is
// decided once, at extraction time, by [NewCell]:
//
//   - [CellEmpty] - no content (or whitespace only)
//   - [CellNumeric] - numeric-looking text such as "$1,234.56" or "(12.5)"
//   - [CellText] - anything else
//
// Normalization is therefore a total function over a closed set of kinds
// rather than a runtime type test.
//
// # Tables
//
// A [RawTable] is the unnormalized output of one engine for one detected
// table (or one page, for the plain-text engine). Rows carry the zero-based
// page they came from. Column counts are not guaranteed to be uniform.
//
// An [EngineResult] is the concatenated, filtered table an engine produced
// for the whole run:
//
//	result := model.EngineResult{Engine: "Lattice", Rows: rows}
//	if result.Empty() {
//	    // nothing to write for this engine
//	}
//
// # Geometry
//
// [Point], [BBox] and [Matrix] use the PDF coordinate system: the origin is
// the bottom-left corner of the page and Y grows upwards.
package model
