// Package text assembles positioned glyphs into fragments and lines.
//
// # Fragments
//
// A [Fragment] is a run of glyphs on one baseline with no large horizontal
// gap: typically a word, a phrase, or a number in a table cell. [Merger]
// builds fragments from the glyphs of a page in content-stream order:
//
//	frags := text.NewMerger().Merge(glyphs)
//
// A fragment breaks when the baseline changes, when the next glyph starts
// more than MaxGap font sizes after the current run ends, or at a run of two
// or more spaces. Fonts that carry no glyph widths (the standard 14 without
// a Widths array) get an estimated advance so runs still have extent.
//
// # Lines
//
// [GroupLines] clusters fragments whose baselines lie within half a font
// size and orders each line by reading direction. [Line.Text] joins a
// line's fragments with the spacing heuristics below.
//
// # Smart Spacing
//
//   - Word-level runs: a space is inserted when the gap reaches half the
//     estimated space width (a quarter of the font size).
//   - Character-level runs: the threshold adapts to the line's typical
//     inter-character gap.
//   - Explicit spaces in the stream are trusted.
//
// All text is folded to Unicode NFKC, so ligatures and full-width digits come
// out as their plain equivalents.
package text
