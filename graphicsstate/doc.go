// Package graphicsstate turns PDF content-stream operators into ruling
// lines, the raw material for lattice table detection.
//
// # Graphics State
//
// [GraphicsState] tracks the current transformation matrix, line width and
// colors, with a save/restore stack for the q and Q operators. Coordinates
// of every emitted line are in default user space (the CTM applied).
//
// # Paths
//
// [Path] accumulates m, l, c, v, y, h and re segments until a painting
// operator (S, s, f, F, f*, B, B*, b, b*, n) consumes it. Closed
// four-corner axis-aligned paths become [Rect] values; everything else that
// is stroked becomes [Line] segments.
//
// # Extraction
//
// [Extractor.Apply] has the shape of a content-stream callback:
//
//	ex := graphicsstate.NewExtractor()
//	if err := page.Walk(ex.Apply); err != nil {
//	    return err
//	}
//	horizontal, vertical := ex.Rulings()
//
// Rulings merges stroked lines with the edges of stroked rectangles and
// with hairline filled rectangles, which many producers use to draw table
// rules.
package graphicsstate
