// Package tables detects tables on a PDF page and fills their cells.
//
// Two detectors are provided, matching the two classic strategies:
//
//   - [GridDetector] (lattice) builds grids from ruling lines drawn on the
//     page and fills each cell with the text whose centre falls inside it.
//   - [StreamDetector] finds tables without rulings by clustering text into
//     vertical blocks and deriving column boundaries from text alignment.
//
// Both return [Table] values ordered top to bottom.
//
// # Lattice Detection
//
// Rulings are first split into connected clusters, so separate ruled tables
// on one page become separate grids. Within a cluster, lines are grouped by
// position within AlignmentTolerance; groups spanning at least half the
// cluster become row or column boundaries.
//
//	gd := tables.NewGridDetector()
//	for _, g := range gd.Detect(horizontal, vertical) {
//	    table := gd.Fill(g, fragments)
//	}
//
// # Stream Detection
//
//  1. Fragments are grouped into text lines, top to bottom, and the lines
//     split into blocks wherever the baseline drop exceeds Config.BlockGap.
//  2. A block qualifies when Config.MinRows of its lines hold two or more
//     fragments. Every line of the block becomes a row.
//  3. Column spans are the union of overlapping fragment extents across
//     those multi-fragment lines.
//  4. Each fragment lands in the column containing its horizontal centre.
//
// # Confidence
//
// Grid hypotheses carry a 0-1 confidence built from cell count, spacing
// regularity, border completeness and line coverage.
package tables
