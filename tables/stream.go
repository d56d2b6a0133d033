package tables

import (
	"math"
	"sort"

	"github.com/zabl/finextract/model"
	"github.com/zabl/finextract/text"
)

// StreamDetector finds tables from text alignment alone, for pages
// without ruling lines.
type StreamDetector struct {
	config Config
}

// NewStreamDetector creates a stream detector with the given config
func NewStreamDetector(config Config) *StreamDetector {
	return &StreamDetector{config: config}
}

// span is a horizontal interval occupied by a column.
type span struct {
	lo, hi float64
}

// Detect returns the tables found among frags, top of the page first.
// Lines closer than BlockGap form a block; a block becomes a table when
// MinRows of its lines hold two or more fragments and those fragments
// fall into at least MinCols columns.
func (sd *StreamDetector) Detect(frags []text.Fragment) []*Table {
	var tables []*Table
	for _, block := range sd.blocks(text.GroupLines(frags)) {
		if t := sd.detectBlock(block); t != nil {
			tables = append(tables, t)
		}
	}
	return tables
}

// blocks cuts lines wherever the baseline drop exceeds BlockGap.
func (sd *StreamDetector) blocks(lines []text.Line) [][]text.Line {
	if len(lines) == 0 {
		return nil
	}

	var out [][]text.Line
	start := 0
	for i := 1; i < len(lines); i++ {
		if lines[i-1].Y-lines[i].Y > sd.config.BlockGap {
			out = append(out, lines[start:i])
			start = i
		}
	}
	return append(out, lines[start:])
}

func (sd *StreamDetector) detectBlock(lines []text.Line) *Table {
	var multi []text.Line
	for _, l := range lines {
		if len(l.Fragments) >= 2 {
			multi = append(multi, l)
		}
	}
	if len(multi) < sd.config.MinRows {
		return nil
	}

	spans := sd.columnSpans(multi)
	if len(spans) < sd.config.MinCols {
		return nil
	}

	grid := &model.TableGrid{
		Rows: rowBoundaries(lines),
		Cols: columnBoundaries(spans),
	}
	table := newTable(grid)

	cells := make(map[[2]int][]text.Fragment)
	for row, l := range lines {
		for _, f := range l.Fragments {
			col := columnOf(grid.Cols, f.Center().X)
			cells[[2]int{row, col}] = append(cells[[2]int{row, col}], f)
		}
	}
	table.fill(cells)
	table.Confidence = streamConfidence(table)

	return table
}

// columnSpans merges the extents of fragments from multi-fragment lines
// into disjoint column intervals, left to right.
func (sd *StreamDetector) columnSpans(lines []text.Line) []span {
	var spans []span
	for _, l := range lines {
		for _, f := range l.Fragments {
			spans = append(spans, span{lo: f.X, hi: f.Right()})
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].lo < spans[j].lo })

	tol := sd.config.AlignmentTolerance
	merged := spans[:1:1]
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.lo <= last.hi+tol {
			last.hi = math.Max(last.hi, s.hi)
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// columnBoundaries places a boundary in the middle of each gap between
// spans, with the outer edges at the first and last span.
func columnBoundaries(spans []span) []float64 {
	cols := make([]float64, 0, len(spans)+1)
	cols = append(cols, spans[0].lo)
	for i := 1; i < len(spans); i++ {
		cols = append(cols, (spans[i-1].hi+spans[i].lo)/2)
	}
	return append(cols, spans[len(spans)-1].hi)
}

// rowBoundaries splits lines halfway between their vertical centres.
func rowBoundaries(lines []text.Line) []float64 {
	centres := make([]float64, len(lines))
	heights := make([]float64, len(lines))
	for i, l := range lines {
		for _, f := range l.Fragments {
			heights[i] = math.Max(heights[i], f.Height)
		}
		centres[i] = l.Y + heights[i]/2
	}

	rows := make([]float64, 0, len(lines)+1)
	rows = append(rows, centres[0]+heights[0])
	for i := 1; i < len(lines); i++ {
		rows = append(rows, (centres[i-1]+centres[i])/2)
	}
	last := len(lines) - 1
	return append(rows, centres[last]-heights[last])
}

// columnOf returns the column whose boundaries hold x, clamped to the
// outer columns.
func columnOf(cols []float64, x float64) int {
	n := len(cols) - 1
	for i := 0; i < n; i++ {
		if x < cols[i+1] {
			return i
		}
	}
	return n - 1
}

// streamConfidence is the share of non-empty cells.
func streamConfidence(t *Table) float64 {
	total, filled := 0, 0
	for _, row := range t.Cells {
		for _, c := range row {
			total++
			if c != "" {
				filled++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(filled) / float64(total)
}
