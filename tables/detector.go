package tables

import (
	"strings"

	"github.com/zabl/finextract/model"
	"github.com/zabl/finextract/text"
)

// Config holds the thresholds shared by the detectors.
type Config struct {
	// Minimum rows for a valid table
	MinRows int

	// Minimum columns for a valid table
	MinCols int

	// Tolerance for row/column alignment (points)
	AlignmentTolerance float64

	// Vertical gap that separates two stream blocks (points)
	BlockGap float64
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		MinRows:            2,
		MinCols:            2,
		AlignmentTolerance: 2.0,
		BlockGap:           50.0,
	}
}

// Table is a detected table with its cell text.
type Table struct {
	BBox       model.BBox
	Grid       *model.TableGrid
	Cells      [][]string
	Confidence float64
}

func newTable(grid *model.TableGrid) *Table {
	cells := make([][]string, grid.RowCount())
	for i := range cells {
		cells[i] = make([]string, grid.ColCount())
	}
	return &Table{BBox: grid.BBox(), Grid: grid, Cells: cells}
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Cells)
}

// ColCount returns the number of columns
func (t *Table) ColCount() int {
	if len(t.Cells) == 0 {
		return 0
	}
	return len(t.Cells[0])
}

// fill sets each cell from its fragments, joining lines top to bottom.
func (t *Table) fill(cells map[[2]int][]text.Fragment) {
	for pos, frags := range cells {
		t.Cells[pos[0]][pos[1]] = strings.Join(text.Lines(frags), " ")
	}
}
