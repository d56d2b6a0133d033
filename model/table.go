package model

// Row is an ordered sequence of cells. Page is the zero-based page the row
// was extracted from, or -1 when unknown.
type Row struct {
	Cells []Cell
	Page  int
}

// NewRow builds a row of classified cells from raw strings.
func NewRow(page int, values ...string) Row {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = NewCell(v)
	}
	return Row{Cells: cells, Page: page}
}

// IsEmpty reports whether every cell in the row is empty. A row with no
// cells is empty.
func (r Row) IsEmpty() bool {
	for _, c := range r.Cells {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// Strings returns the cell texts in column order.
func (r Row) Strings() []string {
	out := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		out[i] = c.Text
	}
	return out
}

// RawTable is the unnormalized output of a single detection: one table on a
// page for the table engines, one page of lines for the plain-text engine.
type RawTable struct {
	// Page is the zero-based source page.
	Page int

	// Columns optionally names the columns (written as a header row).
	Columns []string

	Rows []Row

	// BBox is the table's extent on the page, when known.
	BBox BBox
}

// RowCount returns the number of rows
func (t RawTable) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the widest row's cell count
func (t RawTable) ColCount() int {
	return maxCols(t.Rows)
}

// EngineResult is an engine's final table for a run: normalized, filtered
// and concatenated. Rows are indexed contiguously from zero.
type EngineResult struct {
	Engine  string
	Columns []string
	Rows    []Row
}

// Empty reports whether the result has no rows.
func (r EngineResult) Empty() bool {
	return len(r.Rows) == 0
}

// RowCount returns the number of rows
func (r EngineResult) RowCount() int {
	return len(r.Rows)
}

// ColCount returns the widest row's cell count
func (r EngineResult) ColCount() int {
	return maxCols(r.Rows)
}

func maxCols(rows []Row) int {
	n := 0
	for _, row := range rows {
		if len(row.Cells) > n {
			n = len(row.Cells)
		}
	}
	return n
}

// TableGrid represents the detected grid structure
type TableGrid struct {
	Rows []float64 // Y-coordinates of row boundaries, descending (top first)
	Cols []float64 // X-coordinates of column boundaries, ascending
}

// RowCount returns the number of rows
func (g *TableGrid) RowCount() int {
	if len(g.Rows) <= 1 {
		return 0
	}
	return len(g.Rows) - 1
}

// ColCount returns the number of columns
func (g *TableGrid) ColCount() int {
	if len(g.Cols) <= 1 {
		return 0
	}
	return len(g.Cols) - 1
}

// CellBBox returns the bounding box for a cell
func (g *TableGrid) CellBBox(row, col int) BBox {
	if row < 0 || row >= g.RowCount() || col < 0 || col >= g.ColCount() {
		return BBox{}
	}
	return BBox{
		X:      g.Cols[col],
		Y:      g.Rows[row+1],
		Width:  g.Cols[col+1] - g.Cols[col],
		Height: g.Rows[row] - g.Rows[row+1],
	}
}

// Locate returns the row and column of the cell containing p, or -1, -1
// when p falls outside the grid.
func (g *TableGrid) Locate(p Point) (row, col int) {
	row, col = -1, -1
	for i := 0; i < g.RowCount(); i++ {
		if p.Y <= g.Rows[i] && p.Y >= g.Rows[i+1] {
			row = i
			break
		}
	}
	for i := 0; i < g.ColCount(); i++ {
		if p.X >= g.Cols[i] && p.X <= g.Cols[i+1] {
			col = i
			break
		}
	}
	if row < 0 || col < 0 {
		return -1, -1
	}
	return row, col
}

// BBox returns the extent of the whole grid.
func (g *TableGrid) BBox() BBox {
	if g.RowCount() == 0 || g.ColCount() == 0 {
		return BBox{}
	}
	return BBox{
		X:      g.Cols[0],
		Y:      g.Rows[len(g.Rows)-1],
		Width:  g.Cols[len(g.Cols)-1] - g.Cols[0],
		Height: g.Rows[0] - g.Rows[len(g.Rows)-1],
	}
}
