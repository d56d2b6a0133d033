// Package normalize cleans extracted cell text for spreadsheet output.
//
// Currency symbols are removed and accounting negatives written in
// parentheses become signed numbers:
//
//	$1,234.56    -> 1,234.56
//	$ (1,234.56) -> -1234.56
//	N/A          -> N/A
package normalize

import (
	"regexp"
	"strings"

	"github.com/zabl/finextract/model"
)

// parenNegative matches an accounting negative such as "(1,234.56)".
var parenNegative = regexp.MustCompile(`^\(\s*([\d,.]+)\s*\)$`)

// String normalizes a single cell's text.
func String(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "$", ""))
	if m := parenNegative.FindStringSubmatch(s); m != nil {
		return "-" + strings.ReplaceAll(m[1], ",", "")
	}
	return s
}

// Cell normalizes c and re-classifies the result. Empty cells pass
// through unchanged.
func Cell(c model.Cell) model.Cell {
	if c.Kind == model.CellEmpty {
		return c
	}
	return model.NewCell(String(c.Text))
}

// Table returns a normalized copy of t; t itself is not modified.
func Table(t model.RawTable) model.RawTable {
	out := t
	out.Columns = append([]string(nil), t.Columns...)
	out.Rows = make([]model.Row, len(t.Rows))
	for i, r := range t.Rows {
		cells := make([]model.Cell, len(r.Cells))
		for j, c := range r.Cells {
			cells[j] = Cell(c)
		}
		out.Rows[i] = model.Row{Cells: cells, Page: r.Page}
	}
	return out
}

// Tables normalizes every table, in order.
func Tables(ts []model.RawTable) []model.RawTable {
	out := make([]model.RawTable, len(ts))
	for i, t := range ts {
		out[i] = Table(t)
	}
	return out
}
