package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zabl/finextract/model"
)

func TestString(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"$1,234.56", "1,234.56"},
		{"$ (1,234.56)", "-1234.56"},
		{"(500)", "-500"},
		{"( 1,000 )", "-1000"},
		{"(1.5.2)", "-1.5.2"},
		{"N/A", "N/A"},
		{"  Total assets  ", "Total assets"},
		{"(note 4)", "(note 4)"},
		{"()", "()"},
		{"$$", ""},
		{"-42", "-42"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, String(tt.in))
		})
	}
}

func TestCell(t *testing.T) {
	empty := model.EmptyCell()
	assert.Equal(t, empty, Cell(empty))

	got := Cell(model.NewCell("$ (1,234.56)"))
	assert.Equal(t, model.Cell{Kind: model.CellNumeric, Text: "-1234.56"}, got)

	got = Cell(model.NewCell("Revenue"))
	assert.Equal(t, model.CellText, got.Kind)

	// A lone currency symbol normalizes to nothing.
	got = Cell(model.NewCell("$"))
	assert.Equal(t, model.CellEmpty, got.Kind)
}

func TestTableDoesNotMutate(t *testing.T) {
	in := model.RawTable{
		Page:    2,
		Columns: []string{"Amount"},
		Rows:    []model.Row{model.NewRow(2, "$5", "(7)")},
	}

	out := Table(in)
	assert.Equal(t, []string{"5", "-7"}, out.Rows[0].Strings())
	assert.Equal(t, 2, out.Rows[0].Page)
	assert.Equal(t, 2, out.Page)
	assert.Equal(t, []string{"$5", "(7)"}, in.Rows[0].Strings())

	out.Columns[0] = "changed"
	assert.Equal(t, "Amount", in.Columns[0])
}

func TestTables(t *testing.T) {
	out := Tables([]model.RawTable{
		{Rows: []model.Row{model.NewRow(0, "$1")}},
		{Rows: []model.Row{model.NewRow(1, "(2)")}},
	})
	assert.Len(t, out, 2)
	assert.Equal(t, "-2", out[1].Rows[0].Cells[0].Text)
}
