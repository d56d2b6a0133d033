package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zabl/finextract/internal/pdffixture"
	"github.com/zabl/finextract/model"
)

var statement = []pdffixture.Page{
	{
		Lines: []string{"Balance Sheet", "As at 31 December"},
		Ruled: [][][]string{{
			{"Item", "Amount"},
			{"Cash", "$1,234.56"},
			{"Debt", "(500)"},
		}},
	},
	{
		Aligned: [][][]string{{
			{"Revenue", "2024", "2023"},
			{"Sales", "900", "800"},
			{"Costs", "(100)", "(90)"},
		}},
	},
}

func writeFixture(t *testing.T, pages ...pdffixture.Page) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statement.pdf")
	require.NoError(t, pdffixture.Write(path, pages...))
	return path
}

func texts(tbl model.RawTable) [][]string {
	out := make([][]string, len(tbl.Rows))
	for i, r := range tbl.Rows {
		out[i] = r.Strings()
	}
	return out
}

func TestLattice(t *testing.T) {
	path := writeFixture(t, statement...)

	got, err := Lattice{}.Extract(context.Background(), path, "all")
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, 0, got[0].Page)
	assert.Equal(t, [][]string{
		{"Item", "Amount"},
		{"Cash", "$1,234.56"},
		{"Debt", "(500)"},
	}, texts(got[0]))
	assert.Equal(t, model.CellNumeric, got[0].Rows[1].Cells[1].Kind)
	assert.Nil(t, got[0].Columns)
}

func TestLatticeMultipleTables(t *testing.T) {
	path := writeFixture(t, pdffixture.Page{Ruled: [][][]string{
		{{"A", "1"}, {"B", "2"}},
		{{"C", "3"}, {"D", "4"}},
	}})

	got, err := Lattice{}.Extract(context.Background(), path, "1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, [][]string{{"A", "1"}, {"B", "2"}}, texts(got[0]))
	assert.Equal(t, [][]string{{"C", "3"}, {"D", "4"}}, texts(got[1]))
}

func TestStream(t *testing.T) {
	path := writeFixture(t, statement...)

	got, err := Stream{}.Extract(context.Background(), path, "2")
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, 1, got[0].Page)
	assert.Equal(t, [][]string{
		{"Revenue", "2024", "2023"},
		{"Sales", "900", "800"},
		{"Costs", "(100)", "(90)"},
	}, texts(got[0]))
}

func TestStreamFindsRuledTablesToo(t *testing.T) {
	path := writeFixture(t, statement...)

	got, err := Stream{}.Extract(context.Background(), path, "all")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Page)
	assert.Equal(t, []string{"Item", "Amount"}, got[0].Rows[0].Strings())
	assert.Equal(t, 1, got[1].Page)
}

func TestStreamPageBound(t *testing.T) {
	path := writeFixture(t, statement...)

	// Pages past the end of a two-page document are ignored.
	got, err := Stream{}.Extract(context.Background(), path, "2-5")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Page)
}

func TestStreamPages(t *testing.T) {
	tests := []struct {
		spec      string
		pageCount int
		want      []int
	}{
		{"all", 3, []int{0, 1, 2}},
		{"ALL", 0, []int{}},
		{"1-3", 2, []int{0, 1}},
		{"5,1", 5, []int{0, 4}},
		{"0,2", 5, []int{1}},
		{"1001", 2000, nil},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := streamPages(tt.spec)(tt.pageCount)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := streamPages("x")(3)
	assert.Error(t, err)
}

func TestParseOneBased(t *testing.T) {
	got, err := parseOneBased("3,1,9", 4)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0}, got)

	got, err = parseOneBased("", 4)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = parseOneBased("1,two", 4)
	assert.Error(t, err)
}

func TestPlainText(t *testing.T) {
	path := writeFixture(t, statement...)

	got, err := PlainText{}.Extract(context.Background(), path, "1")
	require.NoError(t, err)
	require.Len(t, got, 1)

	tbl := got[0]
	assert.Equal(t, []string{PlainTextColumn}, tbl.Columns)
	require.Len(t, tbl.Rows, 5)
	assert.Equal(t, []string{"Balance Sheet"}, tbl.Rows[0].Strings())
	assert.Equal(t, []string{"As at 31 December"}, tbl.Rows[1].Strings())
	for _, r := range tbl.Rows {
		assert.Len(t, r.Cells, 1)
		assert.Equal(t, 0, r.Page)
	}
}

func TestPlainTextSkipsBlankPages(t *testing.T) {
	path := writeFixture(t, pdffixture.Page{}, pdffixture.Page{Lines: []string{"Notes"}})

	got, err := PlainText{}.Extract(context.Background(), path, "all")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Page)
}

func TestEmptySelection(t *testing.T) {
	path := writeFixture(t, statement...)

	for _, e := range DefaultRegistry(DefaultOptions()).engines {
		t.Run(e.Name(), func(t *testing.T) {
			got, err := e.Extract(context.Background(), path, "7")
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestExtractionErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.pdf")

	for _, e := range DefaultRegistry(DefaultOptions()).engines {
		t.Run(e.Name(), func(t *testing.T) {
			_, err := e.Extract(context.Background(), missing, "all")
			var ee *ExtractionError
			require.ErrorAs(t, err, &ee)
			assert.Equal(t, e.Name(), ee.Engine)
			assert.Contains(t, err.Error(), e.Name())
		})
	}
}

func TestExtractCancelled(t *testing.T) {
	path := writeFixture(t, statement...)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Lattice{}.Extract(ctx, path, "all")
	assert.True(t, errors.Is(err, context.Canceled))

	var ee *ExtractionError
	assert.ErrorAs(t, err, &ee)
}

func TestBadPageSpec(t *testing.T) {
	path := writeFixture(t, statement...)

	_, err := Lattice{}.Extract(context.Background(), path, "1-x")
	var ee *ExtractionError
	assert.ErrorAs(t, err, &ee)
}
