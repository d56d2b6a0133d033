package finextract

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/zabl/finextract/engine"
	"github.com/zabl/finextract/internal/pdffixture"
	"github.com/zabl/finextract/model"
	"github.com/zabl/finextract/pages"
	"github.com/zabl/finextract/workbook"
)

var meta = workbook.Metadata{Year: "2024", Period: "FY", AuditStatus: "Audited", ClientName: "acme"}

func writeStatement(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statement.pdf")
	require.NoError(t, pdffixture.Write(path,
		pdffixture.Page{
			Lines: []string{"Balance Sheet", "As at 31 December"},
			Ruled: [][][]string{{
				{"Item", "Amount"},
				{"Cash", "$1,234.56"},
				{"Debt", "(500)"},
			}},
		},
		pdffixture.Page{
			Aligned: [][][]string{{
				{"Revenue", "2024", "2023"},
				{"Sales", "900", "800"},
				{"Costs", "(100)", "(90)"},
			}},
		},
	))
	return path
}

func readWorkbook(t *testing.T, path string) ([]string, map[string][][]string) {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	names := f.GetSheetList()
	sheets := make(map[string][][]string)
	for _, name := range names {
		rows, err := f.GetRows(name)
		require.NoError(t, err)
		sheets[name] = rows
	}
	return names, sheets
}

// failing is an engine that always fails.
type failing struct{ name string }

func (f failing) Name() string { return f.name }

func (f failing) Extract(context.Context, string, string) ([]model.RawTable, error) {
	return nil, &engine.ExtractionError{Engine: f.name, Err: errors.New("backend crashed")}
}

func TestRun(t *testing.T) {
	path := writeStatement(t)
	out := t.TempDir()

	report, err := Open(path).Metadata(meta).OutputDir(out).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(out, "2024_FY_Audited_ACME_statement_Combined_Extracted.xlsx"), report.Output)
	assert.NotEmpty(t, report.RunID)
	assert.Empty(t, report.Failures)
	assert.Empty(t, report.Skipped)
	require.Len(t, report.Results, 3)

	names, sheets := readWorkbook(t, report.Output)
	assert.Equal(t, []string{"Stream", "PlainText", "Lattice"}, names)

	assert.Equal(t, [][]string{
		{"Item", "Amount"},
		{"Cash", "1,234.56"},
		{"Debt", "-500"},
	}, sheets["Lattice"])

	assert.Equal(t, [][]string{
		{"Item", "Amount"},
		{"Cash", "1,234.56"},
		{"Debt", "-500"},
		{"Revenue", "2024", "2023"},
		{"Sales", "900", "800"},
		{"Costs", "-100", "-90"},
	}, sheets["Stream"])

	plain := sheets["PlainText"]
	require.GreaterOrEqual(t, len(plain), 3)
	assert.Equal(t, []string{"Extracted Text"}, plain[0])
	assert.Equal(t, []string{"Balance Sheet"}, plain[1])
	assert.Equal(t, []string{"As at 31 December"}, plain[2])
}

func TestRunDefaultsToDocumentDir(t *testing.T) {
	path := writeStatement(t)

	report, err := Open(path).Engines("Lattice").Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Dir(path), filepath.Dir(report.Output))
	assert.FileExists(t, report.Output)
}

func TestRunCollisionSuffix(t *testing.T) {
	path := writeStatement(t)
	ext := Open(path).Metadata(meta).Engines(engine.NameLattice)

	first, err := ext.Run(context.Background())
	require.NoError(t, err)
	second, err := ext.Run(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first.Output, second.Output)
	assert.Equal(t, "2024_FY_Audited_ACME_statement_Combined_Extracted_1.xlsx", filepath.Base(second.Output))
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestRunSelectedEngines(t *testing.T) {
	path := writeStatement(t)

	report, err := Open(path).Engines("Lattice", "Stream").OutputDir(t.TempDir()).Run(context.Background())
	require.NoError(t, err)

	names, _ := readWorkbook(t, report.Output)
	assert.Equal(t, []string{"Stream", "Lattice"}, names)

	_, err = Open(path).Engines("Camelot").Run(context.Background())
	assert.Error(t, err)
}

func TestRunPageSelection(t *testing.T) {
	path := writeStatement(t)

	report, err := Open(path).Pages("2").OutputDir(t.TempDir()).Run(context.Background())
	require.NoError(t, err)

	// Page 2 has no rulings.
	assert.Equal(t, []string{"Lattice"}, report.Skipped)
	names, sheets := readWorkbook(t, report.Output)
	assert.Equal(t, []string{"Stream", "PlainText"}, names)
	assert.Equal(t, []string{"Revenue", "2024", "2023"}, sheets["Stream"][0])
}

func TestRunInvalidPages(t *testing.T) {
	path := writeStatement(t)
	out := t.TempDir()

	report, err := Open(path).Pages("1,x-3").OutputDir(out).Run(context.Background())
	var pe *pages.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "x-3", pe.Token)
	assert.Nil(t, report)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunNoResults(t *testing.T) {
	path := writeStatement(t)
	out := t.TempDir()

	report, err := Open(path).Pages("9").OutputDir(out).Run(context.Background())
	assert.ErrorIs(t, err, workbook.ErrNoSheets)
	require.NotNil(t, report)
	assert.Equal(t, []string{"Stream", "PlainText", "Lattice"}, report.Skipped)
	assert.Empty(t, report.Output)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunIsolatesFailures(t *testing.T) {
	path := writeStatement(t)
	registry := engine.NewRegistry(failing{"Stream"}, engine.PlainText{}, engine.Lattice{})

	report, err := Open(path).Registry(registry).OutputDir(t.TempDir()).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Failures, 1)
	assert.Equal(t, "Stream", report.Failures[0].Engine)
	names, _ := readWorkbook(t, report.Output)
	assert.Equal(t, []string{"PlainText", "Lattice"}, names)
}

func TestRunStrict(t *testing.T) {
	path := writeStatement(t)
	out := t.TempDir()
	registry := engine.NewRegistry(engine.Lattice{}, failing{"Broken"})

	for _, ext := range []*Extractor{
		Open(path).Registry(registry).OutputDir(out).Strict(),
		Open(path).Registry(registry).OutputDir(out).Strict().Parallel(),
	} {
		report, err := ext.Run(context.Background())
		var ee *engine.ExtractionError
		require.ErrorAs(t, err, &ee)
		assert.Equal(t, "Broken", ee.Engine)
		assert.Empty(t, report.Output)
	}

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunAllEnginesFail(t *testing.T) {
	path := writeStatement(t)
	out := t.TempDir()
	registry := engine.NewRegistry(failing{"A"}, failing{"B"})

	report, err := Open(path).Registry(registry).OutputDir(out).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "A extraction failed")
	assert.Contains(t, err.Error(), "B extraction failed")
	assert.Len(t, report.Failures, 2)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunRejectsNonPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "statement.pdf")
	require.NoError(t, os.WriteFile(path, []byte("<html><table></table></html>"), 0o644))

	report, err := Open(path).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input is HTML, not PDF")
	assert.Len(t, report.Failures, 3)
	assert.Empty(t, report.Output)
}

func TestRunParallelMatchesSequential(t *testing.T) {
	path := writeStatement(t)

	seq, err := Open(path).OutputDir(t.TempDir()).Run(context.Background())
	require.NoError(t, err)
	par, err := Open(path).OutputDir(t.TempDir()).Parallel().Run(context.Background())
	require.NoError(t, err)

	seqNames, seqSheets := readWorkbook(t, seq.Output)
	parNames, parSheets := readWorkbook(t, par.Output)
	assert.Equal(t, seqNames, parNames)
	assert.Equal(t, seqSheets, parSheets)
}

func TestRunCancelled(t *testing.T) {
	path := writeStatement(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := Open(path).OutputDir(t.TempDir()).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, report.Failures, 3)
}

func TestRunNoFile(t *testing.T) {
	_, err := Open("").Run(context.Background())
	assert.ErrorIs(t, err, ErrNoFile)
}

func TestRunLogs(t *testing.T) {
	path := writeStatement(t)
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.InfoLevel)

	report, err := Open(path).Engines("Lattice").OutputDir(t.TempDir()).Logger(logger).Run(context.Background())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"message":"saved combined extracted data"`)
	assert.Contains(t, out, report.RunID)
	assert.Contains(t, out, report.Output)
	assert.NotContains(t, out, "engine finished")
}

func TestExtractorIsImmutable(t *testing.T) {
	base := Open("doc.pdf")
	derived := base.Pages("1-2").Engines("Lattice").Strict().Parallel().OCR("deu")

	assert.Equal(t, pages.All, base.options.pageSpec)
	assert.Nil(t, base.options.engines)
	assert.False(t, base.options.strict || base.options.parallel || base.options.ocr)

	assert.Equal(t, "1-2", derived.options.pageSpec)
	assert.Equal(t, []string{"Lattice"}, derived.options.engines)
	assert.Equal(t, "deu", derived.options.ocrLanguage)

	more := derived.Engines("Stream")
	assert.Equal(t, []string{"Lattice"}, derived.options.engines)
	assert.Equal(t, []string{"Lattice", "Stream"}, more.options.engines)
}

func TestPageCount(t *testing.T) {
	path := writeStatement(t)
	assert.Equal(t, 2, Must(PageCount(path)))

	_, err := PageCount(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
	assert.Panics(t, func() { Must(PageCount("")) })
}
