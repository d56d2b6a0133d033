package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zabl/finextract/internal/pdffixture"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return strings.TrimSpace(out.String()), err
}

func fixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, pdffixture.Write(path,
		pdffixture.Page{Ruled: [][][]string{{{"Cash", "10"}, {"Debt", "(5)"}}}},
		pdffixture.Page{Lines: []string{"Notes"}},
	))
	return path
}

func TestPagesCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"pages", "all", "3"}, "0,1,2"},
		{[]string{"pages", "5,1-2", "4"}, "0,1"},
		{[]string{"pages", "3-1", "4"}, ""},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			got, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPagesCommandWithPDF(t *testing.T) {
	got, err := execute(t, "pages", "all", fixture(t))
	require.NoError(t, err)
	assert.Equal(t, "0,1", got)
}

func TestPagesCommandErrors(t *testing.T) {
	_, err := execute(t, "pages", "1-x", "3")
	assert.Error(t, err)

	_, err = execute(t, "pages", "all", "-1")
	assert.Error(t, err)

	_, err = execute(t, "pages", "all")
	assert.Error(t, err)
}

func TestExtractCommand(t *testing.T) {
	pdf := fixture(t)
	out := t.TempDir()

	got, err := execute(t, "extract", pdf,
		"--year", "2023", "--period", "FY", "--audit", "Audited", "--client", "acme",
		"--out", out, "--engine", "Lattice,PlainText")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "2023_FY_Audited_ACME_report_Combined_Extracted.xlsx"), got)
	assert.FileExists(t, got)
}

func TestExtractCommandConfigFile(t *testing.T) {
	pdf := fixture(t)
	out := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"document: "+pdf+"\nyear: \"2022\"\nperiod: H1\nclientName: beta\noutputDir: "+out+"\nengines: [Lattice]\n",
	), 0o644))

	// The flag wins over the file's period.
	got, err := execute(t, "extract", "--config", cfgPath, "--period", "Q2")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "2022_Q2__BETA_report_Combined_Extracted.xlsx"), got)
}

func TestExtractCommandErrors(t *testing.T) {
	_, err := execute(t, "extract")
	assert.Error(t, err)

	_, err = execute(t, "extract", fixture(t), "--pages", "1,,2")
	assert.Error(t, err)

	_, err = execute(t, "extract", fixture(t), "--engine", "Camelot")
	assert.Error(t, err)
}
