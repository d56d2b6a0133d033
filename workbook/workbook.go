package workbook

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/zabl/finextract/model"
)

// Suffix ends every output file name.
const Suffix = "_Combined_Extracted.xlsx"

// ErrNoSheets is returned when every result is empty; no file is written.
var ErrNoSheets = errors.New("no non-empty results to write")

// Metadata describes the document being digitized. It becomes part of
// the output file name.
type Metadata struct {
	Year        string
	Period      string
	AuditStatus string
	ClientName  string
}

// WriteError reports a failure to produce the workbook at Path.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write workbook %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

var pathSeparators = strings.NewReplacer("/", "-", "\\", "-")

// FileName returns the output file name for source:
// {Year}_{Period}_{AuditStatus}_{CLIENT}_{base}_Combined_Extracted.xlsx,
// where base is the source file name without its extension. Path
// separators inside the fields are replaced by "-".
func FileName(meta Metadata, source string) string {
	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	fields := []string{
		meta.Year,
		meta.Period,
		meta.AuditStatus,
		cases.Upper(language.Und).String(meta.ClientName),
		base,
	}
	for i, f := range fields {
		fields[i] = pathSeparators.Replace(f)
	}
	return strings.Join(fields, "_") + Suffix
}

// UniquePath returns path if nothing exists there, otherwise the first of
// X_1.ext, X_2.ext, ... that is free. Probing is sequential and assumes a
// single writer; Write refuses to overwrite if another process wins the
// race.
func UniquePath(path string) (string, error) {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)

	candidate := path
	for i := 1; ; i++ {
		_, err := os.Stat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("probe %s: %w", candidate, err)
		}
		candidate = fmt.Sprintf("%s_%d%s", stem, i, ext)
	}
}

// Write creates a workbook at path with one sheet per non-empty result, in
// order. The header row is written only when a result has Columns. Every
// value is written as a string. An existing file at path is never
// overwritten, and a partially written file is removed.
func Write(path string, results []model.EngineResult) error {
	var sheets []model.EngineResult
	for _, r := range results {
		if !r.Empty() {
			sheets = append(sheets, r)
		}
	}
	if len(sheets) == 0 {
		return ErrNoSheets
	}

	f, err := build(sheets)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	defer f.Close()

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if _, err := f.WriteTo(out); err != nil {
		out.Close()
		os.Remove(path)
		return &WriteError{Path: path, Err: err}
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// Compose writes results to a fresh file in dir named after meta and
// source, and returns its path.
func Compose(dir string, meta Metadata, source string, results []model.EngineResult) (string, error) {
	path, err := UniquePath(filepath.Join(dir, FileName(meta, source)))
	if err != nil {
		return "", err
	}
	if err := Write(path, results); err != nil {
		return "", err
	}
	return path, nil
}

func build(sheets []model.EngineResult) (*excelize.File, error) {
	f := excelize.NewFile()
	first := f.GetSheetName(0)

	for i, r := range sheets {
		name := r.Engine
		if i == 0 {
			if err := f.SetSheetName(first, name); err != nil {
				f.Close()
				return nil, fmt.Errorf("sheet %s: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %s: %w", name, err)
		}

		if err := writeSheet(f, name, r); err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %s: %w", name, err)
		}
	}
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, r model.EngineResult) error {
	row := 1
	if len(r.Columns) > 0 {
		if err := setRow(f, sheet, row, r.Columns); err != nil {
			return err
		}
		row++
	}
	for _, rr := range r.Rows {
		if err := setRow(f, sheet, row, rr.Strings()); err != nil {
			return err
		}
		row++
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	vals := make([]any, len(values))
	for i, v := range values {
		vals[i] = v
	}
	return f.SetSheetRow(sheet, cell, &vals)
}
