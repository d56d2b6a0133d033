package finextract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/zabl/finextract/assemble"
	"github.com/zabl/finextract/engine"
	"github.com/zabl/finextract/model"
	"github.com/zabl/finextract/normalize"
	"github.com/zabl/finextract/pages"
	"github.com/zabl/finextract/tables"
	"github.com/zabl/finextract/workbook"
)

// Extractor provides a fluent interface for digitizing a PDF.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	filename string
	options  runOptions
}

// EngineFailure records an engine that failed during a run.
type EngineFailure struct {
	Engine string
	Err    error
}

// Report describes a completed run.
type Report struct {
	// Output is the path of the written workbook, empty if none was written.
	Output string

	// RunID identifies the run in log records.
	RunID string

	// Results holds the assembled result of every engine that succeeded,
	// in workbook order, including empty ones.
	Results []model.EngineResult

	Failures []EngineFailure

	// Skipped names the engines whose result was empty and got no sheet.
	Skipped []string
}

// clone creates a copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		options:  e.options.clone(),
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages selects pages with a specification such as "1,3,5-7" or "all"
// (the default). Page numbers are 1-based; pages past the end of the
// document are ignored.
//
// Example:
//
//	report, err := finextract.Open("doc.pdf").Pages("2-4").Run(ctx)
func (e *Extractor) Pages(spec string) *Extractor {
	newExt := e.clone()
	newExt.options.pageSpec = spec
	return newExt
}

// Metadata sets the document details used to name the output file.
func (e *Extractor) Metadata(meta workbook.Metadata) *Extractor {
	newExt := e.clone()
	newExt.options.meta = meta
	return newExt
}

// OutputDir sets the directory the workbook is written to. By default it
// is the directory of the PDF.
func (e *Extractor) OutputDir(dir string) *Extractor {
	newExt := e.clone()
	newExt.options.outputDir = dir
	return newExt
}

// Engines restricts the run to the named engines. Sheets keep the
// registry order whatever order the names are given in.
//
// Example:
//
//	report, err := finextract.Open("doc.pdf").Engines("Lattice").Run(ctx)
func (e *Extractor) Engines(names ...string) *Extractor {
	newExt := e.clone()
	newExt.options.engines = append(newExt.options.engines, names...)
	return newExt
}

// Registry replaces the default engines.
func (e *Extractor) Registry(r *engine.Registry) *Extractor {
	newExt := e.clone()
	newExt.options.registry = r
	return newExt
}

// Parallel runs the engines concurrently instead of one after another.
// The workbook is the same either way.
func (e *Extractor) Parallel() *Extractor {
	newExt := e.clone()
	newExt.options.parallel = true
	return newExt
}

// Strict aborts the run on the first engine failure, writing nothing.
func (e *Extractor) Strict() *Extractor {
	newExt := e.clone()
	newExt.options.strict = true
	return newExt
}

// OCR enables text recognition for pages without a text layer in the
// plain-text engine. lang is a Tesseract language such as "eng" or
// "eng+fra"; empty means "eng". Recognition needs a build with the
// "ocr" tag.
func (e *Extractor) OCR(lang string) *Extractor {
	newExt := e.clone()
	newExt.options.ocr = true
	newExt.options.ocrLanguage = lang
	return newExt
}

// Tables overrides the stream detector thresholds.
func (e *Extractor) Tables(cfg tables.Config) *Extractor {
	newExt := e.clone()
	newExt.options.tables = cfg
	return newExt
}

// Logger sets the logger for run records. The default discards them.
func (e *Extractor) Logger(l zerolog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = l
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// outcome is one engine's raw output.
type outcome struct {
	tables   []model.RawTable
	err      error
	duration time.Duration
}

// Run validates the page specification, runs the selected engines,
// normalizes and assembles their tables, and writes the workbook.
//
// A malformed page specification returns a *pages.ParseError before any
// extraction. When every engine fails, Run returns the joined
// *engine.ExtractionError values and writes nothing; in Strict mode the
// first failure does the same. When every result is empty, Run returns
// workbook.ErrNoSheets. Apart from the page specification check, the
// Report is returned alongside any error.
func (e *Extractor) Run(ctx context.Context) (*Report, error) {
	if e.filename == "" {
		return nil, ErrNoFile
	}
	opts := e.options

	if err := pages.Validate(opts.pageSpec); err != nil {
		return nil, err
	}

	engines, err := opts.engineRegistry().Select(opts.engines...)
	if err != nil {
		return nil, err
	}

	report := &Report{RunID: uuid.NewString()}
	log := opts.logger.With().
		Str("run_id", report.RunID).
		Str("document", e.filename).
		Logger()
	log.Debug().Str("pages", opts.pageSpec).Int("engines", len(engines)).Msg("starting extraction")

	outcomes, err := e.runEngines(ctx, engines)
	if err != nil {
		log.Warn().Err(err).Msg("extraction aborted")
		return report, err
	}

	var failures []error
	for i, eng := range engines {
		out := outcomes[i]
		if out.err != nil {
			log.Warn().Err(out.err).Str("engine", eng.Name()).Msg("engine failed")
			report.Failures = append(report.Failures, EngineFailure{Engine: eng.Name(), Err: out.err})
			failures = append(failures, out.err)
			continue
		}

		result := assemble.Assemble(eng.Name(), normalize.Tables(out.tables))
		log.Debug().
			Str("engine", eng.Name()).
			Int("tables", len(out.tables)).
			Int("rows", result.RowCount()).
			Dur("duration", out.duration).
			Msg("engine finished")

		report.Results = append(report.Results, result)
		if result.Empty() {
			report.Skipped = append(report.Skipped, eng.Name())
		}
	}

	if len(engines) > 0 && len(failures) == len(engines) {
		return report, errors.Join(failures...)
	}

	dir := opts.outputDir
	if dir == "" {
		dir = filepath.Dir(e.filename)
	}
	path, err := workbook.Compose(dir, opts.meta, e.filename, report.Results)
	if err != nil {
		return report, fmt.Errorf("compose workbook: %w", err)
	}
	report.Output = path

	log.Info().Str("path", path).Msg("saved combined extracted data")
	return report, nil
}

// runEngines runs every engine, one after another or concurrently. Only
// in strict mode does an engine failure end the run early.
func (e *Extractor) runEngines(ctx context.Context, engines []engine.Engine) ([]outcome, error) {
	outcomes := make([]outcome, len(engines))

	runOne := func(ctx context.Context, i int) error {
		start := time.Now()
		raw, err := engines[i].Extract(ctx, e.filename, e.options.pageSpec)
		outcomes[i] = outcome{tables: raw, err: err, duration: time.Since(start)}
		if err != nil && e.options.strict {
			return err
		}
		return nil
	}

	if !e.options.parallel {
		for i := range engines {
			if err := runOne(ctx, i); err != nil {
				return nil, err
			}
		}
		return outcomes, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(len(engines), 1))
	for i := range engines {
		i := i
		g.Go(func() error { return runOne(gctx, i) })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
