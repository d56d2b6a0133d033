package finextract

import (
	"github.com/rs/zerolog"

	"github.com/zabl/finextract/engine"
	"github.com/zabl/finextract/pages"
	"github.com/zabl/finextract/tables"
	"github.com/zabl/finextract/workbook"
)

// runOptions holds the configuration of a run.
type runOptions struct {
	// Page selection, in the "1,3-5" / "all" syntax
	pageSpec string

	// Output naming
	meta      workbook.Metadata
	outputDir string // empty means the PDF's directory

	// Engine selection and execution
	engines  []string // empty means every registered engine
	registry *engine.Registry
	parallel bool
	strict   bool

	// Plain-text OCR fallback
	ocr         bool
	ocrLanguage string

	tables tables.Config
	logger zerolog.Logger
}

// defaultOptions returns the default run options.
func defaultOptions() runOptions {
	return runOptions{
		pageSpec: pages.All,
		tables:   tables.DefaultConfig(),
		logger:   zerolog.Nop(),
	}
}

// clone creates a deep copy of runOptions.
func (o runOptions) clone() runOptions {
	newOpts := o

	// Deep copy engines slice
	if o.engines != nil {
		newOpts.engines = make([]string, len(o.engines))
		copy(newOpts.engines, o.engines)
	}

	return newOpts
}

// engineRegistry returns the configured registry, or the default engines
// built from the options.
func (o runOptions) engineRegistry() *engine.Registry {
	if o.registry != nil {
		return o.registry
	}
	return engine.DefaultRegistry(engine.Options{
		Tables:      o.tables,
		OCR:         o.ocr,
		OCRLanguage: o.ocrLanguage,
	})
}
