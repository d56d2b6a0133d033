package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zabl/finextract"
	"github.com/zabl/finextract/internal/config"
	"github.com/zabl/finextract/workbook"
)

func newExtractCmd() *cobra.Command {
	cfg := config.Default()
	var configFile string

	cmd := &cobra.Command{
		Use:   "extract <file.pdf>",
		Short: "Extract a PDF into a combined workbook",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				cfg.Document = args[0]
			}
			if configFile != "" {
				fc, err := config.LoadFile(configFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				config.Apply(&cfg, fc)
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}

			logger := newLogger(cfg.Verbose)
			ext := finextract.Open(cfg.Document).
				Pages(cfg.Pages).
				Metadata(workbook.Metadata{
					Year:        cfg.Year,
					Period:      cfg.Period,
					AuditStatus: cfg.AuditStatus,
					ClientName:  cfg.ClientName,
				}).
				OutputDir(cfg.OutputDir).
				Engines(cfg.Engines...).
				Logger(logger)
			if cfg.Parallel {
				ext = ext.Parallel()
			}
			if cfg.Strict {
				ext = ext.Strict()
			}
			if cfg.OCR {
				ext = ext.OCR(cfg.OCRLanguage)
			}

			report, err := ext.Run(cmd.Context())
			if report != nil {
				for _, f := range report.Failures {
					logger.Warn().Str("engine", f.Engine).Err(f.Err).Msg("engine produced no sheet")
				}
				for _, name := range report.Skipped {
					logger.Warn().Str("engine", name).Msg("engine found nothing")
				}
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), report.Output)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&cfg.Pages, "pages", "p", cfg.Pages, `pages to extract, e.g. "1,3,5-7" or "all"`)
	f.StringVar(&cfg.Year, "year", cfg.Year, "statement year")
	f.StringVar(&cfg.Period, "period", "", "reporting period, e.g. Q4 or FY")
	f.StringVar(&cfg.AuditStatus, "audit", "", "audit status, e.g. Audited")
	f.StringVar(&cfg.ClientName, "client", "", "client name")
	f.StringVarP(&cfg.OutputDir, "out", "o", "", "output directory (default: the PDF's directory)")
	f.StringSliceVarP(&cfg.Engines, "engine", "e", nil, "engines to run: Stream, PlainText, Lattice (default: all)")
	f.BoolVar(&cfg.Parallel, "parallel", false, "run engines concurrently")
	f.BoolVar(&cfg.Strict, "strict", false, "abort on the first engine failure")
	f.BoolVar(&cfg.OCR, "ocr", false, "OCR pages without a text layer (needs an -tags ocr build)")
	f.StringVar(&cfg.OCRLanguage, "ocr-lang", "", `Tesseract language (default "eng")`)
	f.StringVarP(&configFile, "config", "c", "", "YAML, TOML or JSON config file")
	f.BoolVarP(&cfg.Verbose, "verbose", "v", false, "debug logging")

	return cmd
}
