// Package config holds the command-line configuration and its optional
// file overlay.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"

	"github.com/zabl/finextract/pages"
)

// Config is the resolved configuration of one extraction.
type Config struct {
	Document string `yaml:"document" toml:"document" json:"document" validate:"required"`
	Pages    string `yaml:"pages" toml:"pages" json:"pages" validate:"required"`

	Year        string `yaml:"year" toml:"year" json:"year"`
	Period      string `yaml:"period" toml:"period" json:"period"`
	AuditStatus string `yaml:"auditStatus" toml:"auditStatus" json:"auditStatus"`
	ClientName  string `yaml:"clientName" toml:"clientName" json:"clientName"`

	OutputDir string   `yaml:"outputDir" toml:"outputDir" json:"outputDir"`
	Engines   []string `yaml:"engines" toml:"engines" json:"engines" validate:"dive,oneof=Stream PlainText Lattice"`
	Parallel  bool     `yaml:"parallel" toml:"parallel" json:"parallel"`
	Strict    bool     `yaml:"strict" toml:"strict" json:"strict"`

	OCR         bool   `yaml:"ocr" toml:"ocr" json:"ocr"`
	OCRLanguage string `yaml:"ocrLanguage" toml:"ocrLanguage" json:"ocrLanguage"`

	Verbose bool `yaml:"verbose" toml:"verbose" json:"verbose"`
}

// Default returns the configuration before flags and files are applied:
// every page, and the current year.
func Default() Config {
	return Config{
		Pages: pages.All,
		Year:  strconv.Itoa(time.Now().Year()),
	}
}

// LoadFile reads YAML, TOML or JSON by extension. Unknown extensions are
// tried as YAML, then JSON.
func LoadFile(path string) (Config, error) {
	var fc Config
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse toml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// Apply overlays file values onto cfg for fields still unset or at their
// defaults, so explicit flags win over the file.
func Apply(cfg *Config, fc Config) {
	if cfg == nil {
		return
	}
	def := Default()

	if cfg.Document == "" && fc.Document != "" {
		cfg.Document = fc.Document
	}
	if (cfg.Pages == "" || cfg.Pages == def.Pages) && fc.Pages != "" {
		cfg.Pages = fc.Pages
	}
	if (cfg.Year == "" || cfg.Year == def.Year) && fc.Year != "" {
		cfg.Year = fc.Year
	}
	if cfg.Period == "" && fc.Period != "" {
		cfg.Period = fc.Period
	}
	if cfg.AuditStatus == "" && fc.AuditStatus != "" {
		cfg.AuditStatus = fc.AuditStatus
	}
	if cfg.ClientName == "" && fc.ClientName != "" {
		cfg.ClientName = fc.ClientName
	}
	if cfg.OutputDir == "" && fc.OutputDir != "" {
		cfg.OutputDir = fc.OutputDir
	}
	if len(cfg.Engines) == 0 && len(fc.Engines) > 0 {
		cfg.Engines = append([]string{}, fc.Engines...)
	}
	if !cfg.Parallel && fc.Parallel {
		cfg.Parallel = true
	}
	if !cfg.Strict && fc.Strict {
		cfg.Strict = true
	}
	if !cfg.OCR && fc.OCR {
		cfg.OCR = true
	}
	if cfg.OCRLanguage == "" && fc.OCRLanguage != "" {
		cfg.OCRLanguage = fc.OCRLanguage
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}

var validate = validator.New()

// Validate checks required fields, engine names and the page
// specification syntax.
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return pages.Validate(cfg.Pages)
}
