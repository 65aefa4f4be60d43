package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ConfigPath points at the HCL pipeline configuration.
	ConfigPath string
	// Input is the sequence file path; empty requests a synthetic run.
	Input string
	// Outdir is the output root directory.
	Outdir string
	// Colormap optionally points at a YAML sequence→color annotation file.
	Colormap string
	// Converter optionally selects an alternative alignment converter.
	Converter string

	LogFormat   string
	LogLevel    string
	WorkerCount int
	// DryRun prints the plan without executing anything.
	DryRun bool
}

// knownConverters are the accepted --converter selectors.
var knownConverters = map[string]bool{"": true, "seqmagick": true}

// NewConfig validates the raw configuration.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	if cfg.Outdir == "" {
		return nil, errors.New("Outdir is a required configuration field and cannot be empty")
	}
	if !knownConverters[cfg.Converter] {
		return nil, fmt.Errorf("unknown converter %q", cfg.Converter)
	}
	return &cfg, nil
}
