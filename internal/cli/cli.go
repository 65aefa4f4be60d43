// Package cli parses command-line arguments into an app configuration.
package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/seqforest/gcpipe/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("gcpipe", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
gcpipe - germinal-center tree inference pipeline.

Builds and runs the graph of external phylogenetic-inference tool
invocations for one immune-repertoire sequence collection.

Usage:
  gcpipe [options] --config pipeline.hcl

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to the HCL pipeline configuration file.")
	inputFlag := flagSet.String("input", "", "Input sequence file. Empty runs a synthetic simulation.")
	outdirFlag := flagSet.String("outdir", "output", "Output root directory.")
	colormapFlag := flagSet.String("colormap", "", "Optional YAML sequence-to-color annotation file.")
	converterFlag := flagSet.String("converter", "", "Alignment converter selector. Options: '' (default) or 'seqmagick'.")
	workersFlag := flagSet.Int("workers", 4, "Number of concurrent workers for the executor.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	dryRunFlag := flagSet.Bool("dry-run", false, "Print the planned tasks and exit without executing.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if *configFlag == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		ConfigPath:  *configFlag,
		Input:       *inputFlag,
		Outdir:      *outdirFlag,
		Colormap:    *colormapFlag,
		Converter:   *converterFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
		WorkerCount: *workersFlag,
		DryRun:      *dryRunFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
