// Package app encapsulates the pipeline application's dependencies,
// configuration, and lifecycle: logger setup, configuration loading, plan
// construction, and execution.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/seqforest/gcpipe/internal/config"
	"github.com/seqforest/gcpipe/internal/ctxlog"
	"github.com/seqforest/gcpipe/internal/executor"
	"github.com/seqforest/gcpipe/internal/graph"
	"github.com/seqforest/gcpipe/internal/pipeline"
	"github.com/seqforest/gcpipe/internal/runctx"
)

// App wires the pipeline components together for one invocation.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// NewApp is the constructor for the main application. Each instance carries
// its own isolated logger tagged with a unique run identifier.
func NewApp(outW io.Writer, appConfig *Config) *App {
	logger := newLogger(appConfig, outW).With("run_id", uuid.NewString())
	return &App{outW: outW, logger: logger, config: appConfig}
}

// logLevels maps the configuration level names onto slog levels. The CLI
// rejects any other name before a Config is constructed.
var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// newLogger builds the run's logger. The global default logger is never
// touched, so concurrent App instances stay isolated.
func newLogger(cfg *Config, outW io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: logLevels[cfg.LogLevel]}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}

// Run loads the configuration, derives the run context, constructs and
// validates the task graph, and either prints the plan (dry run) or
// executes it.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	model, err := config.NewLoader().Load(ctx, a.config.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	rc, err := runctx.New(ctx, runctx.Params{
		Input:     a.config.Input,
		Outdir:    a.config.Outdir,
		NaiveID:   model.NaiveID,
		Colormap:  a.config.Colormap,
		Converter: a.config.Converter,
	})
	if err != nil {
		return err
	}

	plan, err := pipeline.Build(ctx, model, rc)
	if err != nil {
		return err
	}

	g, err := graph.Build(ctx, plan.Tasks)
	if err != nil {
		return err
	}

	if a.config.DryRun {
		return a.printPlan(plan, g)
	}

	a.logger.Info("Starting pipeline run.",
		"base", rc.BaseName,
		"families", model.EnabledFamilies(),
		"tasks", len(plan.Tasks),
		"workers", a.config.WorkerCount)

	if err := executor.New(g, a.config.WorkerCount).Run(ctx); err != nil {
		return err
	}

	for _, t := range plan.Terminals {
		a.logger.Info("Terminal artifact ready.", "task", t.ID, "outputs", t.Outputs)
	}
	a.logger.Info("Pipeline run complete.", "terminals", len(plan.Terminals))
	return nil
}
