package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/buildgridgo/internal/config"
	"github.com/specialistvlad/buildgridgo/internal/ctxlog"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("github.com/specialistvlad/buildgridgo/internal/app")

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	cfg       *Config
	model     *config.Model
	evaluator config.Evaluator
}

// NewApp is the constructor for the main application. Reports are written to
// outW and logs to logW. The layout is loaded eagerly so that a malformed
// layout fails before any operation runs.
func NewApp(ctx context.Context, outW, logW io.Writer, cfg *Config, loader config.Loader) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	m, evaluator, err := loader.Load(ctx, cfg.LayoutPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load layout: %w", err)
	}
	logger.Debug("Layout loaded and translated into unified model.", "projects", len(m.Projects))

	return &App{
		outW:      outW,
		logger:    logger,
		cfg:       cfg,
		model:     m,
		evaluator: evaluator,
	}, nil
}

// Model returns the loaded layout. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}

// Run executes the configured command and writes its report to the output.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", a.cfg.Command)

	switch a.cfg.Command {
	case CommandClean:
		report, err := a.Clean(ctx)
		if err != nil {
			return err
		}
		return writeCleanReport(a.outW, a.cfg.Output, report)
	default:
		report, err := a.Configure(ctx)
		if err != nil {
			return err
		}
		return writeReport(a.outW, a.cfg.Output, report)
	}
}
