package app

import (
	"context"

	"github.com/specialistvlad/buildgridgo/internal/ctxlog"
	"github.com/specialistvlad/buildgridgo/internal/layout"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Clean deletes the shared output root and every project directory. It only
// needs the layout, not a prior configuration pass. Per-directory failures
// are warnings in the returned report; only path resolution errors abort.
func (a *App) Clean(ctx context.Context) (layout.CleanReport, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	ctx, span := tracer.Start(ctx, "app.clean")
	defer span.End()
	logger := ctxlog.FromContext(ctx)

	dirs, err := a.resolveDirectories(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return layout.CleanReport{}, err
	}

	report := layout.Clean(ctx, dirs.All(a.model.Nodes()))
	span.SetAttributes(
		attribute.Int("clean.removed", len(report.Removed)),
		attribute.Int("clean.warnings", len(report.Warnings)),
	)
	if !report.OK() {
		logger.Warn("Clean finished with warnings.", "warnings", len(report.Warnings))
	} else {
		logger.Info("Clean finished.", "removed", len(report.Removed), "missing", len(report.Missing))
	}
	return report, nil
}
