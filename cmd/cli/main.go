package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/specialistvlad/buildgridgo/internal/app"
	"github.com/specialistvlad/buildgridgo/internal/cli"
	"github.com/specialistvlad/buildgridgo/internal/hcl_adapter"
	"github.com/specialistvlad/buildgridgo/internal/telemetry"
)

// main is the entrypoint for the buildgridgo application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdout, os.Stderr, os.Args[1:])
	stop()

	// The real main function handles errors and exit codes.
	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. Reports go to outW; help text and logs go to errW.
func run(ctx context.Context, outW, errW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, errW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	shutdown, err := telemetry.Setup(ctx, telemetry.Options{
		Enabled:  appConfig.OtelEnabled,
		Endpoint: appConfig.OtelEndpoint,
	})
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		if shutdownErr := shutdown(context.Background()); shutdownErr != nil && err == nil {
			err = fmt.Errorf("failed to flush traces: %w", shutdownErr)
		}
	}()

	// Instantiate the concrete HCL loader to pass to the app.
	loader := hcl_adapter.NewLoader()
	buildgridApp, err := app.NewApp(ctx, outW, errW, appConfig, loader)
	if err != nil {
		return err
	}

	return buildgridApp.Run(ctx)
}
