package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/specialistvlad/buildgridgo/internal/app"
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

// envConfig is the environment layer. Flags parsed afterwards take
// precedence over every value here.
type envConfig struct {
	Layout       string `env:"BUILDGRID_LAYOUT"`
	BaseDir      string `env:"BUILDGRID_BASE_DIR"`
	Profile      string `env:"BUILDGRID_PROFILE"`
	Output       string `env:"BUILDGRID_OUTPUT"        envDefault:"json"`
	LogLevel     string `env:"BUILDGRID_LOG_LEVEL"     envDefault:"info"`
	LogFormat    string `env:"BUILDGRID_LOG_FORMAT"    envDefault:"text"`
	OtelEnabled  bool   `env:"BUILDGRID_OTEL_ENABLED"`
	OtelEndpoint string `env:"BUILDGRID_OTEL_ENDPOINT"`
}

// Parse processes command-line arguments against the process environment.
// It returns a populated app.Config, a boolean indicating if the program
// should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	return ParseWithEnv(args, nil, output)
}

// ParseWithEnv is Parse with an explicit environment. A nil environ reads the
// process environment.
func ParseWithEnv(args []string, environ map[string]string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var envCfg envConfig
	if err := env.ParseWithOptions(&envCfg, env.Options{Environment: environ}); err != nil {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid environment: %v", err)}
	}

	flagSet := flag.NewFlagSet("buildgridgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
BuildGridGo - Relocates build outputs and evaluates multi-module build layouts in dependency order.

Usage:
  buildgridgo [options] <configure|clean> [LAYOUT_PATH]

Commands:
  configure
    Resolve output directories, evaluation order, SDK levels and signing, and print a report.
  clean
    Delete every computed output directory. Safe to run repeatedly.

Arguments:
  LAYOUT_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
		fmt.Fprint(output, `
Every option can also be set through its BUILDGRID_* environment variable
(BUILDGRID_LAYOUT, BUILDGRID_BASE_DIR, BUILDGRID_PROFILE, BUILDGRID_OUTPUT,
BUILDGRID_LOG_LEVEL, BUILDGRID_LOG_FORMAT). Flags take precedence.
`)
	}

	layoutFlag := flagSet.String("layout", envCfg.Layout, "Path to the layout file or directory.")
	lFlag := flagSet.String("l", "", "Path to the layout file or directory (shorthand).")
	baseDirFlag := flagSet.String("base-dir", envCfg.BaseDir, "Natural build directory of the root project.")
	profileFlag := flagSet.String("profile", envCfg.Profile, "Signing profile requested by every application module.")
	outputFlag := flagSet.String("output", envCfg.Output, "Report format. Options: 'json' or 'text'.")
	logFormatFlag := flagSet.String("log-format", envCfg.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", envCfg.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No command provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	if flagSet.NArg() > 2 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected arguments: %s", strings.Join(flagSet.Args()[2:], " "))}
	}

	command := flagSet.Arg(0)
	switch command {
	case app.CommandConfigure, app.CommandClean:
	default:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q: must be '%s' or '%s'", command, app.CommandConfigure, app.CommandClean)}
	}

	path := *layoutFlag
	if *lFlag != "" {
		path = *lFlag
	}
	if flagSet.NArg() > 1 {
		path = flagSet.Arg(1)
	}
	slog.Debug("Layout path determined.", "path", path)
	if path == "" {
		return nil, false, &ExitError{Code: 2, Message: "no layout path given: pass LAYOUT_PATH, -layout, or set BUILDGRID_LAYOUT"}
	}

	outputFormat := strings.ToLower(*outputFlag)
	if outputFormat != app.OutputJSON && outputFormat != app.OutputText {
		return nil, false, &ExitError{Code: 2, Message: "invalid output: must be 'json' or 'text'"}
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
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		Command:      command,
		LayoutPath:   path,
		BaseDir:      *baseDirFlag,
		Profile:      *profileFlag,
		Output:       outputFormat,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
		OtelEnabled:  envCfg.OtelEnabled,
		OtelEndpoint: envCfg.OtelEndpoint,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
