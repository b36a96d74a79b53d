package app

import (
	"errors"
	"fmt"
)

// Commands understood by App.
const (
	CommandConfigure = "configure"
	CommandClean     = "clean"
)

// Output formats for reports.
const (
	OutputJSON = "json"
	OutputText = "text"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command    string
	LayoutPath string // hcl files
	// BaseDir overrides the root project's natural build directory.
	BaseDir string
	// Profile overrides the signing profile requested by every application module.
	Profile string
	Output  string

	LogFormat string
	LogLevel  string

	OtelEnabled  bool
	OtelEndpoint string
}

// NewConfig validates cfg and returns a copy with defaults applied.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LayoutPath == "" {
		return nil, errors.New("LayoutPath is a required configuration field and cannot be empty")
	}
	switch cfg.Command {
	case "":
		cfg.Command = CommandConfigure
	case CommandConfigure, CommandClean:
	default:
		return nil, fmt.Errorf("unknown command %q: must be '%s' or '%s'", cfg.Command, CommandConfigure, CommandClean)
	}
	switch cfg.Output {
	case "":
		cfg.Output = OutputJSON
	case OutputJSON, OutputText:
	default:
		return nil, fmt.Errorf("unknown output format %q: must be '%s' or '%s'", cfg.Output, OutputJSON, OutputText)
	}
	return &cfg, nil
}
