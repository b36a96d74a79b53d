package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/buildgridgo/internal/cli"
	"github.com/stretchr/testify/require"
)

func TestRun_ConfigureWritesReport(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	layout := `
settings {
  relocation = "../../build"
}

defaults {
  min_sdk_version     = 21
  target_sdk_version  = 34
  compile_sdk_version = 34
}

signing "debug" {}

project "app" {
  application_id = "com.example.app"
}

project "plugin" {}
`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(layout), 0600))
	base := filepath.Join(tempDir, "proj", "build")

	args := []string{"-base-dir", base, "-log-level", "error", "configure", filePath}
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, errOut, args)

	// --- Assert ---
	require.NoError(t, err, "stderr: %s", errOut.String())
	var report struct {
		Root             string   `json:"root"`
		Order            []string `json:"evaluation_order"`
		SigningFallbacks []string `json:"signing_fallbacks"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	require.Equal(t, filepath.Join(tempDir, "build"), report.Root)
	require.Equal(t, []string{"root", "app", "plugin"}, report.Order)
	require.Equal(t, []string{"app"}, report.SigningFallbacks)
}

func TestRun_InvalidLayoutFails(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	invalidHCL := `
		project "app" {
		// Missing closing brace here
	`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(invalidHCL), 0600), "failed to set up test file")

	// --- Act ---
	runErr := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"configure", filePath})

	// --- Assert ---
	require.Error(t, runErr)
	require.Contains(t, runErr.Error(), "failed to load layout")
	require.Contains(t, runErr.Error(), "failed to parse")
	var exitErr *cli.ExitError
	require.False(t, errors.As(runErr, &exitErr), "configuration errors exit with code 1, not a usage error")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	errOut := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), &bytes.Buffer{}, errOut, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, errOut.String(), "Usage:", "Expected help text to be printed to the error output")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Act ---
	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, 2, exitErr.Code)
}
