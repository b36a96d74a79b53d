package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/buildgridgo/internal/app"
	"github.com/specialistvlad/buildgridgo/internal/hcl_adapter"
	"github.com/specialistvlad/buildgridgo/internal/layout"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	// Dir is the temporary directory the layout files were written to.
	Dir       string
	LogOutput string
	Err       error
	App       *app.App
	// Report is set by RunConfigure on success.
	Report *app.Report
	// CleanReport is set by RunClean on success.
	CleanReport layout.CleanReport
}

// Option adjusts the app configuration a harness run uses.
type Option func(cfg *app.Config)

// WithBaseDir overrides the root project's natural build directory.
func WithBaseDir(dir string) Option {
	return func(cfg *app.Config) { cfg.BaseDir = dir }
}

// WithProfile overrides the requested signing profile.
func WithProfile(name string) Option {
	return func(cfg *app.Config) { cfg.Profile = name }
}

// RunConfigure writes files into a fresh temporary directory and runs one
// configuration pass over them.
func RunConfigure(t *testing.T, files map[string]string, opts ...Option) *HarnessResult {
	t.Helper()
	return run(context.Background(), t, files, app.CommandConfigure, opts...)
}

// RunConfigureWithContext is RunConfigure with a caller-provided context.
func RunConfigureWithContext(ctx context.Context, t *testing.T, files map[string]string, opts ...Option) *HarnessResult {
	t.Helper()
	return run(ctx, t, files, app.CommandConfigure, opts...)
}

// RunClean writes files into a fresh temporary directory and cleans the
// layout they describe.
func RunClean(t *testing.T, files map[string]string, opts ...Option) *HarnessResult {
	t.Helper()
	return run(context.Background(), t, files, app.CommandClean, opts...)
}

func run(ctx context.Context, t *testing.T, files map[string]string, command string, opts ...Option) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	layoutDir := filepath.Join(tmpDir, "layout")
	require.NoError(t, os.Mkdir(layoutDir, 0755))
	WriteFiles(t, layoutDir, files)

	cfg := app.Config{
		Command:    command,
		LayoutPath: layoutDir,
		BaseDir:    filepath.Join(tmpDir, "work", "project", "build"),
		LogLevel:   "debug",
		LogFormat:  "text",
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}
	result := &HarnessResult{Dir: tmpDir}

	testApp, err := app.NewApp(ctx, &bytes.Buffer{}, logBuffer, appConfig, hcl_adapter.NewLoader())
	if err != nil {
		result.LogOutput = logBuffer.String()
		result.Err = err
		return result
	}
	result.App = testApp

	switch command {
	case app.CommandClean:
		result.CleanReport, result.Err = testApp.Clean(ctx)
	default:
		result.Report, result.Err = testApp.Configure(ctx)
	}

	if os.Getenv("BUILDGRID_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}
	result.LogOutput = logBuffer.String()
	return result
}

// WriteFiles writes each file below dir, creating parent directories. File
// contents are unindented so tests can keep HCL snippets indented.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		filePath := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(Unindent(content)+"\n"), 0644))
	}
}
