package hcl_adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/buildgridgo/internal/config"
	"github.com/specialistvlad/buildgridgo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLayout(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return dir
}

const androidLayout = `
settings {
  name       = "android"
  relocation = "../../build"
}

defaults {
  min_sdk_version     = 21
  target_sdk_version  = 34
  compile_sdk_version = 35
  version_name        = "1.0.0"
}

signing "debug" {
  store_file = "debug.keystore"
  key_alias  = "androiddebugkey"
}

project "app" {
  application_id  = "com.example.game_note_application"
  min_sdk         = defaults.min_sdk_version
  signing_profile = "release"
  java_version    = 11
}
`

func TestLoad_SingleFile(t *testing.T) {
	dir := writeLayout(t, map[string]string{"settings.hcl": androidLayout})

	m, eval, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.NotNil(t, eval)

	assert.Equal(t, "android", m.Settings.Name)
	assert.Equal(t, "../../build", m.Settings.Relocation)
	assert.Equal(t, config.DefaultPrimary, m.Settings.Primary)
	assert.False(t, m.Settings.PrimaryExplicit)
	assert.Equal(t, dir, m.Settings.SourceDir)

	sdk, err := m.Defaults.Sdk()
	require.NoError(t, err)
	assert.Equal(t, model.SdkVersions{Min: 21, Target: 34, Compile: 35}, sdk)

	require.Len(t, m.Signing, 1)
	assert.Equal(t, model.SigningProfile{Name: "debug", StoreFile: "debug.keystore", KeyAlias: "androiddebugkey"}, m.Signing[0])

	require.Len(t, m.Projects, 1)
	app := m.Projects[0]
	assert.Equal(t, "app", app.Name)
	assert.Equal(t, "android", app.Parent, "parent defaults to the root project")
	assert.Len(t, app.Attributes, 4)
}

func TestLoad_MergesFiles(t *testing.T) {
	dir := writeLayout(t, map[string]string{
		"settings.hcl": `settings { primary = "app" }`,
		"modules/app.hcl": `project "app" {
  application_id = "com.example.app"
}`,
		"modules/plugin.hcl": `project "camera" {
  build_dir  = "plugins/camera"
  depends_on = ["app"]
}`,
	})

	m, _, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	assert.True(t, m.Settings.PrimaryExplicit)
	assert.Equal(t, config.DefaultRootName, m.Settings.Name)
	require.Len(t, m.Projects, 2)

	camera, ok := m.Project("camera")
	require.True(t, ok)
	assert.Equal(t, "plugins/camera", camera.BuildDir)
	assert.Equal(t, []string{"app"}, camera.DependsOn)
	assert.Empty(t, camera.Attributes)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		files   map[string]string
		errText string
	}{
		{
			name:    "syntax error",
			files:   map[string]string{"a.hcl": `project "app" {`},
			errText: "failed to parse",
		},
		{
			name:    "unknown block",
			files:   map[string]string{"a.hcl": `task "x" {}`},
			errText: "failed to decode",
		},
		{
			name: "duplicate project",
			files: map[string]string{
				"a.hcl": `project "app" {}`,
				"b.hcl": `project "app" {}`,
			},
			errText: `duplicate project "app"`,
		},
		{
			name: "duplicate settings",
			files: map[string]string{
				"a.hcl": `settings {}`,
				"b.hcl": `settings {}`,
			},
			errText: "duplicate settings block",
		},
		{
			name: "duplicate signing",
			files: map[string]string{
				"a.hcl": "signing \"debug\" {}\nsigning \"debug\" {}",
			},
			errText: `duplicate signing profile "debug"`,
		},
		{
			name: "duplicate default",
			files: map[string]string{
				"a.hcl": "defaults {\n  version_code = 1\n}",
				"b.hcl": "defaults {\n  version_code = 2\n}",
			},
			errText: `default "version_code" declared more than once`,
		},
		{
			name:    "unsupported project attribute",
			files:   map[string]string{"a.hcl": "project \"app\" {\n  minSdkVersion = 21\n}"},
			errText: "unsupported attributes",
		},
		{
			name:    "unknown function",
			files:   map[string]string{"a.hcl": "project \"app\" {\n  namespace = title(\"x\")\n}"},
			errText: "unknown functions: title",
		},
		{
			name:    "defaults cannot reference variables",
			files:   map[string]string{"a.hcl": "defaults {\n  min_sdk_version = project.app.min_sdk\n}"},
			errText: `default "min_sdk_version"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := writeLayout(t, tc.files)
			_, _, err := NewLoader().Load(context.Background(), dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errText)
		})
	}
}

func TestLoad_NoFiles(t *testing.T) {
	_, _, err := NewLoader().Load(context.Background(), t.TempDir())
	assert.ErrorContains(t, err, "no .hcl layout files found")
}

func TestLoad_SettingsFreeLayoutAnchorsToFileDir(t *testing.T) {
	dir := writeLayout(t, map[string]string{"layout.hcl": `project "app" {}`})

	m, _, err := NewLoader().Load(context.Background(), filepath.Join(dir, "layout.hcl"))
	require.NoError(t, err)
	assert.Equal(t, dir, m.Settings.SourceDir)
	assert.Equal(t, config.DefaultRootName, m.Projects[0].Parent)
}
