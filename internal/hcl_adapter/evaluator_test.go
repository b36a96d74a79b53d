package hcl_adapter

import (
	"context"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/buildgridgo/internal/config"
	"github.com/specialistvlad/buildgridgo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func project(t *testing.T, name string, attrs map[string]string) *config.Project {
	t.Helper()
	exprs := make(map[string]hcl.Expression, len(attrs))
	for k, src := range attrs {
		expr, diags := hclsyntax.ParseExpression([]byte(src), k+".hcl", hcl.InitialPos)
		require.False(t, diags.HasErrors(), diags.Error())
		exprs[k] = expr
	}
	return &config.Project{Name: name, Parent: "android", Attributes: exprs}
}

func testDefaults() *config.Defaults {
	return &config.Defaults{Values: map[string]cty.Value{
		config.DefaultMinSdk:      cty.NumberIntVal(21),
		config.DefaultTargetSdk:   cty.NumberIntVal(34),
		config.DefaultVersionName: cty.StringVal("1.2.0"),
	}}
}

func TestReferences(t *testing.T) {
	p := project(t, "plugin", map[string]string{
		attrApplicationID: `project.app.application_id`,
		attrMinSdk:        `max(project["core"].min_sdk, defaults.min_sdk_version)`,
		attrVersionName:   `defaults.version_name`,
	})

	assert.Equal(t, []string{"app", "core"}, NewEvaluator().References(p))
	assert.Empty(t, NewEvaluator().References(project(t, "lone", nil)))
}

func TestEvaluate_LiteralsAndDefaults(t *testing.T) {
	p := project(t, "app", map[string]string{
		attrApplicationID:  `"com.example.game_note_application"`,
		attrMinSdk:         `23`,
		attrTargetSdk:      `defaults.target_sdk_version`,
		attrVersionName:    `format("%s-beta", defaults.version_name)`,
		attrVersionCode:    `"7"`,
		attrJavaVersion:    `11`,
		attrSigningProfile: `lower("RELEASE")`,
	})

	v, err := NewEvaluator().Evaluate(context.Background(), p, testDefaults(), nil)
	require.NoError(t, err)

	assert.Equal(t, "com.example.game_note_application", v.ApplicationID)
	assert.True(t, v.IsApplication())
	assert.Empty(t, v.Namespace)
	require.NotNil(t, v.Sdk.Min)
	assert.Equal(t, 23, *v.Sdk.Min)
	require.NotNil(t, v.Sdk.Target)
	assert.Equal(t, 34, *v.Sdk.Target)
	assert.Nil(t, v.Sdk.Compile)
	assert.Equal(t, "1.2.0-beta", v.VersionName)
	require.NotNil(t, v.VersionCode)
	assert.Equal(t, 7, *v.VersionCode)
	require.NotNil(t, v.JavaVersion)
	assert.Equal(t, 11, *v.JavaVersion)
	assert.Equal(t, "release", v.SigningProfile)
}

func TestEvaluate_ReadsEvaluatedProjects(t *testing.T) {
	scope := map[string]*model.ResolvedProject{
		"app": {
			Name:          "app",
			BuildDir:      "/build/app",
			ApplicationID: "com.example.app",
			Sdk:           &model.SdkVersions{Min: 23, Target: 34, Compile: 35},
		},
	}
	p := project(t, "wear", map[string]string{
		attrApplicationID: `project.app.application_id`,
		attrMinSdk:        `project.app.min_sdk`,
		attrNamespace:     `coalesce(project.app.namespace, "com.example.wear")`,
	})

	v, err := NewEvaluator().Evaluate(context.Background(), p, testDefaults(), scope)
	require.NoError(t, err)
	assert.Equal(t, "com.example.app", v.ApplicationID)
	require.NotNil(t, v.Sdk.Min)
	assert.Equal(t, 23, *v.Sdk.Min)
	assert.Equal(t, "com.example.wear", v.Namespace)
}

func TestEvaluate_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		attrs   map[string]string
		errText string
	}{
		{name: "unevaluated project", attrs: map[string]string{attrApplicationID: `project.app.application_id`}, errText: `attribute "application_id"`},
		{name: "fractional sdk", attrs: map[string]string{attrMinSdk: `21.5`}, errText: "not a whole number"},
		{name: "non numeric sdk", attrs: map[string]string{attrTargetSdk: `"latest"`}, errText: `attribute "target_sdk"`},
		{name: "unknown default", attrs: map[string]string{attrCompileSdk: `defaults.ndk_version`}, errText: `attribute "compile_sdk"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewEvaluator().Evaluate(context.Background(), project(t, "plugin", tc.attrs), testDefaults(), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errText)
		})
	}
}

func TestEvaluate_NullMeansUndeclared(t *testing.T) {
	scope := map[string]*model.ResolvedProject{"lib": {Name: "lib", BuildDir: "/build/lib"}}
	p := project(t, "app", map[string]string{attrMinSdk: `project.lib.min_sdk`})

	v, err := NewEvaluator().Evaluate(context.Background(), p, testDefaults(), scope)
	require.NoError(t, err)
	assert.Nil(t, v.Sdk.Min)
}
