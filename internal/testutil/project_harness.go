package testutil

import (
	"fmt"
	"testing"

	"github.com/specialistvlad/buildgridgo/internal/model"
	"github.com/stretchr/testify/require"
)

// ProjectTestCase defines a single scenario for a lone `project "app"` block.
type ProjectTestCase struct {
	Name string
	// HCL holds only the content *inside* the `project "app" { ... }` block.
	HCL string
	// ExpectErr should be true if the configuration pass must fail.
	ExpectErr bool
	// ErrContains is a substring that must appear in the error message if ExpectErr is true.
	ErrContains string
	// Validate performs assertions on the resolved project. It is only called
	// if ExpectErr is false.
	Validate func(t *testing.T, p *model.ResolvedProject)
}

// projectPrelude supplies the defaults and signing profiles every project
// case is evaluated against.
const projectPrelude = `
defaults {
  min_sdk_version     = 21
  target_sdk_version  = 34
  compile_sdk_version = 34
  version_code        = 1
  version_name        = "1.0.0"
}

signing "debug" {
  key_alias = "androiddebugkey"
}

signing "release" {
  key_alias = "upload"
}
`

// RunProjectTests runs each case through a full configuration pass and
// hands the resolved "app" project to its Validate func.
func RunProjectTests(t *testing.T, cases []ProjectTestCase) {
	t.Helper()

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			files := map[string]string{
				"defaults.hcl": projectPrelude,
				"app.hcl":      fmt.Sprintf("project \"app\" {\n%s\n}", Unindent(tc.HCL)),
			}
			result := RunConfigure(t, files)

			if tc.ExpectErr {
				require.Error(t, result.Err, "expected the configuration pass to fail")
				if tc.ErrContains != "" {
					require.Contains(t, result.Err.Error(), tc.ErrContains)
				}
				return
			}

			require.NoError(t, result.Err)
			p, ok := result.Report.Project("app")
			require.True(t, ok, "project app missing from report")
			if tc.Validate != nil {
				tc.Validate(t, p)
			}
		})
	}
}
