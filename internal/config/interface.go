package config

import (
	"context"

	"github.com/specialistvlad/buildgridgo/internal/model"
)

// Loader is the interface for a format-specific layout loader.
type Loader interface {
	// Load reads the layout from the given paths, translates it into the
	// format-agnostic model, and returns a matching Evaluator.
	Load(ctx context.Context, paths ...string) (*Model, Evaluator, error)
}

// Evaluator turns a project's raw attributes into concrete values. It is the
// bridge between the layout language and the coordinator.
type Evaluator interface {
	// References returns the names of the projects whose resolved values the
	// project's attributes read. Each one is an implicit ordering constraint.
	References(p *Project) []string

	// Evaluate resolves the project's attributes. scope holds every project
	// evaluated so far, keyed by name.
	Evaluate(ctx context.Context, p *Project, defaults *Defaults, scope map[string]*model.ResolvedProject) (*ProjectValues, error)
}

// ProjectValues are the evaluated attributes of one project. Pointer and
// empty fields were not declared.
type ProjectValues struct {
	ApplicationID  string
	Namespace      string
	Sdk            model.DeclaredSdk
	VersionCode    *int
	VersionName    string
	JavaVersion    *int
	SigningProfile string
}

// IsApplication reports whether the project declares an application
// identifier, which makes it a buildable, signable module.
func (v *ProjectValues) IsApplication() bool {
	return v.ApplicationID != ""
}
