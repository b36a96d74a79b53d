package hcl_adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/buildgridgo/internal/config"
	"github.com/specialistvlad/buildgridgo/internal/ctxlog"
	"github.com/specialistvlad/buildgridgo/internal/fsutil"
	"github.com/specialistvlad/buildgridgo/internal/model"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL layout loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file found under paths and merges their blocks into
// one model. Duplicate project or signing names and repeated settings blocks
// are errors, so no file silently overrides another.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, config.Evaluator, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(".hcl", paths...)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no .hcl layout files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	m := &config.Model{Defaults: &config.Defaults{}}
	parser := hclparse.NewParser()
	var settingsRange *hcl.Range
	signingRanges := make(map[string]hcl.Range)
	projectRanges := make(map[string]hcl.Range)

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, s := range root.Settings {
			rng := hclFile.Body.MissingItemRange()
			if settingsRange != nil {
				return nil, nil, fmt.Errorf("%s: duplicate settings block, first declared in %s", file, settingsRange.Filename)
			}
			settingsRange = &rng
			m.Settings = translateSettings(s, filepath.Dir(file))
		}

		for _, d := range root.Defaults {
			if err := mergeDefaults(m.Defaults, d); err != nil {
				return nil, nil, fmt.Errorf("%s: %w", file, err)
			}
		}

		for _, s := range root.Signing {
			if first, dup := signingRanges[s.Name]; dup {
				return nil, nil, fmt.Errorf("%s: duplicate signing profile %q, first declared in %s", file, s.Name, first.Filename)
			}
			signingRanges[s.Name] = hclFile.Body.MissingItemRange()
			m.Signing = append(m.Signing, translateSigning(s))
		}

		for _, p := range root.Projects {
			rng := p.Body.MissingItemRange()
			if first, dup := projectRanges[p.Name]; dup {
				return nil, nil, fmt.Errorf("%s: duplicate project %q, first declared at %s", rng.String(), p.Name, first.String())
			}
			projectRanges[p.Name] = rng
			project, err := translateProject(ctx, p)
			if err != nil {
				return nil, nil, err
			}
			m.Projects = append(m.Projects, project)
		}
	}

	if m.Settings == nil {
		m.Settings = translateSettings(&Settings{}, layoutDir(paths))
	}
	for _, p := range m.Projects {
		if p.Parent == "" {
			p.Parent = m.Settings.Name
		}
	}

	logger.Debug("HCL loading complete.", "projects", len(m.Projects), "signing_profiles", len(m.Signing), "defaults", len(m.Defaults.Values))
	return m, NewEvaluator(), nil
}

func translateSettings(s *Settings, sourceDir string) *config.Settings {
	out := &config.Settings{
		Name:            s.Name,
		Relocation:      s.Relocation,
		Primary:         s.Primary,
		PrimaryExplicit: s.Primary != "",
		BaseDir:         s.BaseDir,
		SourceDir:       sourceDir,
	}
	if out.Name == "" {
		out.Name = config.DefaultRootName
	}
	if out.Primary == "" {
		out.Primary = config.DefaultPrimary
	}
	return out
}

func translateSigning(s *Signing) model.SigningProfile {
	return model.SigningProfile{
		Name:             s.Name,
		StoreFile:        s.StoreFile,
		KeyAlias:         s.KeyAlias,
		StorePasswordEnv: s.StorePasswordEnv,
		KeyPasswordEnv:   s.KeyPasswordEnv,
	}
}

// layoutDir picks the directory a settings-less layout is anchored to: the
// first path, or its parent when it names a file.
func layoutDir(paths []string) string {
	if len(paths) == 0 {
		return "."
	}
	info, err := os.Stat(paths[0])
	if err == nil && !info.IsDir() {
		return filepath.Dir(paths[0])
	}
	return paths[0]
}
