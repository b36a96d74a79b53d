package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/specialistvlad/buildgridgo/internal/ctxlog"
	"github.com/specialistvlad/buildgridgo/internal/layout"
	"github.com/specialistvlad/buildgridgo/internal/model"
)

// directories is the output of the path-resolution stage.
type directories struct {
	Root   model.Directory
	ByName map[string]model.Directory
}

// All returns every directory, root first, then projects in layout order.
func (d *directories) All(nodes []model.ProjectNode) []model.Directory {
	out := make([]model.Directory, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, d.ByName[n.Name])
	}
	return out
}

// baseDir picks the root's natural build directory: the CLI/environment
// override, then the layout's base_dir, then "<layout dir>/build".
func (a *App) baseDir() (string, error) {
	base := a.cfg.BaseDir
	if base == "" {
		s := a.model.Settings
		switch {
		case s.BaseDir == "":
			base = filepath.Join(s.SourceDir, "build")
		case filepath.IsAbs(s.BaseDir):
			base = s.BaseDir
		default:
			base = filepath.Join(s.SourceDir, s.BaseDir)
		}
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("resolving base directory %q: %w", base, err)
	}
	return abs, nil
}

// resolveDirectories computes the output directory of every node from one
// shared root. It performs no filesystem writes.
func (a *App) resolveDirectories(ctx context.Context) (*directories, error) {
	logger := ctxlog.FromContext(ctx)

	base, err := a.baseDir()
	if err != nil {
		return nil, err
	}
	root, err := layout.ResolveRootDirectory(base, a.model.Settings.Relocation)
	if err != nil {
		return nil, err
	}
	logger.Debug("Shared output root resolved.", "base", base, "relocation", a.model.Settings.Relocation, "root", root.String())

	dirs := &directories{Root: root, ByName: make(map[string]model.Directory)}
	owners := make(map[model.Directory]string)
	for _, node := range a.model.Nodes() {
		if _, dup := dirs.ByName[node.Name]; dup {
			return nil, fmt.Errorf("project %q has the same name as the root project", node.Name)
		}
		dir, err := layout.ResolveProjectDirectory(root, node)
		if err != nil {
			return nil, fmt.Errorf("resolving output directory of %s: %w", node, err)
		}
		if owner, taken := owners[dir]; taken {
			return nil, fmt.Errorf("projects %q and %q both write to %s", owner, node.Name, dir)
		}
		owners[dir] = node.Name
		dirs.ByName[node.Name] = dir
		logger.Debug("Project output directory resolved.", "project", node.Name, "directory", dir.String())
	}
	return dirs, nil
}
