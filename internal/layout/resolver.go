package layout

import (
	"path/filepath"
	"strings"

	"github.com/specialistvlad/buildgridgo/internal/model"
)

// ResolveRootDirectory returns the shared output root: relocationPath
// resolved against baseDir. An absolute relocationPath is used as is.
// The result is cleaned, so repeated calls return identical values.
func ResolveRootDirectory(baseDir, relocationPath string) (model.Directory, error) {
	if baseDir == "" || !filepath.IsAbs(baseDir) {
		return "", &InvalidBaseError{Base: baseDir}
	}
	if filepath.IsAbs(relocationPath) {
		return model.Directory(filepath.Clean(relocationPath)), nil
	}
	return model.Directory(filepath.Join(baseDir, relocationPath)), nil
}

// ResolveSubprojectDirectory returns root/projectName. The name must be a
// single path element: empty names, separators, "." and ".." are rejected.
func ResolveSubprojectDirectory(root model.Directory, projectName string) (model.Directory, error) {
	if err := validateName(projectName); err != nil {
		return "", err
	}
	return model.Directory(filepath.Join(string(root), projectName)), nil
}

// ResolveOverrideDirectory returns root/override for a declared output
// directory override. Unlike project names an override may span several
// path elements, but it must stay relative and must not climb out of root.
func ResolveOverrideDirectory(root model.Directory, override string) (model.Directory, error) {
	if override == "" {
		return "", &InvalidNameError{Name: override, Reason: "override must not be empty"}
	}
	if filepath.IsAbs(override) || strings.HasPrefix(override, "/") || strings.HasPrefix(override, `\`) {
		return "", &InvalidNameError{Name: override, Reason: "override must be relative to the shared root"}
	}
	for _, segment := range splitSegments(override) {
		if segment == ".." {
			return "", &InvalidNameError{Name: override, Reason: "override must not contain '..' segments"}
		}
	}
	dir := filepath.Join(string(root), override)
	if dir == filepath.Clean(string(root)) {
		return "", &InvalidNameError{Name: override, Reason: "override must name a directory below the shared root"}
	}
	return model.Directory(dir), nil
}

// ResolveProjectDirectory resolves the directory of any node: the root itself
// for the root project, the override when declared, root/name otherwise.
func ResolveProjectDirectory(root model.Directory, node model.ProjectNode) (model.Directory, error) {
	switch {
	case node.IsRoot():
		return root, nil
	case node.BuildDirOverride != "":
		return ResolveOverrideDirectory(root, node.BuildDirOverride)
	default:
		return ResolveSubprojectDirectory(root, node.Name)
	}
}

// IsDescendant reports whether dir lies strictly below root.
func IsDescendant(root, dir model.Directory) bool {
	rel, err := filepath.Rel(string(root), string(dir))
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func validateName(name string) error {
	switch {
	case name == "":
		return &InvalidNameError{Name: name, Reason: "name must not be empty"}
	case filepath.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`):
		return &InvalidNameError{Name: name, Reason: "name must not be an absolute path"}
	case name == "." || name == "..":
		return &InvalidNameError{Name: name, Reason: "name must not be a relative path marker"}
	case strings.ContainsAny(name, `/\`):
		for _, segment := range splitSegments(name) {
			if segment == ".." {
				return &InvalidNameError{Name: name, Reason: "name must not contain '..' segments"}
			}
		}
		return &InvalidNameError{Name: name, Reason: "name must be a single path element"}
	}
	return nil
}

// splitSegments splits on both separators so that Windows-style names are
// checked the same way on every platform.
func splitSegments(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool { return r == '/' || r == '\\' })
}
