package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/buildgridgo/internal/model"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Default values applied when a layout omits them.
const (
	DefaultRootName = "root"
	DefaultPrimary  = "app"
)

// Model is the unified, format-agnostic representation of a build layout.
type Model struct {
	Settings *Settings
	Defaults *Defaults
	Signing  []model.SigningProfile
	Projects []*Project
}

// Settings holds the layout-wide values of the root project.
type Settings struct {
	// Name of the root project.
	Name string
	// Relocation rewrites the root's natural build directory.
	Relocation string
	// Primary names the project every sibling is evaluated after.
	Primary string
	// PrimaryExplicit is true when the layout named the primary itself.
	PrimaryExplicit bool
	// BaseDir is the root's natural build directory. Empty means
	// "<SourceDir>/build"; a relative value is taken from SourceDir.
	BaseDir string
	// SourceDir is the directory holding the file that declared the settings,
	// or the layout path itself when no settings block exists.
	SourceDir string
}

// Project is the format-agnostic representation of a `project` block.
type Project struct {
	Name       string
	Parent     string
	BuildDir   string
	DependsOn  []string
	Attributes map[string]hcl.Expression
	DeclRange  hcl.Range
}

// Node converts the project into the node shape used by the resolver and
// the coordinator.
func (p *Project) Node() model.ProjectNode {
	return model.ProjectNode{Name: p.Name, Parent: p.Parent, BuildDirOverride: p.BuildDir}
}

// Project returns the project named name.
func (m *Model) Project(name string) (*Project, bool) {
	for _, p := range m.Projects {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// RootNode returns the root aggregator node.
func (m *Model) RootNode() model.ProjectNode {
	return model.ProjectNode{Name: m.Settings.Name}
}

// Nodes returns the root followed by every project in declaration order.
func (m *Model) Nodes() []model.ProjectNode {
	nodes := []model.ProjectNode{m.RootNode()}
	for _, p := range m.Projects {
		nodes = append(nodes, p.Node())
	}
	return nodes
}

// Defaults holds the external defaults a layout supplies for values its
// projects leave undeclared, e.g. the SDK levels a toolchain ships with.
type Defaults struct {
	Values map[string]cty.Value
}

// Well-known default names.
const (
	DefaultMinSdk      = "min_sdk_version"
	DefaultTargetSdk   = "target_sdk_version"
	DefaultCompileSdk  = "compile_sdk_version"
	DefaultVersionCode = "version_code"
	DefaultVersionName = "version_name"
)

var sdkDefaultNames = map[model.SdkField]string{
	model.SdkMin:     DefaultMinSdk,
	model.SdkTarget:  DefaultTargetSdk,
	model.SdkCompile: DefaultCompileSdk,
}

// Int returns the named default as an int. A missing or null value returns
// ok == false.
func (d *Defaults) Int(name string) (v int, ok bool, err error) {
	if d == nil {
		return 0, false, nil
	}
	val, exists := d.Values[name]
	if !exists || val.IsNull() {
		return 0, false, nil
	}
	if err := decodeInt(val, &v); err != nil {
		return 0, false, fmt.Errorf("default %q: %w", name, err)
	}
	return v, true, nil
}

// String returns the named default as a string.
func (d *Defaults) String(name string) (string, bool, error) {
	if d == nil {
		return "", false, nil
	}
	val, exists := d.Values[name]
	if !exists || val.IsNull() {
		return "", false, nil
	}
	conv, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", false, fmt.Errorf("default %q: %w", name, err)
	}
	return conv.AsString(), true, nil
}

// Sdk returns the external SDK defaults. Missing fields are zero, which the
// coordinator rejects only when a module does not declare the field either.
func (d *Defaults) Sdk() (model.SdkVersions, error) {
	var out model.SdkVersions
	for _, field := range model.SdkFields {
		v, _, err := d.Int(sdkDefaultNames[field])
		if err != nil {
			return model.SdkVersions{}, err
		}
		out.Set(field, v)
	}
	return out, nil
}

// Object returns the defaults as a single cty object.
func (d *Defaults) Object() cty.Value {
	if d == nil || len(d.Values) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(d.Values)
}

func decodeInt(val cty.Value, target *int) error {
	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return err
	}
	if !num.AsBigFloat().IsInt() {
		return fmt.Errorf("%s is not a whole number", num.AsBigFloat().Text('f', -1))
	}
	return gocty.FromCtyValue(num, target)
}
