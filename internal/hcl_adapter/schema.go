package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Settings []*Settings `hcl:"settings,block"`
	Defaults []*Defaults `hcl:"defaults,block"`
	Signing  []*Signing  `hcl:"signing,block"`
	Projects []*Project  `hcl:"project,block"`
}

// Settings represents the `settings` block describing the root project.
type Settings struct {
	Name       string `hcl:"name,optional"`
	Relocation string `hcl:"relocation,optional"`
	Primary    string `hcl:"primary,optional"`
	BaseDir    string `hcl:"base_dir,optional"`
}

// Defaults represents a `defaults` block. Its attributes are free-form.
type Defaults struct {
	Body hcl.Body `hcl:",remain"`
}

// Signing represents a `signing "<name>"` block.
type Signing struct {
	Name             string `hcl:"name,label"`
	StoreFile        string `hcl:"store_file,optional"`
	KeyAlias         string `hcl:"key_alias,optional"`
	StorePasswordEnv string `hcl:"store_password_env,optional"`
	KeyPasswordEnv   string `hcl:"key_password_env,optional"`
}

// Project represents a `project "<name>"` block. Structural attributes are
// decoded directly; everything else is kept as expressions in Body.
type Project struct {
	Name      string   `hcl:"name,label"`
	Parent    string   `hcl:"parent,optional"`
	BuildDir  string   `hcl:"build_dir,optional"`
	DependsOn []string `hcl:"depends_on,optional"`
	Body      hcl.Body `hcl:",remain"`
}

// Attribute names accepted in the remaining body of a project block.
const (
	attrApplicationID  = "application_id"
	attrNamespace      = "namespace"
	attrMinSdk         = "min_sdk"
	attrTargetSdk      = "target_sdk"
	attrCompileSdk     = "compile_sdk"
	attrVersionCode    = "version_code"
	attrVersionName    = "version_name"
	attrJavaVersion    = "java_version"
	attrSigningProfile = "signing_profile"
)

var projectAttributes = map[string]struct{}{
	attrApplicationID:  {},
	attrNamespace:      {},
	attrMinSdk:         {},
	attrTargetSdk:      {},
	attrCompileSdk:     {},
	attrVersionCode:    {},
	attrVersionName:    {},
	attrJavaVersion:    {},
	attrSigningProfile: {},
}
