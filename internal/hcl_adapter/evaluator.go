package hcl_adapter

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/buildgridgo/internal/config"
	"github.com/specialistvlad/buildgridgo/internal/ctxlog"
	"github.com/specialistvlad/buildgridgo/internal/model"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Variable roots visible to project expressions.
const (
	varDefaults = "defaults"
	varProject  = "project"
)

// Evaluator is the HCL-specific implementation of config.Evaluator.
type Evaluator struct{}

// NewEvaluator creates a new HCL evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

func functions() map[string]function.Function {
	return map[string]function.Function{
		"upper":    stdlib.UpperFunc,
		"lower":    stdlib.LowerFunc,
		"format":   stdlib.FormatFunc,
		"max":      stdlib.MaxFunc,
		"min":      stdlib.MinFunc,
		"coalesce": stdlib.CoalesceFunc,
	}
}

// References returns, sorted, every project name read through
// `project.<name>` or `project["<name>"]` in p's attributes.
func (e *Evaluator) References(p *config.Project) []string {
	seen := make(map[string]struct{})
	for attr, expr := range p.Attributes {
		for _, traversal := range expr.Variables() {
			if name, ok := referencedProject(traversal); ok {
				seen[name] = struct{}{}
				slog.Debug("Project reference found.", "project", p.Name, "attribute", attr, "reference", traversalKey(traversal))
			}
		}
	}
	refs := make([]string, 0, len(seen))
	for name := range seen {
		refs = append(refs, name)
	}
	sort.Strings(refs)
	return refs
}

func referencedProject(t hcl.Traversal) (string, bool) {
	if t.RootName() != varProject || len(t) < 2 {
		return "", false
	}
	switch step := t[1].(type) {
	case hcl.TraverseAttr:
		return step.Name, true
	case hcl.TraverseIndex:
		if step.Key.Type() == cty.String && step.Key.IsKnown() && !step.Key.IsNull() {
			return step.Key.AsString(), true
		}
	}
	return "", false
}

// Evaluate resolves every declared attribute of p against the defaults and
// the projects evaluated so far.
func (e *Evaluator) Evaluate(ctx context.Context, p *config.Project, defaults *config.Defaults, scope map[string]*model.ResolvedProject) (*config.ProjectValues, error) {
	logger := ctxlog.FromContext(ctx)
	evalCtx := buildEvalContext(defaults, scope)
	logger.Debug("Built HCL evaluation context.", "visible_projects", len(scope))

	values := &config.ProjectValues{}
	var err error

	if values.ApplicationID, err = evalString(evalCtx, p, attrApplicationID); err != nil {
		return nil, err
	}
	if values.Namespace, err = evalString(evalCtx, p, attrNamespace); err != nil {
		return nil, err
	}
	if values.VersionName, err = evalString(evalCtx, p, attrVersionName); err != nil {
		return nil, err
	}
	if values.SigningProfile, err = evalString(evalCtx, p, attrSigningProfile); err != nil {
		return nil, err
	}
	if values.Sdk.Min, err = evalInt(evalCtx, p, attrMinSdk); err != nil {
		return nil, err
	}
	if values.Sdk.Target, err = evalInt(evalCtx, p, attrTargetSdk); err != nil {
		return nil, err
	}
	if values.Sdk.Compile, err = evalInt(evalCtx, p, attrCompileSdk); err != nil {
		return nil, err
	}
	if values.VersionCode, err = evalInt(evalCtx, p, attrVersionCode); err != nil {
		return nil, err
	}
	if values.JavaVersion, err = evalInt(evalCtx, p, attrJavaVersion); err != nil {
		return nil, err
	}

	logger.Debug("Project attributes evaluated.", "application_id", values.ApplicationID)
	return values, nil
}

// buildEvalContext exposes the defaults and the resolved projects to HCL.
func buildEvalContext(defaults *config.Defaults, scope map[string]*model.ResolvedProject) *hcl.EvalContext {
	projects := make(map[string]cty.Value, len(scope))
	for name, rp := range scope {
		projects[name] = projectObject(rp)
	}
	projectVal := cty.EmptyObjectVal
	if len(projects) > 0 {
		projectVal = cty.ObjectVal(projects)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			varDefaults: defaults.Object(),
			varProject:  projectVal,
		},
		Functions: functions(),
	}
}

// projectObject renders a resolved project with a fixed set of attributes;
// undeclared values are typed nulls so references fail only on typos.
func projectObject(rp *model.ResolvedProject) cty.Value {
	str := func(s string) cty.Value {
		if s == "" {
			return cty.NullVal(cty.String)
		}
		return cty.StringVal(s)
	}
	num := func(v int, set bool) cty.Value {
		if !set {
			return cty.NullVal(cty.Number)
		}
		return cty.NumberIntVal(int64(v))
	}

	var sdk model.SdkVersions
	if rp.Sdk != nil {
		sdk = *rp.Sdk
	}
	return cty.ObjectVal(map[string]cty.Value{
		"name":            cty.StringVal(rp.Name),
		"build_dir":       cty.StringVal(rp.BuildDir.String()),
		attrApplicationID: str(rp.ApplicationID),
		attrNamespace:     str(rp.Namespace),
		attrVersionName:   str(rp.VersionName),
		attrMinSdk:        num(sdk.Min, rp.Sdk != nil),
		attrTargetSdk:     num(sdk.Target, rp.Sdk != nil),
		attrCompileSdk:    num(sdk.Compile, rp.Sdk != nil),
		attrVersionCode:   num(rp.VersionCode, rp.VersionCode != 0),
		attrJavaVersion:   num(rp.JavaVersion, rp.JavaVersion != 0),
	})
}

func evalValue(evalCtx *hcl.EvalContext, p *config.Project, name string) (cty.Value, bool, error) {
	expr, ok := p.Attributes[name]
	if !ok {
		return cty.NilVal, false, nil
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return cty.NilVal, false, fmt.Errorf("project %q attribute %q: %w", p.Name, name, diags)
	}
	if val.IsNull() {
		return cty.NilVal, false, nil
	}
	if !val.IsWhollyKnown() {
		return cty.NilVal, false, fmt.Errorf("project %q attribute %q: value is not known", p.Name, name)
	}
	return val, true, nil
}
