// This file contains the logic for translating HCL schema structs into the
// format-agnostic configuration model defined in the config package.

package hcl_adapter

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/buildgridgo/internal/config"
	"github.com/specialistvlad/buildgridgo/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// translateProject converts the HCL-specific project schema into the agnostic
// model. Only the known attribute names are accepted in the remaining body.
func translateProject(ctx context.Context, p *Project) (*config.Project, error) {
	logger := ctxlog.FromContext(ctx).With("project", p.Name)
	logger.Debug("Translating HCL project to internal config model.")

	attrs, diags := p.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("project %q: %w", p.Name, diags)
	}

	exprs := make(map[string]hcl.Expression, len(attrs))
	var unknown []string
	for name, attr := range attrs {
		if _, ok := projectAttributes[name]; !ok {
			unknown = append(unknown, fmt.Sprintf("%s (%s)", name, attr.NameRange.String()))
			continue
		}
		exprs[name] = attr.Expr
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("project %q: unsupported attributes: %v", p.Name, unknown)
	}

	if err := checkFunctions(p.Name, exprs); err != nil {
		return nil, err
	}

	logger.Debug("Project translated.", "attributes", len(exprs), "depends_on", p.DependsOn)
	return &config.Project{
		Name:       p.Name,
		Parent:     p.Parent,
		BuildDir:   p.BuildDir,
		DependsOn:  p.DependsOn,
		Attributes: exprs,
		DeclRange:  p.Body.MissingItemRange(),
	}, nil
}

// mergeDefaults evaluates the attributes of a defaults block and adds them to
// target. Defaults are constants: they may call functions but not reference
// variables. Declaring the same name twice is an error.
func mergeDefaults(target *config.Defaults, d *Defaults) error {
	attrs, diags := d.Body.JustAttributes()
	if diags.HasErrors() {
		return fmt.Errorf("defaults: %w", diags)
	}
	if target.Values == nil {
		target.Values = make(map[string]cty.Value, len(attrs))
	}

	evalCtx := &hcl.EvalContext{Functions: functions()}
	for name, attr := range attrs {
		if _, dup := target.Values[name]; dup {
			return fmt.Errorf("default %q declared more than once (%s)", name, attr.NameRange.String())
		}
		val, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return fmt.Errorf("default %q: %w", name, diags)
		}
		target.Values[name] = val
	}
	return nil
}
