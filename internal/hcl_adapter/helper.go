package hcl_adapter

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/buildgridgo/internal/config"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// evalString evaluates an optional string attribute; "" means undeclared.
func evalString(evalCtx *hcl.EvalContext, p *config.Project, name string) (string, error) {
	val, ok, err := evalValue(evalCtx, p, name)
	if err != nil || !ok {
		return "", err
	}
	conv, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("project %q attribute %q: %w", p.Name, name, err)
	}
	return conv.AsString(), nil
}

// evalInt evaluates an optional whole-number attribute; nil means undeclared.
func evalInt(evalCtx *hcl.EvalContext, p *config.Project, name string) (*int, error) {
	val, ok, err := evalValue(evalCtx, p, name)
	if err != nil || !ok {
		return nil, err
	}
	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return nil, fmt.Errorf("project %q attribute %q: %w", p.Name, name, err)
	}
	if !num.AsBigFloat().IsInt() {
		return nil, fmt.Errorf("project %q attribute %q: %s is not a whole number", p.Name, name, num.AsBigFloat().Text('f', -1))
	}
	var out int
	if err := gocty.FromCtyValue(num, &out); err != nil {
		return nil, fmt.Errorf("project %q attribute %q: %w", p.Name, name, err)
	}
	return &out, nil
}
