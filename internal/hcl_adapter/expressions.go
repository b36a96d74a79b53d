package hcl_adapter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

// traversalKey renders a traversal the way it is written, e.g.
// project.app.application_id, for logs and error messages.
func traversalKey(t hcl.Traversal) string {
	return strings.TrimSpace(string(hclwrite.TokensForTraversal(t).Bytes()))
}

// calledFunctions returns the sorted, unique names of every function called
// anywhere in exprs.
func calledFunctions(exprs map[string]hcl.Expression) []string {
	found := make(map[string]struct{})
	for _, expr := range exprs {
		if syntaxExpr, ok := expr.(hclsyntax.Expression); ok {
			walkForFunctions(syntaxExpr, found)
		}
	}
	names := make([]string, 0, len(found))
	for name := range found {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// checkFunctions rejects calls to functions the evaluation context does not
// provide, so a typo fails at load time rather than mid-pass.
func checkFunctions(projectName string, exprs map[string]hcl.Expression) error {
	available := functions()
	var unknown []string
	for _, name := range calledFunctions(exprs) {
		if _, ok := available[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("project %q: unknown functions: %s", projectName, strings.Join(unknown, ", "))
	}
	return nil
}

// walkForFunctions recursively walks the AST, looking only for function calls.
func walkForFunctions(expr hclsyntax.Expression, functions map[string]struct{}) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *hclsyntax.FunctionCallExpr:
		functions[e.Name] = struct{}{}
		for _, arg := range e.Args {
			walkForFunctions(arg, functions)
		}
	case *hclsyntax.BinaryOpExpr:
		walkForFunctions(e.LHS, functions)
		walkForFunctions(e.RHS, functions)
	case *hclsyntax.ConditionalExpr:
		walkForFunctions(e.Condition, functions)
		walkForFunctions(e.TrueResult, functions)
		walkForFunctions(e.FalseResult, functions)
	case *hclsyntax.UnaryOpExpr:
		walkForFunctions(e.Val, functions)
	case *hclsyntax.TemplateExpr:
		for _, part := range e.Parts {
			walkForFunctions(part, functions)
		}
	case *hclsyntax.TemplateWrapExpr:
		walkForFunctions(e.Wrapped, functions)
	case *hclsyntax.TupleConsExpr:
		for _, item := range e.Exprs {
			walkForFunctions(item, functions)
		}
	case *hclsyntax.ObjectConsExpr:
		for _, item := range e.Items {
			walkForFunctions(item.KeyExpr, functions)
			walkForFunctions(item.ValueExpr, functions)
		}
	case *hclsyntax.ForExpr:
		walkForFunctions(e.CollExpr, functions)
		walkForFunctions(e.KeyExpr, functions)
		walkForFunctions(e.ValExpr, functions)
		walkForFunctions(e.CondExpr, functions)
	case *hclsyntax.IndexExpr:
		walkForFunctions(e.Collection, functions)
		walkForFunctions(e.Key, functions)
	case *hclsyntax.SplatExpr:
		walkForFunctions(e.Source, functions)
		walkForFunctions(e.Each, functions)
	case *hclsyntax.ParenthesesExpr:
		walkForFunctions(e.Expression, functions)
	case *hclsyntax.RelativeTraversalExpr:
		walkForFunctions(e.Source, functions)
	}
}
