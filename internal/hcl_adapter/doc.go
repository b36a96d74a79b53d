// Package hcl_adapter implements config.Loader and config.Evaluator for
// layouts written in HCL.
//
// Loading decodes the top-level `settings`, `defaults`, `signing` and
// `project` blocks of every file with gohcl and merges them into a single
// config.Model. Project attributes stay as hcl.Expression until evaluation,
// where they see two variables: `defaults` (the external defaults) and
// `project` (every project evaluated so far), plus a few cty stdlib functions.
package hcl_adapter
