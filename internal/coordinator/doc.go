// Package coordinator orders the evaluation of project nodes and owns the
// cross-module decisions of a configuration pass.
//
// Ordering constraints are kept in a dag.Graph: a dependent is never
// evaluated before every primary it declared. Beside ordering, the package
// resolves signing profiles (with an explicit, logged debug fallback), SDK
// version fields (declared value over external default) and reconciles values
// that several modules must agree on, such as the application identifier.
//
// Every failure is a typed error so that drivers can tell them apart with
// errors.As; none of them is worth retrying because resolution is
// deterministic.
package coordinator
