// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines ProjectNode and Directory, the two values the path
// resolver and the evaluation coordinator agree on.
package model

// ProjectNode identifies a build unit: the root aggregator or a subproject.
type ProjectNode struct {
	// Name is unique across the layout.
	Name string
	// Parent is empty for the root project.
	Parent string
	// BuildDirOverride is an optional path relative to the shared root that
	// replaces the default <root>/<Name> location.
	BuildDirOverride string
}

// IsRoot reports whether the node is the root aggregator.
func (n ProjectNode) IsRoot() bool {
	return n.Parent == ""
}

// String returns the Gradle-style path of the node, e.g. ":app".
func (n ProjectNode) String() string {
	if n.IsRoot() {
		return ":"
	}
	return ":" + n.Name
}

// Directory is an absolute, cleaned build-output path.
type Directory string

// String implements fmt.Stringer.
func (d Directory) String() string {
	return string(d)
}

// EvaluationConstraint records that Dependent must not be evaluated before
// Primary's configuration is final.
type EvaluationConstraint struct {
	Dependent string `json:"dependent"`
	Primary   string `json:"primary"`
}
