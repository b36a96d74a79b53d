// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the SDK version fields shared by every buildable module.
package model

// SdkField names one of the three platform version fields.
type SdkField string

const (
	SdkMin     SdkField = "min"
	SdkTarget  SdkField = "target"
	SdkCompile SdkField = "compile"
)

// SdkFields lists the fields in resolution order.
var SdkFields = []SdkField{SdkMin, SdkTarget, SdkCompile}

// SdkVersions holds resolved platform version levels.
type SdkVersions struct {
	Min     int `json:"min"`
	Target  int `json:"target"`
	Compile int `json:"compile"`
}

// Get returns the value of a single field.
func (v SdkVersions) Get(f SdkField) int {
	switch f {
	case SdkMin:
		return v.Min
	case SdkTarget:
		return v.Target
	case SdkCompile:
		return v.Compile
	}
	return 0
}

// Set assigns the value of a single field.
func (v *SdkVersions) Set(f SdkField, value int) {
	switch f {
	case SdkMin:
		v.Min = value
	case SdkTarget:
		v.Target = value
	case SdkCompile:
		v.Compile = value
	}
}

// DeclaredSdk holds optional per-module declarations. A nil field means the
// module did not declare it.
type DeclaredSdk struct {
	Min     *int
	Target  *int
	Compile *int
}

// Get returns the declaration of a single field.
func (d DeclaredSdk) Get(f SdkField) *int {
	switch f {
	case SdkMin:
		return d.Min
	case SdkTarget:
		return d.Target
	case SdkCompile:
		return d.Compile
	}
	return nil
}

// SdkSource records where a resolved field came from.
type SdkSource string

const (
	SourceDeclared SdkSource = "declared"
	SourceDefault  SdkSource = "default"
)
