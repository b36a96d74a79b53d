// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines signing profiles and the tagged result of choosing one.
//
// Why a tagged resolution?
//
// A release build that ends up signed with the debug key must be visible to
// whoever reads the result. SigningResolution carries the outcome next to the
// profile so callers cannot read one without the other.
package model

// DebugProfileName is the profile used when the requested one is missing.
const DebugProfileName = "debug"

// SigningProfile is a named signing configuration and its credential source.
type SigningProfile struct {
	Name      string `json:"name"`
	StoreFile string `json:"store_file,omitempty"`
	KeyAlias  string `json:"key_alias,omitempty"`
	// StorePasswordEnv and KeyPasswordEnv name environment variables; the
	// secrets themselves never enter the model.
	StorePasswordEnv string `json:"store_password_env,omitempty"`
	KeyPasswordEnv   string `json:"key_password_env,omitempty"`
}

// SigningOutcome tags how a SigningResolution was reached.
type SigningOutcome string

const (
	// ExactMatch means the requested profile was available.
	ExactMatch SigningOutcome = "exact_match"
	// FallbackUsed means the debug profile was substituted.
	FallbackUsed SigningOutcome = "fallback_used"
)

// SigningResolution is the profile chosen for a module and how it was chosen.
type SigningResolution struct {
	Requested string         `json:"requested"`
	Profile   SigningProfile `json:"profile"`
	Outcome   SigningOutcome `json:"outcome"`
	// Reason is set only when Outcome is FallbackUsed.
	Reason string `json:"reason,omitempty"`
}

// IsFallback reports whether the resolution substituted the debug profile.
func (r SigningResolution) IsFallback() bool {
	return r.Outcome == FallbackUsed
}
