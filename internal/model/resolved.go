// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the per-module result of a configuration pass.
package model

// ResolvedProject is the fully evaluated configuration of one module.
type ResolvedProject struct {
	Name          string                 `json:"name"`
	BuildDir      Directory              `json:"build_dir"`
	ApplicationID string                 `json:"application_id,omitempty"`
	Namespace     string                 `json:"namespace,omitempty"`
	Sdk           *SdkVersions           `json:"sdk,omitempty"`
	SdkSources    map[SdkField]SdkSource `json:"sdk_sources,omitempty"`
	VersionCode   int                    `json:"version_code,omitempty"`
	VersionName   string                 `json:"version_name,omitempty"`
	JavaVersion   int                    `json:"java_version,omitempty"`
	Signing       *SigningResolution     `json:"signing,omitempty"`
}

// Buildable reports whether the module produced an application artifact
// configuration, i.e. it has an application identifier and a signing
// decision.
func (p *ResolvedProject) Buildable() bool {
	return p.ApplicationID != "" && p.Signing != nil
}
