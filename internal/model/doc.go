// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model holds the resolved, format-agnostic domain types of a build
// layout: the project nodes, their output directories, the signing profiles
// available to them and the SDK version fields every buildable module carries.
//
// # Core Concepts
//
//   - ProjectNode: one build unit. The root aggregator has no parent; every
//     subproject points at the root (or another node) through Parent.
//
//   - Directory: an absolute, cleaned build-output path. Every ProjectNode
//     resolves to exactly one Directory per configuration pass.
//
//   - SigningProfile: a named credential source such as "debug" or "release".
//
//   - SdkVersions: the min/target/compile platform levels of a module.
//
//   - ResolvedProject: everything a configuration pass learned about one
//     module, in the shape the report renders.
//
// Why a separate model package?
//
// The coordinator, the path resolver and the HCL adapter all exchange these
// values. Keeping them here lets each of those packages depend on plain data
// instead of on each other.
package model
