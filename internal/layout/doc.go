// Package layout computes where every project of a multi-module build writes
// its output and removes those locations on request.
//
// All directories are derived from one shared root: the root project's natural
// build directory rewritten by a relocation path. Subprojects land under
// <root>/<name> (or a declared relative override), so renaming the root is a
// single-value change and no module can write outside of it.
//
// Path resolution is pure; only Clean touches the filesystem.
package layout
