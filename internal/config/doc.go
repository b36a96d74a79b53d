// Package config defines the format-agnostic model of a build layout, along
// with the interfaces (Loader, Evaluator) for loading and interpreting it.
//
// The `config.Model` is what the app package drives a configuration pass
// from. Concrete implementations of the interfaces, such as for HCL, are
// provided in separate packages.
package config
