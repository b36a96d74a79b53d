package layout

import "fmt"

// InvalidNameError reports a project name or override that would not resolve
// to a descendant of the shared root.
type InvalidNameError struct {
	Name   string
	Reason string
}

// Error implements the error interface.
func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid project name %q: %s", e.Name, e.Reason)
}

// InvalidBaseError reports a base directory that cannot anchor the root.
type InvalidBaseError struct {
	Base string
}

// Error implements the error interface.
func (e *InvalidBaseError) Error() string {
	return fmt.Sprintf("base directory %q must be a non-empty absolute path", e.Base)
}
