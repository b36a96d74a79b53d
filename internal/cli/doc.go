// Package cli is responsible for parsing command-line arguments and
// BUILDGRID_* environment variables, validating user input, and handling
// process-level concerns like exit codes. It translates both layers into the
// application's internal configuration, with flags taking precedence.
package cli
