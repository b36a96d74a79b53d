// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the two operations a driver can run on a
// layout (a configuration pass and a clean), decoupled from any specific
// entrypoint like a CLI.
package app
