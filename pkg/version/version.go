// Package version holds the build version of quire.
package version

import "runtime"

// Version is the current application version.
// This is a var (not const) so it can be overridden at build time via:
//
//	go build -ldflags "-X github.com/vanderheijden86/quire/pkg/version.Version=v0.2.0"
var Version = "v0.1.0"

// String is the version line printed by the CLI.
func String() string {
	return Version + " (" + runtime.Version() + ")"
}
