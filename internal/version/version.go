// Package version holds build information, set with -ldflags at build time.
package version

import "fmt"

var (
	// Version is the semantic version of the build.
	Version = "0.0.0-dev"

	// Revision is the VCS revision of the build.
	Revision = "unknown"
)

// String returns Version and Revision joined with "+".
func String() string {
	return fmt.Sprintf("%s+%s", Version, Revision)
}
