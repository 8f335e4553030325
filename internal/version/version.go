// Package version carries build identification injected at link time.
package version

import "fmt"

// Set via -ldflags at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// String renders the full build identification line.
func String() string {
	return fmt.Sprintf("carbura %s (commit %s, built %s)", Version, GitCommit, BuildDate)
}
