// Package version holds build metadata injected at link time, e.g.
//
//	go build -ldflags "-X github.com/arthur-debert/resgather/internal/version.Version=v0.3.0"
package version

import "fmt"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders the metadata for the version command
func String() string {
	return fmt.Sprintf("resgather version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}
