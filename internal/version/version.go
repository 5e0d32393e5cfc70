// Package version holds build metadata injected with -ldflags:
//
//	go build -ldflags "-X git.home.luguber.info/inful/docnav/internal/version.Version=v0.3.0" ./cmd/docnav
package version

import "fmt"

// Version is the release version.
var Version = "unknown"

// Build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String returns the line printed by --version.
func String() string {
	return fmt.Sprintf("docnav %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
