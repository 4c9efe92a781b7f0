package version

import "fmt"

// Version is the release of webassets. Set at build time:
// go build -ldflags "-X git.home.luguber.info/inful/webassets/internal/version.Version=v1.0.0".
var Version = "unknown"

// Build metadata, also set through ldflags.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String is the one-line form printed by --version.
func String() string {
	return fmt.Sprintf("webassets %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
