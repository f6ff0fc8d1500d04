// Package version holds build metadata stamped via ldflags by the release
// build; defaults identify ad-hoc local builds.
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
)
