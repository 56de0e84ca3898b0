package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// Version is the semantic version of the build. It can be overridden via ldflags.
	Version = "0.1.0"
	// Commit is the short git SHA embedded at build time (or "none").
	Commit = "none"
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = "unknown"
)

// shortCommitLength matches `git rev-parse --short`.
const shortCommitLength = 7

// Short returns only the semantic version string.
func Short() string {
	return Version
}

// Full returns a human-readable version string with commit, build time and
// the Go toolchain. Builds without ldflags fall back to the VCS data the Go
// toolchain stamps into the binary.
func Full() string {
	commit, built := Commit, BuildTime

	if info, ok := debug.ReadBuildInfo(); ok {
		commit, built = fromBuildInfo(info.Settings, commit, built)
	}

	return fmt.Sprintf("sump-watch version: %s, commit: %s, built at: %s, %s %s/%s",
		Version, commit, built, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// fromBuildInfo fills commit and build time left at their defaults.
func fromBuildInfo(settings []debug.BuildSetting, commit, built string) (string, string) {
	for _, s := range settings {
		switch {
		case s.Key == "vcs.revision" && commit == "none":
			commit = s.Value
			if len(commit) > shortCommitLength {
				commit = commit[:shortCommitLength]
			}
		case s.Key == "vcs.time" && built == "unknown":
			built = s.Value
		}
	}

	return commit, built
}
