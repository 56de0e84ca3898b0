// Package version exposes build metadata for the project.
//
// Variables Version, Commit, and BuildTime are injected at build time via
// Go ldflags and default to sensible values for local builds.
// Short and Full render the version string for the `version` subcommand of
// every sump-watch binary; Full falls back to the VCS stamp of the Go toolchain.
package version
