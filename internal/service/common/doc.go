// Package common holds helpers shared by several services.
//
// It provides the telemetry gRPC client (which doubles as the remote event
// logger), source identification for remote sinks, and the builders that turn
// configuration into sinks and alarm bindings.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
