// Package history persists the pump server's event history.
//
// The FileRepository stores the events as protobuf JSON (a list of number
// lists) so the server picks its alarm history back up after a restart.
package history
