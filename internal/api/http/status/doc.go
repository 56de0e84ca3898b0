// Package status exposes the pump server's read-only status API over HTTP:
// health, retained history, configured alarms and the watchers seen so far.
package status
