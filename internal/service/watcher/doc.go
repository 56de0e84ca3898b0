// Package watcher implements the pump-watcher process: it watches the pump's
// float-switch pin and sends one event per status change to the configured
// sinks and alarms. It also runs the offline pump statistics simulation.
package watcher
