// Package tank implements the tank-watcher process: on a cron schedule it
// measures the rainwater tank depth and sends it to the configured sinks
// and alarms as a one-field event.
package tank
