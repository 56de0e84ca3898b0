// Package alarm implements the alarm clock: a Logger that records every event
// in a History and, after each event, evaluates its alarms in registration
// order, running the action of every alarm whose trigger holds.
//
// Triggers are pure predicates over the history. The canonical ones check
// whether an event was ever logged or whether the last event crossed a
// threshold.
package alarm
