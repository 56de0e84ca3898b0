// Package event contains the core data types shared by the pump monitor,
// the alarm clock and every sink.
//
// An Event is one immutable observation (status code or sensor reading)
// represented as an ordered list of scalar fields. History is the ordered
// record of events kept by an alarm clock. Logger is the single capability
// every consumer of events implements, and Fanout delivers one event to an
// ordered list of loggers.
package event
