package event

import (
	"context"
	"fmt"
	"strings"
)

// Fanout delivers each event to an ordered list of loggers.
// A failing logger never prevents the loggers after it from being called.
//
// Fanout is not safe for concurrent use; register loggers before events flow.
type Fanout struct {
	// loggers are called in registration order.
	loggers []Logger
}

// LoggerError records the failure of one logger during a fan-out.
type LoggerError struct {
	// Index is the registration position of the failed logger.
	Index int
	// Err is the error returned by the logger.
	Err error
}

// Error implements the error interface.
func (e *LoggerError) Error() string {
	return fmt.Sprintf("logger #%d: %v", e.Index, e.Err)
}

// Unwrap returns the logger's error.
func (e *LoggerError) Unwrap() error {
	return e.Err
}

// FanoutError is returned when one or more loggers failed during a fan-out.
// The event was still offered to every registered logger.
type FanoutError struct {
	// Failures lists the failed loggers in registration order.
	Failures []*LoggerError
}

// Error implements the error interface.
func (e *FanoutError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, f.Error())
	}

	return fmt.Sprintf("%d logger(s) failed: %s", len(e.Failures), strings.Join(parts, "; "))
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *FanoutError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f)
	}

	return errs
}

// Register appends a logger. Duplicates are allowed and called once per registration.
func (f *Fanout) Register(logger Logger) {
	f.loggers = append(f.loggers, logger)
}

// Len returns the number of registered loggers.
func (f *Fanout) Len() int {
	return len(f.loggers)
}

// Log offers the event to every logger in registration order.
// Nil loggers are skipped. Returns a *FanoutError if any logger failed.
func (f *Fanout) Log(ctx context.Context, e Event) error {
	var failures []*LoggerError

	for i, logger := range f.loggers {
		if logger == nil {
			continue
		}

		if err := logger.Log(ctx, e); err != nil {
			failures = append(failures, &LoggerError{Index: i, Err: err})
		}
	}

	if len(failures) == 0 {
		return nil
	}

	return &FanoutError{Failures: failures}
}
