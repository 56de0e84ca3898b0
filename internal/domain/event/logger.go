package event

import "context"

// Logger is implemented by every component that accepts events:
// the pump monitor, the alarm clock and the output sinks.
type Logger interface {
	Log(ctx context.Context, e Event) error
}

// LoggerFunc adapts a plain function to the Logger interface.
type LoggerFunc func(ctx context.Context, e Event) error

// Log calls f(ctx, e).
func (f LoggerFunc) Log(ctx context.Context, e Event) error {
	return f(ctx, e)
}
