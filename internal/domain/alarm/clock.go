package alarm

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshokin/sump-watch/internal/domain/event"
	"github.com/oshokin/sump-watch/internal/logger"
)

// Binding pairs a trigger with the action it runs.
type Binding struct {
	// Name is an optional label used in logs and errors.
	Name string
	// Trigger decides whether the alarm fires.
	Trigger Trigger
	// Action runs when the trigger holds.
	Action Action
}

// Clock records events and evaluates alarms after each one.
// It implements event.Logger, so it can be registered on a pump monitor.
//
// Clock is not safe for concurrent use.
type Clock struct {
	// history is every event logged so far (subject to its limit).
	history *event.History
	// bindings are evaluated in registration order.
	bindings []Binding
}

// Option configures a Clock.
type Option func(*clockOptions)

// clockOptions collects Option values before the clock is built.
type clockOptions struct {
	limit int
	seed  []event.Event
}

// WithHistoryLimit bounds the history to the newest n events. n <= 0 keeps everything.
func WithHistoryLimit(n int) Option {
	return func(o *clockOptions) {
		o.limit = n
	}
}

// WithSeed preloads the history without evaluating any alarm.
func WithSeed(events ...event.Event) Option {
	return func(o *clockOptions) {
		o.seed = append(o.seed, events...)
	}
}

// NewClock creates an alarm clock with an empty alarm list.
func NewClock(opts ...Option) *Clock {
	var o clockOptions
	for _, opt := range opts {
		opt(&o)
	}

	h := event.NewHistory(o.limit)
	for _, e := range o.seed {
		h.Append(e)
	}

	return &Clock{
		history: h,
	}
}

// AddAlarm registers an unnamed alarm.
func (c *Clock) AddAlarm(trigger Trigger, action Action) {
	c.AddBinding(Binding{Trigger: trigger, Action: action})
}

// AddBinding registers an alarm. Alarms are evaluated in registration order.
func (c *Clock) AddBinding(b Binding) {
	c.bindings = append(c.bindings, b)
}

// Bindings returns a copy of the registered alarms.
func (c *Clock) Bindings() []Binding {
	return append([]Binding(nil), c.bindings...)
}

// History returns the clock's history. Callers must treat it as read-only.
func (c *Clock) History() *event.History {
	return c.history
}

// Log appends the event to the history and runs the action of every alarm
// whose trigger holds. Undecidable triggers are skipped; any other trigger
// error is returned after every alarm was evaluated.
func (c *Clock) Log(ctx context.Context, e event.Event) error {
	c.history.Append(e)

	var errs []error

	for i, b := range c.bindings {
		fired, err := b.Trigger.Evaluate(c.history)
		switch {
		case errors.Is(err, ErrUndecidable):
			logger.DebugKV(ctx, "Alarm skipped", "alarm", b.label(i), "event", e.String())
			continue
		case err != nil:
			errs = append(errs, fmt.Errorf("alarm %s: %w", b.label(i), err))
			continue
		case !fired:
			continue
		}

		logger.DebugKV(ctx, "Alarm fired", "alarm", b.label(i), "event", e.String())

		if b.Action != nil {
			b.Action.Run()
		}
	}

	return errors.Join(errs...)
}

// label names the binding for logs, falling back to its position.
func (b *Binding) label(i int) string {
	if b.Name != "" {
		return b.Name
	}

	return fmt.Sprintf("#%d", i)
}
