package alarm

import (
	"errors"
	"fmt"

	"github.com/oshokin/sump-watch/internal/domain/event"
)

var (
	// ErrUndecidable is returned by triggers that cannot decide on the current
	// history, e.g. "last event" triggers on an empty history.
	// The clock skips such triggers without firing.
	ErrUndecidable = errors.New("trigger undecidable on current history")
	// ErrFieldOutOfRange is returned when a trigger inspects a field the event does not have.
	ErrFieldOutOfRange = errors.New("event field out of range")
)

// Trigger decides from the history whether an alarm fires.
// Implementations must not modify the history.
type Trigger interface {
	Evaluate(h *event.History) (bool, error)
}

// TriggerFunc adapts a plain function to the Trigger interface.
type TriggerFunc func(h *event.History) (bool, error)

// Evaluate calls f(h).
func (f TriggerFunc) Evaluate(h *event.History) (bool, error) {
	return f(h)
}

// IsEventLogged fires when an event equal to target is anywhere in the history.
func IsEventLogged(target event.Event) Trigger {
	return TriggerFunc(func(h *event.History) (bool, error) {
		return h.Contains(target), nil
	})
}

// IsLastEventGreater fires when the first field of the last event is greater than threshold.
func IsLastEventGreater(threshold float64) Trigger {
	return IsLastFieldGreater(0, threshold)
}

// IsLastEventLess fires when the first field of the last event is less than threshold.
func IsLastEventLess(threshold float64) Trigger {
	return IsLastFieldLess(0, threshold)
}

// IsLastFieldGreater fires when the given field of the last event is greater than threshold.
func IsLastFieldGreater(field int, threshold float64) Trigger {
	return TriggerFunc(func(h *event.History) (bool, error) {
		v, err := lastField(h, field)
		if err != nil {
			return false, err
		}

		return v > threshold, nil
	})
}

// IsLastFieldLess fires when the given field of the last event is less than threshold.
func IsLastFieldLess(field int, threshold float64) Trigger {
	return TriggerFunc(func(h *event.History) (bool, error) {
		v, err := lastField(h, field)
		if err != nil {
			return false, err
		}

		return v < threshold, nil
	})
}

// lastField extracts one scalar from the most recent event.
func lastField(h *event.History, field int) (float64, error) {
	last, ok := h.Last()
	if !ok {
		return 0, ErrUndecidable
	}

	v, ok := last.Field(field)
	if !ok {
		return 0, fmt.Errorf("field %d of %s: %w", field, last, ErrFieldOutOfRange)
	}

	return v, nil
}
