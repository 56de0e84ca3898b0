package event

import "slices"

// History is the ordered record of events seen by one alarm clock.
// Events are only ever appended; when a limit is set the oldest events are
// evicted once the limit is reached.
//
// History is not safe for concurrent use.
type History struct {
	// events holds the retained events, oldest first.
	events []Event
	// limit is the maximum number of retained events; <= 0 means unbounded.
	limit int
}

// NewHistory creates an empty history retaining at most limit events.
// A limit <= 0 keeps every event for the life of the history.
func NewHistory(limit int) *History {
	return &History{
		limit: limit,
	}
}

// Append adds an event to the end of the history.
func (h *History) Append(e Event) {
	if h.limit > 0 && len(h.events) >= h.limit {
		// Shift in place so the backing array does not keep growing.
		copy(h.events, h.events[1:])
		h.events[len(h.events)-1] = e

		return
	}

	h.events = append(h.events, e)
}

// Len returns the number of retained events.
func (h *History) Len() int {
	if h == nil {
		return 0
	}

	return len(h.events)
}

// Limit returns the configured retention limit.
func (h *History) Limit() int {
	return h.limit
}

// At returns the event at index i, oldest first.
func (h *History) At(i int) (Event, bool) {
	if h == nil || i < 0 || i >= len(h.events) {
		return Event{}, false
	}

	return h.events[i], true
}

// Last returns the most recent event; ok is false when the history is empty.
func (h *History) Last() (Event, bool) {
	return h.At(h.Len() - 1)
}

// Contains reports whether an event equal to target is anywhere in the history.
func (h *History) Contains(target Event) bool {
	if h == nil {
		return false
	}

	return slices.ContainsFunc(h.events, target.Equal)
}

// Events returns a copy of the retained events, oldest first.
func (h *History) Events() []Event {
	if h == nil {
		return nil
	}

	return slices.Clone(h.events)
}
