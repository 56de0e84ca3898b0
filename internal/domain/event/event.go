package event

import (
	"slices"
	"strconv"
	"strings"
)

// Event is one observation made of ordered scalar fields.
// The zero value is an empty event.
type Event struct {
	// values holds the fields in order; never exposed directly.
	values []float64
}

// New creates an event from the provided field values.
// The input slice is copied, so later changes by the caller do not leak in.
func New(values ...float64) Event {
	if len(values) == 0 {
		return Event{}
	}

	return Event{
		values: slices.Clone(values),
	}
}

// Len returns the number of fields in the event.
func (e Event) Len() int {
	return len(e.values)
}

// Field returns the value at index i and reports whether the index exists.
func (e Event) Field(i int) (float64, bool) {
	if i < 0 || i >= len(e.values) {
		return 0, false
	}

	return e.values[i], true
}

// Values returns a copy of the event fields.
func (e Event) Values() []float64 {
	return slices.Clone(e.values)
}

// Equal reports whether both events hold the same fields in the same order.
func (e Event) Equal(other Event) bool {
	return slices.Equal(e.values, other.values)
}

// String renders the event as "[f1 f2 ...]".
func (e Event) String() string {
	var sb strings.Builder

	sb.WriteByte('[')

	for i, v := range e.values {
		if i > 0 {
			sb.WriteByte(' ')
		}

		sb.WriteString(FormatValue(v))
	}

	sb.WriteByte(']')

	return sb.String()
}

// FormatValue renders a field with the shortest exact representation,
// so a status of 1 prints as "1" and a depth of 167.36 as "167.36".
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
