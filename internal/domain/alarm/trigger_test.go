package alarm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/sump-watch/internal/domain/event"
)

// historyOf builds a history from single-field events.
func historyOf(values ...float64) *event.History {
	h := event.NewHistory(0)
	for _, v := range values {
		h.Append(event.New(v))
	}

	return h
}

// TestIsEventLogged_Membership checks structural membership over the whole history.
func TestIsEventLogged_Membership(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		history *event.History
		target  event.Event
		want    bool
	}{
		{name: "empty", history: historyOf(), target: event.New(1), want: false},
		{name: "first", history: historyOf(1, 2, 3), target: event.New(1), want: true},
		{name: "missing", history: historyOf(1, 2, 3), target: event.New(4), want: false},
		{name: "different arity", history: historyOf(1), target: event.New(1, 0), want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := IsEventLogged(tc.target).Evaluate(tc.history)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

// TestLastEventTriggers_DependOnlyOnLast verifies results track the most recent event only.
func TestLastEventTriggers_DependOnlyOnLast(t *testing.T) {
	t.Parallel()

	h := historyOf(100)
	greater := IsLastEventGreater(10)
	less := IsLastEventLess(10)

	got, err := greater.Evaluate(h)
	require.NoError(t, err)
	require.True(t, got)

	h.Append(event.New(1))

	got, err = greater.Evaluate(h)
	require.NoError(t, err)
	require.False(t, got)

	got, err = less.Evaluate(h)
	require.NoError(t, err)
	require.True(t, got)
}

// TestLastEventTriggers_Empty verifies the empty history is undecidable.
func TestLastEventTriggers_Empty(t *testing.T) {
	t.Parallel()

	_, err := IsLastEventGreater(0).Evaluate(historyOf())
	require.ErrorIs(t, err, ErrUndecidable)

	_, err = IsLastEventLess(0).Evaluate(historyOf())
	require.ErrorIs(t, err, ErrUndecidable)
}

// TestLastFieldTriggers_MultiField verifies the selected scalar is compared.
func TestLastFieldTriggers_MultiField(t *testing.T) {
	t.Parallel()

	h := event.NewHistory(0)
	h.Append(event.New(1, 167.36))

	got, err := IsLastFieldLess(1, 170).Evaluate(h)
	require.NoError(t, err)
	require.True(t, got)

	got, err = IsLastFieldGreater(0, 0).Evaluate(h)
	require.NoError(t, err)
	require.True(t, got)

	_, err = IsLastFieldGreater(2, 0).Evaluate(h)
	require.ErrorIs(t, err, ErrFieldOutOfRange)
}
