package event

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestHistory_AppendIsOrdered verifies that each append adds exactly one event at the end.
func TestHistory_AppendIsOrdered(t *testing.T) {
	t.Parallel()

	h := NewHistory(0)

	_, ok := h.Last()
	require.False(t, ok)

	for i, v := range []float64{8, 9, 10} {
		h.Append(New(v))
		require.Equal(t, i+1, h.Len())

		last, ok := h.Last()
		require.True(t, ok)
		require.True(t, last.Equal(New(v)))
	}

	require.True(t, h.Contains(New(9)))
	require.False(t, h.Contains(New(11)))
	require.Equal(t, []Event{New(8), New(9), New(10)}, h.Events())
}

// TestHistory_LimitEvictsOldest verifies the bounded history keeps the newest events.
func TestHistory_LimitEvictsOldest(t *testing.T) {
	t.Parallel()

	h := NewHistory(2)
	h.Append(New(1))
	h.Append(New(2))
	h.Append(New(3))

	require.Equal(t, 2, h.Len())
	require.False(t, h.Contains(New(1)))

	first, ok := h.At(0)
	require.True(t, ok)
	require.True(t, first.Equal(New(2)))

	last, ok := h.Last()
	require.True(t, ok)
	require.True(t, last.Equal(New(3)))
}

// TestHistory_Nil ensures read helpers tolerate a nil history.
func TestHistory_Nil(t *testing.T) {
	t.Parallel()

	var h *History

	require.Equal(t, 0, h.Len())
	require.False(t, h.Contains(New(1)))
	require.Nil(t, h.Events())

	_, ok := h.Last()
	require.False(t, ok)
}
