package sink

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/sump-watch/internal/domain/event"
)

// TestConsole_Log verifies one line per event.
func TestConsole_Log(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	c := NewConsole(&buf)
	require.NoError(t, c.Log(context.Background(), event.New(1)))
	require.NoError(t, c.Log(context.Background(), event.New(167.36, 0)))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "Event:")
	require.True(t, strings.HasSuffix(lines[0], " [1]"))
	require.True(t, strings.HasSuffix(lines[1], " [167.36 0]"))
}
