//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDetectSourceID prefers the configured id and otherwise derives one from the hostname.
func TestDetectSourceID(t *testing.T) {
	t.Parallel()

	id, err := DetectSourceID("garage-pi")
	require.NoError(t, err)
	require.Equal(t, "garage-pi", id)

	hostname, err := os.Hostname()
	require.NoError(t, err)

	first, err := DetectSourceID("")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(first, hostname+"-"))

	second, err := DetectSourceID("")
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}
