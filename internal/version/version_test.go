package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestVersionStrings ensures Short and Full return non-empty consistent information.
func TestVersionStrings(t *testing.T) {
	t.Parallel()

	require.NotEmpty(t, Short())
	require.Contains(t, Full(), Short())
	require.Contains(t, Full(), runtime.Version())
}

func TestFromBuildInfo(t *testing.T) {
	t.Parallel()

	settings := []debug.BuildSetting{
		{Key: "vcs", Value: "git"},
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.time", Value: "2024-06-01T12:00:00Z"},
	}

	commit, built := fromBuildInfo(settings, "none", "unknown")
	require.Equal(t, "0123456", commit)
	require.Equal(t, "2024-06-01T12:00:00Z", built)

	// Values injected by ldflags win.
	commit, built = fromBuildInfo(settings, "abc1234", "2025-01-01")
	require.Equal(t, "abc1234", commit)
	require.Equal(t, "2025-01-01", built)
}
