package watcher

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/sump-watch/internal/config"
)

// syncBuffer is a bytes.Buffer safe for one writer goroutine and one reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

// TestRun_LogsPinChanges drives the watcher through a value file and reads the console sink.
func TestRun_LogsPinChanges(t *testing.T) {
	t.Parallel()

	for name, pollInterval := range map[string]time.Duration{
		"file events": 0,
		"polling":     5 * time.Millisecond,
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			runAndToggle(t, pollInterval)
		})
	}
}

func runAndToggle(t *testing.T, pollInterval time.Duration) {
	t.Helper()

	dir := t.TempDir()
	valueFile := filepath.Join(dir, "value")
	require.NoError(t, os.WriteFile(valueFile, []byte("0\n"), 0o600))

	cfgPath := filepath.Join(dir, "sump-watch.yaml")
	require.NoError(t, config.Save(cfgPath, &config.Config{
		InstanceID: "sump-pi",
		Pump: config.Pump{
			Pin:          17,
			ValueFile:    valueFile,
			Debounce:     20 * time.Millisecond,
			PollInterval: pollInterval,
		},
		Sinks:  config.Sinks{Console: true},
		Alarms: []config.Alarm{{Name: "pump-on", Trigger: config.TriggerLogged, Value: 1}},
	}))

	var out syncBuffer

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- Run(ctx, &Options{ConfigPath: cfgPath, Stdout: &out})
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "[0]")
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(valueFile, []byte("1\n"), 0o600))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "[1]")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestRun_MissingConfig(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), &Options{ConfigPath: filepath.Join(t.TempDir(), "absent.yaml")})
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestSimulate checks the summary matches the generated samples and is reproducible.
func TestSimulate(t *testing.T) {
	t.Parallel()

	opts := &SimulateOptions{
		Samples: 40,
		Seed:    7,
		Start:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Verbose: true,
	}

	var first, second bytes.Buffer

	require.NoError(t, Simulate(&first, opts))
	require.NoError(t, Simulate(&second, opts))
	require.Equal(t, first.String(), second.String())

	out := first.String()
	require.Contains(t, out, "samples: 40, on: ")
	require.Contains(t, out, "2024-06-01T")
	require.Contains(t, out, "run 1: ")
}

// TestSimulate_SampleCount covers the empty and negative sample counts.
func TestSimulate_SampleCount(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	require.NoError(t, Simulate(&out, &SimulateOptions{Samples: 0, Seed: 7}))
	require.Contains(t, out.String(), "samples: 0, on: 0, off: 0, runs: 0")

	out.Reset()

	err := Simulate(&out, &SimulateOptions{Samples: -1, Seed: 7})
	require.ErrorIs(t, err, ErrNegativeSamples)
	require.Empty(t, out.String())
}
