package gpio

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/sump-watch/internal/pump"
)

func writeValue(t *testing.T, path, value string) {
	t.Helper()

	require.NoError(t, os.WriteFile(path, []byte(value), 0o600))
}

func TestSysfsPin_Status(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "value")

	tests := []struct {
		name      string
		contents  string
		activeLow bool
		want      pump.Status
		wantErr   error
	}{
		{name: "high", contents: "1\n", want: pump.On},
		{name: "low", contents: "0\n", want: pump.Off},
		{name: "active low high", contents: "1", activeLow: true, want: pump.Off},
		{name: "active low low", contents: "0", activeLow: true, want: pump.On},
		{name: "garbage", contents: "x", want: pump.Unknown, wantErr: ErrBadValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			file := path + "-" + filepath.Base(t.Name())
			writeValue(t, file, tt.contents)

			var opts []PinOption
			if tt.activeLow {
				opts = append(opts, WithActiveLow())
			}

			got, err := NewSysfsPin(file, opts...).Status(context.Background(), 17)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			require.Equal(t, tt.want, got)
		})
	}
}

func TestSysfsPin_MissingFile(t *testing.T) {
	t.Parallel()

	got, err := NewSysfsPin(filepath.Join(t.TempDir(), "absent")).Status(context.Background(), 4)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Equal(t, pump.Unknown, got)
}

// TestWatcher_Debounces checks a burst of writes yields one handler call.
func TestWatcher_Debounces(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "value")
	writeValue(t, path, "0")

	var calls atomic.Int32

	w, err := NewWatcher(path, 100*time.Millisecond, func(context.Context) {
		calls.Add(1)
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- w.Run(ctx)
	}()

	writeValue(t, path, "1")
	writeValue(t, path, "0")
	writeValue(t, path, "1")
	writeValue(t, filepath.Join(dir, "other"), "1")

	require.Eventually(t, func() bool { return calls.Load() == 1 }, 5*time.Second, 10*time.Millisecond)
	require.Never(t, func() bool { return calls.Load() > 1 }, 200*time.Millisecond, 10*time.Millisecond)

	writeValue(t, path, "0")
	require.Eventually(t, func() bool { return calls.Load() == 2 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestNewWatcher_MissingDir(t *testing.T) {
	t.Parallel()

	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "value"), 0, func(context.Context) {})
	require.Error(t, err)
}

// TestPoller_Debounces checks a bouncing level yields one handler call.
func TestPoller_Debounces(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "value")
	writeValue(t, path, "0")

	var calls atomic.Int32

	p := NewPoller(path, 5*time.Millisecond, 100*time.Millisecond, func(context.Context) {
		calls.Add(1)
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- p.Run(ctx)
	}()

	require.Never(t, func() bool { return calls.Load() > 0 }, 200*time.Millisecond, 10*time.Millisecond)

	for _, v := range []string{"1", "0", "1"} {
		writeValue(t, path, v)
		time.Sleep(20 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, 5*time.Second, 10*time.Millisecond)
	require.Never(t, func() bool { return calls.Load() > 1 }, 200*time.Millisecond, 10*time.Millisecond)

	writeValue(t, path, "0")
	require.Eventually(t, func() bool { return calls.Load() == 2 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestPoller_Errors(t *testing.T) {
	t.Parallel()

	handler := func(context.Context) {}

	err := NewPoller(filepath.Join(t.TempDir(), "absent"), time.Millisecond, 0, handler).Run(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "value")
	writeValue(t, path, "1")

	require.Error(t, NewPoller(path, 0, 0, handler).Run(context.Background()))
}
