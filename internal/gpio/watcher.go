package gpio

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/oshokin/sump-watch/internal/logger"
)

// DefaultDebounce is how long writes must settle before the handler runs.
const DefaultDebounce = 500 * time.Millisecond

// Watcher calls a handler each time a value file changes and then stays
// quiet for the debounce window. The handler always runs on the goroutine
// that called Run, so calls never overlap.
type Watcher struct {
	// fs delivers file system events.
	fs *fsnotify.Watcher
	// path is the watched value file.
	path string
	// debounce is the settle window.
	debounce time.Duration
	// handler is called once per settled change.
	handler func(ctx context.Context)
}

// NewWatcher starts watching path. Changes made after NewWatcher returns
// are delivered by Run. The parent directory is watched so files replaced
// by rename are still seen.
func NewWatcher(path string, debounce time.Duration, handler func(ctx context.Context)) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	path = filepath.Clean(path)

	if err = fs.Add(filepath.Dir(path)); err != nil {
		_ = fs.Close()

		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	return &Watcher{
		fs:       fs,
		path:     path,
		debounce: debounce,
		handler:  handler,
	}, nil
}

// Run delivers settled changes until ctx is cancelled, then releases the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		_ = w.fs.Close()
	}()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(ev.Name) != w.path || (!ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create)) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}

			fire = timer.C
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}

			logger.WarnKV(ctx, "Pin watcher error", "path", w.path, "error", err)
		case <-fire:
			fire = nil

			w.handler(ctx)
		}
	}
}
