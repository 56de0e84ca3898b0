package gpio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oshokin/sump-watch/internal/logger"
)

// Poller reads a value file every interval and calls a handler once a change
// has held for the debounce window. Use it for kernel value files, which
// change without raising file events. Like Watcher, the handler runs on the
// goroutine that called Run.
type Poller struct {
	path     string
	interval time.Duration
	debounce time.Duration
	handler  func(ctx context.Context)
}

// NewPoller creates a poller for path. A non-positive debounce uses DefaultDebounce.
func NewPoller(path string, interval, debounce time.Duration, handler func(ctx context.Context)) *Poller {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Poller{
		path:     filepath.Clean(path),
		interval: interval,
		debounce: debounce,
		handler:  handler,
	}
}

// Run polls until ctx is cancelled. The file must be readable when Run starts;
// later read failures are logged and the previous contents are kept.
func (p *Poller) Run(ctx context.Context) error {
	if p.interval <= 0 {
		return fmt.Errorf("poll %s: interval %s is not positive", p.path, p.interval)
	}

	last, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("poll %s: %w", p.path, err)
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	var (
		pending   bool
		changedAt time.Time
		failing   bool
	)

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			current, err := os.ReadFile(p.path)
			if err != nil {
				if !failing {
					logger.WarnKV(ctx, "Pin poller error", "path", p.path, "error", err)
				}

				failing = true

				continue
			}

			failing = false

			if !bytes.Equal(current, last) {
				last = current
				pending = true
				changedAt = now

				continue
			}

			if pending && now.Sub(changedAt) >= p.debounce {
				pending = false

				p.handler(ctx)
			}
		}
	}
}
