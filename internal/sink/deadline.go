package sink

import (
	"context"
	"time"
)

// callContext bounds one remote call. A timeout <= 0 means no deadline.
func callContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, timeout)
}
