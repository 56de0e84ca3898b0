package notify

import (
	"context"

	"github.com/oshokin/sump-watch/internal/domain/alarm"
	"github.com/oshokin/sump-watch/internal/logger"
)

// Log returns an action that writes a warning naming the alarm.
// describe, when set, adds details such as the event that fired it.
func Log(ctx context.Context, name string, describe func() string) alarm.ActionFunc {
	return func() {
		if describe == nil {
			logger.WarnKV(ctx, "Alarm fired", "alarm", name)
			return
		}

		logger.WarnKV(ctx, "Alarm fired", "alarm", name, "details", describe())
	}
}
