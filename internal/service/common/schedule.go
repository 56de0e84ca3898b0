//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/oshokin/sump-watch/internal/logger"
)

// Schedule runs job on spec until ctx is canceled. A job still running when
// the next one is due makes the next one skip. Job errors are logged under name.
func Schedule(ctx context.Context, spec, name string, job func(ctx context.Context) error) error {
	cronLog := cronLogger{logger.FromContext(ctx).Named("cron")}

	c := cron.New(cron.WithLogger(cronLog), cron.WithChain(cron.SkipIfStillRunning(cronLog)))

	if _, err := c.AddFunc(spec, func() {
		if err := job(ctx); err != nil {
			logger.ErrorKV(ctx, "Scheduled job failed", "job", name, "error", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule %q: %w", spec, err)
	}

	logger.InfoKV(ctx, "Job scheduled", "job", name, "schedule", spec)

	c.Start()
	<-ctx.Done()

	// Wait for a running job to finish.
	<-c.Stop().Done()
	logger.Info(ctx, "Context canceled, exiting")

	return nil
}

// cronLogger routes cron's own messages to zap.
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
