//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/sump-watch/internal/config"
	"github.com/oshokin/sump-watch/internal/domain/event"
	"github.com/oshokin/sump-watch/internal/logger"
)

// TestBuildSinks builds the sinks that need no external service and logs through them.
func TestBuildSinks(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Sinks: config.Sinks{
			Console:    true,
			ThingSpeak: &config.ThingSpeak{APIKey: "KEY", DryRun: true},
			Remote:     &config.Remote{ServerAddress: "127.0.0.1:50051"},
		},
	}

	var out, logs bytes.Buffer

	ctx := logger.ToContext(context.Background(), logger.New(&logs, zapcore.InfoLevel))

	sinks, err := BuildSinks(ctx, cfg, "pi", &out)
	require.NoError(t, err)

	loggers := sinks.Loggers()
	require.Len(t, loggers, 3)

	require.NoError(t, loggers[0].Log(context.Background(), event.New(1)))
	require.NoError(t, loggers[1].Log(ctx, event.New(1)))
	require.Contains(t, out.String(), "[1]")
	require.Contains(t, logs.String(), "api_key=REDACTED")
	require.NotContains(t, logs.String(), "KEY&")

	_, ok := loggers[2].(*Client)
	require.True(t, ok)

	require.NoError(t, sinks.Close(context.Background()))
	require.NoError(t, sinks.Close(context.Background()))
}

func TestBuildSinks_Empty(t *testing.T) {
	t.Parallel()

	sinks, err := BuildSinks(context.Background(), new(config.Config), "pi", new(bytes.Buffer))
	require.NoError(t, err)
	require.Empty(t, sinks.Loggers())
}
