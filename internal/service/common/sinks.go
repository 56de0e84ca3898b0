//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"

	"github.com/oshokin/sump-watch/internal/config"
	"github.com/oshokin/sump-watch/internal/domain/event"
	"github.com/oshokin/sump-watch/internal/logger"
	"github.com/oshokin/sump-watch/internal/sink"
)

// Sinks holds the loggers built from the sinks section and the connections behind them.
type Sinks struct {
	// loggers are in config order: console, thingspeak, remote, cloudwatch, mongo.
	loggers []event.Logger
	// closers release connections, newest first.
	closers []func(ctx context.Context) error
}

// Loggers returns the built loggers in registration order.
func (s *Sinks) Loggers() []event.Logger {
	return append([]event.Logger(nil), s.loggers...)
}

// Close releases every connection and reports all failures.
func (s *Sinks) Close(ctx context.Context) error {
	var errs []error

	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i](ctx))
	}

	s.closers = nil

	return errors.Join(errs...)
}

// BuildSinks creates every configured sink. Console output goes to stdout.
// On failure the sinks built so far are closed.
func BuildSinks(ctx context.Context, cfg *config.Config, sourceID string, stdout io.Writer) (*Sinks, error) {
	sinks := new(Sinks)

	if err := sinks.build(ctx, cfg, sourceID, stdout); err != nil {
		_ = sinks.Close(ctx) //nolint:errcheck // The build error is the one worth reporting.

		return nil, err
	}

	return sinks, nil
}

func (s *Sinks) build(ctx context.Context, cfg *config.Config, sourceID string, stdout io.Writer) error {
	if cfg.Sinks.Console {
		s.loggers = append(s.loggers, sink.NewConsole(stdout))
	}

	if ts := cfg.Sinks.ThingSpeak; ts != nil {
		var transport sink.Transport = &sink.HTTPTransport{}
		if ts.DryRun {
			transport = dryRunTransport{}
		}

		s.loggers = append(s.loggers, sink.NewThingSpeak(ts.APIKey, ts.BaseURL, transport))
	}

	if remote := cfg.Sinks.Remote; remote != nil {
		client, err := Dial(ctx, remote.ServerAddress, WithCallTimeout(cfg.Timeout), WithSourceID(sourceID))
		if err != nil {
			return fmt.Errorf("remote sink: %w", err)
		}

		s.closers = append(s.closers, func(context.Context) error { return client.Close() })
		s.loggers = append(s.loggers, client)
	}

	if cw := cfg.Sinks.CloudWatch; cw != nil {
		awsCfg, err := LoadAWSConfig(ctx, cw.Region)
		if err != nil {
			return fmt.Errorf("cloudwatch sink: %w", err)
		}

		api := cloudwatch.NewFromConfig(awsCfg)
		s.loggers = append(s.loggers, sink.NewCloudWatch(api, cw.Namespace, cw.MetricName, sourceID, cfg.Timeout))
	}

	if m := cfg.Sinks.Mongo; m != nil {
		client, err := sink.ConnectMongo(ctx, m.URI, cfg.Timeout)
		if err != nil {
			return fmt.Errorf("mongo sink: %w", err)
		}

		s.closers = append(s.closers, client.Disconnect)
		coll := client.Database(m.Database).Collection(m.Collection)
		s.loggers = append(s.loggers, sink.NewMongo(coll, sourceID, cfg.Timeout))
	}

	return nil
}

// dryRunTransport logs ThingSpeak URLs instead of sending them.
type dryRunTransport struct{}

func (dryRunTransport) Get(ctx context.Context, rawURL string) error {
	logger.InfoKV(ctx, "ThingSpeak dry run", "url", sink.RedactURL(rawURL))

	return nil
}
