package weather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/oshokin/sump-watch/internal/domain/event"
	"github.com/oshokin/sump-watch/internal/logger"
	"github.com/oshokin/sump-watch/internal/service/common"
	"github.com/oshokin/sump-watch/internal/weather"
)

// ErrNotConfigured is returned when the settings have no weather section.
var ErrNotConfigured = errors.New("weather section is not configured")

// Options controls the weather poller.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// Once polls a single time and exits.
	Once bool
	// Stdout receives console sink output; os.Stdout when nil.
	Stdout io.Writer
}

// Run logs the current weather conditions to the configured sinks and alarms
// on the weather schedule until ctx is canceled.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "weather-watcher")

	settings, err := common.LoadSettings(opts.ConfigPath)
	if err != nil {
		return err
	}

	if settings.Weather == nil {
		return ErrNotConfigured
	}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	sourceID, err := common.DetectSourceID(settings.InstanceID)
	if err != nil {
		return fmt.Errorf("detect source id: %w", err)
	}

	sinks, err := common.BuildSinks(ctx, settings, sourceID, stdout)
	if err != nil {
		return err
	}

	defer func() {
		if err := sinks.Close(context.WithoutCancel(ctx)); err != nil {
			logger.WarnKV(ctx, "Closing sinks failed", "error", err)
		}
	}()

	loggers, err := common.LocalLoggers(ctx, settings, sinks)
	if err != nil {
		return err
	}

	p := &poller{
		conditions:  weather.NewClient(settings.Weather.BaseURL, settings.Weather.APIKey, settings.Timeout),
		locationKey: settings.Weather.LocationKey,
		loggers:     loggers,
	}

	if opts.Once {
		return p.poll(ctx)
	}

	return common.Schedule(ctx, settings.Weather.Schedule, "weather poll", p.poll)
}

// conditionsSource is the part of weather.Client the poller uses.
type conditionsSource interface {
	Current(ctx context.Context, locationKey string) (weather.Conditions, error)
}

// poller reads the conditions once and fans them out.
type poller struct {
	conditions  conditionsSource
	locationKey string
	loggers     *event.Fanout
}

func (p *poller) poll(ctx context.Context) error {
	c, err := p.conditions.Current(ctx, p.locationKey)
	if err != nil {
		return fmt.Errorf("read weather: %w", err)
	}

	logger.InfoKV(ctx, "Weather read",
		"temperature_c", c.Temperature,
		"humidity_pct", c.Humidity,
		"pressure_mbar", c.Pressure,
		"rain_mm", c.Rain)

	return p.loggers.Log(ctx, c.Event())
}
