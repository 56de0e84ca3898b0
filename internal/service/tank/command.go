package tank

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/oshokin/sump-watch/internal/config"
	"github.com/oshokin/sump-watch/internal/domain/event"
	"github.com/oshokin/sump-watch/internal/logger"
	"github.com/oshokin/sump-watch/internal/sensor"
	"github.com/oshokin/sump-watch/internal/service/common"
)

// Options controls the tank watcher.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// DistanceFile overrides the sensor distance file from config.
	DistanceFile string
	// Once takes a single measurement and exits.
	Once bool
	// Stdout receives console sink output; os.Stdout when nil.
	Stdout io.Writer
}

// Run measures the tank on the configured schedule until ctx is canceled.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "tank-watcher")

	settings, err := common.LoadSettings(opts.ConfigPath)
	if err != nil {
		return err
	}

	if opts.DistanceFile != "" {
		settings.Tank.DistanceFile = opts.DistanceFile
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

	m := &meter{
		sensor:   sensor.NewFileSensor(settings.Tank.DistanceFile),
		settings: settings.Tank,
		loggers:  loggers,
	}

	if opts.Once {
		return m.measure(ctx)
	}

	return schedule(ctx, settings.Tank.Schedule, m)
}

// meter takes one measurement and fans it out.
type meter struct {
	sensor   sensor.DistanceSensor
	settings config.Tank
	loggers  *event.Fanout
}

func (m *meter) measure(ctx context.Context) error {
	depth, err := sensor.WaterDepth(ctx, m.sensor, m.settings.Samples, m.settings.SampleInterval, m.settings.SensorHeight)
	if err != nil {
		return fmt.Errorf("measure water depth: %w", err)
	}

	logger.InfoKV(ctx, "Water depth measured", "depth_cm", depth)

	return m.loggers.Log(ctx, event.New(depth))
}

// schedule runs m on spec until ctx is canceled.
func schedule(ctx context.Context, spec string, m *meter) error {
	return common.Schedule(ctx, spec, "tank measurement", m.measure)
}
