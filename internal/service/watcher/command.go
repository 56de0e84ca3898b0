package watcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/oshokin/sump-watch/internal/config"
	"github.com/oshokin/sump-watch/internal/gpio"
	"github.com/oshokin/sump-watch/internal/logger"
	"github.com/oshokin/sump-watch/internal/notify"
	"github.com/oshokin/sump-watch/internal/pump"
	"github.com/oshokin/sump-watch/internal/service/common"
)

// Options controls the pump watcher.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// ValueFile overrides the pin value file from config.
	ValueFile string
	// Stdout receives console sink output; os.Stdout when nil.
	Stdout io.Writer
}

// Run registers the configured sinks and alarms on a pump monitor and signals
// it on every settled change of the pin value file until ctx is canceled.
// The current status is logged once at start.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "pump-watcher")

	settings, err := common.LoadSettings(opts.ConfigPath)
	if err != nil {
		return err
	}

	valueFile := settings.Pump.ValueFile
	pollInterval := settings.Pump.PollInterval

	if opts.ValueFile != "" {
		valueFile = opts.ValueFile

		if interval := config.PollIntervalFor(valueFile); interval > 0 {
			pollInterval = interval
		}
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

	monitor := pump.NewMonitor(settings.Pump.Pin, gpio.NewSysfsPin(valueFile))

	for _, l := range sinks.Loggers() {
		monitor.RegisterLogger(l)
	}

	if len(settings.Alarms) > 0 {
		var snsAPI notify.SNSAPI
		if common.NeedsSNS(settings.Alarms) {
			if snsAPI, err = common.NewSNSClient(ctx, ""); err != nil {
				return err
			}
		}

		clock, err := common.NewClock(ctx, settings, snsAPI)
		if err != nil {
			return err
		}

		monitor.RegisterLogger(clock)
	}

	handle := func(ctx context.Context) {
		if err := monitor.HandleSignal(ctx); err != nil {
			logger.ErrorKV(ctx, "Pump signal failed", "pin", monitor.Pin(), "error", err)
		}
	}

	source, err := pinSource(valueFile, pollInterval, settings.Pump.Debounce, handle)
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, "Watching pump",
		"pin", settings.Pump.Pin,
		"value_file", valueFile,
		"poll_interval", pollInterval,
		"source_id", sourceID,
		"sinks", len(sinks.Loggers()),
		"alarms", len(settings.Alarms))

	handle(ctx)

	if err = source.Run(ctx); err != nil {
		return fmt.Errorf("watch pin: %w", err)
	}

	logger.Info(ctx, "Context canceled, exiting")

	return nil
}

// runner is a source of settled pin changes.
type runner interface {
	Run(ctx context.Context) error
}

// pinSource polls when pollInterval is set and waits for file events otherwise.
func pinSource(valueFile string, pollInterval, debounce time.Duration, handle func(context.Context)) (runner, error) {
	if pollInterval > 0 {
		return gpio.NewPoller(valueFile, pollInterval, debounce, handle), nil
	}

	return gpio.NewWatcher(valueFile, debounce, handle)
}
