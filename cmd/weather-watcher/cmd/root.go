package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/sump-watch/internal/config"
	"github.com/oshokin/sump-watch/internal/service/weather"
	"github.com/oshokin/sump-watch/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// once polls one time and exits.
	once bool

	// rootCmd represents the base command for polling the weather.
	rootCmd = &cobra.Command{
		Use:   "weather-watcher",
		Short: "Log current AccuWeather conditions on a schedule.",
		Long: `Reads the current conditions for weather.location_key from the AccuWeather
API and logs them as one event (temperature °C, relative humidity %, pressure
mbar, rain of the past hour mm) to the configured sinks and alarms.

Polls follow weather.schedule (cron syntax or @every, hourly by default);
--once polls a single time and exits, for use from an external scheduler.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return weather.Run(ctx, &weather.Options{
				ConfigPath: configPath,
				Once:       once,
			})
		},
	}
)

// Execute runs the weather-watcher CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().BoolVar(&once, "once", false, "poll one time and exit")
}
