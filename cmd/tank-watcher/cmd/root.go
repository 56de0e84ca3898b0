package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/sump-watch/internal/config"
	"github.com/oshokin/sump-watch/internal/service/tank"
	"github.com/oshokin/sump-watch/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// distanceFile overrides the sensor distance file.
	distanceFile string
	// once takes one measurement and exits.
	once bool

	// rootCmd represents the base command for measuring the tank.
	rootCmd = &cobra.Command{
		Use:   "tank-watcher",
		Short: "Measure the rainwater tank depth on a schedule.",
		Long: `Reads the ultrasonic distance sensor several times, discards outliers
(more than one standard deviation from the median) and logs the water depth,
sensor height minus the mean distance, to the configured sinks and alarms.

Measurements follow tank.schedule (cron syntax or @every); --once takes a
single measurement and exits, for use from an external scheduler.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return tank.Run(ctx, &tank.Options{
				ConfigPath:   configPath,
				DistanceFile: distanceFile,
				Once:         once,
			})
		},
	}
)

// Execute runs the tank-watcher CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVar(&distanceFile, "distance-file", "", "sensor distance file (overrides config)")
	rootCmd.Flags().BoolVar(&once, "once", false, "take one measurement and exit")
}
