package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/sump-watch/internal/config"
	"github.com/oshokin/sump-watch/internal/service/watcher"
	"github.com/oshokin/sump-watch/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// valueFile overrides the pin value file.
	valueFile string

	// rootCmd represents the base command for watching the pump.
	rootCmd = &cobra.Command{
		Use:   "pump-watcher",
		Short: "Watch the sump pump switch and log every status change.",
		Long: `Watches the GPIO value file of the sump pump's float switch.

Each change, once writes have settled for the debounce window, is read as
on (1) or off (0) and sent as an event to the sinks and alarms from the
configuration file. The current status is logged once at start.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return watcher.Run(ctx, &watcher.Options{
				ConfigPath: configPath,
				ValueFile:  valueFile,
			})
		},
	}
)

// Execute runs the pump-watcher CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)
	rootCmd.AddCommand(simulateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVar(&valueFile, "value-file", "", "pin value file (overrides config)")
}
