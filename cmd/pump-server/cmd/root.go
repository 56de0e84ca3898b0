package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/sump-watch/internal/config"
	"github.com/oshokin/sump-watch/internal/service/server"
	"github.com/oshokin/sump-watch/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// stateFile path where the event history is persisted.
	stateFile string
	// httpAddress of the status API.
	httpAddress string

	// rootCmd represents the base command for running the pump server.
	rootCmd = &cobra.Command{
		Use:   "pump-server [listen-address]",
		Short: "Collect events from watchers and run alarms on them.",
		Long: `Starts the gRPC telemetry server that receives events from pump and tank watchers.

Every received event goes through the configured alarms and the history is
persisted to a JSON file so alarms keep their context across restarts.
Listen address can be provided as argument to override config (e.g., :9090, 0.0.0.0:50051).
With --http-addr (or server.http_addr) a read-only status API is served as well.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use listen address argument if provided, otherwise rely on config.
			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			options := &server.Options{
				ConfigPath:    configPath,
				ListenAddress: listenAddress,
				HTTPAddress:   httpAddress,
				StateFile:     stateFile,
			}

			return server.Run(ctx, options)
		},
	}
)

// Execute runs the pump-server CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().
		StringVarP(&stateFile, "state-file", "s", "", "path to persist the event history (overrides config)")
	rootCmd.Flags().StringVar(&httpAddress, "http-addr", "", "status API listen address (overrides config)")
}
