package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/sump-watch/internal/service/watcher"
)

// defaultSimulatedSamples is about a week of pump activity.
const defaultSimulatedSamples = 150

var (
	simulateOpts = watcher.SimulateOptions{
		Samples: defaultSimulatedSamples,
	}

	// simulateCmd prints pump statistics for generated samples.
	simulateCmd = &cobra.Command{
		Use:   "simulate",
		Short: "Print pump statistics for simulated samples.",
		Long: `Generates pump on/off samples with the gaps seen on a real sump pump
(a run of up to 10 minutes every 45 to 145 minutes, with some edges lost)
and prints how often the pump switched and how long each run took.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if simulateOpts.Seed == 0 {
				simulateOpts.Seed = uint64(time.Now().UnixNano()) //nolint:gosec // Wall clock is never negative.
			}

			simulateOpts.Start = time.Now().Truncate(time.Minute)

			return watcher.Simulate(cmd.OutOrStdout(), &simulateOpts)
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	simulateCmd.Flags().IntVarP(&simulateOpts.Samples, "samples", "n", defaultSimulatedSamples, "number of samples")
	simulateCmd.Flags().Uint64Var(&simulateOpts.Seed, "seed", 0, "random seed (0 picks one)")
	simulateCmd.Flags().BoolVarP(&simulateOpts.Verbose, "verbose", "v", false, "print every sample")
}
