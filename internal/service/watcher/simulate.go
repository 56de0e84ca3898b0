package watcher

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/oshokin/sump-watch/internal/pump"
)

// ErrNegativeSamples is returned when a negative sample count is requested.
var ErrNegativeSamples = errors.New("sample count must not be negative")

// SimulateOptions controls the pump statistics simulation.
type SimulateOptions struct {
	// Samples is the number of simulated status changes.
	Samples int
	// Seed makes the run reproducible.
	Seed uint64
	// Start is the time of the first simulated sample.
	Start time.Time
	// Verbose prints every sample.
	Verbose bool
}

// Simulate generates pump samples and prints how often the pump switched and
// how long each run took.
func Simulate(w io.Writer, opts *SimulateOptions) error {
	if opts.Samples < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeSamples, opts.Samples)
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed)) //nolint:gosec // Simulation, not security.
	samples := pump.GenerateSamples(rng, opts.Start, opts.Samples)

	if opts.Verbose {
		for _, s := range samples {
			if _, err := fmt.Fprintf(w, "%s %s\n", s.At.Format(time.RFC3339), s.Status); err != nil {
				return err
			}
		}
	}

	durations := pump.OnOffDurations(samples)

	var total time.Duration
	for _, d := range durations {
		total += d
	}

	_, err := fmt.Fprintf(w, "samples: %d, on: %d, off: %d, runs: %d, total run time: %s\n",
		len(samples), pump.CountOn(samples), pump.CountOff(samples), len(durations), total)
	if err != nil {
		return err
	}

	for i, d := range durations {
		if _, err = fmt.Fprintf(w, "run %d: %s\n", i+1, d); err != nil {
			return err
		}
	}

	return nil
}
