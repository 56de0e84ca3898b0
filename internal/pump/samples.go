package pump

import (
	"math/rand/v2"
	"time"
)

const (
	// minIdle is the shortest simulated gap between a pump run and the next start.
	minIdle = 45 * time.Minute
	// maxExtraIdle is the random part added to minIdle.
	maxExtraIdle = 100 * time.Minute
	// maxRun is the longest simulated pump run.
	maxRun = 10 * time.Minute
	// lostReadingRate is how often a simulated edge goes missing.
	lostReadingRate = 0.2
)

// GenerateSamples simulates n alternating pump samples starting at start.
// About one edge in five is dropped, mimicking missed GPIO interrupts, so runs
// of two On or two Off samples appear just like in real logs.
// A non-positive n yields no samples.
func GenerateSamples(rng *rand.Rand, start time.Time, n int) []Sample {
	if n <= 0 {
		return nil
	}

	samples := make([]Sample, 0, n+1)
	at := start

	for len(samples) < n {
		if rng.Float64() >= lostReadingRate {
			at = at.Add(minIdle + randDuration(rng, maxExtraIdle))
			samples = append(samples, Sample{At: at, Status: On})
		}

		if rng.Float64() >= lostReadingRate {
			at = at.Add(randDuration(rng, maxRun))
			samples = append(samples, Sample{At: at, Status: Off})
		}
	}

	// Edges are produced in pairs and may overshoot.
	return samples[:n]
}

func randDuration(rng *rand.Rand, upTo time.Duration) time.Duration {
	return time.Duration(rng.Int64N(int64(upTo/time.Second)+1)) * time.Second
}
