package pump

import (
	"time"
)

// Sample is one recorded status change.
type Sample struct {
	// At is when the status was observed.
	At time.Time
	// Status is the observed status.
	Status Status
}

// CountOn returns the number of On samples.
func CountOn(samples []Sample) int {
	return count(samples, On)
}

// CountOff returns the number of Off samples.
func CountOff(samples []Sample) int {
	return count(samples, Off)
}

func count(samples []Sample, status Status) int {
	n := 0

	for _, s := range samples {
		if s.Status == status {
			n++
		}
	}

	return n
}

// OnOffDurations pairs each On sample with the next Off sample after it and
// returns how long the pump ran. Repeated On samples before an Off (lost
// readings) extend the run from the first On; a trailing On with no Off is
// ignored, as are zero-length runs.
func OnOffDurations(samples []Sample) []time.Duration {
	var durations []time.Duration

	for rest := samples; len(rest) > 0; {
		on := indexOf(rest, On)
		if on < 0 {
			break
		}

		off := indexOf(rest[on+1:], Off)
		if off < 0 {
			break
		}

		off += on + 1

		if d := rest[off].At.Sub(rest[on].At); d > 0 {
			durations = append(durations, d)
		}

		rest = rest[off:]
	}

	return durations
}

func indexOf(samples []Sample, status Status) int {
	for i, s := range samples {
		if s.Status == status {
			return i
		}
	}

	return -1
}
