package pump

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// samplesAt builds samples from (seconds, status) pairs.
func samplesAt(pairs ...[2]int) []Sample {
	samples := make([]Sample, 0, len(pairs))
	for _, p := range pairs {
		samples = append(samples, Sample{At: time.Unix(int64(p[0]), 0), Status: Status(p[1])})
	}

	return samples
}

// fixture has lost readings: two On samples in a row at 505 and 620.
func fixture() []Sample {
	return samplesAt(
		[2]int{176, 1}, [2]int{186, 0}, [2]int{241, 1}, [2]int{246, 0}, [2]int{342, 1}, [2]int{345, 0},
		[2]int{378, 1}, [2]int{381, 0}, [2]int{424, 1}, [2]int{436, 0}, [2]int{505, 1}, [2]int{620, 1},
		[2]int{631, 0}, [2]int{667, 1}, [2]int{673, 0}, [2]int{772, 1}, [2]int{783, 0},
	)
}

func seconds(values ...int) []time.Duration {
	out := make([]time.Duration, 0, len(values))
	for _, v := range values {
		out = append(out, time.Duration(v)*time.Second)
	}

	return out
}

// TestCount covers simple, empty and lossy inputs.
func TestCount(t *testing.T) {
	t.Parallel()

	simple := samplesAt([2]int{100, 1}, [2]int{101, 0}, [2]int{102, 1}, [2]int{103, 0})
	require.Equal(t, 2, CountOn(simple))
	require.Equal(t, 2, CountOff(simple))

	require.Zero(t, CountOn(nil))
	require.Zero(t, CountOff(nil))

	require.Equal(t, 9, CountOn(fixture()))
	require.Equal(t, 8, CountOff(fixture()))
}

// TestOnOffDurations verifies on/off pairing with lost readings.
func TestOnOffDurations(t *testing.T) {
	t.Parallel()

	require.Equal(t, seconds(10, 5, 3, 3, 12, 126, 6, 11), OnOffDurations(fixture()))

	// A trailing On without an Off is ignored.
	trailing := append(fixture(), Sample{At: time.Unix(784, 0), Status: On})
	require.Equal(t, seconds(10, 5, 3, 3, 12, 126, 6, 11), OnOffDurations(trailing))
}

// TestOnOffDurations_NoRuns verifies inputs without any On produce no durations.
func TestOnOffDurations_NoRuns(t *testing.T) {
	t.Parallel()

	require.Empty(t, OnOffDurations(samplesAt([2]int{176, 0}, [2]int{186, 0}, [2]int{241, 0})))
	require.Empty(t, OnOffDurations(nil))
}

// TestGenerateSamples verifies the requested length and chronological order.
func TestGenerateSamples(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	samples := GenerateSamples(rand.New(rand.NewPCG(1, 2)), start, 100)

	require.Len(t, samples, 100)

	for i := 1; i < len(samples); i++ {
		require.False(t, samples[i].At.Before(samples[i-1].At))
	}

	require.Empty(t, GenerateSamples(rand.New(rand.NewPCG(1, 2)), start, 0))
	require.Empty(t, GenerateSamples(rand.New(rand.NewPCG(1, 2)), start, -1))
	require.Empty(t, GenerateSamples(rand.New(rand.NewPCG(1, 2)), start, -5))
}
