package sensor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/montanaflynn/stats"
)

// DefaultSamples is the number of readings averaged into one depth.
const DefaultSamples = 20

var (
	// ErrNoSamples is returned when fewer than two samples are requested;
	// the outlier filter needs a sample standard deviation.
	ErrNoSamples = errors.New("at least two samples are required")
	// ErrAllOutliers is returned when the filter rejects every reading.
	ErrAllOutliers = errors.New("every reading was an outlier")
	// ErrNotFinite is returned for NaN and infinite readings.
	ErrNotFinite = errors.New("distance is not finite")
)

// DistanceSensor measures the distance from the sensor to the water surface, in cm.
type DistanceSensor interface {
	Distance(ctx context.Context) (float64, error)
}

// DistanceFunc adapts a function to DistanceSensor.
type DistanceFunc func(ctx context.Context) (float64, error)

// Distance calls f.
func (f DistanceFunc) Distance(ctx context.Context) (float64, error) {
	return f(ctx)
}

// FileSensor reads distances published to a file by the sensor driver.
type FileSensor struct {
	path string
}

// NewFileSensor creates a sensor reading path.
func NewFileSensor(path string) *FileSensor {
	return &FileSensor{
		path: filepath.Clean(path),
	}
}

// Distance parses the file as a single number.
func (s *FileSensor) Distance(_ context.Context) (float64, error) {
	contents, err := os.ReadFile(s.path)
	if err != nil {
		return 0, fmt.Errorf("read distance: %w", err)
	}

	distance, err := strconv.ParseFloat(strings.TrimSpace(string(contents)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse distance: %w", err)
	}

	if !isFinite(distance) {
		return 0, fmt.Errorf("parse distance %q: %w", strings.TrimSpace(string(contents)), ErrNotFinite)
	}

	return distance, nil
}

// WaterDepth takes samples readings interval apart, discards those outside
// median ± one sample standard deviation, and returns sensorHeight minus the
// mean of the rest, rounded to 2 decimal places.
func WaterDepth(
	ctx context.Context,
	sensor DistanceSensor,
	samples int,
	interval time.Duration,
	sensorHeight float64,
) (float64, error) {
	if samples < 2 {
		return 0, ErrNoSamples
	}

	readings := make(stats.Float64Data, 0, samples)

	for i := range samples {
		if i > 0 && interval > 0 {
			if err := sleep(ctx, interval); err != nil {
				return 0, err
			}
		}

		distance, err := sensor.Distance(ctx)
		if err != nil {
			return 0, fmt.Errorf("sample %d: %w", i+1, err)
		}

		if !isFinite(distance) {
			return 0, fmt.Errorf("sample %d: %w", i+1, ErrNotFinite)
		}

		readings = append(readings, distance)
	}

	distance, err := filteredMean(readings)
	if err != nil {
		return 0, err
	}

	return stats.Round(sensorHeight-distance, 2)
}

// filteredMean drops outliers and averages what is left.
func filteredMean(readings stats.Float64Data) (float64, error) {
	stdev, err := stats.StandardDeviationSample(readings)
	if err != nil {
		return 0, fmt.Errorf("standard deviation: %w", err)
	}

	median, err := stats.Median(readings)
	if err != nil {
		return 0, fmt.Errorf("median: %w", err)
	}

	// Identical readings leave an empty open interval; they all agree.
	if stdev == 0 {
		return median, nil
	}

	clean := make(stats.Float64Data, 0, len(readings))

	for _, x := range readings {
		if x > median-stdev && x < median+stdev {
			clean = append(clean, x)
		}
	}

	if len(clean) == 0 {
		return 0, ErrAllOutliers
	}

	return stats.Mean(clean)
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
