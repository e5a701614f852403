package latency

import (
	"fmt"
	"time"

	"github.com/montanaflynn/stats"
)

// Timer is a nanosecond stopwatch for tick-to-trade measurements.
type Timer struct {
	start time.Time
}

func (t *Timer) Start() {
	t.start = time.Now()
}

// StopNs returns elapsed nanoseconds since Start.
func (t *Timer) StopNs() int64 {
	return time.Since(t.start).Nanoseconds()
}

// Summary describes a latency sample set in nanoseconds.
type Summary struct {
	Samples int
	Min     float64
	Max     float64
	Mean    float64
	StdDev  float64
	P50     float64
	P90     float64
	P99     float64
}

// Summarize computes distribution statistics over raw samples. An empty
// input yields a zero Summary.
func Summarize(samples []int64) (Summary, error) {
	if len(samples) == 0 {
		return Summary{}, nil
	}

	data := make(stats.Float64Data, len(samples))
	for i, v := range samples {
		data[i] = float64(v)
	}

	var s Summary
	var err error
	s.Samples = len(samples)
	if s.Min, err = stats.Min(data); err != nil {
		return Summary{}, err
	}
	if s.Max, err = stats.Max(data); err != nil {
		return Summary{}, err
	}
	if s.Mean, err = stats.Mean(data); err != nil {
		return Summary{}, err
	}
	if s.StdDev, err = stats.StandardDeviation(data); err != nil {
		return Summary{}, err
	}
	if s.P50, err = stats.Percentile(data, 50); err != nil {
		return Summary{}, err
	}
	if s.P90, err = stats.Percentile(data, 90); err != nil {
		return Summary{}, err
	}
	if s.P99, err = stats.Percentile(data, 99); err != nil {
		return Summary{}, err
	}
	return s, nil
}

func (s Summary) String() string {
	if s.Samples == 0 {
		return "no samples"
	}
	return fmt.Sprintf("samples=%d min=%.0fns max=%.0fns mean=%.0fns stddev=%.0fns p50=%.0fns p90=%.0fns p99=%.0fns",
		s.Samples, s.Min, s.Max, s.Mean, s.StdDev, s.P50, s.P90, s.P99)
}
