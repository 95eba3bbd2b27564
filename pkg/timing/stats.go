package timing

import (
	"slices"

	"golang.org/x/exp/stats"
)

// Summary describes a set of elapsed-time samples in microseconds.
type Summary struct {
	Count  int
	Mean   float64
	Median float64
	// StdDev is the sample standard deviation; 0 for fewer than two samples.
	StdDev float64
	Min    int64
	Max    int64
}

// Reduce computes summary statistics over samples. The median of an even
// number of samples is the mean of the two middle values. An empty input
// yields a zero Summary.
func Reduce(samples []int64) Summary {
	if len(samples) == 0 {
		return Summary{}
	}

	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = float64(s)
	}
	slices.Sort(values)

	mean, stddev := stats.MeanAndStdDev(values)
	return Summary{
		Count:  len(samples),
		Mean:   mean,
		Median: stats.Median(values),
		StdDev: stddev,
		Min:    int64(values[0]),
		Max:    int64(values[len(values)-1]),
	}
}
