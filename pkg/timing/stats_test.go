package timing

import (
	"math"
	"testing"
)

func TestReduce(t *testing.T) {
	tests := []struct {
		name    string
		samples []int64
		want    Summary
	}{
		{
			"even_count",
			[]int64{10, 20, 30, 40},
			Summary{Count: 4, Mean: 25, Median: 25, StdDev: 12.909944487358056, Min: 10, Max: 40},
		},
		{
			"odd_count",
			[]int64{10, 20, 30},
			Summary{Count: 3, Mean: 20, Median: 20, StdDev: 10, Min: 10, Max: 30},
		},
		{
			"unordered",
			[]int64{40, 10, 30, 20},
			Summary{Count: 4, Mean: 25, Median: 25, StdDev: 12.909944487358056, Min: 10, Max: 40},
		},
		{
			"single",
			[]int64{7},
			Summary{Count: 1, Mean: 7, Median: 7, StdDev: 0, Min: 7, Max: 7},
		},
		{
			"skewed",
			[]int64{1, 1, 1, 97},
			Summary{Count: 4, Mean: 25, Median: 1, StdDev: 48, Min: 1, Max: 97},
		},
		{
			"empty",
			nil,
			Summary{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reduce(tt.samples)
			if got.Count != tt.want.Count || got.Min != tt.want.Min || got.Max != tt.want.Max {
				t.Errorf("Reduce(%v) = %+v, want %+v", tt.samples, got, tt.want)
			}
			if !approxEqual(got.Mean, tt.want.Mean) {
				t.Errorf("Mean = %v, want %v", got.Mean, tt.want.Mean)
			}
			if !approxEqual(got.Median, tt.want.Median) {
				t.Errorf("Median = %v, want %v", got.Median, tt.want.Median)
			}
			if !approxEqual(got.StdDev, tt.want.StdDev) {
				t.Errorf("StdDev = %v, want %v", got.StdDev, tt.want.StdDev)
			}
		})
	}
}

func TestReduceDoesNotReorderInput(t *testing.T) {
	samples := []int64{30, 10, 20}
	Reduce(samples)
	if samples[0] != 30 || samples[1] != 10 || samples[2] != 20 {
		t.Errorf("Reduce reordered its input: %v", samples)
	}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
