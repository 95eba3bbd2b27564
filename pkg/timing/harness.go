// Package timing measures wall-clock time of in-place sort routines.
//
// Every repetition sorts its own copy of the input, so each run sees the same
// unsorted data. Samples are whole microseconds from the monotonic clock.
package timing

import (
	"slices"
	"time"

	"github.com/eunmann/mergebench/pkg/sortkernel"
)

// DefaultRuns is the repetition count used when none is configured.
const DefaultRuns = 5

// Result is the sample set for one experiment cell.
type Result struct {
	// Runs holds elapsed microseconds in execution order.
	Runs   []int64
	Mean   float64
	Median float64
}

// Summary reduces the raw samples, including the standard deviation.
func (r Result) Summary() Summary {
	return Reduce(r.Runs)
}

// Harness runs a sort routine a fixed number of times and records elapsed time.
type Harness struct {
	runs int
	now  func() time.Time
}

// New creates a harness; runs below 1 are raised to 1.
func New(runs int) *Harness {
	if runs < 1 {
		runs = 1
	}
	return &Harness{runs: runs, now: time.Now}
}

// Runs returns the repetition count.
func (h *Harness) Runs() int {
	return h.runs
}

// Measure times sortFn on a fresh copy of input once per repetition.
// input is never modified. The sorted output is not checked.
func (h *Harness) Measure(input []int, sortFn func([]int)) Result {
	samples := make([]int64, 0, h.runs)
	for i := 0; i < h.runs; i++ {
		work := slices.Clone(input)

		start := h.now()
		sortFn(work)
		elapsed := h.now().Sub(start)

		samples = append(samples, elapsed.Microseconds())
	}

	s := Reduce(samples)
	return Result{
		Runs:   samples,
		Mean:   s.Mean,
		Median: s.Median,
	}
}

// MeasureVariant validates v and then times it. An invalid threshold fails
// before any sorting starts.
func (h *Harness) MeasureVariant(input []int, v sortkernel.Variant) (Result, error) {
	fn, err := v.SortFunc()
	if err != nil {
		return Result{}, err
	}
	return h.Measure(input, fn), nil
}
