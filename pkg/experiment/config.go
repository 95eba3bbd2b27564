// Package experiment drives the merge sort comparison across array sizes,
// array shapes and sort variants.
package experiment

import (
	"errors"
	"fmt"

	"github.com/eunmann/mergebench/pkg/sortkernel"
	"github.com/eunmann/mergebench/pkg/timing"
)

// Sentinel errors.
var (
	ErrInvalidConfig = errors.New("invalid experiment config")
	ErrUnsorted      = errors.New("sort produced unsorted output")
)

// Default experiment parameters.
const (
	DefaultMinSize       = 500
	DefaultMaxSize       = 100000
	DefaultStep          = 100
	DefaultProgressEvery = 10
)

// DefaultThresholds are the hybrid cutoffs measured when none are given.
var DefaultThresholds = []int{5, 10, 20, 30, 50}

// Config controls which cells the driver measures.
type Config struct {
	MinSize int
	MaxSize int
	Step    int

	// Runs is the repetition count per cell. Values below 1 are treated as 1.
	Runs int

	Thresholds  []int
	RunStandard bool
	RunHybrid   bool

	// ProgressEvery is the number of size steps between progress events.
	// Zero logs progress only at the end.
	ProgressEvery int

	// Verify sorts one extra copy per cell, outside the timed region, and
	// fails the run if the output is not sorted.
	Verify bool
}

// DefaultConfig returns the standard experiment grid.
func DefaultConfig() Config {
	return Config{
		MinSize:       DefaultMinSize,
		MaxSize:       DefaultMaxSize,
		Step:          DefaultStep,
		Runs:          timing.DefaultRuns,
		Thresholds:    append([]int(nil), DefaultThresholds...),
		RunStandard:   true,
		RunHybrid:     true,
		ProgressEvery: DefaultProgressEvery,
	}
}

// Validate checks the grid before anything is generated or measured.
func (c Config) Validate() error {
	if c.MinSize < 1 {
		return fmt.Errorf("%w: min size must be >= 1, got %d", ErrInvalidConfig, c.MinSize)
	}
	if c.MinSize > c.MaxSize {
		return fmt.Errorf("%w: min size %d exceeds max size %d", ErrInvalidConfig, c.MinSize, c.MaxSize)
	}
	if c.Step <= 0 {
		return fmt.Errorf("%w: step must be > 0, got %d", ErrInvalidConfig, c.Step)
	}
	if !c.RunStandard && !c.RunHybrid {
		return fmt.Errorf("%w: no sort variant enabled", ErrInvalidConfig)
	}
	if c.RunHybrid {
		if len(c.Thresholds) == 0 {
			return fmt.Errorf("%w: hybrid enabled without thresholds", ErrInvalidConfig)
		}
		for _, t := range c.Thresholds {
			if t < 1 {
				return fmt.Errorf("%w: threshold must be >= 1, got %d", ErrInvalidConfig, t)
			}
		}
	}
	if c.ProgressEvery < 0 {
		return fmt.Errorf("%w: progress interval must be >= 0, got %d", ErrInvalidConfig, c.ProgressEvery)
	}
	return nil
}

// Sizes returns MinSize, MinSize+Step, ... up to and including MaxSize.
func (c Config) Sizes() []int {
	if c.Step <= 0 || c.MinSize > c.MaxSize {
		return nil
	}
	sizes := make([]int, 0, (c.MaxSize-c.MinSize)/c.Step+1)
	for n := c.MinSize; n <= c.MaxSize; n += c.Step {
		sizes = append(sizes, n)
	}
	return sizes
}

// Variants returns the standard variant (if enabled) followed by one hybrid
// variant per threshold in configured order.
func (c Config) Variants() []sortkernel.Variant {
	var vs []sortkernel.Variant
	if c.RunStandard {
		vs = append(vs, sortkernel.StandardVariant())
	}
	if c.RunHybrid {
		for _, t := range c.Thresholds {
			vs = append(vs, sortkernel.HybridVariant(t))
		}
	}
	return vs
}
