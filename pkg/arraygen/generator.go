// Package arraygen builds reproducible synthetic integer arrays for sort experiments.
//
// A Generator produces one full-length base array per ArrayType at construction
// and serves copies of their prefixes. Because every size is cut from the same
// base array, Prefix(t, n) is always a prefix of Prefix(t, n+1).
package arraygen

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
)

// Default value range for generated elements.
const (
	DefaultMin  = 0
	DefaultMax  = 6000
	DefaultSeed = 12345
)

// Config configures base array generation.
type Config struct {
	// MaxLen is the length of every base array and the largest valid prefix.
	MaxLen int
	// Min and Max bound element values (inclusive).
	Min int
	Max int
	// Seed for the pseudo-random source.
	Seed int64
}

// DefaultConfig returns a config for the given base length with the default range and seed.
func DefaultConfig(maxLen int) Config {
	return Config{
		MaxLen: maxLen,
		Min:    DefaultMin,
		Max:    DefaultMax,
		Seed:   DefaultSeed,
	}
}

// Validate checks that the config can produce base arrays.
func (c Config) Validate() error {
	if c.MaxLen <= 0 {
		return fmt.Errorf("%w: max length must be positive, got %d", ErrInvalidConfig, c.MaxLen)
	}
	if c.Min > c.Max {
		return fmt.Errorf("%w: value range [%d, %d] is empty", ErrInvalidConfig, c.Min, c.Max)
	}
	// Values are drawn with Int63n, so Max-Min+1 must fit in an int64.
	if uint64(int64(c.Max)-int64(c.Min)) >= math.MaxInt64 {
		return fmt.Errorf("%w: value range [%d, %d] is wider than %d", ErrInvalidConfig, c.Min, c.Max, int64(math.MaxInt64))
	}
	return nil
}

// SwapCount returns the number of random pair swaps applied to the almost-sorted
// array of length n: 0.1% of n, at least 1 and at most 100.
func SwapCount(n int) int {
	return min(100, max(1, n/1000))
}

// Generator holds the three base arrays. It is safe for concurrent reads
// once New returns.
type Generator struct {
	cfg  Config
	base [NumArrayTypes][]int
}

// New validates cfg and eagerly generates all base arrays.
func New(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Generator{cfg: cfg}
	rng := rand.New(rand.NewSource(cfg.Seed))

	// Order matters: all three arrays draw from one source.
	g.base[Random] = g.generateRandom(rng)
	g.base[ReverseSorted] = g.generateReverseSorted()
	g.base[AlmostSorted] = g.generateAlmostSorted(rng)

	return g, nil
}

func (g *Generator) generateRandom(rng *rand.Rand) []int {
	span := int64(g.cfg.Max) - int64(g.cfg.Min) + 1
	arr := make([]int, g.cfg.MaxLen)
	for i := range arr {
		arr[i] = g.cfg.Min + int(rng.Int63n(span))
	}
	return arr
}

// generateReverseSorted cycles through the value range and sorts descending,
// so it does not consume the random source.
func (g *Generator) generateReverseSorted() []int {
	span := int64(g.cfg.Max) - int64(g.cfg.Min) + 1
	arr := make([]int, g.cfg.MaxLen)
	for i := range arr {
		arr[i] = g.cfg.Min + int(int64(i)%span)
	}
	slices.SortFunc(arr, func(a, b int) int {
		switch {
		case a > b:
			return -1
		case a < b:
			return 1
		default:
			return 0
		}
	})
	return arr
}

func (g *Generator) generateAlmostSorted(rng *rand.Rand) []int {
	arr := slices.Clone(g.base[Random])
	slices.Sort(arr)

	n := len(arr)
	for k := 0; k < SwapCount(n); k++ {
		i := rng.Intn(n)
		j := rng.Intn(n)
		arr[i], arr[j] = arr[j], arr[i]
	}
	return arr
}

// Prefix returns a fresh copy of the first n elements of the base array for t.
func (g *Generator) Prefix(t ArrayType, n int) ([]int, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: unknown array type %d", ErrInvalidRange, uint8(t))
	}
	if n <= 0 || n > g.cfg.MaxLen {
		return nil, fmt.Errorf("%w: size %d not in [1, %d]", ErrInvalidRange, n, g.cfg.MaxLen)
	}
	return slices.Clone(g.base[t][:n]), nil
}

// MaxLen returns the base array length.
func (g *Generator) MaxLen() int { return g.cfg.MaxLen }

// Min returns the lower bound of generated values.
func (g *Generator) Min() int { return g.cfg.Min }

// Max returns the upper bound of generated values.
func (g *Generator) Max() int { return g.cfg.Max }

// Seed returns the seed the base arrays were generated from.
func (g *Generator) Seed() int64 { return g.cfg.Seed }

