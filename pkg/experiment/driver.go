package experiment

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/eunmann/mergebench/internal/logctx"
	"github.com/eunmann/mergebench/pkg/arraygen"
	"github.com/eunmann/mergebench/pkg/logging"
	"github.com/eunmann/mergebench/pkg/sortkernel"
	"github.com/eunmann/mergebench/pkg/timing"
)

// Measurement is the timing result for one (array type, size, variant) cell.
type Measurement struct {
	Type    arraygen.ArrayType
	N       int
	Variant sortkernel.Variant
	Result  timing.Result
}

// Driver iterates the experiment grid and collects measurements.
type Driver struct {
	cfg     Config
	gen     *arraygen.Generator
	harness *timing.Harness

	// sortFunc resolves a variant to its sort routine.
	sortFunc func(sortkernel.Variant) (func([]int), error)
}

// New validates cfg against the generator and creates a driver.
func New(cfg Config, gen *arraygen.Generator) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if gen == nil {
		return nil, fmt.Errorf("%w: nil generator", ErrInvalidConfig)
	}
	if cfg.MaxSize > gen.MaxLen() {
		return nil, fmt.Errorf("%w: max size %d exceeds generated length %d",
			ErrInvalidConfig, cfg.MaxSize, gen.MaxLen())
	}
	return &Driver{
		cfg:      cfg,
		gen:      gen,
		harness:  timing.New(cfg.Runs),
		sortFunc: sortkernel.Variant.SortFunc,
	}, nil
}

// CellCount returns the number of measurements Run produces.
func (d *Driver) CellCount() int {
	return len(d.cfg.Sizes()) * len(arraygen.AllTypes) * len(d.cfg.Variants())
}

// Run measures every cell in order: size, then array type, then variant.
// The returned slice is in that order.
func (d *Driver) Run(ctx context.Context) ([]Measurement, error) {
	base := logctx.FromContext(ctx)
	ctx = logctx.WithPhase(ctx, "measure")
	log := logctx.FromContext(ctx)

	sizes := d.cfg.Sizes()
	variants := d.cfg.Variants()
	total := d.CellCount()
	tracker := logging.NewProgressTracker("measure", int64(total), base)

	log.Info().
		Int("sizes", len(sizes)).
		Int("variants", len(variants)).
		Int("runs", d.harness.Runs()).
		Int("cells", total).
		Bool("verify", d.cfg.Verify).
		Msg("starting measurements")

	out := make([]Measurement, 0, total)
	var last Measurement
	for step, n := range sizes {
		sizeCtx := logctx.WithInt(ctx, "n", n)
		for _, typ := range arraygen.AllTypes {
			cellCtx := logctx.WithStr(sizeCtx, "array_type", typ.String())

			input, err := d.gen.Prefix(typ, n)
			if err != nil {
				return nil, fmt.Errorf("prefix %s n=%d: %w", typ, n, err)
			}

			for _, v := range variants {
				start := time.Now()
				m, err := d.measureCell(cellCtx, typ, n, v, input)
				if err != nil {
					return nil, err
				}
				out = append(out, m)
				last = m
				tracker.RecordCompletion(time.Since(start))
			}
		}

		if d.cfg.ProgressEvery > 0 && (step+1)%d.cfg.ProgressEvery == 0 && step+1 < len(sizes) {
			tracker.Event().
				Int("n", n).
				Str("last_variant", last.Variant.Label()).
				Micros("last_mean_usec", last.Result.Mean).
				Log("measurement progress")
		}
	}

	tracker.Event().Log("measurements complete")
	return out, nil
}

func (d *Driver) measureCell(ctx context.Context, typ arraygen.ArrayType, n int, v sortkernel.Variant, input []int) (Measurement, error) {
	fn, err := d.sortFunc(v)
	if err != nil {
		return Measurement{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, v.Label(), err)
	}

	res := d.harness.Measure(input, fn)

	if d.cfg.Verify {
		check := slices.Clone(input)
		fn(check)
		if !sortkernel.IsSorted(check) {
			return Measurement{}, fmt.Errorf("%w: %s on %s n=%d", ErrUnsorted, v.Label(), typ, n)
		}
		want := slices.Clone(input)
		slices.Sort(want)
		if !slices.Equal(check, want) {
			return Measurement{}, fmt.Errorf("%w: %s on %s n=%d: output is not a permutation of the input", ErrUnsorted, v.Label(), typ, n)
		}
	}

	logctx.FromContext(ctx).Debug().
		Str("variant", v.Label()).
		Float64("mean_usec", res.Mean).
		Float64("median_usec", res.Median).
		Msg("cell measured")

	return Measurement{Type: typ, N: n, Variant: v, Result: res}, nil
}
