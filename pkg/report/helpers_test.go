package report

import (
	"github.com/eunmann/mergebench/pkg/arraygen"
	"github.com/eunmann/mergebench/pkg/experiment"
	"github.com/eunmann/mergebench/pkg/sortkernel"
	"github.com/eunmann/mergebench/pkg/timing"
)

func measurement(typ arraygen.ArrayType, n int, v sortkernel.Variant, runs ...int64) experiment.Measurement {
	s := timing.Reduce(runs)
	return experiment.Measurement{
		Type:    typ,
		N:       n,
		Variant: v,
		Result:  timing.Result{Runs: runs, Mean: s.Mean, Median: s.Median},
	}
}

// testMeasurements is a small grid in driver order.
func testMeasurements() []experiment.Measurement {
	return []experiment.Measurement{
		measurement(arraygen.Random, 500, sortkernel.StandardVariant(), 10, 20, 30, 40),
		measurement(arraygen.Random, 500, sortkernel.HybridVariant(20), 8, 9, 10, 11),
		measurement(arraygen.ReverseSorted, 500, sortkernel.StandardVariant(), 12, 12, 12, 12),
		measurement(arraygen.ReverseSorted, 500, sortkernel.HybridVariant(20), 5, 6, 7, 100),
		measurement(arraygen.Random, 600, sortkernel.StandardVariant(), 30, 10, 20, 40),
		measurement(arraygen.Random, 600, sortkernel.HybridVariant(20), 1, 2, 3, 4),
	}
}
