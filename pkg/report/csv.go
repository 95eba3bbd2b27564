package report

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/eunmann/mergebench/pkg/experiment"
	"github.com/eunmann/mergebench/pkg/timing"
)

// RawHeader is the header row of the per-measurement CSV.
var RawHeader = []string{"array_type", "n", "algorithm", "threshold", "mean_usec", "median_usec", "runs_usec"}

// SummaryHeader is the header row of the aggregated CSV.
var SummaryHeader = []string{"algorithm", "array_type", "threshold", "n", "count", "mean_usec", "median_usec", "stddev_usec"}

// runSeparator joins raw samples inside the runs_usec column.
const runSeparator = ";"

// WriteRaw writes one CSV row per measurement, in the given order.
func WriteRaw(w io.Writer, ms []experiment.Measurement) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(RawHeader); err != nil {
		return fmt.Errorf("write raw header: %w", err)
	}

	row := make([]string, len(RawHeader))
	for _, m := range ms {
		row[0] = m.Type.String()
		row[1] = strconv.Itoa(m.N)
		row[2] = m.Variant.Algorithm.String()
		row[3] = m.Variant.ThresholdLabel()
		row[4] = formatUsec(m.Result.Mean)
		row[5] = formatUsec(m.Result.Median)
		row[6] = joinRuns(m.Result.Runs)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write raw row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush raw csv: %w", err)
	}
	return nil
}

// SummaryRow aggregates every raw sample of one (algorithm, array type,
// threshold, size) group.
type SummaryRow struct {
	Algorithm string
	ArrayType string
	Threshold string
	N         int
	Stats     timing.Summary

	// threshold as a number for ordering; 0 for standard.
	thresholdN int
}

// Summarize groups measurements and reduces all samples of each group.
// Rows are sorted by algorithm, array type, threshold and size.
func Summarize(ms []experiment.Measurement) []SummaryRow {
	type key struct {
		alg, typ, thr string
		n             int
	}

	samples := make(map[key][]int64)
	thresholds := make(map[key]int)
	var order []key
	for _, m := range ms {
		k := key{
			alg: m.Variant.Algorithm.String(),
			typ: m.Type.String(),
			thr: m.Variant.ThresholdLabel(),
			n:   m.N,
		}
		if _, ok := samples[k]; !ok {
			order = append(order, k)
			thresholds[k] = m.Variant.Threshold
		}
		samples[k] = append(samples[k], m.Result.Runs...)
	}

	rows := make([]SummaryRow, 0, len(order))
	for _, k := range order {
		rows = append(rows, SummaryRow{
			Algorithm:  k.alg,
			ArrayType:  k.typ,
			Threshold:  k.thr,
			N:          k.n,
			Stats:      timing.Reduce(samples[k]),
			thresholdN: thresholds[k],
		})
	}

	slices.SortFunc(rows, func(a, b SummaryRow) int {
		return cmp.Or(
			cmp.Compare(a.Algorithm, b.Algorithm),
			cmp.Compare(a.ArrayType, b.ArrayType),
			cmp.Compare(a.thresholdN, b.thresholdN),
			cmp.Compare(a.N, b.N),
		)
	})
	return rows
}

// WriteSummary writes aggregated rows as CSV.
func WriteSummary(w io.Writer, rows []SummaryRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SummaryHeader); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}

	rec := make([]string, len(SummaryHeader))
	for _, r := range rows {
		rec[0] = r.Algorithm
		rec[1] = r.ArrayType
		rec[2] = r.Threshold
		rec[3] = strconv.Itoa(r.N)
		rec[4] = strconv.Itoa(r.Stats.Count)
		rec[5] = formatUsec(r.Stats.Mean)
		rec[6] = formatUsec(r.Stats.Median)
		rec[7] = formatUsec(r.Stats.StdDev)
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush summary csv: %w", err)
	}
	return nil
}

func formatUsec(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func joinRuns(runs []int64) string {
	var sb strings.Builder
	for i, r := range runs {
		if i > 0 {
			sb.WriteString(runSeparator)
		}
		sb.WriteString(strconv.FormatInt(r, 10))
	}
	return sb.String()
}
