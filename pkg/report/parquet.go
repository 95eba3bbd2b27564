package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/eunmann/mergebench/pkg/experiment"
	"github.com/parquet-go/parquet-go"
)

// Stat values carried by a Record.
const (
	StatRun    = "run"
	StatMean   = "mean"
	StatMedian = "median"
)

// AggregateRepetition is the Repetition value of mean and median records.
const AggregateRepetition = -1

// Record is one long-format measurement row. Raw samples have a 0-based
// Repetition and Stat "run"; the per-cell mean and median follow with
// Repetition -1.
type Record struct {
	ArrayType   string  `parquet:"array_type,dict"`
	N           int64   `parquet:"n"`
	Algorithm   string  `parquet:"algorithm,dict"`
	Threshold   string  `parquet:"threshold,dict"`
	Repetition  int32   `parquet:"repetition"`
	Stat        string  `parquet:"stat,dict"`
	ElapsedUsec float64 `parquet:"elapsed_usec"`
}

// Flatten expands measurements into records, preserving measurement order.
func Flatten(ms []experiment.Measurement) []Record {
	var total int
	for _, m := range ms {
		total += len(m.Result.Runs) + 2
	}

	out := make([]Record, 0, total)
	for _, m := range ms {
		base := Record{
			ArrayType: m.Type.String(),
			N:         int64(m.N),
			Algorithm: m.Variant.Algorithm.String(),
			Threshold: m.Variant.ThresholdLabel(),
		}
		for i, r := range m.Result.Runs {
			rec := base
			rec.Repetition = int32(i)
			rec.Stat = StatRun
			rec.ElapsedUsec = float64(r)
			out = append(out, rec)
		}

		mean := base
		mean.Repetition = AggregateRepetition
		mean.Stat = StatMean
		mean.ElapsedUsec = m.Result.Mean
		out = append(out, mean)

		median := base
		median.Repetition = AggregateRepetition
		median.Stat = StatMedian
		median.ElapsedUsec = m.Result.Median
		out = append(out, median)
	}
	return out
}

// WriteParquet writes records as a zstd-compressed Parquet file.
func WriteParquet(w io.Writer, records []Record) error {
	pw := parquet.NewGenericWriter[Record](w, parquet.Compression(&parquet.Zstd))
	if _, err := pw.Write(records); err != nil {
		pw.Close()
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}

// ReadParquet reads every record from a Parquet stream. Parquet needs random
// access, so the stream is buffered in memory.
func ReadParquet(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffer parquet data: %w", err)
	}
	records, err := parquet.Read[Record](bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("read parquet rows: %w", err)
	}
	return records, nil
}
