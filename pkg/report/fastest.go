package report

import (
	"cmp"
	"slices"

	"github.com/eunmann/mergebench/pkg/sortkernel"
)

// Fastest returns, per array type, the summary row with the lowest mean at
// the largest measured size. Ties keep the earlier row. Rows are ordered by
// array type.
func Fastest(rows []SummaryRow) []SummaryRow {
	largest := make(map[string]int)
	for _, r := range rows {
		largest[r.ArrayType] = max(largest[r.ArrayType], r.N)
	}

	best := make(map[string]SummaryRow)
	for _, r := range rows {
		if r.N != largest[r.ArrayType] {
			continue
		}
		if cur, ok := best[r.ArrayType]; !ok || r.Stats.Mean < cur.Stats.Mean {
			best[r.ArrayType] = r
		}
	}

	out := make([]SummaryRow, 0, len(best))
	for _, r := range best {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b SummaryRow) int {
		return cmp.Compare(a.ArrayType, b.ArrayType)
	})
	return out
}

// Label returns the variant label of the row, e.g. "standard" or "hybrid_20".
func (r SummaryRow) Label() string {
	if r.Threshold == "" || r.Threshold == sortkernel.NoThreshold {
		return r.Algorithm
	}
	return r.Algorithm + "_" + r.Threshold
}
