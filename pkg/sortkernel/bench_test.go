package sortkernel

import (
	"fmt"
	"slices"
	"testing"

	"github.com/eunmann/mergebench/pkg/arraygen"
)

func BenchmarkVariants(b *testing.B) {
	gen, err := arraygen.New(arraygen.DefaultConfig(100000))
	if err != nil {
		b.Fatalf("arraygen.New failed: %v", err)
	}

	variants := []Variant{StandardVariant(), HybridVariant(10), HybridVariant(30)}
	for _, typ := range arraygen.AllTypes {
		for _, n := range []int{1000, 100000} {
			in, _ := gen.Prefix(typ, n)
			for _, v := range variants {
				fn, _ := v.SortFunc()
				b.Run(fmt.Sprintf("%s/n=%d/%s", typ, n, v.Label()), func(b *testing.B) {
					work := make([]int, n)
					b.ResetTimer()
					for i := 0; i < b.N; i++ {
						copy(work, in)
						fn(work)
					}
				})
			}
		}
	}
}

func BenchmarkInsertionSortSmall(b *testing.B) {
	in := []int{31, 7, 19, 2, 44, 0, 13, 8, 27, 5, 16, 1, 39, 22, 3, 11}
	work := slices.Clone(in)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		copy(work, in)
		InsertionSort(work, 0, len(work)-1)
	}
}
