package sortkernel

import (
	"errors"
	"testing"
)

func TestVariantLabels(t *testing.T) {
	tests := []struct {
		v         Variant
		label     string
		threshold string
	}{
		{StandardVariant(), "standard", NoThreshold},
		{Variant{Algorithm: Standard, Threshold: 30}, "standard", NoThreshold},
		{HybridVariant(20), "hybrid_20", "20"},
		{HybridVariant(5), "hybrid_5", "5"},
	}
	for _, tt := range tests {
		if got := tt.v.Label(); got != tt.label {
			t.Errorf("Label() = %q, want %q", got, tt.label)
		}
		if got := tt.v.ThresholdLabel(); got != tt.threshold {
			t.Errorf("ThresholdLabel() = %q, want %q", got, tt.threshold)
		}
	}
}

func TestVariantValidate(t *testing.T) {
	if err := StandardVariant().Validate(); err != nil {
		t.Errorf("standard Validate() = %v", err)
	}
	if err := HybridVariant(1).Validate(); err != nil {
		t.Errorf("hybrid_1 Validate() = %v", err)
	}
	if err := HybridVariant(0).Validate(); !errors.Is(err, ErrInvalidThreshold) {
		t.Errorf("hybrid_0 Validate() = %v, want ErrInvalidThreshold", err)
	}
	if err := (Variant{Algorithm: Algorithm(7)}).Validate(); err == nil {
		t.Error("unknown algorithm Validate() = nil, want error")
	}
}

func TestVariantSortFunc(t *testing.T) {
	if _, err := HybridVariant(0).SortFunc(); !errors.Is(err, ErrInvalidThreshold) {
		t.Fatalf("SortFunc error = %v, want ErrInvalidThreshold", err)
	}

	for _, v := range []Variant{StandardVariant(), HybridVariant(3)} {
		fn, err := v.SortFunc()
		if err != nil {
			t.Fatalf("%s SortFunc failed: %v", v.Label(), err)
		}
		a := []int{5, 4, 3, 2, 1, 0, 9, 8}
		fn(a)
		if !IsSorted(a) {
			t.Errorf("%s SortFunc result not sorted: %v", v.Label(), a)
		}
	}
}

func TestParseAlgorithm(t *testing.T) {
	for _, a := range []Algorithm{Standard, Hybrid} {
		got, err := ParseAlgorithm(a.String())
		if err != nil || got != a {
			t.Errorf("ParseAlgorithm(%q) = %v, %v", a.String(), got, err)
		}
	}
	if _, err := ParseAlgorithm("quick"); err == nil {
		t.Error("ParseAlgorithm(quick) = nil error")
	}
}
