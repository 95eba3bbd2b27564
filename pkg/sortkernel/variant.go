package sortkernel

import (
	"fmt"
	"strconv"
)

// Algorithm identifies a sort variant under test.
type Algorithm uint8

const (
	// Standard is plain top-down merge sort.
	Standard Algorithm = iota
	// Hybrid is merge sort with an insertion sort base case.
	Hybrid
)

// NoThreshold is the threshold label used for variants without one.
const NoThreshold = "NA"

// String returns the label used in reports.
func (a Algorithm) String() string {
	switch a {
	case Standard:
		return "standard"
	case Hybrid:
		return "hybrid"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(a))
	}
}

// ParseAlgorithm returns the algorithm for a report label.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "standard":
		return Standard, nil
	case "hybrid":
		return Hybrid, nil
	default:
		return 0, fmt.Errorf("unknown algorithm %q", s)
	}
}

// Variant is one sort configuration: an algorithm plus, for Hybrid, its threshold.
type Variant struct {
	Algorithm Algorithm
	// Threshold is ignored for Standard.
	Threshold int
}

// StandardVariant returns the plain merge sort variant.
func StandardVariant() Variant {
	return Variant{Algorithm: Standard}
}

// HybridVariant returns the hybrid variant for the given threshold.
func HybridVariant(threshold int) Variant {
	return Variant{Algorithm: Hybrid, Threshold: threshold}
}

// Validate reports configuration errors before any sorting happens.
func (v Variant) Validate() error {
	switch v.Algorithm {
	case Standard:
		return nil
	case Hybrid:
		if v.Threshold < 1 {
			return fmt.Errorf("%w: got %d", ErrInvalidThreshold, v.Threshold)
		}
		return nil
	default:
		return fmt.Errorf("unknown algorithm %d", uint8(v.Algorithm))
	}
}

// Sort sorts a in place with this variant.
func (v Variant) Sort(a []int) error {
	if err := v.Validate(); err != nil {
		return err
	}
	if v.Algorithm == Standard {
		MergeSort(a)
		return nil
	}
	return HybridSort(a, v.Threshold)
}

// SortFunc returns a validated sort function suitable for timing loops.
func (v Variant) SortFunc() (func([]int), error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	if v.Algorithm == Standard {
		return MergeSort, nil
	}
	threshold := v.Threshold
	return func(a []int) {
		// Threshold already validated.
		_ = HybridSort(a, threshold)
	}, nil
}

// ThresholdLabel returns the threshold as a report field, or NoThreshold.
func (v Variant) ThresholdLabel() string {
	if v.Algorithm != Hybrid {
		return NoThreshold
	}
	return strconv.Itoa(v.Threshold)
}

// Label returns a short unique name such as "standard" or "hybrid_20".
func (v Variant) Label() string {
	if v.Algorithm != Hybrid {
		return v.Algorithm.String()
	}
	return v.Algorithm.String() + "_" + strconv.Itoa(v.Threshold)
}
