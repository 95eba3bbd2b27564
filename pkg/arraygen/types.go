package arraygen

import (
	"errors"
	"fmt"
)

// ArrayType identifies the distribution shape of a base array.
type ArrayType uint8

// Array types, in generation order.
const (
	Random ArrayType = iota
	ReverseSorted
	AlmostSorted
	NumArrayTypes // Sentinel value for array sizing
)

var (
	// ErrInvalidRange indicates a prefix length or array type outside the generated set.
	ErrInvalidRange = errors.New("requested prefix out of range")
	// ErrInvalidConfig indicates generator parameters that cannot produce base arrays.
	ErrInvalidConfig = errors.New("invalid generator config")
)

var typeLabels = [NumArrayTypes]string{
	Random:        "random",
	ReverseSorted: "reverse_sorted",
	AlmostSorted:  "almost_sorted",
}

// AllTypes lists every array type in generation order.
var AllTypes = []ArrayType{Random, ReverseSorted, AlmostSorted}

// String returns the label used in reports.
func (t ArrayType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
	return typeLabels[t]
}

// Valid reports whether t is one of the three generated shapes.
func (t ArrayType) Valid() bool {
	return t < NumArrayTypes
}

// ParseArrayType returns the array type for a report label.
func ParseArrayType(label string) (ArrayType, error) {
	for i, l := range typeLabels {
		if l == label {
			return ArrayType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown array type %q", ErrInvalidRange, label)
}
