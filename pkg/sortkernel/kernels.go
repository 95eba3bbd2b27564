// Package sortkernel implements the merge sort variants under measurement.
//
// The standard and hybrid sorts share one recursive routine whose base case is
// controlled by a cutoff: sub-ranges no longer than the cutoff are finished with
// insertion sort. A cutoff of 1 always recurses down to single elements.
//
// All ranges are inclusive [l, r]. Indices outside the slice are caller bugs
// and panic like any other out-of-bounds access.
package sortkernel

import (
	"errors"
	"fmt"
)

// ErrInvalidThreshold indicates a hybrid threshold below 1.
var ErrInvalidThreshold = errors.New("threshold must be >= 1")

// InsertionSort sorts a[l..r] in place by shifting larger elements right.
// Stable; O(k²) for a range of length k.
func InsertionSort(a []int, l, r int) {
	for i := l + 1; i <= r; i++ {
		key := a[i]
		j := i - 1
		for j >= l && a[j] > key {
			a[j+1] = a[j]
			j--
		}
		a[j+1] = key
	}
}

// Merge merges the sorted runs a[l..mid] and a[mid+1..r] through buf,
// which must have len(buf) > r. Equal keys are taken from the left run first.
func Merge(a, buf []int, l, mid, r int) {
	i, j, k := l, mid+1, l
	for i <= mid && j <= r {
		if a[i] <= a[j] {
			buf[k] = a[i]
			i++
		} else {
			buf[k] = a[j]
			j++
		}
		k++
	}
	k += copy(buf[k:], a[i:mid+1])
	copy(buf[k:], a[j:r+1])
	copy(a[l:r+1], buf[l:r+1])
}

// MergeSort sorts a in place with top-down merge sort, recursing to size 1.
func MergeSort(a []int) {
	if len(a) < 2 {
		return
	}
	buf := make([]int, len(a))
	sortRange(a, buf, 0, len(a)-1, 1)
}

// HybridSort sorts a in place with merge sort, switching to insertion sort for
// sub-ranges of at most threshold elements. A threshold >= len(a) is plain
// insertion sort.
func HybridSort(a []int, threshold int) error {
	if threshold < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidThreshold, threshold)
	}
	if len(a) < 2 {
		return nil
	}
	if threshold >= len(a) {
		InsertionSort(a, 0, len(a)-1)
		return nil
	}
	buf := make([]int, len(a))
	sortRange(a, buf, 0, len(a)-1, threshold)
	return nil
}

func sortRange(a, buf []int, l, r, cutoff int) {
	if r-l+1 <= cutoff {
		if cutoff > 1 {
			InsertionSort(a, l, r)
		}
		return
	}
	mid := l + (r-l)/2
	sortRange(a, buf, l, mid, cutoff)
	sortRange(a, buf, mid+1, r, cutoff)
	Merge(a, buf, l, mid, r)
}

// IsSorted reports whether a is in non-decreasing order.
func IsSorted(a []int) bool {
	for i := 1; i < len(a); i++ {
		if a[i] < a[i-1] {
			return false
		}
	}
	return true
}
