/*
Package sort provides a fork-join parallel merge sort.

The parallel sorts fork two goroutines per split until the recursion
reaches a cutoff depth, and sort the remaining subranges sequentially.
The result does not depend on the cutoff: a cutoff of 0 and a cutoff
deeper than the recursion both produce the same, stable, order.
*/
package sort

import (
	"github.com/exascience/forkmerge/parallel"
)

/*
StableSorter is a type, typically a collection, that can be sorted by
the merge sorts in this package. The methods require that ranges of
elements of the collection can be enumerated by integer indices.
*/
type StableSorter interface {
	// Len is the number of elements in the collection.
	Len() int

	// Less reports whether the element with index i should sort
	// before the element with index j.
	Less(i, j int) bool

	// NewTemp creates a new collection that can hold as many elements
	// as the original collection. This is the scratch buffer used by
	// every merge, and is not needed anymore after the sort returns.
	// The temporary collection does not need to be initialized.
	NewTemp() StableSorter

	// Assign returns a function that assigns ranges from source to the
	// receiver collection. The element with index i is the first
	// element in the receiver to assign to, and the element with index
	// j is the first element in the source collection to assign from,
	// with len determining the number of elements to assign. The effect
	// should be the same as receiver[i:i+len] = source[j:j+len].
	Assign(source StableSorter) func(i, j, len int)
}

const sortedGrainSize = 0x1000

func isSortedRange(data StableSorter, low, high int) bool {
	for i := low; i < high; i++ {
		if data.Less(i, i-1) {
			return false
		}
	}
	return true
}

/*
IsSorted determines in parallel whether data is already sorted.
*/
func IsSorted(data StableSorter) bool {
	size := data.Len()
	if size < sortedGrainSize {
		return isSortedRange(data, 1, size)
	}
	return parallel.RangeAnd(1, size, 0, func(low, high int) bool {
		return isSortedRange(data, low, high)
	})
}

/*
IntSlice attaches the methods of StableSorter to []int, sorting in
increasing order.
*/
type IntSlice []int

func (s IntSlice) Len() int {
	return len(s)
}

func (s IntSlice) Less(i, j int) bool {
	return s[i] < s[j]
}

// NewTemp implements the method of the StableSorter interface.
func (s IntSlice) NewTemp() StableSorter {
	return IntSlice(make([]int, len(s)))
}

// Assign implements the method of the StableSorter interface.
func (s IntSlice) Assign(source StableSorter) func(i, j, len int) {
	dst, src := s, source.(IntSlice)
	return func(i, j, len int) {
		copy(dst[i:i+len], src[j:j+len])
	}
}

/*
IntsAreSorted determines in parallel whether a slice of ints is
already sorted in increasing order.
*/
func IntsAreSorted(a []int) bool {
	return IsSorted(IntSlice(a))
}
