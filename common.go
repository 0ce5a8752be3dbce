package forkmerge

import (
	"fmt"
	"math/bits"
	"runtime"
)

/*
ComputeEffectiveCutoff determines the recursion depth below which the
parallel sorts in forkmerge/sort stop forking new goroutines.

A cutoff of 0 sorts sequentially. A cutoff of c forks at most 2^c leaf
tasks, each of which completes its subrange sequentially.

If the input cutoff is >= 0, it is returned unchanged.

If the input cutoff is < 0, a default is derived from
runtime.GOMAXPROCS(0): the smallest depth whose leaf count covers
every logical CPU, plus one more level to absorb some load
imbalance. For GOMAXPROCS of 1 this yields 1, for 8 it yields 4.
*/
func ComputeEffectiveCutoff(cutoff int) int {
	if cutoff >= 0 {
		return cutoff
	}
	procs := runtime.GOMAXPROCS(0)
	if procs < 1 {
		panic(fmt.Sprintf("invalid GOMAXPROCS: %v", procs))
	}
	return bits.Len(uint(procs-1)) + 1
}

