// Package forkmerge provides a fork-join parallel merge sort for integer
// slices. The top levels of the recursion fork two goroutines per split
// and join them before merging; below a configurable depth, the cutoff,
// the remaining subranges are sorted sequentially.
//
// Forkmerge provides the following subpackages:
//
// forkmerge/parallel provides the fork-join primitives: Do for executing
// thunks in parallel, ForkJoin for executing tasks through a Spawner that
// may refuse to start a goroutine, and RangeAnd for evaluating predicates
// over ranges in parallel.
//
// forkmerge/sort provides the merge sort itself, both sequential and
// parallel, as well as a parallel sortedness check.
//
// The cmd/forkmerge command sorts whitespace-separated integers read from
// files or standard input.
//
// Every forked task receives an index range that is disjoint from the
// range of every other task that is active at the same time. This is the
// only reason the shared slice and the shared scratch buffer need no
// locks, so the splitting code in forkmerge/sort is the one place that
// has to get it right.
package forkmerge
