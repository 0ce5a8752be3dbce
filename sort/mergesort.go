package sort

import (
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/exascience/forkmerge"
	"github.com/exascience/forkmerge/parallel"
)

// Config determines how StableSort and Ints fork their work.
type Config struct {
	// Cutoff is the recursion depth at which no more goroutines are
	// forked; subranges at that depth are sorted sequentially. 0 sorts
	// everything on the calling goroutine. A negative Cutoff is replaced
	// by forkmerge.ComputeEffectiveCutoff(Cutoff).
	Cutoff int

	// Spawner starts the forked goroutines. If nil, parallel.Unbounded
	// is used.
	Spawner parallel.Spawner

	// Logger receives debug output about refused spawns and finished
	// sorts. If nil, nothing is logged.
	Logger *zap.Logger
}

// DefaultConfig returns the Config used by StableSort and Ints.
func DefaultConfig() Config {
	return Config{
		Cutoff:  -1,
		Spawner: parallel.Unbounded,
		Logger:  zap.NewNop(),
	}
}

// A task is the range [left, right] of one recursive sort, together with
// its depth in the recursion. Each task is owned by exactly one goroutine.
type task struct {
	left, right, level int
}

type sorter struct {
	cutoff  int
	spawner parallel.Spawner
	logger  *zap.Logger

	// less compares two elements of the collection being sorted.
	less func(i, j int) bool
	// tempLess compares two elements of the scratch buffer.
	tempLess func(i, j int) bool
	// save copies from the collection into the scratch buffer.
	save func(i, j, len int)
	// restore copies from the scratch buffer back into the collection.
	restore func(i, j, len int)

	refused atomic.Int64
}

func newSorter(data StableSorter, cutoff int, spawner parallel.Spawner, logger *zap.Logger) *sorter {
	if spawner == nil {
		spawner = parallel.Unbounded
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	temp := data.NewTemp()
	return &sorter{
		cutoff:   cutoff,
		spawner:  spawner,
		logger:   logger,
		less:     data.Less,
		tempLess: temp.Less,
		save:     temp.Assign(data),
		restore:  data.Assign(temp),
	}
}

// merge combines the sorted spans [leftstart, leftend] and [rightstart,
// rightend] into one sorted span. When elements compare equal, the one
// from the left span comes first.
func (s *sorter) merge(leftstart, leftend, rightstart, rightend int) {
	if rightstart != leftend+1 || leftstart > leftend || rightstart > rightend {
		panic(fmt.Sprintf("invalid merge spans: %v:%v, %v:%v", leftstart, leftend, rightstart, rightend))
	}
	if !s.less(rightstart, leftend) {
		return
	}

	s.save(leftstart, leftstart, rightend+1-leftstart)

	i, j, k := leftstart, rightstart, leftstart
	for i <= leftend && j <= rightend {
		q := i
		for (i <= leftend) && !s.tempLess(j, i) {
			i++
		}
		s.restore(k, q, i-q)
		k += i - q

		if i > leftend {
			break
		}

		q = j
		for (j <= rightend) && s.tempLess(j, i) {
			j++
		}
		s.restore(k, q, j-q)
		k += j - q
	}
	s.restore(k, i, leftend+1-i)
	k += leftend + 1 - i
	s.restore(k, j, rightend+1-j)
}

func (s *sorter) sequentialSort(left, right int) {
	if left >= right {
		return
	}
	mid := left + (right-left)/2
	s.sequentialSort(left, mid)
	s.sequentialSort(mid+1, right)
	s.merge(left, mid, mid+1, right)
}

func (s *sorter) parallelSort(t task) {
	if t.left >= t.right {
		return
	}
	if t.level >= s.cutoff {
		s.sequentialSort(t.left, t.right)
		return
	}
	mid := t.left + (t.right-t.left)/2
	refused := parallel.ForkJoin(s.spawner,
		s.fork(task{left: t.left, right: mid, level: t.level + 1}),
		s.fork(task{left: mid + 1, right: t.right, level: t.level + 1}),
	)
	tasksSpawned.Add(float64(2 - refused))
	s.merge(t.left, mid, mid+1, t.right)
}

// fork describes how t runs as a forked task. If no goroutine can be
// spawned for it, t is sorted sequentially on the forking goroutine.
func (s *sorter) fork(t task) parallel.Task {
	return parallel.Task{
		Run: func() { s.parallelSort(t) },
		Fallback: func() {
			s.refused.Add(1)
			spawnFallbacks.Inc()
			s.logger.Debug("spawn refused, sorting sequentially",
				zap.Int("left", t.left),
				zap.Int("right", t.right),
				zap.Int("level", t.level),
			)
			s.sequentialSort(t.left, t.right)
		},
	}
}

// Sort sorts data in increasing order, forking as determined by c.
//
// Sort is stable: elements that compare equal keep their original
// relative order.
func (c Config) Sort(data StableSorter) {
	size := data.Len()
	if size < 2 {
		return
	}
	start := time.Now()
	cutoff := forkmerge.ComputeEffectiveCutoff(c.Cutoff)
	s := newSorter(data, cutoff, c.Spawner, c.Logger)
	s.parallelSort(task{left: 0, right: size - 1, level: 0})
	elapsed := time.Since(start)
	sortDuration.Observe(elapsed.Seconds())
	s.logger.Debug("sorted",
		zap.Int("n", size),
		zap.Int("cutoff", cutoff),
		zap.Int64("fallbacks", s.refused.Load()),
		zap.Duration("duration", elapsed),
	)
}

// SortInts sorts a in increasing order, forking as determined by c.
func (c Config) SortInts(a []int) {
	c.Sort(IntSlice(a))
}

// StableSort uses a fork-join parallel merge sort with the default
// configuration. The cutoff is derived from runtime.GOMAXPROCS(0).
//
// StableSort needs a shallow copy of the data collection as additional
// temporary memory.
func StableSort(data StableSorter) {
	DefaultConfig().Sort(data)
}

// SequentialSort sorts data in increasing order on the calling
// goroutine, using the same merge as StableSort.
func SequentialSort(data StableSorter) {
	size := data.Len()
	if size < 2 {
		return
	}
	newSorter(data, 0, nil, nil).sequentialSort(0, size-1)
}

// Ints sorts a slice of ints in increasing order with the default
// configuration.
func Ints(a []int) {
	StableSort(IntSlice(a))
}

// IntsWithCutoff sorts a slice of ints in increasing order, forking
// goroutines for the first cutoff levels of the recursion. A cutoff of
// 0 sorts sequentially.
//
// IntsWithCutoff panics if cutoff < 0.
func IntsWithCutoff(a []int, cutoff int) {
	if cutoff < 0 {
		panic(fmt.Sprintf("invalid cutoff: %v", cutoff))
	}
	c := DefaultConfig()
	c.Cutoff = cutoff
	c.SortInts(a)
}

// SequentialInts sorts a slice of ints in increasing order on the
// calling goroutine.
func SequentialInts(a []int) {
	SequentialSort(IntSlice(a))
}
