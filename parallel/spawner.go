package parallel

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/exascience/forkmerge/internal"
)

// ErrResourceExhausted is returned by a Spawner that has no capacity left
// to start another goroutine.
var ErrResourceExhausted = errors.New("parallel: no capacity left to spawn a goroutine")

// A Join waits for a spawned thunk to terminate. It returns the value the
// thunk panicked with, or nil if it returned normally.
type Join func() interface{}

// A Spawner starts thunks in their own goroutines. Spawn either starts
// thunk and returns a Join for it, or returns an error and does not
// invoke thunk at all.
type Spawner interface {
	Spawn(thunk func()) (Join, error)
}

// SpawnerFunc adapts an ordinary function to the Spawner interface.
type SpawnerFunc func(thunk func()) (Join, error)

// Spawn calls f(thunk).
func (f SpawnerFunc) Spawn(thunk func()) (Join, error) {
	return f(thunk)
}

type unbounded struct{}

// Unbounded is a Spawner that starts a new goroutine for every thunk and
// never refuses.
var Unbounded Spawner = unbounded{}

func (unbounded) Spawn(thunk func()) (Join, error) {
	var p interface{}
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer func() {
			p = internal.WrapPanic(recover())
			wg.Done()
		}()
		thunk()
	}()
	return func() interface{} {
		wg.Wait()
		return p
	}, nil
}

// Bounded is a Spawner that allows at most a fixed number of its thunks
// to run at the same time. When all slots are taken, Spawn fails with
// ErrResourceExhausted instead of waiting for a slot to become free.
type Bounded struct {
	slots *semaphore.Weighted
}

// NewBounded returns a Bounded spawner with n slots. NewBounded panics
// if n < 0. A Bounded spawner with zero slots refuses every thunk.
func NewBounded(n int64) *Bounded {
	if n < 0 {
		panic(fmt.Sprintf("invalid number of slots: %v", n))
	}
	return &Bounded{slots: semaphore.NewWeighted(n)}
}

// Spawn implements the method of the Spawner interface.
func (b *Bounded) Spawn(thunk func()) (Join, error) {
	if !b.slots.TryAcquire(1) {
		return nil, ErrResourceExhausted
	}
	return Unbounded.Spawn(func() {
		defer b.slots.Release(1)
		thunk()
	})
}

// A Task is a unit of work for ForkJoin.
type Task struct {
	// Run is executed in its own goroutine if the Spawner accepts it.
	Run func()

	// Fallback is executed on the calling goroutine if the Spawner
	// refuses Run. If Fallback is nil, Run is executed there instead.
	Fallback func()
}

// ForkJoin spawns every task through s, runs the Fallback of every task
// that s refused on the calling goroutine, and then waits for the spawned
// tasks. Refused tasks are not retried. Their fallbacks run while the
// spawned tasks keep running, regardless of the order of the tasks.
// ForkJoin returns the number of refused tasks.
//
// If one or more tasks panic, ForkJoin still waits for all of them, and
// then panics with the left-most panic value.
func ForkJoin(s Spawner, tasks ...Task) (refused int) {
	var (
		joins  [2]Join
		panics [2]interface{}
	)
	js, ps := joins[:], panics[:]
	if len(tasks) > len(joins) {
		js = make([]Join, len(tasks))
		ps = make([]interface{}, len(tasks))
	}
	for i, task := range tasks {
		join, err := s.Spawn(task.Run)
		if err != nil {
			join = nil
		}
		js[i] = join
	}
	for i, task := range tasks {
		if js[i] != nil {
			continue
		}
		refused++
		fallback := task.Fallback
		if fallback == nil {
			fallback = task.Run
		}
		ps[i] = runRecovered(fallback)
	}
	for i := range tasks {
		if js[i] != nil {
			ps[i] = js[i]()
		}
	}
	for _, p := range ps[:len(tasks)] {
		if p != nil {
			panic(p)
		}
	}
	return refused
}

func runRecovered(thunk func()) (p interface{}) {
	defer func() {
		p = recover()
	}()
	thunk()
	return
}
