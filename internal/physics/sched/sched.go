// Package sched provides the execution strategy used inside coloring batches.
// Items handed to a scheduler in one call never share a particle, so they may
// run concurrently; batches themselves are always submitted one at a time.
package sched

import (
	"runtime"
	"sync"
)

// Scheduler runs n independent items of work.
type Scheduler interface {
	Run(n int, fn func(i int))
}

// Serial executes items one after another on the calling goroutine.
type Serial struct{}

// Run invokes fn for i in [0, n).
func (Serial) Run(n int, fn func(i int)) {
	for i := 0; i < n; i++ {
		fn(i)
	}
}

// Parallel fans items out over a fixed pool of goroutines.
// Each worker takes a contiguous stripe so per-item overhead stays low.
type Parallel struct {
	Workers int
}

// NewParallel returns a Parallel scheduler sized to the machine.
func NewParallel() Parallel {
	return Parallel{Workers: runtime.NumCPU()}
}

// Run invokes fn for i in [0, n), spread across workers.
// Small n falls back to the serial path; spawning goroutines for a handful
// of constraints costs more than it saves.
func (p Parallel) Run(n int, fn func(i int)) {
	workers := p.Workers
	if workers < 1 {
		workers = 1
	}
	if n < workers*4 {
		Serial{}.Run(n, fn)
		return
	}

	var wg sync.WaitGroup
	stripe := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * stripe
		if start >= n {
			break
		}
		end := start + stripe
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}
