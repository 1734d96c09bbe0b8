package utils

import (
	"runtime"
	"sync"
)

// Task is a unit of work run once for every index of a range. Tasks are expected to be kept and
// reused between calls to Run, resetting whatever state they need beforehand.
//
// Run will be called concurrently for different indexes, so a Task must only write to locations
// owned by the index it is given.
type Task interface {
	Run(int)
}

// TaskFunc allows a plain function to be used as a Task.
type TaskFunc func(int)

func (f TaskFunc) Run(i int) {
	f(i)
}

// job is a contiguous block [start, end) of a single call to Run
type job struct {
	task       Task
	start, end int
}

// Pool multithreads operations over ranges of integers with a fixed set of goroutines. Unlike
// starting new goroutines for every range, the goroutines of a Pool are created once and live
// until Close is called.
//
// Run blocks until every index of its range has completed, which makes each call a join barrier.
// Calls to Run are serialized.
type Pool struct {
	threads int

	// the number of indexes handed to a worker at a time. If 0, it is chosen from the size of the
	// range
	opsPerThread int

	runMux sync.Mutex
	jobs   chan job
	wg     sync.WaitGroup

	closeOnce sync.Once
	closed    bool
}

// NewPool creates a Pool with the given number of worker goroutines. If threads is less than one,
// runtime.NumCPU() is used.
func NewPool(threads int) *Pool {
	if threads < 1 {
		threads = runtime.NumCPU()
	}

	p := &Pool{
		threads: threads,
		jobs:    make(chan job, threads),
	}

	for t := 0; t < threads; t++ {
		go p.work()
	}

	return p
}

// Threads returns the number of worker goroutines in the Pool.
func (p *Pool) Threads() int {
	return p.threads
}

// SetOpsPerThread sets the number of consecutive indexes a worker takes at once. Values below one
// restore the default, which splits each range into a few blocks per worker.
func (p *Pool) SetOpsPerThread(ops int) {
	p.runMux.Lock()
	if ops < 0 {
		ops = 0
	}
	p.opsPerThread = ops
	p.runMux.Unlock()
}

func (p *Pool) work() {
	for j := range p.jobs {
		for i := j.start; i < j.end; i++ {
			j.task.Run(i)
		}

		p.wg.Done()
	}
}

// Run calls t.Run(i) for every i in [0, n), distributed across the workers of the Pool, and
// returns once all of them have finished.
//
// After Close, Run executes the range on the calling goroutine.
func (p *Pool) Run(n int, t Task) {
	if n <= 0 {
		return
	}

	p.runMux.Lock()
	defer p.runMux.Unlock()

	if p.closed || p.threads == 1 || n == 1 {
		for i := 0; i < n; i++ {
			t.Run(i)
		}
		return
	}

	ops := p.opsPerThread
	if ops == 0 {
		// four blocks per worker keeps them busy when some indexes finish early
		ops = n / (4 * p.threads)
		if ops < 1 {
			ops = 1
		}
	}

	for start := 0; start < n; start += ops {
		end := start + ops
		if end > n {
			end = n
		}

		p.wg.Add(1)
		p.jobs <- job{t, start, end}
	}

	p.wg.Wait()
}

// Close stops the workers of the Pool. It is safe to call Close more than once.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.runMux.Lock()
		p.closed = true
		close(p.jobs)
		p.runMux.Unlock()
	})
}
