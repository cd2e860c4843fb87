package boxcar

import (
	"runtime"

	"github.com/billie-coop/boxcar/internal/dispatch"
)

// Barrier guards a value with a worker pool. Get and Read run as
// ordinary tasks and may overlap with each other; Set, Update and
// UpdateE run as barrier tasks: the queue drains everything in flight,
// runs the write alone, and only then admits later tasks. Reads never
// observe a write in progress.
//
// The queue owns a scheduler goroutine; release it with Close once the
// container is no longer needed. Using the container after Close
// panics.
type Barrier[T any] struct {
	q    *dispatch.Queue
	data T
}

// NewBarrier creates a barrier-guarded container holding v with one
// read worker per available CPU.
func NewBarrier[T any](v T) *Barrier[T] {
	return NewBarrierWorkers(v, runtime.GOMAXPROCS(0))
}

// NewBarrierWorkers creates a barrier-guarded container holding v with
// the given number of read workers.
func NewBarrierWorkers[T any](v T, workers int) *Barrier[T] {
	return &Barrier[T]{q: dispatch.NewConcurrent(workers), data: v}
}

// Close shuts down the workers after all submitted tasks ran.
func (c *Barrier[T]) Close() {
	c.q.Close()
}

// Get returns a snapshot of the value. Concurrent with other reads.
func (c *Barrier[T]) Get() T {
	var v T
	c.q.Sync(func() { v = c.data })
	return v
}

// Read runs fn with a snapshot of the value. Several Read bodies may
// run at once.
func (c *Barrier[T]) Read(fn func(v T)) {
	c.q.Sync(func() { fn(c.data) })
}

// Set replaces the value and waits until the write ran.
func (c *Barrier[T]) Set(v T) {
	c.q.Barrier(func() { c.data = v })
}

// SetAsync replaces the value without waiting. Operations submitted
// after it still observe the new value, since admission is FIFO. The
// trade-off is that nothing about the write can be reported back; use
// Set when you need to know it finished.
func (c *Barrier[T]) SetAsync(v T) {
	c.q.BarrierAsync(func() { c.data = v })
}

// Update applies fn to the value alone on the queue.
func (c *Barrier[T]) Update(fn func(v *T)) {
	c.q.Barrier(func() { fn(&c.data) })
}

// UpdateE applies fn to the value alone on the queue and returns fn's
// error unchanged.
func (c *Barrier[T]) UpdateE(fn func(v *T) error) error {
	var err error
	c.q.Barrier(func() { err = fn(&c.data) })
	return err
}
