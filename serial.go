package boxcar

import (
	"github.com/billie-coop/boxcar/internal/dispatch"
)

// Serial guards a value with a single-worker FIFO queue. Every
// operation is submitted as a task and the caller blocks until its
// task ran, so operations apply in exactly the order they arrive, one
// at a time, even under heavy contention.
//
// The queue owns a scheduler goroutine; release it with Close once the
// container is no longer needed. Using the container after Close
// panics.
type Serial[T any] struct {
	q    *dispatch.Queue
	data T
}

// NewSerial creates a queue-guarded container holding v.
func NewSerial[T any](v T) *Serial[T] {
	return &Serial[T]{q: dispatch.NewSerial(), data: v}
}

// Close shuts down the worker after all submitted tasks ran.
func (c *Serial[T]) Close() {
	c.q.Close()
}

// Get returns a snapshot of the value.
func (c *Serial[T]) Get() T {
	var v T
	c.q.Sync(func() { v = c.data })
	return v
}

// Read runs fn with a snapshot of the value on the queue's worker.
func (c *Serial[T]) Read(fn func(v T)) {
	c.q.Sync(func() { fn(c.data) })
}

// Set replaces the value.
func (c *Serial[T]) Set(v T) {
	c.q.Sync(func() { c.data = v })
}

// Update applies fn to the value as one queued task.
func (c *Serial[T]) Update(fn func(v *T)) {
	c.q.Sync(func() { fn(&c.data) })
}

// UpdateE applies fn to the value as one queued task and returns fn's
// error unchanged.
func (c *Serial[T]) UpdateE(fn func(v *T) error) error {
	var err error
	c.q.Sync(func() { err = fn(&c.data) })
	return err
}
