package boxcar

import (
	"runtime"
	"sync/atomic"
)

// Spin guards a value with a minimal spinlock. Waiters retry instead of
// parking (yielding to the scheduler between attempts), so it only pays
// off when critical sections are a handful of instructions and
// contention is low.
//
// The lock is not reentrant and not fair: a goroutine that reacquires
// while already holding it deadlocks, and a waiter can lose the lock to
// a later arrival indefinitely. Never hold it across blocking calls.
//
// The zero value is ready to use and guards T's zero value.
type Spin[T any] struct {
	flag atomic.Bool
	data T
}

// NewSpin creates a spinlock-guarded container holding v.
func NewSpin[T any](v T) *Spin[T] {
	return &Spin[T]{data: v}
}

func (c *Spin[T]) lock() {
	for !c.flag.CompareAndSwap(false, true) {
		runtime.Gosched()
	}
}

func (c *Spin[T]) unlock() {
	c.flag.Store(false)
}

// Get returns a snapshot of the value.
func (c *Spin[T]) Get() T {
	c.lock()
	defer c.unlock()
	return c.data
}

// Read runs fn with a snapshot of the value while the lock is held.
// Keep fn short: other goroutines spin for the whole call.
func (c *Spin[T]) Read(fn func(v T)) {
	c.lock()
	defer c.unlock()
	fn(c.data)
}

// Set replaces the value.
func (c *Spin[T]) Set(v T) {
	c.lock()
	defer c.unlock()
	c.data = v
}

// Update applies fn to the value under one acquisition.
func (c *Spin[T]) Update(fn func(v *T)) {
	c.lock()
	defer c.unlock()
	fn(&c.data)
}

// UpdateE applies fn to the value under one acquisition and returns
// fn's error unchanged.
func (c *Spin[T]) UpdateE(fn func(v *T) error) error {
	c.lock()
	defer c.unlock()
	return fn(&c.data)
}
