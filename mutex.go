package boxcar

import (
	"sync"
)

// Mutex guards a value with a single exclusive lock. Every operation,
// reads included, takes the lock, which makes it the safe default when
// the access pattern is unknown.
//
// The zero value is ready to use and guards T's zero value.
type Mutex[T any] struct {
	mu   sync.Mutex
	data T
}

// NewMutex creates a mutex-guarded container holding v.
func NewMutex[T any](v T) *Mutex[T] {
	return &Mutex[T]{data: v}
}

// Get returns a snapshot of the value.
func (c *Mutex[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data
}

// Read runs fn with a snapshot of the value while the lock is held.
func (c *Mutex[T]) Read(fn func(v T)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.data)
}

// Set replaces the value.
func (c *Mutex[T]) Set(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = v
}

// Update applies fn to the value under one acquisition.
func (c *Mutex[T]) Update(fn func(v *T)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.data)
}

// UpdateE applies fn to the value under one acquisition and returns
// fn's error unchanged.
func (c *Mutex[T]) UpdateE(fn func(v *T) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(&c.data)
}
