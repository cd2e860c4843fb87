package boxcar

import (
	"sync"
)

// RWMutex guards a value with a reader/writer lock. Get and Read take
// the read side and may run concurrently with each other; Set, Update
// and UpdateE take the write side and run alone.
//
// Update takes the write side up front even when fn ends up not
// modifying anything, since the lock cannot be upgraded mid-flight.
//
// The zero value is ready to use and guards T's zero value.
type RWMutex[T any] struct {
	mu   sync.RWMutex
	data T
}

// NewRWMutex creates a reader/writer-guarded container holding v.
func NewRWMutex[T any](v T) *RWMutex[T] {
	return &RWMutex[T]{data: v}
}

// Get returns a snapshot of the value. Concurrent with other reads.
func (c *RWMutex[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data
}

// Read runs fn with a snapshot of the value while the read side is
// held. Several Read bodies may run at once.
func (c *RWMutex[T]) Read(fn func(v T)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn(c.data)
}

// Set replaces the value.
func (c *RWMutex[T]) Set(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = v
}

// Update applies fn to the value under one write acquisition.
func (c *RWMutex[T]) Update(fn func(v *T)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.data)
}

// UpdateE applies fn to the value under one write acquisition and
// returns fn's error unchanged.
func (c *RWMutex[T]) UpdateE(fn func(v *T) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(&c.data)
}
