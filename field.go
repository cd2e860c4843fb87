package boxcar

import (
	"sync"
)

// Guarded is a container-backed struct field. Declare it where the
// guarded value lives, pick a backend with NewGuarded (or let the zero
// value install a Mutex on first use), and route every access through
// its methods:
//
//	type server struct {
//		sessions boxcar.Guarded[map[string]int]
//	}
//
//	srv.sessions.Update(func(m *map[string]int) {
//		if *m == nil {
//			*m = make(map[string]int)
//		}
//		(*m)["abc123"]++
//	})
//
// There is no implicit access: reads and writes are explicit calls, and
// Container hands out the backend itself so callers can reach the
// compound operations directly.
type Guarded[T any] struct {
	once sync.Once
	c    Container[T]
}

// NewGuarded creates a guarded field seated on c.
func NewGuarded[T any](c Container[T]) *Guarded[T] {
	return &Guarded[T]{c: c}
}

// Container returns the backing container, installing a Mutex over T's
// zero value if the field was never given one.
func (g *Guarded[T]) Container() Container[T] {
	g.once.Do(func() {
		if g.c == nil {
			g.c = &Mutex[T]{}
		}
	})
	return g.c
}

// Get returns a snapshot of the value.
func (g *Guarded[T]) Get() T {
	return g.Container().Get()
}

// Read runs fn with a snapshot of the value.
func (g *Guarded[T]) Read(fn func(v T)) {
	g.Container().Read(fn)
}

// Set replaces the value.
func (g *Guarded[T]) Set(v T) {
	g.Container().Set(v)
}

// Update applies fn to the value under one acquisition.
func (g *Guarded[T]) Update(fn func(v *T)) {
	g.Container().Update(fn)
}

// UpdateE applies fn to the value under one acquisition and returns
// fn's error unchanged.
func (g *Guarded[T]) UpdateE(fn func(v *T) error) error {
	return g.Container().UpdateE(fn)
}
