package boxcar

import (
	"sync"
)

// watchBuffer is how many pending updates a subscriber channel holds
// before further updates are dropped for that subscriber.
const watchBuffer = 10

// Watched decorates a container with change notification. After every
// write that goes through it (Set and Update always, UpdateE only when
// fn returned nil), the new value is sent to every subscriber.
//
// Delivery is best-effort: a subscriber that stops draining its channel
// misses updates instead of blocking writers.
type Watched[T any] struct {
	c Container[T]

	mu          sync.RWMutex
	subscribers []chan T
}

// NewWatched wraps c with change notification.
func NewWatched[T any](c Container[T]) *Watched[T] {
	return &Watched[T]{c: c}
}

// Subscribe returns a channel that receives the value after every
// write. Unsubscribe or Close ends delivery and closes the channel.
func (w *Watched[T]) Subscribe() <-chan T {
	w.mu.Lock()
	defer w.mu.Unlock()

	ch := make(chan T, watchBuffer)
	w.subscribers = append(w.subscribers, ch)
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (w *Watched[T]) Unsubscribe(target <-chan T) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i, ch := range w.subscribers {
		if ch == target {
			w.subscribers = append(w.subscribers[:i], w.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Close closes every subscriber channel and drops the registry. The
// wrapped container itself stays usable.
func (w *Watched[T]) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, ch := range w.subscribers {
		close(ch)
	}
	w.subscribers = nil
}

// Get returns a snapshot of the value.
func (w *Watched[T]) Get() T {
	return w.c.Get()
}

// Read runs fn with a snapshot of the value.
func (w *Watched[T]) Read(fn func(v T)) {
	w.c.Read(fn)
}

// Set replaces the value and notifies subscribers.
func (w *Watched[T]) Set(v T) {
	w.c.Set(v)
	w.publish(v)
}

// Update applies fn under one acquisition and notifies subscribers
// with the value fn produced.
func (w *Watched[T]) Update(fn func(v *T)) {
	var v T
	w.c.Update(func(p *T) {
		fn(p)
		v = *p
	})
	w.publish(v)
}

// UpdateE applies fn under one acquisition and returns fn's error
// unchanged. Subscribers are notified only when fn returned nil.
func (w *Watched[T]) UpdateE(fn func(v *T) error) error {
	var v T
	err := w.c.UpdateE(func(p *T) error {
		if err := fn(p); err != nil {
			return err
		}
		v = *p
		return nil
	})
	if err != nil {
		return err
	}

	w.publish(v)
	return nil
}

func (w *Watched[T]) publish(v T) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, ch := range w.subscribers {
		select {
		case ch <- v:
		default:
			// Subscriber is behind, skip this update
		}
	}
}
