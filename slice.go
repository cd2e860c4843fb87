package boxcar

import (
	"encoding/json"
)

// Slice is a thread-safe slice seated on a Container. The default
// backend is an RWMutex so reads can run concurrently; NewSliceUsing
// seats the same API on any other backend.
//
// Every structural edit happens inside one Update, so compound
// operations like append, pop and insert are safe against each other:
// two goroutines popping the last element can never take the same one.
//
// Create slices with one of the constructors.
type Slice[T any] struct {
	c Container[[]T]
}

// NewSlice creates a new thread-safe slice.
func NewSlice[T any]() *Slice[T] {
	return &Slice[T]{c: NewRWMutex(make([]T, 0))}
}

// NewSliceWithCapacity creates a new thread-safe slice with specified capacity.
func NewSliceWithCapacity[T any](capacity int) *Slice[T] {
	return &Slice[T]{c: NewRWMutex(make([]T, 0, capacity))}
}

// NewSliceFrom creates a new thread-safe slice from existing slice.
func NewSliceFrom[T any](slice []T) *Slice[T] {
	data := make([]T, len(slice))
	copy(data, slice)
	return &Slice[T]{c: NewRWMutex(data)}
}

// NewSliceUsing seats the slice on c; the container's current value
// becomes the contents. Queue-backed containers stay owned by the
// caller, who closes them once the slice is no longer used.
func NewSliceUsing[T any](c Container[[]T]) *Slice[T] {
	return &Slice[T]{c: c}
}

// Append adds elements to the end of the slice.
func (s *Slice[T]) Append(elements ...T) {
	s.c.Update(func(data *[]T) {
		*data = append(*data, elements...)
	})
}

// Prepend adds elements to the beginning of the slice.
func (s *Slice[T]) Prepend(elements ...T) {
	s.c.Update(func(data *[]T) {
		merged := make([]T, 0, len(elements)+len(*data))
		merged = append(merged, elements...)
		*data = append(merged, *data...)
	})
}

// Get retrieves an element by index, returns the element and whether index is valid.
func (s *Slice[T]) Get(index int) (T, bool) {
	var value T
	var ok bool
	s.c.Read(func(data []T) {
		if index >= 0 && index < len(data) {
			value, ok = data[index], true
		}
	})
	return value, ok
}

// Set updates an element at the specified index.
func (s *Slice[T]) Set(index int, value T) bool {
	var ok bool
	s.c.Update(func(data *[]T) {
		if index >= 0 && index < len(*data) {
			(*data)[index] = value
			ok = true
		}
	})
	return ok
}

// Len returns the length of the slice.
func (s *Slice[T]) Len() int {
	var n int
	s.c.Read(func(data []T) { n = len(data) })
	return n
}

// Cap returns the capacity of the slice.
func (s *Slice[T]) Cap() int {
	var n int
	s.c.Read(func(data []T) { n = cap(data) })
	return n
}

// IsEmpty returns true if the slice is empty.
func (s *Slice[T]) IsEmpty() bool {
	return s.Len() == 0
}

// First returns the first element and whether the slice is not empty.
func (s *Slice[T]) First() (T, bool) {
	var value T
	var ok bool
	s.c.Read(func(data []T) {
		if len(data) > 0 {
			value, ok = data[0], true
		}
	})
	return value, ok
}

// Last returns the last element and whether the slice is not empty.
func (s *Slice[T]) Last() (T, bool) {
	var value T
	var ok bool
	s.c.Read(func(data []T) {
		if len(data) > 0 {
			value, ok = data[len(data)-1], true
		}
	})
	return value, ok
}

// Pop removes and returns the last element.
func (s *Slice[T]) Pop() (T, bool) {
	var value T
	var ok bool
	s.c.Update(func(data *[]T) {
		if n := len(*data); n > 0 {
			value, ok = (*data)[n-1], true
			*data = (*data)[:n-1]
		}
	})
	return value, ok
}

// RemoveAt removes an element at the specified index.
func (s *Slice[T]) RemoveAt(index int) bool {
	var ok bool
	s.c.Update(func(data *[]T) {
		if index >= 0 && index < len(*data) {
			*data = append((*data)[:index], (*data)[index+1:]...)
			ok = true
		}
	})
	return ok
}

// Insert inserts elements at the specified index.
func (s *Slice[T]) Insert(index int, elements ...T) bool {
	var ok bool
	s.c.Update(func(data *[]T) {
		if index < 0 || index > len(*data) {
			return
		}

		// Make room for new elements
		*data = append(*data, make([]T, len(elements))...)
		// Shift existing elements
		copy((*data)[index+len(elements):], (*data)[index:])
		// Insert new elements
		copy((*data)[index:], elements)
		ok = true
	})
	return ok
}

// Range iterates over all elements in the slice.
// The function f is called for each element with its index. If f returns false, iteration stops.
func (s *Slice[T]) Range(f func(index int, value T) bool) {
	s.c.Read(func(data []T) {
		for i, value := range data {
			if !f(i, value) {
				break
			}
		}
	})
}

// Filter creates a new slice containing elements that match the predicate.
func (s *Slice[T]) Filter(predicate func(T) bool) *Slice[T] {
	var kept []T
	s.c.Read(func(data []T) {
		for _, value := range data {
			if predicate(value) {
				kept = append(kept, value)
			}
		}
	})

	result := NewSlice[T]()
	if kept != nil {
		result.c.Set(kept)
	}
	return result
}

// Find returns the first element that matches the predicate.
func (s *Slice[T]) Find(predicate func(T) bool) (T, bool) {
	var found T
	var ok bool
	s.c.Read(func(data []T) {
		for _, value := range data {
			if predicate(value) {
				found, ok = value, true
				return
			}
		}
	})
	return found, ok
}

// Clear removes all elements from the slice.
func (s *Slice[T]) Clear() {
	s.c.Update(func(data *[]T) {
		*data = (*data)[:0]
	})
}

// Clone creates a shallow copy of the slice.
func (s *Slice[T]) Clone() *Slice[T] {
	clone := NewSlice[T]()
	clone.c.Set(s.ToSlice())
	return clone
}

// ToSlice returns a copy of the underlying slice, safe to hand off.
func (s *Slice[T]) ToSlice() []T {
	var result []T
	s.c.Read(func(data []T) {
		result = make([]T, len(data))
		copy(result, data)
	})
	return result
}

// MarshalJSON implements json.Marshaler interface.
func (s *Slice[T]) MarshalJSON() ([]byte, error) {
	var data []byte
	var err error
	s.c.Read(func(v []T) {
		data, err = json.Marshal(v)
	})
	return data, err
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (s *Slice[T]) UnmarshalJSON(data []byte) error {
	return s.c.UpdateE(func(v *[]T) error {
		return json.Unmarshal(data, v)
	})
}
