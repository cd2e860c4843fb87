package boxcar

import (
	"encoding/json"
)

// Map is a thread-safe map seated on a Container. The default backend
// is an RWMutex so reads can run concurrently; NewMapUsing seats the
// same API on any other backend.
//
// Create maps with one of the constructors. A nil map value in a
// caller-supplied container is replaced on first write.
type Map[K comparable, V any] struct {
	c Container[map[K]V]
}

// NewMap creates a new thread-safe map.
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{c: NewRWMutex(make(map[K]V))}
}

// NewMapUsing seats the map on c; the container's current value
// becomes the contents. Queue-backed containers stay owned by the
// caller, who closes them once the map is no longer used.
func NewMapUsing[K comparable, V any](c Container[map[K]V]) *Map[K, V] {
	return &Map[K, V]{c: c}
}

// Set stores a key-value pair in the map.
func (m *Map[K, V]) Set(key K, value V) {
	m.c.Update(func(data *map[K]V) {
		if *data == nil {
			*data = make(map[K]V)
		}
		(*data)[key] = value
	})
}

// Get retrieves a value by key, returns the value and whether it exists.
func (m *Map[K, V]) Get(key K) (V, bool) {
	var value V
	var exists bool
	m.c.Read(func(data map[K]V) {
		value, exists = data[key]
	})
	return value, exists
}

// Delete removes a key-value pair from the map.
func (m *Map[K, V]) Delete(key K) {
	m.c.Update(func(data *map[K]V) {
		delete(*data, key)
	})
}

// Has checks if a key exists in the map.
func (m *Map[K, V]) Has(key K) bool {
	var exists bool
	m.c.Read(func(data map[K]V) {
		_, exists = data[key]
	})
	return exists
}

// Len returns the number of key-value pairs in the map.
func (m *Map[K, V]) Len() int {
	var n int
	m.c.Read(func(data map[K]V) { n = len(data) })
	return n
}

// Keys returns a slice of all keys in the map.
func (m *Map[K, V]) Keys() []K {
	var keys []K
	m.c.Read(func(data map[K]V) {
		keys = make([]K, 0, len(data))
		for key := range data {
			keys = append(keys, key)
		}
	})
	return keys
}

// Values returns a slice of all values in the map.
func (m *Map[K, V]) Values() []V {
	var values []V
	m.c.Read(func(data map[K]V) {
		values = make([]V, 0, len(data))
		for _, value := range data {
			values = append(values, value)
		}
	})
	return values
}

// Range iterates over all key-value pairs in the map.
// The function f is called for each pair. If f returns false, iteration stops.
func (m *Map[K, V]) Range(f func(key K, value V) bool) {
	m.c.Read(func(data map[K]V) {
		for key, value := range data {
			if !f(key, value) {
				break
			}
		}
	})
}

// Clear removes all key-value pairs from the map.
func (m *Map[K, V]) Clear() {
	m.c.Set(make(map[K]V))
}

// Clone creates a shallow copy of the map.
func (m *Map[K, V]) Clone() *Map[K, V] {
	clone := NewMap[K, V]()
	clone.c.Set(m.ToMap())
	return clone
}

// ToMap returns a copy of the underlying map, safe to hand off.
func (m *Map[K, V]) ToMap() map[K]V {
	var result map[K]V
	m.c.Read(func(data map[K]V) {
		result = make(map[K]V, len(data))
		for key, value := range data {
			result[key] = value
		}
	})
	return result
}

// MarshalJSON implements json.Marshaler interface.
func (m *Map[K, V]) MarshalJSON() ([]byte, error) {
	var data []byte
	var err error
	m.c.Read(func(v map[K]V) {
		data, err = json.Marshal(v)
	})
	return data, err
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (m *Map[K, V]) UnmarshalJSON(data []byte) error {
	return m.c.UpdateE(func(v *map[K]V) error {
		if *v == nil {
			*v = make(map[K]V)
		}
		return json.Unmarshal(data, v)
	})
}
