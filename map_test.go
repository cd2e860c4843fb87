package boxcar

import (
	"encoding/json"
	"sort"
	"sync"
	"testing"
)

func TestMapSetGetDelete(t *testing.T) {
	m := NewMap[string, int]()

	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 10)

	if v, ok := m.Get("a"); !ok || v != 10 {
		t.Errorf("Get(a) = %d, %v, want 10, true", v, ok)
	}
	if _, ok := m.Get("missing"); ok {
		t.Error("Get(missing) ok = true, want false")
	}

	m.Delete("a")
	if m.Has("a") {
		t.Error("Has(a) after Delete = true")
	}
	if got := m.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}

	// Deleting a missing key is a no-op.
	m.Delete("missing")
}

func TestMapKeysValues(t *testing.T) {
	m := NewMap[string, int]()
	m.Set("b", 2)
	m.Set("a", 1)

	keys := m.Keys()
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("Keys() = %v, want [a b]", keys)
	}

	values := m.Values()
	sort.Ints(values)
	if len(values) != 2 || values[0] != 1 || values[1] != 2 {
		t.Errorf("Values() = %v, want [1 2]", values)
	}
}

func TestMapRangeStopsEarly(t *testing.T) {
	m := NewMap[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	var visited int
	m.Range(func(string, int) bool {
		visited++
		return false
	})
	if visited != 1 {
		t.Errorf("visited %d pairs, want 1", visited)
	}
}

func TestMapClear(t *testing.T) {
	m := NewMap[string, int]()
	m.Set("a", 1)
	m.Clear()

	if got := m.Len(); got != 0 {
		t.Errorf("Len() after Clear = %d, want 0", got)
	}
	m.Set("b", 2)
	if !m.Has("b") {
		t.Error("Has(b) after Clear+Set = false")
	}
}

func TestMapCloneIsIndependent(t *testing.T) {
	m := NewMap[string, int]()
	m.Set("a", 1)

	clone := m.Clone()
	clone.Set("a", 100)
	clone.Set("b", 2)

	if v, _ := m.Get("a"); v != 1 {
		t.Errorf("source Get(a) = %d, want 1", v)
	}
	if m.Has("b") {
		t.Error("source Has(b) = true, want false")
	}
}

func TestMapUsingNilValue(t *testing.T) {
	m := NewMapUsing(NewMutex[map[string]int](nil))

	if _, ok := m.Get("a"); ok {
		t.Error("Get on nil map ok = true, want false")
	}
	m.Set("a", 1)
	if v, ok := m.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v, want 1, true", v, ok)
	}
}

func TestMapConcurrentAccess(t *testing.T) {
	m := NewMap[int, int]()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for n := 0; n < 200; n++ {
				key := base*200 + n
				m.Set(key, n)
				m.Get(key)
				m.Has(key)
				if n%3 == 0 {
					m.Delete(key)
				}
			}
		}(g)
	}
	wg.Wait()

	// Every surviving key must map to its written value.
	m.Range(func(k, v int) bool {
		if k%200 != v {
			t.Errorf("key %d = %d, want %d", k, v, k%200)
		}
		return true
	})
}

func TestMapJSON(t *testing.T) {
	m := NewMap[string, int]()
	m.Set("a", 1)

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(data) != `{"a":1}` {
		t.Errorf("Marshal() = %s, want {\"a\":1}", data)
	}

	out := NewMapUsing(NewMutex[map[string]int](nil))
	if err := json.Unmarshal([]byte(`{"x":7,"y":8}`), out); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if v, ok := out.Get("y"); !ok || v != 8 {
		t.Errorf("Get(y) after Unmarshal = %d, %v, want 8, true", v, ok)
	}
}
