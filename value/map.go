package value

import "iter"

// Map is an object: unique string keys in insertion order.
//
// Setting an existing key replaces its value in place and keeps the
// original position. The zero Map is empty and ready to use; a nil *Map
// behaves as an empty, read-only map.
type Map struct {
	keys  []string
	vals  []Value
	index map[string]int
}

// NewMap returns an empty map with room for capacity entries.
func NewMap(capacity int) *Map {
	return &Map{
		keys:  make([]string, 0, capacity),
		vals:  make([]Value, 0, capacity),
		index: make(map[string]int, capacity),
	}
}

// Len returns the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	i, ok := m.index[key]
	if !ok {
		return Value{}, false
	}
	return m.vals[i], true
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.index[key]
	return ok
}

// Set stores v under key and reports whether an existing value was replaced.
func (m *Map) Set(key string, v Value) bool {
	if i, ok := m.index[key]; ok {
		m.vals[i] = v
		return true
	}
	if m.index == nil {
		m.index = make(map[string]int)
	}
	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, v)
	return false
}

// Keys returns a copy of the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// All iterates over the entries in insertion order.
func (m *Map) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if m == nil {
			return
		}
		for i, k := range m.keys {
			if !yield(k, m.vals[i]) {
				return
			}
		}
	}
}

// Equal reports whether m and o hold the same keys, in the same order,
// with equal values.
func (m *Map) Equal(o *Map) bool {
	if m.Len() != o.Len() {
		return false
	}
	for i := 0; i < m.Len(); i++ {
		if m.keys[i] != o.keys[i] || !m.vals[i].Equal(o.vals[i]) {
			return false
		}
	}
	return true
}
