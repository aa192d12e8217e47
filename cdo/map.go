// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package cdo

// Map is a context dependent map.  Iteration via Len and At is in
// insertion order, except that a deletion moves the last entry into the
// position of the deleted one.
type Map[K comparable, V any] struct {
	c    *Context
	idx  map[K]int
	keys []K
	vals []V
}

// NewMap creates an empty map on c.
func NewMap[K comparable, V any](c *Context) *Map[K, V] {
	return &Map[K, V]{c: c, idx: make(map[K]int)}
}

// Len returns the number of entries of m.
func (m *Map[K, V]) Len() int {
	return len(m.keys)
}

// At returns the i'th entry of m.
func (m *Map[K, V]) At(i int) (K, V) {
	return m.keys[i], m.vals[i]
}

// Get returns the value of k.
func (m *Map[K, V]) Get(k K) (V, bool) {
	i, ok := m.idx[k]
	if !ok {
		var zero V
		return zero, false
	}
	return m.vals[i], true
}

// Has returns whether k has an entry in m.
func (m *Map[K, V]) Has(k K) bool {
	_, ok := m.idx[k]
	return ok
}

// Set sets the value of k to v.
func (m *Map[K, V]) Set(k K, v V) {
	if i, ok := m.idx[k]; ok {
		old := m.vals[i]
		m.vals[i] = v
		m.c.record(func() {
			m.vals[i] = old
		})
		return
	}
	m.idx[k] = len(m.keys)
	m.keys = append(m.keys, k)
	m.vals = append(m.vals, v)
	m.c.record(func() {
		n := len(m.keys) - 1
		delete(m.idx, m.keys[n])
		var zk K
		var zv V
		m.keys[n], m.vals[n] = zk, zv
		m.keys = m.keys[:n]
		m.vals = m.vals[:n]
	})
}

// Delete removes the entry of k, if any.
func (m *Map[K, V]) Delete(k K) {
	i, ok := m.idx[k]
	if !ok {
		return
	}
	n := len(m.keys) - 1
	dv := m.vals[i]
	lk, lv := m.keys[n], m.vals[n]
	m.keys[i], m.vals[i] = lk, lv
	m.idx[lk] = i
	delete(m.idx, k)
	m.keys = m.keys[:n]
	m.vals = m.vals[:n]
	m.c.record(func() {
		m.keys = append(m.keys, lk)
		m.vals = append(m.vals, lv)
		m.keys[i], m.vals[i] = k, dv
		m.idx[lk] = n
		m.idx[k] = i
	})
}

// Clear removes all entries.
func (m *Map[K, V]) Clear() {
	oi, okeys, ov := m.idx, m.keys, m.vals
	m.idx = make(map[K]int)
	m.keys = nil
	m.vals = nil
	m.c.record(func() {
		m.idx, m.keys, m.vals = oi, okeys, ov
	})
}

// Value is a context dependent variable.
type Value[T any] struct {
	c *Context
	v T
}

// NewValue creates a variable on c with initial value v.
func NewValue[T any](c *Context, v T) *Value[T] {
	return &Value[T]{c: c, v: v}
}

// Get returns the value.
func (x *Value[T]) Get() T {
	return x.v
}

// Set sets the value.
func (x *Value[T]) Set(v T) {
	old := x.v
	x.v = v
	x.c.record(func() {
		x.v = old
	})
}
