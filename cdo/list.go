// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package cdo

// List is a context dependent sequence.
type List[T any] struct {
	c    *Context
	elts []T
}

// NewList creates an empty list on c.
func NewList[T any](c *Context) *List[T] {
	return &List[T]{c: c}
}

// Len returns the length of l.
func (l *List[T]) Len() int {
	return len(l.elts)
}

// At returns the i'th element of l.
func (l *List[T]) At(i int) T {
	return l.elts[i]
}

// Slice returns the elements of l.  The result is only valid until the
// next mutation of l and must not be modified.
func (l *List[T]) Slice() []T {
	return l.elts
}

// Push appends v to l.
func (l *List[T]) Push(v T) {
	l.elts = append(l.elts, v)
	n := len(l.elts) - 1
	l.c.record(func() {
		var zero T
		l.elts[n] = zero
		l.elts = l.elts[:n]
	})
}

// Set replaces the i'th element of l by v.
func (l *List[T]) Set(i int, v T) {
	old := l.elts[i]
	l.elts[i] = v
	l.c.record(func() {
		l.elts[i] = old
	})
}

// Clear empties l.
func (l *List[T]) Clear() {
	old := l.elts
	l.elts = nil
	l.c.record(func() {
		l.elts = old
	})
}
