// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package term

// Attr is a side table attaching values of type V to terms.
//
// Terms are shared and immutable, so tags such as "is model basis" are
// kept in an Attr owned by whoever computes them.
type Attr[V any] struct {
	m map[T]V
}

// NewAttr creates an empty attribute table.
func NewAttr[V any]() *Attr[V] {
	return &Attr[V]{m: make(map[T]V)}
}

// Get returns the value attached to t, if any.
func (a *Attr[V]) Get(t T) (V, bool) {
	v, ok := a.m[t]
	return v, ok
}

// Has returns whether t has a value attached.
func (a *Attr[V]) Has(t T) bool {
	_, ok := a.m[t]
	return ok
}

// Set attaches v to t.
func (a *Attr[V]) Set(t T, v V) {
	a.m[t] = v
}

// Len returns the number of terms with an attached value.
func (a *Attr[V]) Len() int {
	return len(a.m)
}

// Clear removes all values.
func (a *Attr[V]) Clear() {
	for k := range a.m {
		delete(a.m, k)
	}
}
