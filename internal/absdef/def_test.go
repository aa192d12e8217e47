// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package absdef

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetValue(t *testing.T) {
	d := New()
	assert.True(t, d.IsEmpty())
	d.Set([]int{0, 1}, 1)
	d.Set([]int{0, Any}, 0)
	d.Set([]int{Any, Any}, 2)

	v, dep := d.Value([]int{0, 1})
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, dep)

	v, dep = d.Value([]int{0, 2})
	assert.Equal(t, 0, v)
	assert.Equal(t, 2, dep)

	v, dep = d.Value([]int{3, 0})
	assert.Equal(t, 2, v)
	assert.Equal(t, 2, dep)
}

func TestNone(t *testing.T) {
	d := New()
	d.Set([]int{0, 1}, 1)
	v, _ := d.Value([]int{None, 1})
	assert.Equal(t, Any, v)

	d.Set([]int{Any, Any}, 2)
	v, dep := d.Value([]int{None, 1})
	assert.Equal(t, 2, v)
	assert.Equal(t, 2, dep)
	assert.Panics(t, func() { d.Set([]int{None, 0}, 0) })
}

func TestSimplify(t *testing.T) {
	d := New()
	d.Set([]int{0, Any}, 2)
	d.Set([]int{1, 0}, 2)
	d.Set([]int{Any, Any}, 2)
	d.Simplify()
	v, dep := d.Value([]int{1, 0})
	assert.Equal(t, 2, v)
	assert.Equal(t, 0, dep)

	// a collapsed leaf splits again on Set
	d.Set([]int{1, 1}, 3)
	v, _ = d.Value([]int{1, 1})
	assert.Equal(t, 3, v)
	v, _ = d.Value([]int{1, 0})
	assert.Equal(t, 2, v)
}

func TestEntries(t *testing.T) {
	d := New()
	d.Set([]int{Any}, 0)
	d.Set([]int{2}, 1)
	d.Set([]int{1}, 1)
	assert.Equal(t, []Entry{
		{Args: []int{1}, Value: 1},
		{Args: []int{2}, Value: 1},
		{Args: []int{Any}, Value: 0}}, d.Entries(1))

	d = New()
	d.Set([]int{Any, Any}, 4)
	d.Simplify()
	assert.Equal(t, []Entry{{Args: []int{Any, Any}, Value: 4}}, d.Entries(2))
}
