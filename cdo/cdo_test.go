// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package cdo

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPushPop(t *testing.T) {
	c := New()
	l := NewList[int](c)
	l.Push(1)
	c.Push()
	l.Push(2)
	l.Push(3)
	l.Set(0, 10)
	require.Equal(t, []int{10, 2, 3}, l.Slice())
	c.Push()
	l.Clear()
	l.Push(4)
	assert.Equal(t, []int{4}, l.Slice())
	c.Pop()
	assert.Equal(t, []int{10, 2, 3}, l.Slice())
	c.Pop()
	assert.Equal(t, []int{1}, l.Slice())
	assert.Equal(t, 0, c.Level())
}

func TestPopLevelZeroPanics(t *testing.T) {
	assert.Panics(t, func() { New().Pop() })
}

func TestValue(t *testing.T) {
	c := New()
	v := NewValue(c, "a")
	c.Push()
	v.Set("b")
	c.Push()
	v.Set("c")
	v.Set("d")
	c.PopTo(1)
	assert.Equal(t, "b", v.Get())
	c.PopTo(0)
	assert.Equal(t, "a", v.Get())
}

func snapshot(m *Map[int, int]) map[int]int {
	res := make(map[int]int, m.Len())
	for i := 0; i < m.Len(); i++ {
		k, v := m.At(i)
		res[k] = v
	}
	return res
}

func TestMapRandomUndo(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	c := New()
	m := NewMap[int, int](c)
	var saved []map[int]int
	for i := 0; i < 2000; i++ {
		switch r := rnd.Intn(10); {
		case r < 5:
			m.Set(rnd.Intn(20), rnd.Intn(100))
		case r < 7:
			m.Delete(rnd.Intn(20))
		case r < 8:
			if rnd.Intn(4) == 0 {
				m.Clear()
			}
		case r < 9:
			saved = append(saved, snapshot(m))
			c.Push()
		default:
			if c.Level() == 0 {
				continue
			}
			c.Pop()
			want := saved[len(saved)-1]
			saved = saved[:len(saved)-1]
			if !assert.Equal(t, want, snapshot(m), "step %d", i) {
				return
			}
		}
		for j := 0; j < m.Len(); j++ {
			k, v := m.At(j)
			if got, ok := m.Get(k); !ok || got != v {
				t.Fatalf("step %d: index of %d broken", i, k)
			}
		}
	}
}
