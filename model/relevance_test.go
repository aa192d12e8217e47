// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-air/fmf/cdo"
	"github.com/go-air/fmf/term"
)

func newTracker(n int) (*term.Manager, *cdo.Context, *Tracker, []term.T) {
	tm := term.NewManager()
	u := tm.NewSort("U")
	p := tm.NewOp("p", tm.Bool, u)
	qs := make([]term.T, n)
	for i := range qs {
		x := tm.Var("x", u)
		qs[i] = tm.Forall([]term.T{x}, tm.App(p, x))
	}
	ctx := cdo.New()
	return tm, ctx, NewTracker(tm, ctx), qs
}

func TestTouchRepeated(t *testing.T) {
	_, _, k, qs := newTracker(2)
	f, g := qs[0], qs[1]
	k.Assert(f)
	k.Assert(g)
	assert.Equal(t, -1, k.Relevance(f))
	k.Touch(f)
	r := k.Relevance(f)
	k.Touch(f)
	assert.Equal(t, r, k.Relevance(f))
	k.Touch(g)
	k.Touch(f)
	assert.Greater(t, k.Relevance(f), k.Relevance(g))
	assert.Greater(t, k.Relevance(g), r)
}

func TestReorder(t *testing.T) {
	_, _, k, qs := newTracker(5)
	for _, q := range qs[:4] {
		k.Assert(q)
	}
	assert.Equal(t, qs[:4], k.Ordered())

	k.Touch(qs[1])
	k.Touch(qs[3])
	k.Touch(qs[1])
	// touched but never asserted
	k.Touch(qs[4])
	k.Reorder()
	want := []term.T{qs[1], qs[3], qs[0], qs[2]}
	assert.Equal(t, want, k.Ordered())
	k.Reorder()
	assert.Equal(t, want, k.Ordered())
	assert.Equal(t, qs[1], k.Asserted(0, true))
	assert.Equal(t, qs[0], k.Asserted(0, false))

	k.Reset()
	assert.Equal(t, qs[:4], k.Ordered())
}

func TestAssertAfterReorder(t *testing.T) {
	_, _, k, qs := newTracker(3)
	k.Assert(qs[0])
	k.Assert(qs[1])
	k.Touch(qs[1])
	k.Reorder()
	assert.Equal(t, []term.T{qs[1], qs[0]}, k.Ordered())

	k.Assert(qs[2])
	assert.Equal(t, qs, k.Ordered())
	assert.Equal(t, qs[2], k.Asserted(2, true))
	k.Reorder()
	assert.Equal(t, []term.T{qs[1], qs[0], qs[2]}, k.Ordered())
	assert.Equal(t, qs[2], k.Asserted(2, true))
}

func TestAssertKinds(t *testing.T) {
	tm, _, k, qs := newTracker(1)
	k.Assert(tm.Not(qs[0]))
	assert.False(t, k.IsAsserted(qs[0]))
	assert.Equal(t, 0, k.NumAsserted())

	k.Assert(qs[0])
	k.Assert(qs[0])
	assert.Equal(t, 1, k.NumAsserted())

	body := tm.Body(qs[0])
	assert.Panics(t, func() { k.Assert(body) })
	assert.Panics(t, func() { k.Assert(tm.Not(tm.True)) })
	err := Guard(func() { k.Relevance(body) })
	assert.Error(t, err)
}

func TestTrackerBacktrack(t *testing.T) {
	_, ctx, k, qs := newTracker(2)
	k.Assert(qs[0])
	k.Touch(qs[0])

	ctx.Push()
	k.Assert(qs[1])
	k.Touch(qs[1])
	k.Reorder()
	require.Equal(t, []term.T{qs[1], qs[0]}, k.Ordered())
	ctx.Pop()

	assert.False(t, k.IsAsserted(qs[1]))
	assert.Equal(t, []term.T{qs[0]}, k.Ordered())
	assert.Panics(t, func() { k.Relevance(qs[1]) })
	k.Touch(qs[1])
	assert.Equal(t, 1, k.Relevance(qs[1]))
}

func TestModelActivity(t *testing.T) {
	x := newFixture()
	m := x.model(t, VariantIG)
	q := x.forall([]string{"x"}, func(vs []term.T) term.T {
		return x.tm.App(x.p, vs[0])
	})
	m.AssertQuantifier(q)
	assert.True(t, m.IsAsserted(q))
	assert.True(t, m.IsActive(q))
	m.SetActive(q, false)
	assert.False(t, m.IsActive(q))
	m.Touch(q)
	assert.Equal(t, 0, m.Relevance(q))
	m.ResetRound()
	assert.True(t, m.IsActive(q))
	assert.Equal(t, 1, m.NumAsserted())
	assert.Equal(t, q, m.Asserted(0, true))
}
