// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-air/fmf/internal/uftree"
	"github.com/go-air/fmf/term"
)

func TestIGIntersection(t *testing.T) {
	x := newFixture()
	tm := x.tm
	h := tm.NewOp("h", tm.Bool, x.u, x.u)
	type point struct {
		app, v term.T
	}
	for _, ins := range [][2]int{{0, 1}, {1, 0}} {
		m := x.model(t, VariantIG)
		ig := m.IG()
		e := m.ModelBasisTerm(x.u)
		pts := []point{
			{tm.App(h, e, x.b), tm.True},
			{tm.App(h, x.a, e), tm.False}}
		first, second := pts[ins[0]], pts[ins[1]]
		ig.SetValue(first.app, first.v, false, true)
		ig.SetValue(second.app, second.v, false, true)

		v, ok := ig.gen(h).values[0][1].Get(tm.App(h, x.a, x.b))
		require.True(t, ok)
		assert.Equal(t, second.v, v)

		byFirst := uftree.New(tm, h, []int{0, 1})
		ig.makeModel(h, byFirst)
		bySecond := uftree.New(tm, h, []int{1, 0})
		ig.makeModel(h, bySecond)
		for _, args := range [][]term.T{
			{x.a, x.b}, {x.a, x.c}, {x.c, x.b}, {x.c, x.c}} {
			v0, _ := byFirst.Value(args)
			v1, _ := bySecond.Value(args)
			assert.Equal(t, v0, v1, "%v %s", ins, tm.String(tm.App(h, args...)))
		}
		v, _ = byFirst.Value([]term.T{x.a, x.c})
		assert.Equal(t, tm.False, v)
		v, _ = byFirst.Value([]term.T{x.c, x.b})
		assert.Equal(t, tm.True, v)
		v, _ = byFirst.Value([]term.T{x.c, x.c})
		assert.Equal(t, term.Null, v)
	}
}

func TestIGRequiredOverDefault(t *testing.T) {
	x := newFixture()
	tm := x.tm
	q := tm.NewOp("q", tm.Bool, x.u)
	m := x.model(t, VariantIG)
	ig := m.IG()
	e := m.ModelBasisTerm(x.u)
	ig.SetValue(tm.App(q, x.a), tm.True, true, true)
	ig.SetValue(tm.App(q, e), tm.False, false, false)
	tr := ig.MakeModel(q)
	v, _ := tr.Value([]term.T{x.a})
	assert.Equal(t, tm.True, v)
	v, _ = tr.Value([]term.T{x.b})
	assert.Equal(t, tm.False, v)
	v, pos := ig.lookup(tm.App(q, x.a), []term.T{x.b})
	assert.Equal(t, tm.False, v)
	assert.Equal(t, []int{0}, pos)
	assert.Equal(t, tr, ig.Tree(q))
}

func TestIGRequiredClearsDefault(t *testing.T) {
	x := newFixture()
	tm := x.tm
	q := tm.NewOp("q", tm.Bool, x.u)
	m := x.model(t, VariantIG)
	ig := m.IG()
	e := m.ModelBasisTerm(x.u)
	qb := tm.App(q, x.b)
	ig.SetValue(qb, tm.False, true, false)
	ig.SetValue(qb, tm.True, true, true)
	g := ig.gen(q)
	assert.False(t, g.values[0][1].Has(qb))
	assert.True(t, g.values[1][1].Has(qb))

	// a required non ground entry leaves ground defaults alone
	ig.SetValue(tm.App(q, x.c), tm.False, true, false)
	ig.SetValue(tm.App(q, e), tm.True, false, true)
	assert.True(t, g.values[0][1].Has(tm.App(q, x.c)))
	assert.Panics(t, func() { ig.SetValue(x.a, tm.True, true, true) })
	assert.Panics(t, func() { ig.SetValue(qb, term.Null, true, true) })
}

func TestIGTermOrder(t *testing.T) {
	x := newFixture()
	tm := x.tm
	m := x.model(t, VariantIG)
	var fyx, fxy term.T
	q := x.forall([]string{"x", "y"}, func(vs []term.T) term.T {
		fxy = tm.App(x.f, vs[0], vs[1])
		fyx = tm.App(x.f, vs[1], vs[0])
		return tm.Eq(fyx, fxy)
	})
	round(t, m, q)
	ig := m.IG()
	assert.Equal(t, []int{1, 0}, ig.termOrder[fyx])
	_, ok := ig.termOrder[fxy]
	assert.False(t, ok)

	reps := m.Registry().Reps(x.u)
	for _, a := range reps {
		for _, b := range reps {
			args := []term.T{a, b}
			want, _ := ig.Tree(x.f).Value(args)
			got, pos := ig.lookup(fyx, args)
			assert.Equal(t, want, got)
			if len(pos) > 0 {
				assert.Equal(t, 1, pos[0])
			}
		}
	}
	assert.True(t, ig.termTrees.Has(fyx))
	m.Evaluator().Reset()
	assert.False(t, ig.termTrees.Has(fyx))
}
