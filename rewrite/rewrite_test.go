// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-air/fmf/term"
)

func TestNormalize(t *testing.T) {
	tm := term.NewManager()
	u := tm.NewSort("U")
	p := tm.NewOp("p", tm.Bool, u)
	a, b := tm.Const(u, "a"), tm.Const(u, "b")
	x := tm.App(tm.NewOp("x", u))
	pa := tm.App(p, a)
	r := New(tm)

	for _, tc := range []struct {
		name string
		in   term.T
		want term.T
	}{
		{name: "double negation", in: tm.Not(tm.Not(pa)), want: pa},
		{name: "distinct constants", in: tm.Eq(a, b), want: tm.False},
		{name: "same term", in: tm.Eq(x, x), want: tm.True},
		{name: "and unit", in: tm.And(tm.True, pa), want: pa},
		{name: "and zero", in: tm.And(pa, tm.Eq(a, b)), want: tm.False},
		{name: "or flatten", in: tm.Or(pa, tm.Or(pa, tm.Eq(x, a))), want: tm.Or(pa, tm.Eq(a, x))},
		{name: "ite true", in: tm.Ite(tm.Eq(a, a), x, b), want: x},
		{name: "ite same", in: tm.Ite(pa, b, b), want: b},
		{name: "ite bool", in: tm.Ite(pa, tm.True, tm.False), want: pa},
		{name: "eq false", in: tm.Eq(pa, tm.False), want: tm.Not(pa)},
		{name: "app kids", in: tm.App(p, tm.Ite(tm.True, a, b)), want: pa},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := r.Normalize(tc.in)
			assert.Equal(t, tm.String(tc.want), tm.String(got))
			assert.Equal(t, got, r.Normalize(got), "not idempotent")
		})
	}
}

func TestReset(t *testing.T) {
	tm := term.NewManager()
	u := tm.NewSort("U")
	p := tm.NewOp("p", tm.Bool, u)
	pa := tm.App(p, tm.Const(u, "a"))
	r := New(tm)
	assert.Equal(t, pa, r.Normalize(tm.Not(tm.Not(pa))))
	assert.NotEmpty(t, r.cache)
	r.Reset()
	assert.Empty(t, r.cache)
	assert.Equal(t, pa, r.Normalize(tm.Not(tm.Not(pa))))
}
