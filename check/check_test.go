// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package check

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-air/fmf/ground"
	"github.com/go-air/fmf/internal/gen"
	"github.com/go-air/fmf/model"
	"github.com/go-air/fmf/repset"
	"github.com/go-air/fmf/term"
)

type fixture struct {
	tm      *term.Manager
	gm      *ground.Model
	u       *term.Type
	a, b, c term.T
	p       *term.Op
	f       *term.Op
}

func newFixture() *fixture {
	tm := term.NewManager()
	u := tm.NewSort("U")
	x := &fixture{
		tm: tm,
		gm: ground.New(tm),
		u:  u,
		a:  tm.Const(u, "a"),
		b:  tm.Const(u, "b"),
		c:  tm.Const(u, "c"),
		p:  tm.NewOp("p", tm.Bool, u),
		f:  tm.NewOp("f", u, u, u)}
	x.gm.Set(tm.App(x.p, x.a), tm.False)
	x.gm.Set(tm.App(x.p, x.b), tm.True)
	x.gm.Set(tm.App(x.p, x.c), tm.True)
	x.gm.Set(tm.App(x.f, x.a, x.a), x.a)
	x.gm.Set(tm.App(x.f, x.a, x.b), x.b)
	x.gm.Set(tm.App(x.f, x.b, x.c), x.a)
	return x
}

func (x *fixture) forall(n int, body func(vs []term.T) term.T) term.T {
	vs := make([]term.T, n)
	for i := range vs {
		vs[i] = x.tm.Var(string(rune('x'+i)), x.u)
	}
	return x.tm.Forall(vs, body(vs))
}

func (x *fixture) round(t *testing.T, v model.Variant, qs ...term.T) *model.Model {
	logger, _ := test.NewNullLogger()
	m, err := model.New(x.tm,
		model.WithGroundModel(x.gm),
		model.WithVariant(v),
		model.WithLogger(logger))
	require.NoError(t, err)
	for _, q := range qs {
		m.AssertQuantifier(q)
	}
	m.ResetRound()
	require.NoError(t, m.Initialize())
	require.NoError(t, m.Populate())
	return m
}

var variants = []model.Variant{model.VariantIG, model.VariantFMC, model.VariantAbs}

func quiet() Option {
	logger, _ := test.NewNullLogger()
	return WithLogger(logger)
}

func TestExhaustiveUnary(t *testing.T) {
	x := newFixture()
	q := x.forall(1, func(vs []term.T) term.T {
		return x.tm.App(x.p, vs[0])
	})
	for _, v := range variants {
		m := x.round(t, v, q)
		assert.Equal(t, -1, m.Relevance(q))
		r, err := Exhaustive(m, q, quiet())
		require.NoError(t, err, v.String())
		assert.Equal(t, [][]term.T{{x.a}}, r.Instances, v.String())
		assert.Equal(t, 3, r.Evaluated, v.String())
		assert.False(t, r.Incomplete)
		assert.NotEqual(t, -1, m.Relevance(q), v.String())
	}
}

func TestExhaustiveSkips(t *testing.T) {
	x := newFixture()
	tm := x.tm
	q := x.forall(2, func(vs []term.T) term.T {
		return tm.Or(tm.App(x.p, vs[0]), tm.App(x.p, vs[1]))
	})
	for _, v := range variants {
		m := x.round(t, v, q)
		r, err := Exhaustive(m, q, quiet())
		require.NoError(t, err, v.String())
		assert.Equal(t, [][]term.T{{x.a, x.a}}, r.Instances, v.String())
		// x = a visits every y, x = b and x = c decide the body alone.
		assert.Equal(t, 5, r.Evaluated, v.String())
	}
}

func TestExhaustiveLimit(t *testing.T) {
	x := newFixture()
	tm := x.tm
	q := x.forall(2, func(vs []term.T) term.T {
		return tm.And(tm.App(x.p, vs[0]), tm.App(x.p, vs[1]))
	})
	m := x.round(t, model.VariantIG, q)
	r, err := Exhaustive(m, q, quiet())
	require.NoError(t, err)
	assert.Len(t, r.Instances, 5)

	r, err = Exhaustive(m, q, quiet(), WithLimit(2))
	require.NoError(t, err)
	assert.Equal(t, [][]term.T{{x.a, x.a}, {x.a, x.b}}, r.Instances)
}

func TestCheckersAgree(t *testing.T) {
	x := newFixture()
	tm := x.tm
	qs := []term.T{
		x.forall(1, func(vs []term.T) term.T {
			return tm.App(x.p, vs[0])
		}),
		x.forall(1, func(vs []term.T) term.T {
			return tm.Implies(tm.Eq(vs[0], x.a), tm.Not(tm.App(x.p, vs[0])))
		}),
		x.forall(1, func(vs []term.T) term.T {
			return tm.Eq(tm.App(x.p, vs[0]), tm.Eq(vs[0], x.b))
		}),
		x.forall(1, func(vs []term.T) term.T {
			return tm.Ite(tm.Eq(vs[0], x.a), tm.Not(tm.App(x.p, vs[0])), tm.App(x.p, vs[0]))
		}),
		x.forall(2, func(vs []term.T) term.T {
			return tm.Implies(tm.Eq(tm.App(x.f, vs[0], vs[1]), x.b), tm.Eq(vs[0], x.a))
		}),
		x.forall(2, func(vs []term.T) term.T {
			return tm.Or(tm.App(x.p, vs[0]), tm.Eq(tm.App(x.f, vs[0], vs[1]), vs[1]))
		}),
	}
	for _, v := range variants {
		m := x.round(t, v, qs...)
		for _, q := range qs {
			r, err := Exhaustive(m, q, quiet())
			require.NoError(t, err)
			require.Zero(t, r.Unknown)
			inst, err := Counterexample(m, q, quiet())
			require.NoError(t, err)
			if len(r.Instances) == 0 {
				assert.Nil(t, inst, "%s: %s", v, tm.String(q))
				continue
			}
			require.NotNil(t, inst, "%s: %s", v, tm.String(q))
			assert.Contains(t, r.Instances, inst)
			res := m.Evaluate(tm.Body(q), repset.NewFixed(inst...))
			assert.Equal(t, model.False, res.Value)
		}
	}
}

func TestCounterexampleValues(t *testing.T) {
	x := newFixture()
	tm := x.tm
	q := x.forall(1, func(vs []term.T) term.T {
		return tm.Eq(tm.App(x.p, vs[0]), tm.Eq(vs[0], x.b))
	})
	m := x.round(t, model.VariantFMC, q)
	inst, err := Counterexample(m, q, quiet())
	require.NoError(t, err)
	assert.Equal(t, []term.T{x.c}, inst)
	assert.NotEqual(t, -1, m.Relevance(q))
}

func TestNestedQuantifier(t *testing.T) {
	x := newFixture()
	tm := x.tm
	inner := x.forall(1, func(vs []term.T) term.T {
		return tm.App(x.p, vs[0])
	})
	q := x.forall(1, func(vs []term.T) term.T {
		return tm.Or(tm.App(x.p, vs[0]), inner)
	})
	m := x.round(t, model.VariantIG, q)
	r, err := Exhaustive(m, q, quiet())
	require.NoError(t, err)
	assert.Empty(t, r.Instances)
	assert.Equal(t, 1, r.Unknown)

	_, err = Counterexample(m, q, quiet())
	assert.ErrorIs(t, err, ErrUndetermined)
}

func TestRandomAgreement(t *testing.T) {
	gen.Seed(44)
	for i := 0; i < 8; i++ {
		s := gen.NewSig(3, 2, 1)
		s.RandFacts(0.6)
		qs := make([]term.T, 6)
		for j := range qs {
			qs[j] = s.RandForall(1+j%3, 3)
		}
		for _, v := range variants {
			logger, _ := test.NewNullLogger()
			m, err := model.New(s.Terms,
				model.WithGroundModel(s.Ground),
				model.WithVariant(v),
				model.WithLogger(logger))
			require.NoError(t, err)
			for _, q := range qs {
				m.AssertQuantifier(q)
			}
			m.ResetRound()
			require.NoError(t, m.Initialize())
			require.NoError(t, m.Populate())
			for _, q := range qs {
				inst, err := Counterexample(m, q, quiet())
				if errors.Is(err, ErrUndetermined) {
					continue
				}
				require.NoError(t, err)
				r, err := Exhaustive(m, q, quiet())
				require.NoError(t, err)
				desc := v.String() + ": " + s.Terms.String(q)
				if inst == nil {
					assert.Empty(t, r.Instances, desc)
					continue
				}
				assert.Contains(t, r.Instances, inst, desc)
			}
		}
	}
}
