// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package check

import (
	"sort"

	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
	"github.com/hashicorp/go-set/v3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/go-air/fmf/inter"
	"github.com/go-air/fmf/model"
	"github.com/go-air/fmf/repset"
	"github.com/go-air/fmf/term"
)

// ErrBounded is returned by Counterexample for quantifiers with
// variables whose range depends on other variables.
var ErrBounded = errors.New("bounded variable")

// Counterexample looks for an assignment of the variables of q to
// representatives of m under which the body of q is false.  It returns
// nil if there is none.
//
// Every variable i gets one selector literal per domain value, exactly
// one of which holds by a sorting network cardinality constraint.  Each atom of the body becomes the disjunction of
// the selector combinations of its own variables under which it
// evaluates to true.
func Counterexample(m *model.Model, q term.T, opts ...Option) ([]term.T, error) {
	o := newOptions(opts)
	var (
		inst []term.T
		err  error
	)
	if gerr := model.Guard(func() { inst, err = counterexample(m, q) }); gerr != nil {
		return nil, errors.Wrapf(gerr, "checking %s", m.Terms().String(q))
	}
	if err != nil {
		return nil, err
	}
	if inst != nil {
		m.Touch(q)
	}
	o.log.WithFields(logrus.Fields{
		"quantifier": m.Terms().String(q),
		"found":      inst != nil}).Debug("sat check")
	return inst, nil
}

func counterexample(m *model.Model, q term.T) ([]term.T, error) {
	tm := m.Terms()
	vars := tm.BoundVars(q)
	ext := m.BoundExt()
	for i, v := range vars {
		if ext.ProposeBound(q, i) != inter.EnumInvalid {
			return nil, errors.Wrapf(ErrBounded, "variable %s", tm.String(v))
		}
	}
	it, ok := m.NewIterator(q)
	if !ok {
		return nil, nil
	}
	e := &encoder{
		m:      m,
		tm:     tm,
		c:      logic.NewC(),
		idx:    make(map[term.T]int, len(vars)),
		dom:    make([][]term.T, len(vars)),
		sel:    make([][]z.Lit, len(vars)),
		levels: make([]int, len(vars)),
		memo:   make(map[term.T]z.Lit)}
	for i, v := range vars {
		e.idx[v] = i
		e.dom[i] = it.Domain(i)
		e.levels[i] = it.Level(i)
		e.sel[i] = make([]z.Lit, len(e.dom[i]))
		for j := range e.sel[i] {
			e.sel[i][j] = e.c.Lit()
		}
	}
	root, err := e.encode(tm.Body(q))
	if err != nil {
		return nil, err
	}

	one := make([]z.Lit, 0, 2*len(e.sel))
	for _, ss := range e.sel {
		cs := e.c.CardSort(ss)
		one = append(one, cs.Leq(1), cs.Geq(1))
	}

	g := gini.New()
	e.c.ToCnf(g)
	g.Add(e.c.T)
	g.Add(z.LitNull)
	for _, l := range one {
		g.Add(l)
		g.Add(z.LitNull)
	}
	g.Assume(root.Not())
	switch g.Solve() {
	case -1:
		return nil, nil
	case 1:
	default:
		return nil, errors.New("solver returned unknown")
	}
	inst := make([]term.T, len(vars))
	for i, ss := range e.sel {
		for j, s := range ss {
			if g.Value(s) {
				inst[i] = e.dom[i][j]
			}
		}
	}
	return inst, nil
}

type encoder struct {
	m      *model.Model
	tm     *term.Manager
	c      *logic.C
	idx    map[term.T]int
	dom    [][]term.T
	sel    [][]z.Lit
	levels []int
	memo   map[term.T]z.Lit
}

func (e *encoder) encode(t term.T) (z.Lit, error) {
	if l, ok := e.memo[t]; ok {
		return l, nil
	}
	tm := e.tm
	var (
		l   z.Lit
		err error
	)
	switch tm.Kind(t) {
	case term.KNot:
		l, err = e.encode(tm.Kid(t, 0))
		l = l.Not()
	case term.KAnd, term.KOr:
		ls := make([]z.Lit, tm.NumKids(t))
		for i, k := range tm.Kids(t) {
			if ls[i], err = e.encode(k); err != nil {
				return z.LitNull, err
			}
		}
		if tm.Kind(t) == term.KAnd {
			l = e.c.Ands(ls...)
		} else {
			l = e.c.Ors(ls...)
		}
	case term.KEqual:
		if !tm.Type(tm.Kid(t, 0)).IsBool() {
			l, err = e.atom(t)
			break
		}
		var a, b z.Lit
		if a, err = e.encode(tm.Kid(t, 0)); err != nil {
			return z.LitNull, err
		}
		if b, err = e.encode(tm.Kid(t, 1)); err != nil {
			return z.LitNull, err
		}
		l = e.c.Xor(a, b).Not()
	case term.KIte:
		var ls [3]z.Lit
		for i := range ls {
			if ls[i], err = e.encode(tm.Kid(t, i)); err != nil {
				return z.LitNull, err
			}
		}
		l = e.c.Choice(ls[0], ls[1], ls[2])
	case term.KForall:
		return z.LitNull, errors.Wrapf(ErrUndetermined, "nested quantifier %s", tm.String(t))
	default:
		l, err = e.atom(t)
	}
	if err != nil {
		return z.LitNull, err
	}
	e.memo[t] = l
	return l, nil
}

// atom returns a literal equivalent to the atom t over the selectors of
// the variables t contains.
func (e *encoder) atom(t term.T) (z.Lit, error) {
	tm := e.tm
	vs := set.New[int](4)
	tm.Walk(t, func(u term.T) bool {
		if i, ok := e.idx[u]; ok {
			vs.Insert(i)
		}
		return true
	})
	vars := vs.Slice()
	sort.Ints(vars)

	vals := make([]term.T, len(e.dom))
	for i, d := range e.dom {
		vals[i] = d[0]
	}
	b := &repset.Fixed{Values: vals, Levels: e.levels}
	pos := make([]int, len(vars))
	var cases []z.Lit
	for {
		for j, v := range vars {
			vals[v] = e.dom[v][pos[j]]
		}
		switch e.m.Evaluate(t, b).Value {
		case model.True:
			conj := make([]z.Lit, len(vars))
			for j, v := range vars {
				conj[j] = e.sel[v][pos[j]]
			}
			cases = append(cases, e.c.Ands(conj...))
		case model.Unknown:
			return z.LitNull, errors.Wrapf(ErrUndetermined, "atom %s", tm.String(t))
		}
		j := len(vars) - 1
		for ; j >= 0; j-- {
			pos[j]++
			if pos[j] < len(e.dom[vars[j]]) {
				break
			}
			pos[j] = 0
		}
		if j < 0 {
			return e.c.Ors(cases...), nil
		}
	}
}
