// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package model

import (
	"slices"

	"github.com/hashicorp/go-set/v3"

	"github.com/go-air/fmf/cdo"
	"github.com/go-air/fmf/internal/absdef"
	"github.com/go-air/fmf/term"
)

// Abs builds function interpretations as decision structures over the
// positions of representatives in the registry.
//
// Abs also orders the variables of each quantifier so that variables
// compared with each other are enumerated first.
type Abs struct {
	m        *Model
	defs     *cdo.Map[*term.Op, *absdef.Def]
	valid    *cdo.Map[*term.Op, bool]
	varOrder map[term.T][]int
}

func newAbs(m *Model) *Abs {
	a := &Abs{m: m}
	a.clear()
	return a
}

// Abs returns the Abs builder of m, or nil if m uses another variant.
func (m *Model) Abs() *Abs {
	a, _ := m.builder.(*Abs)
	return a
}

func (a *Abs) Variant() Variant {
	return VariantAbs
}

func (a *Abs) clear() {
	a.defs = cdo.NewMap[*term.Op, *absdef.Def](a.m.ctx)
	a.valid = cdo.NewMap[*term.Op, bool](a.m.ctx)
	a.varOrder = make(map[term.T][]int)
}

func (a *Abs) initializeTerm(t term.T) {}

func (a *Abs) initializeQuantifier(q term.T) {
	a.VariableOrder(q)
}

// VariableOrder returns the variable positions of q with the positions
// of variables occurring in an equality between two variables of q
// first, in order of occurrence.
func (a *Abs) VariableOrder(q term.T) []int {
	if o, ok := a.varOrder[q]; ok {
		return o
	}
	tm := a.m.tm
	vars := tm.BoundVars(q)
	index := make(map[term.T]int, len(vars))
	for i, v := range vars {
		index[v] = i
	}
	linked := set.New[int](len(vars))
	order := make([]int, 0, len(vars))
	link := func(v term.T) {
		i, ok := index[v]
		if ok && linked.Insert(i) {
			order = append(order, i)
		}
	}
	tm.Walk(tm.Body(q), func(t term.T) bool {
		if tm.Kind(t) != term.KEqual {
			return true
		}
		x, y := tm.Kid(t, 0), tm.Kid(t, 1)
		if tm.Kind(x) == term.KVar && tm.Kind(y) == term.KVar {
			_, okx := index[x]
			_, oky := index[y]
			if okx && oky {
				link(x)
				link(y)
			}
		}
		return true
	})
	for i := range vars {
		if !linked.Contains(i) {
			order = append(order, i)
		}
	}
	a.varOrder[q] = order
	return order
}

// RepresentativeID returns the position of the representative of t in
// the registry, or -1.
func (a *Abs) RepresentativeID(t term.T) int {
	return a.m.reg.Index(a.m.gm.Representative(t))
}

// UsedRepresentative returns the representative of t if it is in the
// registry, and otherwise the first representative of its type.
func (a *Abs) UsedRepresentative(t term.T) term.T {
	r := a.m.gm.Representative(t)
	if a.m.reg.Index(r) >= 0 {
		return r
	}
	return a.m.reg.SomeRepresentative(a.m.tm.Type(t))
}

// SetValid sets whether the definition of op may be used.
func (a *Abs) SetValid(op *term.Op, v bool) {
	a.valid.Set(op, v)
}

// Valid returns whether the definition of op may be used.
func (a *Abs) Valid(op *term.Op) bool {
	v, _ := a.valid.Get(op)
	return v
}

// Def returns the definition of op, or nil.
func (a *Abs) Def(op *term.Op) *absdef.Def {
	d, _ := a.defs.Get(op)
	return d
}

// ids returns the representative ids of args, with absdef.None for
// arguments outside the registry.
func (a *Abs) ids(args []term.T) []int {
	ids := make([]int, len(args))
	for i, c := range args {
		ids[i] = a.RepresentativeID(c)
		if ids[i] < 0 {
			ids[i] = absdef.None
		}
	}
	return ids
}

func (a *Abs) populate(op *term.Op) {
	m := a.m
	tm := m.tm
	d := absdef.New()
	apps := m.tdb.AppliedTerms(op)
	for _, app := range apps {
		ids := a.ids(tm.Kids(app))
		if slices.Contains(ids, absdef.None) {
			// no argument tuple of the registry reaches app
			continue
		}
		d.Set(ids, m.reg.Index(a.UsedRepresentative(app)))
	}
	if len(apps) == 0 || op.Arity() > 0 {
		var dv term.T
		if len(apps) > 0 {
			dv = a.UsedRepresentative(apps[0])
		} else {
			dv = m.reg.SomeRepresentative(op.Ret)
		}
		anys := make([]int, op.Arity())
		for i := range anys {
			anys[i] = absdef.Any
		}
		d.Set(anys, m.reg.Index(dv))
	}
	d.Simplify()
	a.defs.Set(op, d)
	a.SetValid(op, true)
}

func (a *Abs) hasTable(op *term.Op) bool {
	return a.Def(op) != nil && a.Valid(op)
}

func (a *Abs) lookup(app term.T, args []term.T) (term.T, []int) {
	op := a.m.tm.Op(app)
	v, dep := a.Def(op).Value(a.ids(args))
	consulted := make([]int, dep)
	for i := range consulted {
		consulted[i] = i
	}
	if v == absdef.Any {
		return term.Null, consulted
	}
	return a.m.reg.Reps(op.Ret)[v], consulted
}

// FunctionValue returns the interpretation of op as a lambda term, or
// Null if the definition of op is not valid.
func (a *Abs) FunctionValue(op *term.Op) term.T {
	d := a.Def(op)
	if d == nil || !a.Valid(op) {
		return term.Null
	}
	m := a.m
	tm := m.tm
	es := d.Entries(op.Arity())
	if len(es) == 0 {
		return term.Null
	}
	vars := m.argVars(op)
	reps := func(typ *term.Type, id int) term.T {
		return m.reg.Reps(typ)[id]
	}
	last := es[len(es)-1]
	curr := reps(op.Ret, last.Value)
	for i := len(es) - 2; i >= 0; i-- {
		var eqs []term.T
		for j, id := range es[i].Args {
			if id != absdef.Any {
				eqs = append(eqs, tm.Eq(vars[j], reps(op.Args[j], id)))
			}
		}
		if len(eqs) == 0 {
			violationf("%s: case %d of %d has no condition", op, i, len(es))
		}
		curr = tm.Ite(tm.And(eqs...), reps(op.Ret, es[i].Value), curr)
	}
	return m.lambda(vars, curr)
}
