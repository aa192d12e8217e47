// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package model

import (
	"sort"

	"github.com/hashicorp/go-set/v3"

	"github.com/go-air/fmf/cdo"
	"github.com/go-air/fmf/term"
)

// Entry is a case of an FMC definition.  Cond holds an argument value or
// a star term per position.
type Entry struct {
	Cond  []term.T
	Value term.T
}

// FMC builds function interpretations as ordered lists of cases.  The
// first case whose condition matches an argument tuple gives its value.
type FMC struct {
	m      *Model
	defs   *cdo.Map[*term.Op, *cdo.List[Entry]]
	stars  map[*term.Type]term.T
	isStar *term.Attr[bool]
}

func newFMC(m *Model) *FMC {
	f := &FMC{
		m:      m,
		stars:  make(map[*term.Type]term.T),
		isStar: term.NewAttr[bool]()}
	f.clear()
	return f
}

// FMC returns the FMC builder of m, or nil if m uses another variant.
func (m *Model) FMC() *FMC {
	f, _ := m.builder.(*FMC)
	return f
}

func (f *FMC) Variant() Variant {
	return VariantFMC
}

func (f *FMC) clear() {
	f.defs = cdo.NewMap[*term.Op, *cdo.List[Entry]](f.m.ctx)
}

func (f *FMC) initializeQuantifier(q term.T) {}

func (f *FMC) initializeTerm(t term.T) {}

// Star returns the wildcard of typ.
func (f *FMC) Star(typ *term.Type) term.T {
	if s, ok := f.stars[typ]; ok {
		return s
	}
	tm := f.m.tm
	s := tm.App(tm.NewOp("*"+typ.Name, typ))
	f.stars[typ] = s
	f.isStar.Set(s, true)
	return s
}

// IsStar returns whether t is a wildcard.
func (f *FMC) IsStar(t term.T) bool {
	return f.isStar.Has(t)
}

// AddEntry appends the case cond -> v to the definition of op.
func (f *FMC) AddEntry(op *term.Op, cond []term.T, v term.T) {
	tm := f.m.tm
	if len(cond) != op.Arity() {
		violationf("%s: condition of length %d", op, len(cond))
	}
	for i, c := range cond {
		if tm.Type(c) != op.Args[i] {
			violationf("%s: condition %s at %d has type %s", op, tm.String(c), i, tm.Type(c))
		}
	}
	d, ok := f.defs.Get(op)
	if !ok {
		d = cdo.NewList[Entry](f.m.ctx)
		f.defs.Set(op, d)
	}
	d.Push(Entry{Cond: append([]term.T(nil), cond...), Value: v})
}

// Entries returns the cases of op.
func (f *FMC) Entries(op *term.Op) []Entry {
	d, ok := f.defs.Get(op)
	if !ok {
		return nil
	}
	return d.Slice()
}

func (f *FMC) populate(op *term.Op) {
	m := f.m
	tm := m.tm
	apps := m.tdb.AppliedTerms(op)
	for _, a := range apps {
		kids := tm.Kids(a)
		cond := make([]term.T, len(kids))
		for i, c := range kids {
			cond[i] = m.gm.Representative(c)
		}
		f.AddEntry(op, cond, m.gm.Representative(a))
	}
	var dv term.T
	switch {
	case len(apps) > 0 && op.Arity() == 0:
		return
	case len(apps) > 0:
		dv = m.gm.Representative(apps[0])
	default:
		dv = m.reg.SomeRepresentative(op.Ret)
	}
	cond := make([]term.T, op.Arity())
	for i, typ := range op.Args {
		cond[i] = f.Star(typ)
	}
	f.AddEntry(op, cond, dv)
}

func (f *FMC) hasTable(op *term.Op) bool {
	return f.defs.Has(op)
}

func (f *FMC) lookup(app term.T, args []term.T) (term.T, []int) {
	d, _ := f.defs.Get(f.m.tm.Op(app))
	consulted := set.New[int](len(args))
	res := term.Null
	for _, e := range d.Slice() {
		match := true
		for i, c := range e.Cond {
			if f.IsStar(c) {
				continue
			}
			consulted.Insert(i)
			if c != args[i] && !f.m.gm.AreEqual(c, args[i]) {
				match = false
				break
			}
		}
		if match {
			res = e.Value
			break
		}
	}
	pos := consulted.Slice()
	sort.Ints(pos)
	return res, pos
}

// FunctionValue returns the interpretation of op as a lambda term whose
// body tests the cases in order.
func (f *FMC) FunctionValue(op *term.Op) term.T {
	es := f.Entries(op)
	if len(es) == 0 {
		return term.Null
	}
	m := f.m
	tm := m.tm
	vars := m.argVars(op)
	curr := es[len(es)-1].Value
	for i := len(es) - 2; i >= 0; i-- {
		var eqs []term.T
		for j, c := range es[i].Cond {
			if !f.IsStar(c) {
				eqs = append(eqs, tm.Eq(vars[j], m.gm.Representative(c)))
			}
		}
		if len(eqs) == 0 {
			violationf("%s: case %d of %d has no condition", op, i, len(es))
		}
		curr = tm.Ite(tm.And(eqs...), es[i].Value, curr)
	}
	return m.lambda(vars, curr)
}
