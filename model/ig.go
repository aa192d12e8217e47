// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package model

import (
	"sort"

	"github.com/go-air/fmf/cdo"
	"github.com/go-air/fmf/internal/uftree"
	"github.com/go-air/fmf/term"
)

// igGen accumulates the points of the interpretation of one symbol.
type igGen struct {
	// values[required][ground] maps applications to values.
	values   [2][2]*cdo.Map[term.T, term.T]
	defaults *cdo.List[term.T]
	dflt     *cdo.Value[term.T]
}

func newIGGen(ctx *cdo.Context) *igGen {
	g := &igGen{
		defaults: cdo.NewList[term.T](ctx),
		dflt:     cdo.NewValue(ctx, term.Null)}
	for i := range g.values {
		for j := range g.values[i] {
			g.values[i][j] = cdo.NewMap[term.T, term.T](ctx)
		}
	}
	return g
}

func bit(b bool) int {
	if b {
		return 1
	}
	return 0
}

// IG builds function interpretations as trees over argument values, from
// points which may use model basis terms as wildcards.  The points of
// any two wildcard entries which overlap are defined explicitly so that
// the result does not depend on the order in which the tree branches on
// arguments.
type IG struct {
	m         *Model
	gens      map[*term.Op]*igGen
	trees     *cdo.Map[*term.Op, *uftree.Tree]
	termOrder map[term.T][]int
	termTrees *cdo.Map[term.T, *uftree.Tree]
}

func newIG(m *Model) *IG {
	ig := &IG{m: m}
	ig.clear()
	return ig
}

// IG returns the IG builder of m, or nil if m uses another variant.
func (m *Model) IG() *IG {
	ig, _ := m.builder.(*IG)
	return ig
}

func (ig *IG) Variant() Variant {
	return VariantIG
}

func (ig *IG) clear() {
	ig.gens = make(map[*term.Op]*igGen)
	ig.trees = cdo.NewMap[*term.Op, *uftree.Tree](ig.m.ctx)
	ig.termOrder = make(map[term.T][]int)
	ig.termTrees = cdo.NewMap[term.T, *uftree.Tree](ig.m.ctx)
}

func (ig *IG) resetTermTrees() {
	ig.termTrees.Clear()
}

func (ig *IG) gen(op *term.Op) *igGen {
	g, ok := ig.gens[op]
	if !ok {
		g = newIGGen(ig.m.ctx)
		ig.gens[op] = g
	}
	return g
}

func (ig *IG) initializeQuantifier(q term.T) {}

// initializeTerm computes the order in which lookups of the application
// t branch on its arguments: arguments mentioning only shallow variables
// come first.
func (ig *IG) initializeTerm(t term.T) {
	tm := ig.m.tm
	kids := tm.Kids(t)
	pos := make(map[term.T][]int, len(kids))
	var args []term.T
	for i, c := range kids {
		if _, ok := pos[c]; !ok {
			args = append(args, c)
		}
		pos[c] = append(pos[c], i)
	}
	maxVar := make(map[term.T]int, len(args))
	for _, a := range args {
		mv := -1
		tm.Walk(a, func(u term.T) bool {
			if tm.Kind(u) == term.KVar {
				if i, ok := ig.m.varIndex.Get(u); ok && i > mv {
					mv = i
				}
			}
			return true
		})
		maxVar[a] = mv
	}
	sort.SliceStable(args, func(i, j int) bool {
		return maxVar[args[i]] < maxVar[args[j]]
	})
	order := make([]int, 0, len(kids))
	for _, a := range args {
		order = append(order, pos[a]...)
	}
	for i, p := range order {
		if i != p {
			ig.termOrder[t] = order
			return
		}
	}
}

// SetValue records that the application app has value v.  ground
// indicates app has no model basis arguments, required that the point
// is asserted rather than derived from a default.
func (ig *IG) SetValue(app, v term.T, ground, required bool) {
	tm := ig.m.tm
	if tm.Kind(app) != term.KApp {
		violationf("table entry for %s", tm.String(app))
	}
	if v == term.Null {
		violationf("null value for %s", tm.String(app))
	}
	g := ig.gen(tm.Op(app))
	gi := bit(ground)
	g.values[bit(required)][gi].Set(app, v)
	if !ground {
		n := g.defaults.Len()
		for i := 0; i < n; i++ {
			ni, niGround := ig.intersection(app, g.defaults.At(i))
			if ni == term.Null {
				continue
			}
			k := bit(niGround)
			if !g.values[0][k].Has(ni) && !g.values[1][k].Has(ni) {
				ig.SetValue(ni, v, niGround, false)
			}
		}
		g.defaults.Push(app)
	}
	if required && g.values[0][gi].Has(app) {
		g.values[0][gi].Delete(app)
	}
}

// SetDefaultValue sets the value of op on points not otherwise defined.
func (ig *IG) SetDefaultValue(op *term.Op, v term.T) {
	ig.gen(op).dflt.Set(v)
}

// intersection returns the application matching exactly the points
// matched by both a and b, or Null.
func (ig *IG) intersection(a, b term.T) (term.T, bool) {
	m := ig.m
	tm := m.tm
	ground := true
	args := make([]term.T, tm.NumKids(a))
	for i := range args {
		x, y := tm.Kid(a, i), tm.Kid(b, i)
		switch {
		case x == y:
			if m.IsModelBasis(x) {
				ground = false
			}
			args[i] = x
		case m.IsModelBasis(x):
			args[i] = y
		case m.IsModelBasis(y):
			args[i] = x
		case m.gm.AreEqual(x, y):
			args[i] = x
		default:
			return term.Null, false
		}
	}
	return tm.App(tm.Op(a), args...), ground
}

// MakeModel builds the tree of op from the recorded points.
func (ig *IG) MakeModel(op *term.Op) *uftree.Tree {
	t := uftree.New(ig.m.tm, op, nil)
	ig.makeModel(op, t)
	ig.trees.Set(op, t)
	var stale []term.T
	for i := 0; i < ig.termTrees.Len(); i++ {
		if app, _ := ig.termTrees.At(i); ig.m.tm.Op(app) == op {
			stale = append(stale, app)
		}
	}
	for _, app := range stale {
		ig.termTrees.Delete(app)
	}
	return t
}

func (ig *IG) makeModel(op *term.Op, t *uftree.Tree) {
	g := ig.gen(op)
	for j := 0; j < 2; j++ {
		for k := 0; k < 2; k++ {
			vals := g.values[j][k]
			for i := 0; i < vals.Len(); i++ {
				app, v := vals.At(i)
				t.SetValue(ig.keys(app, k == 1), v)
			}
		}
	}
	if d := g.dflt.Get(); d != term.Null {
		t.SetDefault(d)
	}
	t.Simplify()
}

func (ig *IG) keys(app term.T, ground bool) []term.T {
	m := ig.m
	kids := m.tm.Kids(app)
	keys := make([]term.T, len(kids))
	for i, c := range kids {
		if !ground && m.IsModelBasis(c) {
			continue
		}
		keys[i] = m.gm.Representative(c)
	}
	return keys
}

// Tree returns the tree built for op, or nil.
func (ig *IG) Tree(op *term.Op) *uftree.Tree {
	t, _ := ig.trees.Get(op)
	return t
}

func (ig *IG) populate(op *term.Op) {
	m := ig.m
	tm := m.tm
	apps := m.tdb.AppliedTerms(op)
	for _, a := range apps {
		kids := tm.Kids(a)
		args := make([]term.T, len(kids))
		for i, c := range kids {
			args[i] = m.gm.Representative(c)
		}
		ig.SetValue(tm.App(op, args...), m.gm.Representative(a), true, true)
	}
	basis := m.ModelBasisOpTerm(op)
	var dv term.T
	switch {
	case m.gm.HasTerm(basis):
		dv = m.gm.Representative(basis)
	case len(apps) > 0:
		dv = m.gm.Representative(apps[0])
	default:
		dv = m.reg.SomeRepresentative(op.Ret)
	}
	if op.Arity() > 0 {
		ig.SetValue(basis, dv, false, false)
	}
	ig.SetDefaultValue(op, dv)
	ig.MakeModel(op)
}

func (ig *IG) hasTable(op *term.Op) bool {
	return ig.trees.Has(op)
}

func (ig *IG) lookup(app term.T, args []term.T) (term.T, []int) {
	op := ig.m.tm.Op(app)
	t := ig.Tree(op)
	if order, ok := ig.termOrder[app]; ok {
		tt, ok := ig.termTrees.Get(app)
		if !ok {
			tt = uftree.New(ig.m.tm, op, order)
			ig.makeModel(op, tt)
			ig.termTrees.Set(app, tt)
		}
		t = tt
	}
	v, d := t.Value(args)
	return v, t.Order()[:d]
}

// FunctionValue returns the interpretation of op as a lambda term.
func (ig *IG) FunctionValue(op *term.Op) term.T {
	t := ig.Tree(op)
	if t == nil {
		return term.Null
	}
	vars := ig.m.argVars(op)
	return ig.m.lambda(vars, t.FunctionValue(vars))
}
