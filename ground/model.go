// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package ground provides an in-memory ground model: an equivalence
// relation over ground terms with explicit disequalities, suitable as
// the equality oracle of the finite model core.
package ground

import (
	"github.com/go-air/fmf/term"
)

// Model is a union-find structure over ground terms.
//
// The representative of a class is a constant member if the class has
// one, and otherwise the member added first.  Distinct constants are
// disequal, as are members of classes with an asserted disequality.
type Model struct {
	tm     *term.Manager
	parent map[term.T]term.T
	order  map[term.T]int
	diseqs [][2]term.T
	apps   map[*term.Op][]term.T
}

// New creates a ground model over terms of tm, containing the boolean
// constants.
func New(tm *term.Manager) *Model {
	g := &Model{
		tm:     tm,
		parent: make(map[term.T]term.T),
		order:  make(map[term.T]int),
		apps:   make(map[*term.Op][]term.T)}
	g.Add(tm.True)
	g.Add(tm.False)
	return g
}

// Add adds t and its subterms to g.
func (g *Model) Add(t term.T) {
	if _, ok := g.parent[t]; ok {
		return
	}
	for _, c := range g.tm.Kids(t) {
		g.Add(c)
	}
	g.parent[t] = t
	g.order[t] = len(g.order)
	if g.tm.Kind(t) == term.KApp {
		op := g.tm.Op(t)
		g.apps[op] = append(g.apps[op], t)
	}
}

// Merge asserts a = b.
func (g *Model) Merge(a, b term.T) {
	g.Add(a)
	g.Add(b)
	ra, rb := g.find(a), g.find(b)
	if ra == rb {
		return
	}
	if g.prefer(rb, ra) {
		ra, rb = rb, ra
	}
	g.parent[rb] = ra
}

// Set asserts t = v, the usual way of giving an application its value.
func (g *Model) Set(t, v term.T) {
	g.Merge(t, v)
}

// Distinct asserts a != b.
func (g *Model) Distinct(a, b term.T) {
	g.Add(a)
	g.Add(b)
	g.diseqs = append(g.diseqs, [2]term.T{a, b})
}

func (g *Model) prefer(a, b term.T) bool {
	ca, cb := g.tm.IsConst(a), g.tm.IsConst(b)
	if ca != cb {
		return ca
	}
	return g.order[a] < g.order[b]
}

func (g *Model) find(t term.T) term.T {
	r := t
	for {
		p := g.parent[r]
		if p == r {
			break
		}
		r = p
	}
	for t != r {
		p := g.parent[t]
		g.parent[t] = r
		t = p
	}
	return r
}

// HasTerm implements inter.GroundModel.
func (g *Model) HasTerm(t term.T) bool {
	_, ok := g.parent[t]
	return ok
}

// Representative implements inter.GroundModel.
func (g *Model) Representative(t term.T) term.T {
	if !g.HasTerm(t) {
		return t
	}
	return g.find(t)
}

// AreEqual implements inter.GroundModel.
func (g *Model) AreEqual(a, b term.T) bool {
	if a == b {
		return true
	}
	if !g.HasTerm(a) || !g.HasTerm(b) {
		return false
	}
	return g.find(a) == g.find(b)
}

// AreDisequal implements inter.GroundModel.
func (g *Model) AreDisequal(a, b term.T) bool {
	ra, rb := g.Representative(a), g.Representative(b)
	if ra == rb {
		return false
	}
	if g.tm.IsConst(ra) && g.tm.IsConst(rb) {
		return true
	}
	for _, d := range g.diseqs {
		x, y := g.Representative(d[0]), g.Representative(d[1])
		if (x == ra && y == rb) || (x == rb && y == ra) {
			return true
		}
	}
	return false
}

// AppliedTerms implements inter.TermDB, listing applications of op in
// the order they were added.
func (g *Model) AppliedTerms(op *term.Op) []term.T {
	return g.apps[op]
}
