// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package model

import (
	"fmt"

	"github.com/go-air/fmf/inter"
	"github.com/go-air/fmf/term"
)

// Truth is a three valued truth value, with the result codes of inter.
type Truth int8

const (
	False   Truth = inter.False
	Unknown Truth = inter.Unknown
	True    Truth = inter.True
)

func (v Truth) String() string {
	switch v {
	case True:
		return "true"
	case False:
		return "false"
	case Unknown:
		return "unknown"
	}
	return fmt.Sprintf("truth(%d)", int8(v))
}

// Not returns the negation of v.
func (v Truth) Not() Truth {
	return -v
}

// Result is the outcome of evaluating a formula.  Depth is the deepest
// enumeration level of a variable the value depends on, -1 if it depends
// on none.  Unknown results have the deepest level of the binding.
type Result struct {
	Value Truth
	Depth int
}

// TermResult is the outcome of evaluating a term.  A Null value means
// the term could not be evaluated.
type TermResult struct {
	Value term.T
	Depth int
}

// Evaluator evaluates formulas and terms of a Model under bindings of
// the variables of a quantifier.
type Evaluator struct {
	m *Model
}

// Reset drops cached per term lookup structures.
func (e *Evaluator) Reset() {
	if ig, ok := e.m.builder.(*IG); ok && ig != nil {
		ig.resetTermTrees()
	}
}

func deepest(b inter.Binding) int {
	return b.NumLevels() - 1
}

// Evaluate evaluates the formula t under b.
func (e *Evaluator) Evaluate(t term.T, b inter.Binding) Result {
	tm := e.m.tm
	switch tm.Kind(t) {
	case term.KNot:
		r := e.Evaluate(tm.Kid(t, 0), b)
		r.Value = r.Value.Not()
		return r
	case term.KAnd:
		return e.evalNary(t, True, b)
	case term.KOr:
		return e.evalNary(t, False, b)
	case term.KEqual:
		if tm.Type(tm.Kid(t, 0)).IsBool() {
			return e.evalIff(t, b)
		}
		return e.evalEq(t, b)
	case term.KIte:
		return e.evalIte(t, b)
	case term.KForall:
		return Result{Unknown, deepest(b)}
	}
	r := e.EvaluateTerm(t, b)
	if r.Value != term.Null {
		gm := e.m.gm
		switch {
		case gm.AreEqual(r.Value, tm.True):
			return Result{True, r.Depth}
		case gm.AreEqual(r.Value, tm.False):
			return Result{False, r.Depth}
		}
	}
	return Result{Unknown, deepest(b)}
}

// evalNary evaluates a conjunction (base True) or disjunction (base
// False).
func (e *Evaluator) evalNary(t term.T, base Truth, b inter.Binding) Result {
	decided := false
	unknown := false
	posDep := b.NumLevels()
	negDep := -1
	for _, c := range e.m.tm.Kids(t) {
		r := e.Evaluate(c, b)
		switch r.Value {
		case base.Not():
			decided = true
			if r.Depth < posDep {
				posDep = r.Depth
			}
		case Unknown:
			unknown = true
		default:
			if r.Depth > negDep {
				negDep = r.Depth
			}
		}
		if decided && posDep == -1 {
			break
		}
	}
	switch {
	case decided:
		return Result{base.Not(), posDep}
	case unknown:
		return Result{Unknown, deepest(b)}
	}
	return Result{base, negDep}
}

func (e *Evaluator) evalIff(t term.T, b inter.Binding) Result {
	tm := e.m.tm
	r0 := e.Evaluate(tm.Kid(t, 0), b)
	if r0.Value == Unknown {
		return Result{Unknown, deepest(b)}
	}
	r1 := e.Evaluate(tm.Kid(t, 1), b)
	if r1.Value == Unknown {
		return Result{Unknown, deepest(b)}
	}
	v := False
	if r0.Value == r1.Value {
		v = True
	}
	return Result{v, max(r0.Depth, r1.Depth)}
}

func (e *Evaluator) evalEq(t term.T, b inter.Binding) Result {
	tm := e.m.tm
	gm := e.m.gm
	r0 := e.EvaluateTerm(tm.Kid(t, 0), b)
	if r0.Value == term.Null {
		return Result{Unknown, deepest(b)}
	}
	r1 := e.EvaluateTerm(tm.Kid(t, 1), b)
	if r1.Value == term.Null {
		return Result{Unknown, deepest(b)}
	}
	d := max(r0.Depth, r1.Depth)
	switch {
	case r0.Value == r1.Value || gm.AreEqual(r0.Value, r1.Value):
		return Result{True, d}
	case gm.AreDisequal(r0.Value, r1.Value):
		return Result{False, d}
	}
	return Result{Unknown, deepest(b)}
}

func (e *Evaluator) evalIte(t term.T, b inter.Binding) Result {
	tm := e.m.tm
	c := e.Evaluate(tm.Kid(t, 0), b)
	switch c.Value {
	case True, False:
		br := tm.Kid(t, 1)
		if c.Value == False {
			br = tm.Kid(t, 2)
		}
		r := e.Evaluate(br, b)
		if r.Value == Unknown {
			return r
		}
		return Result{r.Value, max(c.Depth, r.Depth)}
	}
	r1 := e.Evaluate(tm.Kid(t, 1), b)
	if r1.Value == Unknown {
		return Result{Unknown, deepest(b)}
	}
	r2 := e.Evaluate(tm.Kid(t, 2), b)
	if r1.Value != r2.Value {
		return Result{Unknown, deepest(b)}
	}
	return Result{r1.Value, max(r1.Depth, r2.Depth)}
}

// EvaluateTerm returns the value of t under b.
func (e *Evaluator) EvaluateTerm(t term.T, b inter.Binding) TermResult {
	m := e.m
	tm := m.tm
	fail := TermResult{term.Null, deepest(b)}
	switch tm.Kind(t) {
	case term.KConst:
		return TermResult{t, -1}
	case term.KVar:
		i, ok := m.varIndex.Get(t)
		if !ok {
			violationf("unbound variable %s", tm.String(t))
		}
		return TermResult{b.Current(i), b.Level(i)}
	case term.KForall, term.KLambda:
		return fail
	case term.KIte:
		return e.evalIteTerm(t, b)
	}

	kids := tm.Kids(t)
	vals := make([]term.T, len(kids))
	deps := make([]int, len(kids))
	depth := -1
	for i, c := range kids {
		r := e.EvaluateTerm(c, b)
		if r.Value == term.Null {
			return fail
		}
		v := r.Value
		if !tm.Kind(c).IsConnective() {
			v = m.gm.Representative(v)
		}
		vals[i] = v
		deps[i] = r.Depth
		depth = max(depth, r.Depth)
	}

	if tm.Kind(t) == term.KApp && m.builder.hasTable(tm.Op(t)) {
		v, consulted := m.builder.lookup(t, vals)
		if v == term.Null {
			return fail
		}
		d := -1
		for _, p := range consulted {
			d = max(d, deps[p])
		}
		return TermResult{v, d}
	}

	n := m.rw.Normalize(tm.Rebuild(t, vals))
	switch {
	case tm.IsConst(n):
		return TermResult{n, depth}
	case m.gm.HasTerm(n):
		return TermResult{m.gm.Representative(n), depth}
	case tm.Kind(n) == term.KEqual:
		a, c := tm.Kid(n, 0), tm.Kid(n, 1)
		if m.gm.AreEqual(a, c) {
			return TermResult{tm.True, depth}
		}
		if m.gm.AreDisequal(a, c) {
			return TermResult{tm.False, depth}
		}
	}
	return fail
}

func (e *Evaluator) evalIteTerm(t term.T, b inter.Binding) TermResult {
	tm := e.m.tm
	fail := TermResult{term.Null, deepest(b)}
	c := e.Evaluate(tm.Kid(t, 0), b)
	switch c.Value {
	case True, False:
		br := tm.Kid(t, 1)
		if c.Value == False {
			br = tm.Kid(t, 2)
		}
		r := e.EvaluateTerm(br, b)
		if r.Value == term.Null {
			return fail
		}
		return TermResult{r.Value, max(c.Depth, r.Depth)}
	}
	r1 := e.EvaluateTerm(tm.Kid(t, 1), b)
	if r1.Value == term.Null {
		return fail
	}
	r2 := e.EvaluateTerm(tm.Kid(t, 2), b)
	if r2.Value == term.Null {
		return fail
	}
	if r1.Value != r2.Value && !e.m.gm.AreEqual(r1.Value, r2.Value) {
		return fail
	}
	return TermResult{r1.Value, max(r1.Depth, r2.Depth)}
}
