// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package rewrite implements a small normalizer folding boolean
// structure and equalities between constants.
package rewrite

import "github.com/go-air/fmf/term"

// Rewriter implements inter.Rewriter.
type Rewriter struct {
	tm    *term.Manager
	cache map[term.T]term.T
}

// New creates a rewriter for terms of tm.
func New(tm *term.Manager) *Rewriter {
	return &Rewriter{tm: tm, cache: make(map[term.T]term.T)}
}

// Normalize returns the normal form of t.  Normalize is idempotent.
func (r *Rewriter) Normalize(t term.T) term.T {
	if n, ok := r.cache[t]; ok {
		return n
	}
	tm := r.tm
	kids := tm.Kids(t)
	var n term.T
	if len(kids) == 0 {
		n = t
	} else {
		nk := make([]term.T, len(kids))
		for i, c := range kids {
			nk[i] = r.Normalize(c)
		}
		n = r.step(t, nk)
	}
	r.cache[t] = n
	r.cache[n] = n
	return n
}

// Reset drops the normal forms computed so far.
func (r *Rewriter) Reset() {
	clear(r.cache)
}

// step rewrites t with normalized children kids at the root.
func (r *Rewriter) step(t term.T, kids []term.T) term.T {
	tm := r.tm
	switch tm.Kind(t) {
	case term.KNot:
		a := kids[0]
		switch {
		case a == tm.True:
			return tm.False
		case a == tm.False:
			return tm.True
		case tm.Kind(a) == term.KNot:
			return tm.Kid(a, 0)
		}
		return tm.Not(a)
	case term.KAnd:
		return r.nary(term.KAnd, tm.True, tm.False, kids)
	case term.KOr:
		return r.nary(term.KOr, tm.False, tm.True, kids)
	case term.KEqual:
		a, b := kids[0], kids[1]
		switch {
		case a == b:
			return tm.True
		case tm.IsConst(a) && tm.IsConst(b):
			return tm.False
		case a == tm.True:
			return b
		case b == tm.True:
			return a
		case a == tm.False:
			return r.step(tm.Not(b), []term.T{b})
		case b == tm.False:
			return r.step(tm.Not(a), []term.T{a})
		}
		if b < a {
			a, b = b, a
		}
		return tm.Eq(a, b)
	case term.KIte:
		c, a, b := kids[0], kids[1], kids[2]
		switch {
		case c == tm.True:
			return a
		case c == tm.False:
			return b
		case a == b:
			return a
		case a == tm.True && b == tm.False:
			return c
		}
		return tm.Ite(c, a, b)
	}
	return tm.Rebuild(t, kids)
}

func (r *Rewriter) nary(k term.Kind, unit, zero term.T, kids []term.T) term.T {
	tm := r.tm
	res := make([]term.T, 0, len(kids))
	seen := make(map[term.T]bool, len(kids))
	for _, c := range kids {
		if c == zero {
			return zero
		}
		if c == unit || seen[c] {
			continue
		}
		// flatten
		if tm.Kind(c) == k {
			for _, d := range tm.Kids(c) {
				if !seen[d] {
					seen[d] = true
					res = append(res, d)
				}
			}
			continue
		}
		seen[c] = true
		res = append(res, c)
	}
	if k == term.KAnd {
		return tm.And(res...)
	}
	return tm.Or(res...)
}
