// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package gen contains generators of random signatures, ground models and
// quantified formulas for testing.
package gen

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/go-air/fmf/ground"
	"github.com/go-air/fmf/term"
)

// make the rng seedable
var rng = rand.New(rand.NewSource(33))
var mu sync.Mutex

func Seed(s int64) {
	mu.Lock()
	defer mu.Unlock()
	rng = rand.New(rand.NewSource(s))
}

// Sig is a signature over a single uninterpreted sort together with a
// ground model interpreting some of its applications.
type Sig struct {
	Terms  *term.Manager
	Ground *ground.Model
	Sort   *term.Type
	Consts []term.T
	Preds  []*term.Op // unary, boolean
	Funs   []*term.Op // binary
}

// NewSig creates a signature with nc constants, np predicates and nf
// functions and no ground facts.
func NewSig(nc, np, nf int) *Sig {
	tm := term.NewManager()
	u := tm.NewSort("U")
	s := &Sig{Terms: tm, Ground: ground.New(tm), Sort: u}
	for i := 0; i < nc; i++ {
		s.Consts = append(s.Consts, tm.Const(u, fmt.Sprintf("c%d", i)))
	}
	for i := 0; i < np; i++ {
		s.Preds = append(s.Preds, tm.NewOp(fmt.Sprintf("p%d", i), tm.Bool, u))
	}
	for i := 0; i < nf; i++ {
		s.Funs = append(s.Funs, tm.NewOp(fmt.Sprintf("f%d", i), u, u, u))
	}
	return s
}

// RandFacts interprets each ground application of a symbol of s to
// constants with probability p, with a random value.  The first
// application of each symbol is always interpreted.
func (s *Sig) RandFacts(p float64) {
	mu.Lock()
	defer mu.Unlock()
	tm := s.Terms
	for _, op := range s.Preds {
		for i, c := range s.Consts {
			if i == 0 || rng.Float64() < p {
				s.Ground.Set(tm.App(op, c), tm.BoolVal(rng.Intn(2) == 1))
			}
		}
	}
	for _, op := range s.Funs {
		for i, a := range s.Consts {
			for j, b := range s.Consts {
				if i+j == 0 || rng.Float64() < p {
					s.Ground.Set(tm.App(op, a, b), s.randConst())
				}
			}
		}
	}
}

func (s *Sig) randConst() term.T {
	return s.Consts[rng.Intn(len(s.Consts))]
}

// RandForall generates a quantified formula over nv variables whose body
// has connective depth at most d.
func (s *Sig) RandForall(nv, d int) term.T {
	mu.Lock()
	defer mu.Unlock()
	vs := make([]term.T, nv)
	for i := range vs {
		vs[i] = s.Terms.Var(fmt.Sprintf("x%d", i), s.Sort)
	}
	return s.Terms.Forall(vs, s.randFormula(vs, d))
}

func (s *Sig) randFormula(vs []term.T, d int) term.T {
	tm := s.Terms
	if d == 0 {
		return s.randAtom(vs)
	}
	switch rng.Intn(6) {
	case 0:
		return tm.Not(s.randFormula(vs, d-1))
	case 1:
		return tm.And(s.randFormula(vs, d-1), s.randFormula(vs, d-1))
	case 2:
		return tm.Or(s.randFormula(vs, d-1), s.randFormula(vs, d-1))
	case 3:
		return tm.Eq(s.randFormula(vs, d-1), s.randFormula(vs, d-1))
	case 4:
		c := s.randFormula(vs, d-1)
		return tm.Ite(c, s.randFormula(vs, d-1), s.randFormula(vs, d-1))
	default:
		return s.randAtom(vs)
	}
}

func (s *Sig) randAtom(vs []term.T) term.T {
	tm := s.Terms
	if len(s.Preds) > 0 && rng.Intn(2) == 0 {
		return tm.App(s.Preds[rng.Intn(len(s.Preds))], s.randTerm(vs, 1))
	}
	return tm.Eq(s.randTerm(vs, 1), s.randTerm(vs, 0))
}

func (s *Sig) randTerm(vs []term.T, d int) term.T {
	if d > 0 && len(s.Funs) > 0 && rng.Intn(2) == 0 {
		op := s.Funs[rng.Intn(len(s.Funs))]
		return s.Terms.App(op, s.randTerm(vs, d-1), s.randTerm(vs, d-1))
	}
	if rng.Intn(4) == 0 {
		return s.randConst()
	}
	return vs[rng.Intn(len(vs))]
}
