// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package repset

import (
	"fmt"

	"github.com/go-air/fmf/inter"
	"github.com/go-air/fmf/term"
)

// Iterator enumerates the assignments of representatives to the bound
// variables of a quantified formula.
//
// Variables are enumerated in levels; the variable at the last level
// changes fastest.  Iterator implements inter.Binding.
type Iterator struct {
	reg *Registry
	ext inter.BoundExt

	q      term.T
	kinds  []inter.EnumKind
	domain [][]term.T // by variable
	order  []int      // level -> variable
	level  []int      // variable -> level
	pos    []int      // by level
	done   bool

	// Incomplete is set when some variable ranges over a domain which
	// does not cover its type.
	Incomplete bool
}

// NewIterator creates an iterator over the representatives in reg.  ext
// may be nil.
func NewIterator(reg *Registry, ext inter.BoundExt) *Iterator {
	return &Iterator{reg: reg, ext: ext}
}

// Reset starts enumerating the bound variables of q.  It returns false
// if there is no assignment at all.
func (it *Iterator) Reset(q term.T) bool {
	tm := it.reg.tm
	vars := tm.BoundVars(q)
	n := len(vars)
	it.q = q
	it.kinds = make([]inter.EnumKind, n)
	it.domain = make([][]term.T, n)
	it.order = make([]int, n)
	it.level = make([]int, n)
	it.pos = make([]int, n)
	it.done = false
	it.Incomplete = false

	for i, v := range vars {
		k := inter.EnumInvalid
		if it.ext != nil {
			k = it.ext.ProposeBound(q, i)
		}
		if k == inter.EnumInvalid {
			k = inter.EnumDefault
		}
		it.kinds[i] = k
		if k != inter.EnumDefault {
			continue
		}
		typ := tm.Type(v)
		var ok bool
		if it.ext != nil {
			ok = it.ext.InitializeType(typ)
		} else {
			ok = it.reg.EnsurePopulated(typ)
		}
		if !ok {
			it.Incomplete = true
			it.reg.SomeRepresentative(typ)
		}
		it.domain[i] = it.reg.Reps(typ)
	}

	for i := range it.order {
		it.order[i] = i
	}
	if it.ext != nil {
		if o, ok := it.ext.VariableOrder(q); ok {
			if !isPerm(o, n) {
				panic(fmt.Sprintf("variable order %v is not a permutation of %d variables", o, n))
			}
			copy(it.order, o)
		}
	}
	for l, v := range it.order {
		it.level[v] = l
	}
	if f := it.fill(0, true); f >= 0 {
		it.IncrementAt(f - 1)
	}
	return !it.done
}

// fill resets levels from..n-1 to their first value, recomputing bounded
// ranges.  It returns the first level with an empty domain, or -1.
func (it *Iterator) fill(from int, initial bool) int {
	for l := from; l < len(it.order); l++ {
		v := it.order[l]
		it.pos[l] = 0
		if it.kinds[v] == inter.EnumBoundInt {
			dom, ok := it.ext.ResetRange(it, it.q, v, initial)
			if !ok {
				it.Incomplete = true
			}
			it.domain[v] = dom
		}
		if len(it.domain[v]) == 0 {
			return l
		}
	}
	return -1
}

// Done returns whether the enumeration is exhausted.
func (it *Iterator) Done() bool {
	return it.done
}

// Increment moves to the next assignment.
func (it *Iterator) Increment() {
	it.IncrementAt(len(it.order) - 1)
}

// IncrementAt moves to the next value of the variable at level l,
// resetting all deeper levels.  All assignments agreeing with the current
// one on levels 0..l are skipped.  IncrementAt(-1) ends the enumeration.
func (it *Iterator) IncrementAt(l int) {
	if it.done {
		return
	}
	if l >= len(it.order) {
		l = len(it.order) - 1
	}
	for l >= 0 {
		it.pos[l]++
		if it.pos[l] < len(it.domain[it.order[l]]) {
			f := it.fill(l+1, false)
			if f < 0 {
				return
			}
			l = f - 1
			continue
		}
		l--
	}
	it.done = true
}

// Current returns the value of variable i.
func (it *Iterator) Current(i int) term.T {
	return it.domain[i][it.pos[it.level[i]]]
}

// Level returns the level of variable i.
func (it *Iterator) Level(i int) int {
	return it.level[i]
}

// NumLevels returns the number of variables.
func (it *Iterator) NumLevels() int {
	return len(it.order)
}

// Domain returns the current range of variable i.
func (it *Iterator) Domain(i int) []term.T {
	return it.domain[i]
}

// Instance returns the current assignment indexed by variable.
func (it *Iterator) Instance() []term.T {
	res := make([]term.T, len(it.order))
	for i := range res {
		res[i] = it.Current(i)
	}
	return res
}

func isPerm(o []int, n int) bool {
	if len(o) != n {
		return false
	}
	seen := make([]bool, n)
	for _, i := range o {
		if i < 0 || i >= n || seen[i] {
			return false
		}
		seen[i] = true
	}
	return true
}

// Fixed is a binding of constant values.
type Fixed struct {
	Values []term.T
	Levels []int // nil means variable i is at level i
}

// NewFixed creates a binding of variable i to vals[i] at level i.
func NewFixed(vals ...term.T) *Fixed {
	return &Fixed{Values: vals}
}

func (f *Fixed) Current(i int) term.T {
	return f.Values[i]
}

func (f *Fixed) Level(i int) int {
	if f.Levels == nil {
		return i
	}
	return f.Levels[i]
}

func (f *Fixed) NumLevels() int {
	return len(f.Values)
}
