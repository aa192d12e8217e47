// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package uftree implements a decision tree over the arguments of a
// function symbol, with default branches.
package uftree

import (
	"fmt"

	"github.com/go-air/fmf/term"
)

type node struct {
	kids  map[term.T]*node // term.Null is the default branch
	keys  []term.T         // non default keys in insertion order
	value term.T           // common value of everything below, or Null
}

func (n *node) child(k term.T) *node {
	if c, ok := n.kids[k]; ok {
		return c
	}
	if n.kids == nil {
		n.kids = make(map[term.T]*node)
	}
	c := &node{}
	n.kids[k] = c
	if k != term.Null {
		n.keys = append(n.keys, k)
	}
	return c
}

func (n *node) erase(k term.T) {
	delete(n.kids, k)
	if k == term.Null {
		return
	}
	for i, kk := range n.keys {
		if kk == k {
			n.keys = append(n.keys[:i], n.keys[i+1:]...)
			return
		}
	}
}

func (n *node) isEmpty() bool {
	return len(n.kids) == 0 && n.value == term.Null
}

// Tree maps argument tuples of a function symbol to values.  Arguments
// are branched on in a fixed index order; at each level the key Null
// matches any argument.
type Tree struct {
	tm    *term.Manager
	op    *term.Op
	order []int
	root  node
}

// New creates an empty tree for op which branches on argument order[0]
// first.  A nil order is the identity.
func New(tm *term.Manager, op *term.Op, order []int) *Tree {
	n := op.Arity()
	if order == nil {
		order = make([]int, n)
		for i := range order {
			order[i] = i
		}
	}
	if len(order) != n {
		panic(fmt.Sprintf("%s: index order of length %d", op, len(order)))
	}
	return &Tree{tm: tm, op: op, order: order}
}

// Op returns the function symbol of t.
func (t *Tree) Op() *term.Op {
	return t.op
}

// Order returns the index order of t.
func (t *Tree) Order() []int {
	return t.order
}

// IsEmpty returns whether no value has been set in t.
func (t *Tree) IsEmpty() bool {
	return t.root.isEmpty()
}

// Clear removes all values.
func (t *Tree) Clear() {
	t.root = node{}
}

// SetValue maps the tuples matching keys to v.  keys is indexed by
// argument position; a Null key matches any argument.
func (t *Tree) SetValue(keys []term.T, v term.T) {
	if len(keys) != len(t.order) {
		panic(fmt.Sprintf("%s: %d keys", t.op, len(keys)))
	}
	n := &t.root
	for d := 0; ; d++ {
		if len(n.kids) == 0 {
			n.value = v
		} else if n.value != v {
			n.value = term.Null
		}
		if d == len(t.order) {
			return
		}
		n = n.child(keys[t.order[d]])
	}
}

// SetDefault maps all tuples not otherwise matched to v.
func (t *Tree) SetDefault(v term.T) {
	t.SetValue(make([]term.T, len(t.order)), v)
}

func (t *Tree) isTotal(n *node, d int) bool {
	for ; d < len(t.order); d++ {
		if len(n.kids) != 1 {
			return false
		}
		c, ok := n.kids[term.Null]
		if !ok {
			return false
		}
		n = c
	}
	return true
}

// Value returns the value of the tuple args together with the number of
// leading levels of the index order which were consulted to find it.
// If no value is found, Value returns Null.
func (t *Tree) Value(args []term.T) (term.T, int) {
	return t.value(&t.root, args, 0)
}

func (t *Tree) value(n *node, args []term.T, d int) (term.T, int) {
	if n.value != term.Null && t.isTotal(n, d) {
		return n.value, d
	}
	if d == len(t.order) {
		return term.Null, d
	}
	var val term.T
	dep := [2]int{d, d}
	keys := [2]term.T{args[t.order[d]], term.Null}
	for i, k := range keys {
		c, ok := n.kids[k]
		if !ok {
			dep[i] = d + 1
			continue
		}
		val, dep[i] = t.value(c, args, d+1)
		if val != term.Null {
			break
		}
	}
	if dep[0] > dep[1] {
		return val, dep[0]
	}
	return val, dep[1]
}

// Simplify removes branches which agree with the default branch at
// their level.
func (t *Tree) Simplify() {
	t.simplify(&t.root, term.Null, 0)
}

func (t *Tree) simplify(n *node, dflt term.T, d int) {
	if d == len(t.order) {
		return
	}
	var erase []term.T
	if c, ok := n.kids[term.Null]; ok {
		if dflt != term.Null && c.value == dflt {
			erase = append(erase, term.Null)
		} else {
			t.simplify(c, dflt, d+1)
			if c.value != term.Null && t.isTotal(c, d+1) {
				dflt = c.value
			} else {
				dflt = term.Null
				if c.isEmpty() {
					erase = append(erase, term.Null)
				}
			}
		}
	}
	for _, k := range n.keys {
		c := n.kids[k]
		if dflt != term.Null && c.value == dflt {
			erase = append(erase, k)
			continue
		}
		t.simplify(c, dflt, d+1)
		if c.isEmpty() {
			erase = append(erase, k)
		}
	}
	for _, k := range erase {
		n.erase(k)
	}
}

// FunctionValue returns a term over vars, which are indexed by argument
// position, denoting the function t represents.  Branches are tested in
// insertion order and fall through to the default branch.  FunctionValue
// returns Null if t does not define a value for some tuple.
func (t *Tree) FunctionValue(vars []term.T) term.T {
	if len(vars) != len(t.order) {
		panic(fmt.Sprintf("%s: %d variables", t.op, len(vars)))
	}
	return t.functionValue(&t.root, vars, 0, term.Null)
}

func (t *Tree) functionValue(n *node, vars []term.T, d int, dflt term.T) term.T {
	if len(n.kids) == 0 {
		if n.value == term.Null {
			return dflt
		}
		return n.value
	}
	if d == len(t.order) {
		return n.value
	}
	if c, ok := n.kids[term.Null]; ok {
		dflt = t.functionValue(c, vars, d+1, dflt)
	}
	vals := make([]term.T, len(n.keys))
	for i, k := range n.keys {
		vals[i] = t.functionValue(n.kids[k], vars, d+1, dflt)
	}
	res := dflt
	v := vars[t.order[d]]
	for i := len(n.keys) - 1; i >= 0; i-- {
		if vals[i] == term.Null || res == term.Null {
			if vals[i] == term.Null {
				continue
			}
			res = vals[i]
			continue
		}
		res = t.tm.Ite(t.tm.Eq(v, n.keys[i]), vals[i], res)
	}
	return res
}
