// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package absdef implements abstract function definitions: decision
// structures over representative ids rather than terms.
package absdef

import "sort"

const (
	// Any is the wildcard id, and the undefined value.
	Any = -1
	// None is an id matching no branch.  Lookups of None take the default.
	None = -2
)

// Def is a decision structure mapping tuples of representative ids to a
// representative id.  A Def without branches is a leaf holding a value
// for every tuple reaching it.
type Def struct {
	kids  map[int]*Def
	dflt  *Def
	value int
}

// New returns an undefined Def.
func New() *Def {
	return &Def{value: Any}
}

func (d *Def) isLeaf() bool {
	return len(d.kids) == 0 && d.dflt == nil
}

// IsEmpty returns whether nothing is defined in d.
func (d *Def) IsEmpty() bool {
	return d.isLeaf() && d.value == Any
}

// Set maps the tuples matching ids to v.  An id equal to Any matches
// every id at its position.
func (d *Def) Set(ids []int, v int) {
	n := d
	for _, id := range ids {
		if id < Any {
			panic("absdef: set of an unknown id")
		}
		if n.isLeaf() && n.value != Any {
			// split a collapsed leaf
			n.dflt = &Def{value: n.value}
			n.value = Any
		}
		if id == Any {
			if n.dflt == nil {
				n.dflt = New()
			}
			n = n.dflt
			continue
		}
		c, ok := n.kids[id]
		if !ok {
			if n.kids == nil {
				n.kids = make(map[int]*Def)
			}
			c = New()
			n.kids[id] = c
		}
		n = c
	}
	n.value = v
}

// Value returns the value of ids and the number of leading positions
// of ids which were consulted to find it.
func (d *Def) Value(ids []int) (int, int) {
	return d.lookup(ids, 0)
}

func (d *Def) lookup(ids []int, k int) (int, int) {
	if d.isLeaf() {
		return d.value, k
	}
	if k == len(ids) {
		return Any, k
	}
	if c, ok := d.kids[ids[k]]; ok {
		v, dep := c.lookup(ids, k+1)
		if v != Any || d.dflt == nil {
			return v, dep
		}
		dv, ddep := d.dflt.lookup(ids, k+1)
		if ddep > dep {
			dep = ddep
		}
		return dv, dep
	}
	if d.dflt == nil {
		return Any, k + 1
	}
	v, dep := d.dflt.lookup(ids, k+1)
	if dep < k+1 {
		dep = k + 1
	}
	return v, dep
}

// Simplify collapses branches which agree with the default branch, and
// nodes all of whose defined branches hold the same value.  Tuples which
// were never defined may change value.
func (d *Def) Simplify() {
	if d.isLeaf() {
		return
	}
	dv := Any
	collapse := true
	if d.dflt != nil {
		d.dflt.Simplify()
		if d.dflt.isLeaf() {
			dv = d.dflt.value
		} else {
			collapse = false
		}
	}
	common := dv
	for id, c := range d.kids {
		c.Simplify()
		if c.isLeaf() && (c.value == Any || c.value == dv) {
			delete(d.kids, id)
			continue
		}
		switch {
		case !c.isLeaf():
			collapse = false
		case common == Any:
			common = c.value
		case common != c.value:
			collapse = false
		}
	}
	if collapse && common != Any {
		d.kids = nil
		d.dflt = nil
		d.value = common
	}
}

// Entry is a case of a Def.
type Entry struct {
	Args  []int // Any for wildcard positions
	Value int
}

// Entries returns the cases of d over arity positions.  Cases are listed
// so that the first matching case of a tuple gives its value: branches on
// a position come in increasing id order before the default branch.
func (d *Def) Entries(arity int) []Entry {
	var res []Entry
	d.entries(make([]int, 0, arity), arity, &res)
	return res
}

func (d *Def) entries(pfx []int, arity int, res *[]Entry) {
	if d.isLeaf() {
		if d.value == Any {
			return
		}
		args := make([]int, arity)
		copy(args, pfx)
		for i := len(pfx); i < arity; i++ {
			args[i] = Any
		}
		*res = append(*res, Entry{Args: args, Value: d.value})
		return
	}
	ids := make([]int, 0, len(d.kids))
	for id := range d.kids {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		d.kids[id].entries(append(pfx, id), arity, res)
	}
	if d.dflt != nil {
		d.dflt.entries(append(pfx, Any), arity, res)
	}
}
