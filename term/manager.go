// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package term

import (
	"fmt"
	"strconv"
)

type node struct {
	kind  Kind
	typ   *Type
	op    *Op
	name  string
	kids  []T
	next  uint32 // next strash
	fresh bool   // not in strash
}

// Manager is a table of hash-consed terms together with the types and
// function symbols they are built from.
//
// Terms are never mutated once created.  Information attached to terms
// lives in side tables, see Attr.
type Manager struct {
	nodes  []node
	strash []uint32
	types  []*Type
	ops    []*Op

	Bool  *Type
	Int   *Type
	True  T
	False T
}

// NewManager creates a new term manager.
func NewManager() *Manager {
	return NewManagerCap(128)
}

// NewManagerCap creates a new term manager with initial node capacity
// capHint.
func NewManagerCap(capHint int) *Manager {
	if capHint < 4 {
		capHint = 4
	}
	m := &Manager{
		nodes:  make([]node, 1, capHint),
		strash: make([]uint32, capHint)}
	m.Bool = m.newType("Bool", SortBool, nil)
	m.Int = m.newType("Int", SortInt, nil)
	m.False = m.Const(m.Bool, "false")
	m.True = m.Const(m.Bool, "true")
	return m
}

func (m *Manager) newType(name string, s Sort, vals []string) *Type {
	t := &Type{id: len(m.types), Name: name, Sort: s, Values: vals}
	m.types = append(m.types, t)
	return t
}

// NewSort declares an uninterpreted sort.
func (m *Manager) NewSort(name string) *Type {
	return m.newType(name, SortUninterpreted, nil)
}

// NewEnum declares a finite interpreted type whose values are the
// constants named by vals, in order.
func (m *Manager) NewEnum(name string, vals ...string) *Type {
	if len(vals) == 0 {
		panic("empty enumeration")
	}
	cp := make([]string, len(vals))
	copy(cp, vals)
	return m.newType(name, SortEnum, cp)
}

// NewOp declares a function symbol with result type ret.
func (m *Manager) NewOp(name string, ret *Type, args ...*Type) *Op {
	cp := make([]*Type, len(args))
	copy(cp, args)
	o := &Op{id: len(m.ops), Name: name, Args: cp, Ret: ret}
	m.ops = append(m.ops, o)
	return o
}

// Len returns the number of nodes in m, including the null node.
func (m *Manager) Len() int {
	return len(m.nodes)
}

// Kind returns the kind of t.
func (m *Manager) Kind(t T) Kind {
	return m.nodes[t].kind
}

// Type returns the type of t.
func (m *Manager) Type(t T) *Type {
	return m.nodes[t].typ
}

// Op returns the function symbol of an application, or nil.
func (m *Manager) Op(t T) *Op {
	return m.nodes[t].op
}

// Name returns the name of a constant or variable.
func (m *Manager) Name(t T) string {
	return m.nodes[t].name
}

// NumKids returns the number of children of t.
func (m *Manager) NumKids(t T) int {
	return len(m.nodes[t].kids)
}

// Kid returns the i'th child of t.
func (m *Manager) Kid(t T, i int) T {
	return m.nodes[t].kids[i]
}

// Kids returns the children of t.  The result must not be modified.
func (m *Manager) Kids(t T) []T {
	return m.nodes[t].kids
}

// IsConst returns whether t is a constant.
func (m *Manager) IsConst(t T) bool {
	return m.nodes[t].kind == KConst
}

// BoundVars returns the bound variables of a quantifier or lambda.
func (m *Manager) BoundVars(q T) []T {
	n := &m.nodes[q]
	if n.kind != KForall && n.kind != KLambda {
		panic(fmt.Sprintf("BoundVars of %s", n.kind))
	}
	return n.kids[:len(n.kids)-1]
}

// Body returns the body of a quantifier or lambda.
func (m *Manager) Body(q T) T {
	n := &m.nodes[q]
	if n.kind != KForall && n.kind != KLambda {
		panic(fmt.Sprintf("Body of %s", n.kind))
	}
	return n.kids[len(n.kids)-1]
}

// Const returns the constant of type typ named name.
func (m *Manager) Const(typ *Type, name string) T {
	if typ == nil {
		panic("nil type")
	}
	return m.hashCons(KConst, typ, nil, name, nil)
}

// IntVal returns the integer constant v.
func (m *Manager) IntVal(v int64) T {
	return m.Const(m.Int, strconv.FormatInt(v, 10))
}

// BoolVal returns the boolean constant for b.
func (m *Manager) BoolVal(b bool) T {
	if b {
		return m.True
	}
	return m.False
}

// Var creates a fresh bound variable.  Unlike all other terms, variables
// are not shared: each call returns a distinct term.
func (m *Manager) Var(name string, typ *Type) T {
	if typ == nil {
		panic("nil type")
	}
	j := m.newNode()
	n := &m.nodes[j]
	n.kind = KVar
	n.typ = typ
	n.name = name
	n.fresh = true
	return T(j)
}

// App returns the application of op to args.
func (m *Manager) App(op *Op, args ...T) T {
	if len(args) != len(op.Args) {
		panic(fmt.Sprintf("%s: arity %d applied to %d args", op.Name, len(op.Args), len(args)))
	}
	for i, a := range args {
		if m.Type(a) != op.Args[i] {
			panic(fmt.Sprintf("%s: arg %d has type %s, want %s", op.Name, i, m.Type(a), op.Args[i]))
		}
	}
	return m.hashCons(KApp, op.Ret, op, "", args)
}

// Not returns the negation of a.
func (m *Manager) Not(a T) T {
	m.checkBool(a)
	return m.hashCons(KNot, m.Bool, nil, "", []T{a})
}

// And returns the conjunction of xs.  And() is True and a single
// conjunct is returned as is.
func (m *Manager) And(xs ...T) T {
	return m.nary(KAnd, m.True, xs)
}

// Or returns the disjunction of xs.  Or() is False and a single
// disjunct is returned as is.
func (m *Manager) Or(xs ...T) T {
	return m.nary(KOr, m.False, xs)
}

func (m *Manager) nary(k Kind, unit T, xs []T) T {
	switch len(xs) {
	case 0:
		return unit
	case 1:
		m.checkBool(xs[0])
		return xs[0]
	}
	for _, x := range xs {
		m.checkBool(x)
	}
	return m.hashCons(k, m.Bool, nil, "", xs)
}

// Implies returns "a implies b" as a disjunction.
func (m *Manager) Implies(a, b T) T {
	return m.Or(m.Not(a), b)
}

// Eq returns the equality of a and b.
func (m *Manager) Eq(a, b T) T {
	if m.Type(a) != m.Type(b) {
		panic(fmt.Sprintf("equality between %s and %s", m.Type(a), m.Type(b)))
	}
	return m.hashCons(KEqual, m.Bool, nil, "", []T{a, b})
}

// Ite returns "if c then a else b".
func (m *Manager) Ite(c, a, b T) T {
	m.checkBool(c)
	if m.Type(a) != m.Type(b) {
		panic(fmt.Sprintf("ite branches %s and %s", m.Type(a), m.Type(b)))
	}
	return m.hashCons(KIte, m.Type(a), nil, "", []T{c, a, b})
}

// Forall returns the universal quantification of body over vars.
func (m *Manager) Forall(vars []T, body T) T {
	return m.binder(KForall, vars, body, m.Bool)
}

// Lambda returns the function term binding vars in body.  The type of
// a lambda is the type of its body.
func (m *Manager) Lambda(vars []T, body T) T {
	return m.binder(KLambda, vars, body, m.Type(body))
}

func (m *Manager) binder(k Kind, vars []T, body T, typ *Type) T {
	if k == KForall {
		m.checkBool(body)
	}
	kids := make([]T, 0, len(vars)+1)
	for _, v := range vars {
		if m.Kind(v) != KVar {
			panic(fmt.Sprintf("%s binds %s", k, m.Kind(v)))
		}
		kids = append(kids, v)
	}
	kids = append(kids, body)
	return m.hashCons(k, typ, nil, "", kids)
}

// Rebuild returns the term of the same kind and symbol as t with
// children kids.
func (m *Manager) Rebuild(t T, kids []T) T {
	switch m.Kind(t) {
	case KConst, KVar:
		return t
	case KApp:
		return m.App(m.Op(t), kids...)
	case KNot:
		return m.Not(kids[0])
	case KAnd:
		return m.And(kids...)
	case KOr:
		return m.Or(kids...)
	case KEqual:
		return m.Eq(kids[0], kids[1])
	case KIte:
		return m.Ite(kids[0], kids[1], kids[2])
	case KForall:
		return m.Forall(kids[:len(kids)-1], kids[len(kids)-1])
	case KLambda:
		return m.Lambda(kids[:len(kids)-1], kids[len(kids)-1])
	}
	panic(fmt.Sprintf("rebuild %s", m.Kind(t)))
}

func (m *Manager) checkBool(t T) {
	if !m.Type(t).IsBool() {
		panic(fmt.Sprintf("non boolean %s", m.String(t)))
	}
}

func (m *Manager) hashCons(k Kind, typ *Type, op *Op, name string, kids []T) T {
	c := strashCode(k, typ, op, name, kids)
	si := m.strash[c%uint32(len(m.strash))]
	for si != 0 {
		n := &m.nodes[si]
		if n.kind == k && n.typ == typ && n.op == op && n.name == name && sameKids(n.kids, kids) {
			return T(si)
		}
		si = n.next
	}
	j := m.newNode()
	n := &m.nodes[j]
	n.kind = k
	n.typ = typ
	n.op = op
	n.name = name
	if len(kids) > 0 {
		n.kids = make([]T, len(kids))
		copy(n.kids, kids)
	}
	h := c % uint32(len(m.strash))
	n.next = m.strash[h]
	m.strash[h] = j
	return T(j)
}

func (m *Manager) newNode() uint32 {
	if len(m.nodes) == cap(m.nodes) {
		m.grow()
	}
	id := len(m.nodes)
	m.nodes = m.nodes[:id+1]
	return uint32(id)
}

func (m *Manager) grow() {
	newCap := cap(m.nodes) * 2
	nodes := make([]node, len(m.nodes), newCap)
	strash := make([]uint32, newCap)
	copy(nodes, m.nodes)
	ucap := uint32(newCap)
	for i := 1; i < len(nodes); i++ {
		n := &nodes[i]
		if n.fresh {
			continue
		}
		j := strashCode(n.kind, n.typ, n.op, n.name, n.kids) % ucap
		n.next = strash[j]
		strash[j] = uint32(i)
	}
	m.nodes = nodes
	m.strash = strash
}

func sameKids(a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func strashCode(k Kind, typ *Type, op *Op, name string, kids []T) uint32 {
	h := uint32(k+1) * 2654435761
	if typ != nil {
		h = h*31 + uint32(typ.id+1)
	}
	if op != nil {
		h = h*31 + uint32(op.id+1)
	}
	for i := 0; i < len(name); i++ {
		h = h*31 + uint32(name[i])
	}
	for _, c := range kids {
		h = (h ^ uint32(c)) * 16777619
	}
	return h
}
