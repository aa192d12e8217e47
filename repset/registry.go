// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package repset maintains the finite domains over which quantified
// variables range: per type, an ordered set of representatives.
package repset

import (
	"github.com/sirupsen/logrus"

	"github.com/go-air/fmf/inter"
	"github.com/go-air/fmf/term"
)

// Registry is the set of representatives of each type.
//
// Representatives are kept in discovery order.  A type which cannot be
// completed gets a single model basis term standing for all of its
// otherwise undistinguished elements.
type Registry struct {
	tm    *term.Manager
	card  inter.Cardinality
	log   logrus.FieldLogger
	fresh bool

	reps    map[*term.Type][]term.T
	index   map[term.T]int
	basis   map[*term.Type]term.T
	isBasis *term.Attr[bool]
}

// Option configures a Registry.
type Option func(r *Registry)

// WithLogger sets the logger of a Registry.
func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Registry) {
		r.log = log
	}
}

// WithFreshBasis makes basis terms of uninterpreted sorts fresh distinct
// constants instead of fresh uninterpreted symbols.
func WithFreshBasis(fresh bool) Option {
	return func(r *Registry) {
		r.fresh = fresh
	}
}

// New creates an empty registry.
func New(tm *term.Manager, card inter.Cardinality, opts ...Option) *Registry {
	r := &Registry{
		tm:      tm,
		card:    card,
		reps:    make(map[*term.Type][]term.T),
		index:   make(map[term.T]int),
		basis:   make(map[*term.Type]term.T),
		isBasis: term.NewAttr[bool]()}
	for _, o := range opts {
		o(r)
	}
	if r.log == nil {
		r.log = logrus.StandardLogger()
	}
	return r
}

// HasType returns whether typ has at least one representative.
func (r *Registry) HasType(typ *term.Type) bool {
	return len(r.reps[typ]) != 0
}

// Reps returns the representatives of typ in discovery order.  The
// result must not be modified.
func (r *Registry) Reps(typ *term.Type) []term.T {
	return r.reps[typ]
}

// HasRep returns whether t is a representative of typ.
func (r *Registry) HasRep(typ *term.Type, t term.T) bool {
	_, ok := r.index[t]
	return ok && r.tm.Type(t) == typ
}

// Index returns the position of t among the representatives of its
// type, or -1.
func (r *Registry) Index(t term.T) int {
	i, ok := r.index[t]
	if !ok {
		return -1
	}
	return i
}

// Add adds t as a representative of typ, if not already present.
func (r *Registry) Add(typ *term.Type, t term.T) {
	if r.tm.Type(t) != typ {
		panic("representative of wrong type")
	}
	if _, ok := r.index[t]; ok {
		return
	}
	r.index[t] = len(r.reps[typ])
	r.reps[typ] = append(r.reps[typ], t)
}

// Types returns the number of types with representatives.
func (r *Registry) Types() int {
	return len(r.reps)
}

// Clear removes all representatives.  Basis terms are kept.
func (r *Registry) Clear() {
	r.reps = make(map[*term.Type][]term.T)
	r.index = make(map[term.T]int)
}

// Complete adds every value of typ as a representative.  It returns
// false if typ has no values to add.
func (r *Registry) Complete(typ *term.Type) bool {
	vals := r.card.Values(typ)
	for _, v := range vals {
		r.Add(typ, v)
	}
	return r.HasType(typ)
}

// EnsurePopulated makes sure typ has representatives.
//
// Small interpreted types are completed.  Uninterpreted sorts get one
// representative if they have none.  For other types EnsurePopulated
// returns false and callers must fall back to SomeRepresentative.
func (r *Registry) EnsurePopulated(typ *term.Type) bool {
	if typ.IsUninterpreted() {
		r.SomeRepresentative(typ)
		return true
	}
	if r.card.MayComplete(typ) {
		n, _ := r.card.Cardinality(typ)
		r.log.WithFields(logrus.Fields{"type": typ, "card": n}).Debug("complete domain")
		if !r.Complete(typ) {
			panic("completion of " + typ.Name + " produced no values")
		}
		return true
	}
	r.log.WithField("type", typ).Debug("domain cannot be completed")
	return false
}

// SomeRepresentative returns the first representative of typ, adding the
// basis term of typ if there is none.
func (r *Registry) SomeRepresentative(typ *term.Type) term.T {
	if !r.HasType(typ) {
		b := r.Basis(typ)
		r.log.WithFields(logrus.Fields{"type": typ, "basis": r.tm.String(b)}).Debug("add basis representative")
		r.Add(typ, b)
	}
	return r.reps[typ][0]
}

// Basis returns the model basis term of typ, creating it if needed.
func (r *Registry) Basis(typ *term.Type) term.T {
	if b, ok := r.basis[typ]; ok {
		return b
	}
	var b term.T
	switch {
	case !typ.IsUninterpreted():
		b = r.card.Enumerate(typ, 0)
	case r.fresh:
		b = r.tm.Const(typ, "@"+typ.Name+"_basis")
	default:
		b = r.tm.App(r.tm.NewOp("_e_"+typ.Name, typ))
	}
	if b == term.Null {
		panic("no basis term for " + typ.Name)
	}
	r.basis[typ] = b
	r.isBasis.Set(b, true)
	return b
}

// IsBasis returns whether t is the model basis term of its type.
func (r *Registry) IsBasis(t term.T) bool {
	return r.isBasis.Has(t)
}
