// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package model implements finite model evaluation and synthesis for
// universally quantified formulas.
//
// A Model tracks the asserted quantifiers of the current branch, keeps
// the representatives over which their variables range, evaluates
// quantifier bodies under partial bindings with dependency depths, and
// builds the interpretation of function symbols in one of three
// representations (see Variant).
//
// A Model is used in rounds:
//
//	m.ResetRound()
//	m.Initialize()
//	m.Populate()
//	... Evaluate, EvaluateTerm, FunctionValue ...
package model

import (
	"github.com/hashicorp/go-set/v3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/go-air/fmf/cdo"
	"github.com/go-air/fmf/inter"
	"github.com/go-air/fmf/repset"
	"github.com/go-air/fmf/rewrite"
	"github.com/go-air/fmf/term"
)

// Model is the finite model of the quantified part of a problem.
type Model struct {
	tm   *term.Manager
	ctx  *cdo.Context
	gm   inter.GroundModel
	tdb  inter.TermDB
	rw   inter.Rewriter
	card inter.Cardinality
	bi   inter.BoundedIntegers
	log  logrus.FieldLogger

	variant    Variant
	freshBasis bool
	limit      int

	reg     *repset.Registry
	tracker *Tracker
	active  *cdo.Map[term.T, bool]

	varIndex  *term.Attr[int]
	basisArgs *term.Attr[int]
	basisOps  map[*term.Op]term.T

	ops     []*term.Op
	consts  []term.T
	opSet   *set.Set[*term.Op]
	builder Builder
	eval    *Evaluator
	ext     *boundExt
}

// Option configures a Model.
type Option func(m *Model) error

// WithGroundModel sets the oracle for ground terms.  It is required.  If
// g also implements inter.TermDB, it is used as such unless WithTermDB is
// given.
func WithGroundModel(g inter.GroundModel) Option {
	return func(m *Model) error {
		m.gm = g
		return nil
	}
}

// WithTermDB sets the source of ground applications of function symbols.
func WithTermDB(db inter.TermDB) Option {
	return func(m *Model) error {
		m.tdb = db
		return nil
	}
}

// WithRewriter sets the normalizer.
func WithRewriter(rw inter.Rewriter) Option {
	return func(m *Model) error {
		m.rw = rw
		return nil
	}
}

// WithCardinality sets the cardinality oracle.
func WithCardinality(c inter.Cardinality) Option {
	return func(m *Model) error {
		m.card = c
		return nil
	}
}

// WithBoundedIntegers sets the bounded integer analysis used to range
// integer variables.
func WithBoundedIntegers(bi inter.BoundedIntegers) Option {
	return func(m *Model) error {
		m.bi = bi
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(m *Model) error {
		m.log = log
		return nil
	}
}

// WithContext sets the context scoping assertions, relevance and
// function table entries.
func WithContext(ctx *cdo.Context) Option {
	return func(m *Model) error {
		m.ctx = ctx
		return nil
	}
}

// WithVariant sets the representation of function interpretations.
func WithVariant(v Variant) Option {
	return func(m *Model) error {
		if v < VariantIG || v > VariantAbs {
			return errors.Errorf("unknown variant %d", int(v))
		}
		m.variant = v
		return nil
	}
}

// WithFreshBasis makes the model basis terms of uninterpreted sorts
// fresh distinct constants.
func WithFreshBasis(fresh bool) Option {
	return func(m *Model) error {
		m.freshBasis = fresh
		return nil
	}
}

// WithCompletionLimit sets the largest cardinality of a type whose values
// are enumerated exhaustively.  It applies only to the default
// cardinality oracle.
func WithCompletionLimit(n int) Option {
	return func(m *Model) error {
		if n < 0 {
			return errors.Errorf("negative completion limit %d", n)
		}
		m.limit = n
		return nil
	}
}

var defaults = []Option{
	func(m *Model) error {
		if m.gm == nil {
			return errors.New("no ground model")
		}
		return nil
	},
	func(m *Model) error {
		if m.tdb == nil {
			db, ok := m.gm.(inter.TermDB)
			if !ok {
				return errors.New("no term database")
			}
			m.tdb = db
		}
		return nil
	},
	func(m *Model) error {
		if m.rw == nil {
			m.rw = rewrite.New(m.tm)
		}
		return nil
	},
	func(m *Model) error {
		if m.card == nil {
			m.card = term.NewEnumerator(m.tm, m.limit)
		}
		return nil
	},
	func(m *Model) error {
		if m.log == nil {
			m.log = logrus.StandardLogger()
		}
		return nil
	},
	func(m *Model) error {
		if m.ctx == nil {
			m.ctx = cdo.New()
		}
		return nil
	},
}

// New creates a model over terms of tm.
func New(tm *term.Manager, options ...Option) (*Model, error) {
	m := &Model{
		tm:        tm,
		limit:     term.DefaultCompletionLimit,
		varIndex:  term.NewAttr[int](),
		basisArgs: term.NewAttr[int](),
		basisOps:  make(map[*term.Op]term.T),
		opSet:     set.New[*term.Op](0)}
	for _, option := range append(options, defaults...) {
		if err := option(m); err != nil {
			return nil, err
		}
	}
	m.reg = repset.New(tm, m.card,
		repset.WithLogger(m.log),
		repset.WithFreshBasis(m.freshBasis))
	m.tracker = NewTracker(tm, m.ctx)
	m.active = cdo.NewMap[term.T, bool](m.ctx)
	m.ext = &boundExt{m: m}
	m.eval = &Evaluator{m: m}
	m.builder = newBuilder(m, m.variant)
	return m, nil
}

// Terms returns the term manager of m.
func (m *Model) Terms() *term.Manager {
	return m.tm
}

// Context returns the context scoping m.
func (m *Model) Context() *cdo.Context {
	return m.ctx
}

// Registry returns the representatives of m.
func (m *Model) Registry() *repset.Registry {
	return m.reg
}

// Tracker returns the assertion and relevance tracker of m.
func (m *Model) Tracker() *Tracker {
	return m.tracker
}

// Builder returns the builder of function interpretations.
func (m *Model) Builder() Builder {
	return m.builder
}

// Evaluator returns the evaluator of m.
func (m *Model) Evaluator() *Evaluator {
	return m.eval
}

// BoundExt returns the hooks guiding enumeration of the variables of
// quantifiers of m.
func (m *Model) BoundExt() inter.BoundExt {
	return m.ext
}

// AssertQuantifier records f, a quantifier or its negation, as asserted.
func (m *Model) AssertQuantifier(f term.T) {
	m.tracker.Assert(f)
}

// IsAsserted returns whether the quantifier f is asserted.
func (m *Model) IsAsserted(f term.T) bool {
	return m.tracker.IsAsserted(f)
}

// NumAsserted returns the number of asserted quantifiers.
func (m *Model) NumAsserted() int {
	return m.tracker.NumAsserted()
}

// Asserted returns the i'th asserted quantifier, in relevance order if
// ordered is set.
func (m *Model) Asserted(i int, ordered bool) term.T {
	return m.tracker.Asserted(i, ordered)
}

// Quantifiers returns the asserted quantifiers in the order computed at
// the start of the round.
func (m *Model) Quantifiers() []term.T {
	return m.tracker.Ordered()
}

// Touch marks the quantifier f as relevant.
func (m *Model) Touch(f term.T) {
	m.tracker.Touch(f)
}

// Relevance returns the relevance of f, or -1.
func (m *Model) Relevance(f term.T) int {
	return m.tracker.Relevance(f)
}

// IsActive returns whether f takes part in instantiation this round.
func (m *Model) IsActive(f term.T) bool {
	a, ok := m.active.Get(f)
	return !ok || a
}

// SetActive sets whether f takes part in instantiation this round.
func (m *Model) SetActive(f term.T, a bool) {
	m.active.Set(f, a)
}

// ResetRound starts a new round: activity is reset, the asserted
// quantifiers are reordered by relevance, and all representatives and
// function tables are discarded.
func (m *Model) ResetRound() {
	m.active.Clear()
	m.tracker.Reset()
	m.tracker.Reorder()
	m.reg.Clear()
	m.builder.clear()
	m.eval.Reset()
	if r, ok := m.rw.(interface{ Reset() }); ok {
		r.Reset()
	}
	m.ops = m.ops[:0]
	m.consts = m.consts[:0]
	m.opSet = set.New[*term.Op](0)
	m.log.WithFields(logrus.Fields{
		"quantifiers": m.tracker.NumAsserted(),
		"variant":     m.variant,
	}).Debug("reset round")
}

// Initialize prepares the asserted quantifiers for evaluation.  It
// numbers their variables and registers the terms and function symbols
// of their bodies with the builder.
func (m *Model) Initialize() error {
	return Guard(func() {
		for _, q := range m.tracker.Ordered() {
			for i, v := range m.tm.BoundVars(q) {
				m.varIndex.Set(v, i)
			}
			m.tm.Walk(m.tm.Body(q), func(t term.T) bool {
				switch m.tm.Kind(t) {
				case term.KForall, term.KLambda:
					return false
				case term.KApp:
					m.addOp(m.tm.Op(t))
					m.builder.initializeTerm(t)
				case term.KConst:
					m.consts = append(m.consts, t)
				}
				return true
			})
			m.builder.initializeQuantifier(q)
		}
		m.log.WithField("ops", len(m.ops)).Debug("initialized")
	})
}

func (m *Model) addOp(op *term.Op) {
	if m.opSet.Insert(op) {
		m.ops = append(m.ops, op)
	}
}

// Ops returns the function symbols occurring in the asserted
// quantifiers, in order of discovery.
func (m *Model) Ops() []*term.Op {
	return m.ops
}

// Populate fills the registry from the ground model and builds the
// interpretation of every function symbol found by Initialize.
func (m *Model) Populate() error {
	return Guard(func() {
		for _, op := range m.ops {
			for _, a := range m.tdb.AppliedTerms(op) {
				for i, c := range m.tm.Kids(a) {
					m.addTypeReps(op.Args[i], c)
				}
				m.addTypeReps(op.Ret, a)
			}
		}
		for _, c := range m.consts {
			m.addTypeReps(m.tm.Type(c), c)
		}
		for _, op := range m.ops {
			for _, typ := range op.Args {
				m.addTypeReps(typ, term.Null)
			}
			m.addTypeReps(op.Ret, term.Null)
		}
		for _, q := range m.tracker.Ordered() {
			for _, v := range m.tm.BoundVars(q) {
				typ := m.tm.Type(v)
				if !m.reg.EnsurePopulated(typ) {
					m.reg.SomeRepresentative(typ)
				}
			}
		}
		for _, op := range m.ops {
			m.builder.populate(op)
			m.log.WithField("op", op.Name).Debug("populated")
		}
	})
}

// addTypeReps adds the representative of t to the registry, or makes
// sure typ is populated if t is Null or typ can be completed.
func (m *Model) addTypeReps(typ *term.Type, t term.T) {
	if t == term.Null || m.card.MayComplete(typ) {
		if !m.reg.HasType(typ) && !m.reg.EnsurePopulated(typ) {
			m.reg.SomeRepresentative(typ)
		}
		return
	}
	m.reg.Add(typ, m.gm.Representative(t))
}

// NewIterator returns an iterator over the assignments of the variables
// of q, or false if there is none.
func (m *Model) NewIterator(q term.T) (*repset.Iterator, bool) {
	it := repset.NewIterator(m.reg, m.ext)
	ok := it.Reset(q)
	return it, ok
}

// ResetEvaluate drops the per term lookup structures built by Evaluate.
func (m *Model) ResetEvaluate() {
	m.eval.Reset()
}

// Evaluate evaluates the formula t under b.
func (m *Model) Evaluate(t term.T, b inter.Binding) Result {
	return m.eval.Evaluate(t, b)
}

// EvaluateTerm returns the value of t under b.
func (m *Model) EvaluateTerm(t term.T, b inter.Binding) TermResult {
	return m.eval.EvaluateTerm(t, b)
}

// FunctionValue returns a closed term denoting the interpretation of op.
func (m *Model) FunctionValue(op *term.Op) term.T {
	return m.builder.FunctionValue(op)
}

// VarIndex returns the index of the bound variable v in its quantifier.
func (m *Model) VarIndex(v term.T) (int, bool) {
	return m.varIndex.Get(v)
}

// ModelBasisTerm returns the model basis term of typ.
func (m *Model) ModelBasisTerm(typ *term.Type) term.T {
	return m.reg.Basis(typ)
}

// IsModelBasis returns whether t is a model basis term.
func (m *Model) IsModelBasis(t term.T) bool {
	return m.reg.IsBasis(t)
}

// ModelBasisOpTerm returns the application of op to the model basis
// terms of its argument types.
func (m *Model) ModelBasisOpTerm(op *term.Op) term.T {
	if t, ok := m.basisOps[op]; ok {
		return t
	}
	args := make([]term.T, op.Arity())
	for i, typ := range op.Args {
		args[i] = m.reg.Basis(typ)
	}
	t := m.tm.App(op, args...)
	m.basisOps[op] = t
	return t
}

// ModelBasis returns t with the bound variables of q replaced by the
// model basis terms of their types.
func (m *Model) ModelBasis(q, t term.T) term.T {
	vars := m.tm.BoundVars(q)
	to := make([]term.T, len(vars))
	for i, v := range vars {
		to[i] = m.reg.Basis(m.tm.Type(v))
	}
	return m.tm.Substitute(t, vars, to)
}

// ModelBasisArg returns the number of arguments of the application t
// which are model basis terms.
func (m *Model) ModelBasisArg(t term.T) int {
	if n, ok := m.basisArgs.Get(t); ok {
		return n
	}
	n := 0
	for _, c := range m.tm.Kids(t) {
		if m.reg.IsBasis(c) {
			n++
		}
	}
	m.basisArgs.Set(t, n)
	return n
}

func (m *Model) representative(t term.T) term.T {
	return m.gm.Representative(t)
}
