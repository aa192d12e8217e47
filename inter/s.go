// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package inter holds the contracts between the finite model core and
// the solver components it collaborates with.
package inter

import "github.com/go-air/fmf/term"

// Result codes, as used throughout fmf.
//
//	 1  true
//	 0  undetermined
//	-1  false
const (
	True    = 1
	Unknown = 0
	False   = -1
)

// GroundModel encapsulates the current interpretation of the
// non-quantified terms.
type GroundModel interface {
	// AreEqual returns whether a and b are known to be equal.
	AreEqual(a, b term.T) bool

	// AreDisequal returns whether a and b are known to be distinct.
	AreDisequal(a, b term.T) bool

	// Representative returns the canonical member of the class of t.
	// Terms unknown to the model are their own representative.
	Representative(t term.T) term.T

	// HasTerm returns whether t occurs in the model.
	HasTerm(t term.T) bool
}

// TermDB gives access to the ground applications of function symbols
// occurring in the model.
type TermDB interface {
	AppliedTerms(op *term.Op) []term.T
}

// Rewriter normalizes terms.  Normalize should be idempotent.
type Rewriter interface {
	Normalize(t term.T) term.T
}

// Cardinality encapsulates knowledge about the size of types.
type Cardinality interface {
	// MayComplete returns whether all values of typ may be listed.
	MayComplete(typ *term.Type) bool

	// Cardinality returns the size of typ and whether it is finite.
	Cardinality(typ *term.Type) (int, bool)

	// Values lists all values of a finite type.
	Values(typ *term.Type) []term.T

	// Enumerate returns the i'th value of a closed enumerable type or
	// term.Null.
	Enumerate(typ *term.Type, i int) term.T
}

// Binding is a partial assignment of domain values to the bound
// variables of a quantified formula, as provided by an enumerator.
//
// Variables are identified by their index in the quantifier.  Each
// variable is enumerated at a level; levels are a total order and the
// value of a variable at level l changes only after all variables at
// levels > l have been exhausted.
type Binding interface {
	Current(i int) term.T
	Level(i int) int
	NumLevels() int
}

// EnumKind says how an enumerator should range over a variable.
type EnumKind int

const (
	EnumInvalid EnumKind = iota
	EnumDefault
	EnumBoundInt
)

// BoundExt is implemented by something which can guide an enumerator.
type BoundExt interface {
	// ProposeBound returns a special enumeration kind for variable i of q,
	// or EnumInvalid to use the default.
	ProposeBound(q term.T, i int) EnumKind

	// ResetRange computes the values over which variable i of q ranges
	// under the current values of b, when ProposeBound gave a special
	// kind.  initial is true the first time the range is computed for an
	// enumeration.
	ResetRange(b Binding, q term.T, i int, initial bool) ([]term.T, bool)

	// InitializeType makes sure representatives of typ exist, returning
	// false if typ cannot be enumerated exhaustively.
	InitializeType(typ *term.Type) bool

	// VariableOrder returns the order in which the variables of q should
	// be enumerated, if there is a preference.
	VariableOrder(q term.T) ([]int, bool)
}

// BoundedIntegers is the view of a bounded integer analysis.
type BoundedIntegers interface {
	IsBoundVar(q, v term.T) bool

	// IsFinite returns whether v is bound only because its type is small.
	IsFinite(q, v term.T) bool

	// BoundVars returns the bound variables of q in the order they should be
	// enumerated.
	BoundVars(q term.T) []term.T

	// Elements returns the current range of v under b.
	Elements(q, v term.T, b Binding, initial bool) ([]term.T, bool)
}
