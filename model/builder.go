// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package model

import (
	"fmt"

	"github.com/go-air/fmf/term"
)

// Variant identifies a representation of function interpretations.
type Variant int

const (
	// VariantIG builds order independent function tables.
	VariantIG Variant = iota
	// VariantFMC builds ordered case lists with wildcards.
	VariantFMC
	// VariantAbs builds decision structures over representative ids.
	VariantAbs
)

func (v Variant) String() string {
	switch v {
	case VariantIG:
		return "ig"
	case VariantFMC:
		return "fmc"
	case VariantAbs:
		return "abs"
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// Builder constructs and answers queries on the interpretation of
// function symbols.  The implementations are IG, FMC and Abs.
type Builder interface {
	Variant() Variant

	// FunctionValue returns a closed term denoting the interpretation of
	// op, or term.Null if there is none.
	FunctionValue(op *term.Op) term.T

	clear()
	initializeQuantifier(q term.T)
	initializeTerm(t term.T)
	populate(op *term.Op)
	hasTable(op *term.Op) bool

	// lookup returns the value of the application app whose argument
	// values are args, together with the argument positions consulted.
	lookup(app term.T, args []term.T) (term.T, []int)
}

func newBuilder(m *Model, v Variant) Builder {
	switch v {
	case VariantIG:
		return newIG(m)
	case VariantFMC:
		return newFMC(m)
	case VariantAbs:
		return newAbs(m)
	}
	return nil
}

// lambda closes body over vars, or returns body for nullary symbols.
func (m *Model) lambda(vars []term.T, body term.T) term.T {
	if body == term.Null {
		return term.Null
	}
	body = m.rw.Normalize(body)
	if len(vars) == 0 {
		return body
	}
	return m.tm.Lambda(vars, body)
}

// argVars returns fresh variables for the arguments of op.
func (m *Model) argVars(op *term.Op) []term.T {
	vars := make([]term.T, op.Arity())
	for i, typ := range op.Args {
		vars[i] = m.tm.Var(fmt.Sprintf("x%d", i), typ)
	}
	return vars
}
