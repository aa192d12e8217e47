// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package term

import "fmt"

// T is a handle to an immutable, hash-consed term in a Manager.
//
// Two terms built from the same kind, type, symbol, name and children
// in the same Manager are the same T, with the exception of bound
// variables which are always fresh.
type T uint32

// Null is the zero term, used as "no term" throughout.
const Null T = 0

// Kind is the kind tag of a term.
type Kind uint8

const (
	KNull Kind = iota
	// KConst is an interpreted value or an abstract domain value.
	// Distinct constants denote distinct values.
	KConst
	// KVar is a bound variable placeholder.
	KVar
	// KApp is an application of a function symbol, 0-ary symbols included.
	KApp
	KNot
	KAnd
	KOr
	KEqual
	KIte
	KForall
	KLambda
)

var kindNames = [...]string{
	KNull:   "null",
	KConst:  "const",
	KVar:    "var",
	KApp:    "app",
	KNot:    "not",
	KAnd:    "and",
	KOr:     "or",
	KEqual:  "=",
	KIte:    "ite",
	KForall: "forall",
	KLambda: "lambda",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// IsConnective returns whether k is a boolean connective.
func (k Kind) IsConnective() bool {
	switch k {
	case KNot, KAnd, KOr:
		return true
	}
	return false
}

// Sort classifies types.
type Sort uint8

const (
	SortBool Sort = iota
	SortUninterpreted
	SortEnum
	SortInt
)

// Type identifies a domain.
type Type struct {
	id     int
	Name   string
	Sort   Sort
	Values []string // names of the values of an enumeration
}

func (t *Type) String() string {
	return t.Name
}

// IsBool returns whether t is the boolean type.
func (t *Type) IsBool() bool {
	return t.Sort == SortBool
}

// IsUninterpreted returns whether t is an uninterpreted sort.
func (t *Type) IsUninterpreted() bool {
	return t.Sort == SortUninterpreted
}

// Op is a function symbol.
type Op struct {
	id   int
	Name string
	Args []*Type
	Ret  *Type
}

func (o *Op) String() string {
	return o.Name
}

// Arity returns the number of arguments of o.
func (o *Op) Arity() int {
	return len(o.Args)
}
