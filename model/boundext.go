// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package model

import (
	"github.com/sirupsen/logrus"

	"github.com/go-air/fmf/inter"
	"github.com/go-air/fmf/term"
)

// boundExt guides the enumeration of the variables of quantifiers of a
// model.
type boundExt struct {
	m *Model
}

func (x *boundExt) ProposeBound(q term.T, i int) inter.EnumKind {
	bi := x.m.bi
	if bi == nil {
		return inter.EnumInvalid
	}
	v := x.m.tm.BoundVars(q)[i]
	if bi.IsBoundVar(q, v) && !bi.IsFinite(q, v) {
		return inter.EnumBoundInt
	}
	return inter.EnumInvalid
}

func (x *boundExt) ResetRange(b inter.Binding, q term.T, i int, initial bool) ([]term.T, bool) {
	v := x.m.tm.BoundVars(q)[i]
	dom, ok := x.m.bi.Elements(q, v, b, initial)
	if !ok {
		x.m.log.WithFields(logrus.Fields{
			"quantifier": x.m.tm.String(q),
			"var":        i,
		}).Debug("incomplete bound range")
	}
	return dom, ok
}

func (x *boundExt) InitializeType(typ *term.Type) bool {
	return x.m.reg.EnsurePopulated(typ)
}

// VariableOrder enumerates linked variables first for Abs models, and
// otherwise bounded integer variables first.
func (x *boundExt) VariableOrder(q term.T) ([]int, bool) {
	if a := x.m.Abs(); a != nil {
		return a.VariableOrder(q), true
	}
	bi := x.m.bi
	if bi == nil {
		return nil, false
	}
	bvs := bi.BoundVars(q)
	if len(bvs) == 0 {
		return nil, false
	}
	vars := x.m.tm.BoundVars(q)
	index := make(map[term.T]int, len(vars))
	for i, v := range vars {
		index[v] = i
	}
	seen := make([]bool, len(vars))
	order := make([]int, 0, len(vars))
	for _, v := range bvs {
		i, ok := index[v]
		if !ok || seen[i] {
			violationf("bound variable %s not in %s", x.m.tm.String(v), x.m.tm.String(q))
		}
		seen[i] = true
		order = append(order, i)
	}
	for i := range vars {
		if !seen[i] {
			order = append(order, i)
		}
	}
	return order, true
}
