// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package model

import (
	"sort"

	"github.com/hashicorp/go-set/v3"

	"github.com/go-air/fmf/cdo"
	"github.com/go-air/fmf/term"
)

// Tracker records the quantified formulas asserted in the current
// branch and ranks them by how recently they were touched.
//
// All state of a Tracker is scoped by its context.
type Tracker struct {
	tm *term.Manager

	asserted   *cdo.List[term.T]
	isAsserted *cdo.Map[term.T, struct{}]

	rlv     *cdo.Map[term.T, int]
	rlvVec  *cdo.List[term.T]
	counter *cdo.Value[int]
	last    *cdo.Value[term.T]

	ordered   *cdo.List[term.T]
	isOrdered *cdo.Value[bool]
}

// NewTracker creates a tracker whose state is scoped by ctx.
func NewTracker(tm *term.Manager, ctx *cdo.Context) *Tracker {
	return &Tracker{
		tm:         tm,
		asserted:   cdo.NewList[term.T](ctx),
		isAsserted: cdo.NewMap[term.T, struct{}](ctx),
		rlv:        cdo.NewMap[term.T, int](ctx),
		rlvVec:     cdo.NewList[term.T](ctx),
		counter:    cdo.NewValue(ctx, 0),
		last:       cdo.NewValue(ctx, term.Null),
		ordered:    cdo.NewList[term.T](ctx),
		isOrdered:  cdo.NewValue(ctx, false)}
}

// Assert records f as asserted.  f must be a universal quantifier or the
// negation of one; negations are not recorded.
func (k *Tracker) Assert(f term.T) {
	switch k.tm.Kind(f) {
	case term.KForall:
		if k.isAsserted.Has(f) {
			return
		}
		k.isAsserted.Set(f, struct{}{})
		k.asserted.Push(f)
		k.isOrdered.Set(false)
	case term.KNot:
		if k.tm.Kind(k.tm.Kid(f, 0)) != term.KForall {
			violationf("asserted negation of %s", k.tm.String(k.tm.Kid(f, 0)))
		}
	default:
		violationf("asserted non quantifier %s", k.tm.String(f))
	}
}

// IsAsserted returns whether f is asserted.
func (k *Tracker) IsAsserted(f term.T) bool {
	return k.isAsserted.Has(f)
}

// NumAsserted returns the number of asserted quantifiers.
func (k *Tracker) NumAsserted() int {
	return k.asserted.Len()
}

// Asserted returns the i'th asserted quantifier, in relevance order if
// ordered is true and Reorder has been called since the last reset or
// assertion.
func (k *Tracker) Asserted(i int, ordered bool) term.T {
	if ordered && k.isOrdered.Get() {
		return k.ordered.At(i)
	}
	return k.asserted.At(i)
}

// Ordered returns the asserted quantifiers, in relevance order if
// Reorder has been called since the last reset or assertion.
func (k *Tracker) Ordered() []term.T {
	if k.isOrdered.Get() {
		return k.ordered.Slice()
	}
	return k.asserted.Slice()
}

// Touch marks f as relevant.  Touching the formula touched last has no
// effect.
func (k *Tracker) Touch(f term.T) {
	if f == k.last.Get() {
		return
	}
	if !k.rlv.Has(f) {
		k.rlvVec.Push(f)
	}
	c := k.counter.Get()
	k.rlv.Set(f, c)
	k.counter.Set(c + 1)
	k.last.Set(f)
}

// Relevance returns the relevance of f, or -1 if f was never touched.
func (k *Tracker) Relevance(f term.T) int {
	r, ok := k.rlv.Get(f)
	if ok {
		return r
	}
	if !k.isAsserted.Has(f) {
		violationf("relevance of unknown formula %s", k.tm.String(f))
	}
	return -1
}

// Reset drops the relevance order computed by Reorder.
func (k *Tracker) Reset() {
	k.isOrdered.Set(false)
}

// Reorder orders the asserted quantifiers by decreasing relevance.
// Asserted quantifiers which were never touched follow in assertion
// order.
func (k *Tracker) Reorder() {
	if k.rlvVec.Len() == 0 {
		return
	}
	vec := append([]term.T(nil), k.rlvVec.Slice()...)
	sort.Slice(vec, func(i, j int) bool {
		ri, _ := k.rlv.Get(vec[i])
		rj, _ := k.rlv.Get(vec[j])
		if ri != rj {
			return ri < rj
		}
		return vec[i] < vec[j]
	})
	k.ordered.Clear()
	seen := set.New[term.T](len(vec))
	for i := len(vec) - 1; i >= 0; i-- {
		f := vec[i]
		if k.isAsserted.Has(f) {
			k.ordered.Push(f)
			seen.Insert(f)
		}
	}
	for _, f := range k.asserted.Slice() {
		if !seen.Contains(f) {
			k.ordered.Push(f)
		}
	}
	k.isOrdered.Set(true)
}
