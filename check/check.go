// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package check searches the candidate model of a round for instances of
// a quantifier whose body evaluates to false.
//
// Exhaustive walks the representative iterator and skips every block of
// assignments whose value is decided by a prefix of the enumeration.
// Counterexample instead encodes the body over selector literals and asks
// gini for a falsifying assignment.  Both require the quantifier to have
// been asserted and the round to have been initialized and populated.
package check

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/go-air/fmf/model"
	"github.com/go-air/fmf/term"
)

// ErrUndetermined is returned by Counterexample when some part of the
// body has no definite value in the candidate model.
var ErrUndetermined = errors.New("undetermined quantifier body")

type options struct {
	limit int
	log   logrus.FieldLogger
}

// Option configures a check.
type Option func(*options)

// WithLimit stops Exhaustive after n counterexamples.  n <= 0 means no
// limit.
func WithLimit(n int) Option {
	return func(o *options) {
		o.limit = n
	}
}

// WithLogger sets the logger, which defaults to the standard logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) {
		o.log = log
	}
}

func newOptions(opts []Option) *options {
	o := &options{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Report is the outcome of Exhaustive.
type Report struct {
	// Instances holds the falsifying assignments, indexed by variable.
	Instances [][]term.T
	// Evaluated counts the assignments actually evaluated.
	Evaluated int
	// Unknown counts the evaluated assignments with no definite value.
	Unknown int
	// Incomplete is set when some variable ranged over a partial domain.
	Incomplete bool
}

// Exhaustive enumerates the assignments of the variables of q over the
// representative sets of m and collects those falsifying its body.  A
// quantifier with a counterexample is touched in the relevance tracker.
func Exhaustive(m *model.Model, q term.T, opts ...Option) (*Report, error) {
	o := newOptions(opts)
	r := &Report{}
	err := model.Guard(func() {
		it, ok := m.NewIterator(q)
		defer func() { r.Incomplete = it.Incomplete }()
		if !ok {
			return
		}
		body := m.Terms().Body(q)
		for !it.Done() {
			res := m.Evaluate(body, it)
			r.Evaluated++
			switch res.Value {
			case model.True:
				it.IncrementAt(res.Depth)
			case model.False:
				r.Instances = append(r.Instances, it.Instance())
				if o.limit > 0 && len(r.Instances) >= o.limit {
					return
				}
				it.Increment()
			default:
				r.Unknown++
				it.Increment()
			}
		}
	})
	if err != nil {
		return nil, errors.Wrapf(err, "checking %s", m.Terms().String(q))
	}
	if len(r.Instances) > 0 {
		m.Touch(q)
	}
	o.log.WithFields(logrus.Fields{
		"quantifier": m.Terms().String(q),
		"evaluated":  r.Evaluated,
		"unknown":    r.Unknown,
		"instances":  len(r.Instances)}).Debug("exhaustive check")
	return r, nil
}
