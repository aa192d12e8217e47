// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package model

import (
	"github.com/pkg/errors"
)

// Violation is the panic value used when an internal contract of the
// model is broken.  It carries the stack at which the breakage was
// detected.
type Violation struct {
	err error
}

func (v Violation) Error() string {
	return v.err.Error()
}

func (v Violation) Unwrap() error {
	return v.err
}

func violationf(format string, args ...interface{}) {
	panic(Violation{err: errors.Errorf(format, args...)})
}

// Guard calls f and returns any Violation raised by f as an error.
// Other panics propagate.
func Guard(f func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		v, ok := r.(Violation)
		if !ok {
			panic(r)
		}
		err = errors.Wrap(v.err, "internal model failure")
	}()
	f()
	return nil
}
