// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package term

// DefaultCompletionLimit is the largest cardinality of a type whose
// values an Enumerator allows to be listed exhaustively.
const DefaultCompletionLimit = 1000

// Enumerator enumerates the values of finite interpreted types and
// reports type cardinalities.
type Enumerator struct {
	m     *Manager
	Limit int
}

// NewEnumerator creates an enumerator over types of m which allows
// completion of types with at most limit values.
func NewEnumerator(m *Manager, limit int) *Enumerator {
	return &Enumerator{m: m, Limit: limit}
}

// Cardinality returns the number of values of typ and whether typ is
// finite.  Uninterpreted sorts are not finite.
func (e *Enumerator) Cardinality(typ *Type) (int, bool) {
	switch typ.Sort {
	case SortBool:
		return 2, true
	case SortEnum:
		return len(typ.Values), true
	}
	return 0, false
}

// MayComplete returns whether all values of typ may be listed.
func (e *Enumerator) MayComplete(typ *Type) bool {
	n, fin := e.Cardinality(typ)
	return fin && n <= e.Limit
}

// Values lists the values of a finite type, or nil.
func (e *Enumerator) Values(typ *Type) []T {
	n, fin := e.Cardinality(typ)
	if !fin {
		return nil
	}
	res := make([]T, n)
	for i := range res {
		res[i] = e.Enumerate(typ, i)
	}
	return res
}

// Enumerate returns the i'th value of a closed enumerable type, or Null
// for uninterpreted sorts and out of range indices.
func (e *Enumerator) Enumerate(typ *Type, i int) T {
	if i < 0 {
		return Null
	}
	switch typ.Sort {
	case SortBool:
		switch i {
		case 0:
			return e.m.False
		case 1:
			return e.m.True
		}
	case SortEnum:
		if i < len(typ.Values) {
			return e.m.Const(typ, typ.Values[i])
		}
	case SortInt:
		// 0, 1, -1, 2, -2, ...
		v := int64((i + 1) / 2)
		if i%2 == 0 {
			v = -v
		}
		return e.m.IntVal(v)
	}
	return Null
}
