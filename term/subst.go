// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package term

// Substitute replaces every occurrence of from[i] in t by to[i].
func (m *Manager) Substitute(t T, from, to []T) T {
	if len(from) != len(to) {
		panic("substitute: length mismatch")
	}
	memo := make(map[T]T, len(from))
	for i, f := range from {
		memo[f] = to[i]
	}
	return m.subst(t, memo)
}

func (m *Manager) subst(t T, memo map[T]T) T {
	if r, ok := memo[t]; ok {
		return r
	}
	kids := m.nodes[t].kids
	if len(kids) == 0 {
		return t
	}
	var nkids []T
	for i, c := range kids {
		d := m.subst(c, memo)
		if d != c && nkids == nil {
			nkids = make([]T, len(kids))
			copy(nkids, kids[:i])
		}
		if nkids != nil {
			nkids[i] = d
		}
	}
	r := t
	if nkids != nil {
		r = m.Rebuild(t, nkids)
	}
	memo[t] = r
	return r
}

// Walk calls f on t and its subterms in pre-order, visiting each shared
// subterm once.  If f returns false, the children of that subterm are
// skipped.
func (m *Manager) Walk(t T, f func(T) bool) {
	seen := make(map[T]bool)
	var vis func(T)
	vis = func(u T) {
		if seen[u] {
			return
		}
		seen[u] = true
		if !f(u) {
			return
		}
		for _, c := range m.nodes[u].kids {
			vis(c)
		}
	}
	vis(t)
}
