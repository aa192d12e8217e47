// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package term

import (
	"fmt"
	"strings"
)

// String returns t as an s-expression.
func (m *Manager) String(t T) string {
	var b strings.Builder
	m.write(&b, t)
	return b.String()
}

func (m *Manager) write(b *strings.Builder, t T) {
	if t == Null {
		b.WriteString("<null>")
		return
	}
	n := &m.nodes[t]
	switch n.kind {
	case KConst, KVar:
		b.WriteString(n.name)
	case KApp:
		if len(n.kids) == 0 {
			b.WriteString(n.op.Name)
			return
		}
		b.WriteByte('(')
		b.WriteString(n.op.Name)
		for _, c := range n.kids {
			b.WriteByte(' ')
			m.write(b, c)
		}
		b.WriteByte(')')
	case KForall, KLambda:
		b.WriteByte('(')
		b.WriteString(n.kind.String())
		b.WriteString(" (")
		vs := n.kids[:len(n.kids)-1]
		for i, v := range vs {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(b, "(%s %s)", m.nodes[v].name, m.nodes[v].typ)
		}
		b.WriteString(") ")
		m.write(b, n.kids[len(n.kids)-1])
		b.WriteByte(')')
	default:
		b.WriteByte('(')
		b.WriteString(n.kind.String())
		for _, c := range n.kids {
			b.WriteByte(' ')
			m.write(b, c)
		}
		b.WriteByte(')')
	}
}
