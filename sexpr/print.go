// Completion: 100% - Utility module complete
package sexpr

import "io"

// AppendNode appends the printed form of n to b.
//
// Lists print as "(op child child)", the empty list as "()", atoms verbatim.
// The tree is walked with an explicit stack, so any depth the reader or a
// builder produced can be printed.
func AppendNode(b []byte, n Node) []byte {
	root, ok := n.(*List)
	if !ok {
		if n == nil {
			return b
		}
		return append(b, n.String()...)
	}

	type frame struct {
		l *List
		i int
	}

	b = append(b, '(')
	b = append(b, root.op...)
	stack := []frame{{l: root}}

	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		if top.i == len(top.l.children) {
			b = append(b, ')')
			stack = stack[:len(stack)-1]
			continue
		}

		c := top.l.children[top.i]
		if top.i != 0 || top.l.op != "" {
			b = append(b, ' ')
		}
		top.i++

		switch c := c.(type) {
		case *List:
			b = append(b, '(')
			b = append(b, c.op...)
			stack = append(stack, frame{l: c})
		case nil:
		default:
			b = append(b, c.String()...)
		}
	}

	return b
}

// String returns the printed form of n.
func String(n Node) string {
	return string(AppendNode(nil, n))
}

// Fprint writes the printed form of n to w.
func Fprint(w io.Writer, n Node) (int, error) {
	return w.Write(AppendNode(nil, n))
}
