// Completion: 100% - Module complete
package sexpr

import "iter"

// Node is a value in a symbolic-expression tree: either an Atom or a *List.
type Node interface {
	String() string
	node()
}

// Atom is an indivisible text token. What the text means (a decimal integer,
// a name) is decided only by the builtin that consumes it.
type Atom string

// Text returns the raw token text
func (a Atom) Text() string { return string(a) }

func (a Atom) String() string { return string(a) }

func (Atom) node() {}

// List is an ordered sequence of children tagged with an operator name.
//
// The operator is a dedicated field rather than the first child, so there is
// no ambiguity between "operator" and "first argument". A list does not know
// its parent.
type List struct {
	op       string
	children []Node
}

// NewList creates a list with the given operator and children
func NewList(op string, children ...Node) *List {
	l := &List{op: op}
	if len(children) > 0 {
		l.children = append(make([]Node, 0, len(children)), children...)
	}
	return l
}

// Append adds a child at the end of the list. It is the only mutation and is
// meant to be used while a tree is being built.
func (l *List) Append(child Node) *List {
	l.children = append(l.children, child)
	return l
}

// Op returns the operator name, "" if the list has none.
func (l *List) Op() string { return l.op }

// Len returns the number of children (the operator is not counted).
func (l *List) Len() int { return len(l.children) }

// At returns the i-th child.
func (l *List) At(i int) Node { return l.children[i] }

// Children iterates over the children in order.
func (l *List) Children() iter.Seq2[int, Node] {
	return func(yield func(int, Node) bool) {
		for i, c := range l.children {
			if !yield(i, c) {
				return
			}
		}
	}
}

// Empty reports whether the list is "()": no operator and no children.
func (l *List) Empty() bool {
	return l.op == "" && len(l.children) == 0
}

func (l *List) String() string { return String(l) }

func (*List) node() {}
