// Completion: 100% - Reader complete, iterative, reports line and column
package sexpr

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"tlog.app/go/errors"
)

// SyntaxError is returned by the reader for malformed input.
type SyntaxError struct {
	Line int // 1-based
	Col  int // 1-based, in bytes
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

// Incomplete reports whether the input ended inside a list, so more input
// could make it valid.
func (e *SyntaxError) Incomplete() bool { return e.Msg == msgUnterminated }

const msgUnterminated = "unterminated list"

// Reader reads symbolic expressions from a byte stream.
//
// Whitespace separates atoms, '(' opens a list and ')' closes it; every other
// byte is part of an atom. When the first element of a list is an atom it
// becomes the list's operator.
type Reader struct {
	r *bufio.Reader

	line, col int
}

type open struct {
	l         *List
	line, col int
}

// NewReader returns a Reader reading from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		r:    bufio.NewReader(r),
		line: 1,
	}
}

// Read returns the next top-level form, or io.EOF when the input is exhausted.
func (r *Reader) Read() (Node, error) {
	var stack []open
	var atom []byte

	// add places a finished node into the innermost open list.
	add := func(n Node) {
		top := stack[len(stack)-1].l
		if a, ok := n.(Atom); ok && top.op == "" && len(top.children) == 0 {
			top.op = string(a)
			return
		}
		top.children = append(top.children, n)
	}

	for {
		c, err := r.r.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read")
		}

		r.col++
		if c == '\n' {
			r.line++
			r.col = 0
		}

		if !isSpace(c) && c != '(' && c != ')' {
			atom = append(atom, c)
			continue
		}

		if len(atom) != 0 {
			if len(stack) == 0 {
				if c == '(' || c == ')' {
					_ = r.r.UnreadByte()
					r.col--
				}
				return Atom(atom), nil
			}

			add(Atom(atom))
			atom = atom[:0]
		}

		switch c {
		case '(':
			stack = append(stack, open{l: &List{}, line: r.line, col: r.col})
		case ')':
			if len(stack) == 0 {
				return nil, &SyntaxError{Line: r.line, Col: r.col, Msg: "unexpected )"}
			}

			done := stack[len(stack)-1].l
			stack = stack[:len(stack)-1]

			if len(stack) == 0 {
				return done, nil
			}

			add(done)
		}
	}

	if len(stack) != 0 {
		o := stack[len(stack)-1]
		return nil, &SyntaxError{Line: o.line, Col: o.col, Msg: msgUnterminated}
	}

	if len(atom) != 0 {
		return Atom(atom), nil
	}

	return nil, io.EOF
}

// ReadAll reads every top-level form from r.
func ReadAll(r io.Reader) ([]Node, error) {
	rd := NewReader(r)

	var forms []Node
	for {
		n, err := rd.Read()
		if err == io.EOF {
			return forms, nil
		}
		if err != nil {
			return forms, err
		}

		forms = append(forms, n)
	}
}

// ParseString reads exactly one list from s.
func ParseString(s string) (*List, error) {
	rd := NewReader(strings.NewReader(s))

	n, err := rd.Read()
	if err == io.EOF {
		return nil, &SyntaxError{Line: rd.line, Col: rd.col, Msg: "no expression"}
	}
	if err != nil {
		return nil, err
	}

	l, ok := n.(*List)
	if !ok {
		return nil, &SyntaxError{Line: rd.line, Col: rd.col, Msg: fmt.Sprintf("expected list, got atom %q", n.String())}
	}

	_, err = rd.Read()
	if err != io.EOF {
		if err != nil {
			return nil, err
		}

		return nil, &SyntaxError{Line: rd.line, Col: rd.col, Msg: "trailing input after expression"}
	}

	return l, nil
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
