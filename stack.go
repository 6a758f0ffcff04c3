// Completion: 100% - Module complete
package weasel

import (
	"io"

	"github.com/xyproto/weasel/sexpr"
	"tlog.app/go/errors"
)

// operandStack is the run-time state of one invocation, seen by builtins
// and the immediate accessor through its handle.
//
// Generated code keeps the operand stack itself on the machine stack; the
// words it pushes and pops name values stored here. Word w names values[w-1],
// the zero word names nothing.
type operandStack struct {
	out    io.Writer
	values []sexpr.Node
	err    error
}

func newOperandStack(out io.Writer) *operandStack {
	return &operandStack{out: out}
}

func (s *operandStack) Output() io.Writer { return s.out }

func (s *operandStack) Load(w uintptr) (sexpr.Node, error) {
	if w == 0 || w > uintptr(len(s.values)) {
		return nil, errors.New("bad value word %#x", w)
	}

	return s.values[w-1], nil
}

func (s *operandStack) Store(n sexpr.Node) uintptr {
	s.values = append(s.values, n)
	return uintptr(len(s.values))
}

func (s *operandStack) Fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

func (s *operandStack) Err() error { return s.err }
