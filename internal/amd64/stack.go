// Completion: 100% - Helper module complete
package amd64

import (
	"fmt"
	"strings"
)

const historySize = 32

// Stack tracks push/pop operations of emitted code so the generator knows the
// run-time depth of rsp at every point.
//
// Depth is counted in 8-byte words above a frame base that is aligned to
// the calling convention's boundary.
type Stack struct {
	depth      int      // Current stack depth (in 8-byte words)
	max        int      // Deepest point seen
	align      int      // Required alignment in words
	operations []string // Recent operations for debugging
}

func NewStack() *Stack {
	return &Stack{
		align:      SystemV{}.StackAlignment() / 8,
		operations: make([]string, 0, historySize),
	}
}

func (s *Stack) Push(what string) {
	s.depth++
	if s.depth > s.max {
		s.max = s.depth
	}
	s.record("push %s (depth=%d)", what, s.depth)
}

func (s *Stack) Pop(what string) {
	if s.depth <= 0 {
		panic(fmt.Sprintf("amd64: stack underflow: pop %s with depth %d\n%s", what, s.depth, s.history()))
	}
	s.depth--
	s.record("pop %s (depth=%d)", what, s.depth)
}

// Sub records sub rsp, amount.
func (s *Stack) Sub(amount int) {
	s.depth += amount / 8
	if s.depth > s.max {
		s.max = s.depth
	}
	s.record("sub rsp, %d (depth=%d)", amount, s.depth)
}

// Add records add rsp, amount.
func (s *Stack) Add(amount int) {
	words := amount / 8
	if s.depth < words {
		panic(fmt.Sprintf("amd64: stack imbalance: add rsp, %d with depth %d\n%s", amount, s.depth, s.history()))
	}
	s.depth -= words
	s.record("add rsp, %d (depth=%d)", amount, s.depth)
}

func (s *Stack) Depth() int { return s.depth }

// MaxDepth returns the deepest point the emitted code reaches, in words.
func (s *Stack) MaxDepth() int { return s.max }

// Aligned reports whether rsp would be aligned for a call right now.
func (s *Stack) Aligned() bool { return s.depth%s.align == 0 }

func (s *Stack) Checkpoint(label string) int {
	s.record("checkpoint %s (depth=%d)", label, s.depth)
	return s.depth
}

func (s *Stack) Validate(checkpointDepth int, label string) {
	if s.depth != checkpointDepth {
		panic(fmt.Sprintf("amd64: stack imbalance at %s: expected depth %d, got %d\n%s", label, checkpointDepth, s.depth, s.history()))
	}
}

func (s *Stack) record(format string, args ...any) {
	if len(s.operations) == historySize {
		copy(s.operations, s.operations[1:])
		s.operations = s.operations[:historySize-1]
	}
	s.operations = append(s.operations, fmt.Sprintf(format, args...))
}

func (s *Stack) history() string {
	var b strings.Builder
	b.WriteString("Recent operations:\n")
	for _, op := range s.operations {
		b.WriteString("  ")
		b.WriteString(op)
		b.WriteString("\n")
	}
	return b.String()
}
