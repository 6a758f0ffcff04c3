// Completion: 100% - Error handling complete, clear and helpful messages
package weasel

import (
	"fmt"
	"strconv"
	"strings"

	"tlog.app/go/errors"
)

// ErrorKind classifies compile-time failures
type ErrorKind int

const (
	UnknownOperator ErrorKind = iota
	ArityMismatch
	TooManyImmediates
	NilNode
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownOperator:
		return "unknown operator"
	case ArityMismatch:
		return "arity mismatch"
	case TooManyImmediates:
		return "too many immediates"
	case NilNode:
		return "nil node"
	default:
		return "unknown"
	}
}

var (
	ErrUnknownOperator   = errors.New("unknown operator")
	ErrArityMismatch     = errors.New("arity mismatch")
	ErrTooManyImmediates = errors.New("too many immediates")

	// ErrNilNode is reported for a nil child in a hand-built tree.
	ErrNilNode = errors.New("nil node")

	// ErrAllocation is wrapped by every AllocationError.
	ErrAllocation = errors.New("cannot allocate executable memory")

	// ErrClosed is returned when invoking a closed unit.
	ErrClosed = errors.New("unit is closed")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case UnknownOperator:
		return ErrUnknownOperator
	case ArityMismatch:
		return ErrArityMismatch
	case TooManyImmediates:
		return ErrTooManyImmediates
	case NilNode:
		return ErrNilNode
	default:
		return nil
	}
}

// CompileError is a compile-time failure. No unit is produced.
//
// It matches ErrUnknownOperator, ErrArityMismatch, ErrTooManyImmediates or
// ErrNilNode with errors.Is, according to Kind.
type CompileError struct {
	Kind ErrorKind

	Op    string // operator of the failing list
	Arity int    // declared arity, for ArityMismatch
	Got   int    // number of children, for ArityMismatch
	Limit uint64 // pool limit, for TooManyImmediates

	// Path holds child indices leading from the root to the failing list,
	// or to the nil child for NilNode.
	Path []int

	// Suggestions are known operators close to Op, for UnknownOperator.
	Suggestions []string
}

func (e *CompileError) Error() string {
	var msg string

	switch e.Kind {
	case UnknownOperator:
		if e.Op == "" {
			msg = "list has no operator"
		} else {
			msg = fmt.Sprintf("unknown operator %q", e.Op)
		}

		if len(e.Suggestions) != 0 {
			msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestions[0])
		}
	case ArityMismatch:
		msg = fmt.Sprintf("%q takes %d arguments, got %d", e.Op, e.Arity, e.Got)
	case TooManyImmediates:
		msg = fmt.Sprintf("more than %d immediates", e.Limit)
	case NilNode:
		msg = fmt.Sprintf("nil child in %q", e.Op)
	default:
		msg = e.Kind.String()
	}

	return fmt.Sprintf("compile: %s: %s", e.Location(), msg)
}

// Location renders Path as "root", "root.1", "root.1.0" and so on.
func (e *CompileError) Location() string {
	var sb strings.Builder
	sb.WriteString("root")

	for _, i := range e.Path {
		sb.WriteByte('.')
		sb.WriteString(strconv.Itoa(i))
	}

	return sb.String()
}

func (e *CompileError) Unwrap() error { return e.Kind.sentinel() }

// AllocationError means the executable unit could not obtain or protect
// memory. The caller may retry.
type AllocationError struct {
	Err error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("%v: %v", ErrAllocation, e.Err)
}

func (e *AllocationError) Unwrap() []error { return []error{ErrAllocation, e.Err} }

// InvokeError is a run-time failure inside a builtin, such as a malformed
// number. The unit stays valid and can be invoked again.
type InvokeError struct {
	Err error
}

func (e *InvokeError) Error() string { return "invoke: " + e.Err.Error() }

func (e *InvokeError) Unwrap() error { return e.Err }
