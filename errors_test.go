package weasel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompileErrorMessage(t *testing.T) {
	tests := []struct {
		err  *CompileError
		want string
	}{
		{&CompileError{Kind: UnknownOperator, Op: "foo", Path: []int{1, 0}}, `compile: root.1.0: unknown operator "foo"`},
		{&CompileError{Kind: UnknownOperator}, "compile: root: list has no operator"},
		{&CompileError{Kind: UnknownOperator, Op: "prnt", Suggestions: []string{"print"}}, `compile: root: unknown operator "prnt" (did you mean "print"?)`},
		{&CompileError{Kind: ArityMismatch, Op: "+", Arity: 2, Got: 1}, `compile: root: "+" takes 2 arguments, got 1`},
		{&CompileError{Kind: TooManyImmediates, Op: "+", Limit: 10, Path: []int{3}}, "compile: root.3: more than 10 immediates"},
	}

	for _, tc := range tests {
		assert.EqualError(t, tc.err, tc.want)
	}
}

func TestCompileErrorIs(t *testing.T) {
	for k, sentinel := range map[ErrorKind]error{
		UnknownOperator:   ErrUnknownOperator,
		ArityMismatch:     ErrArityMismatch,
		TooManyImmediates: ErrTooManyImmediates,
		NilNode:           ErrNilNode,
	} {
		t.Run(k.String(), func(t *testing.T) {
			var err error = &CompileError{Kind: k}

			assert.ErrorIs(t, err, sentinel)

			for _, other := range []error{ErrUnknownOperator, ErrArityMismatch, ErrTooManyImmediates, ErrNilNode} {
				if other != sentinel {
					assert.False(t, errors.Is(err, other))
				}
			}
		})
	}
}

func TestAllocationErrorIs(t *testing.T) {
	cause := errors.New("mmap: out of memory")
	err := &AllocationError{Err: cause}

	assert.ErrorIs(t, err, ErrAllocation)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "out of memory")
}

func TestInvokeErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &InvokeError{Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.EqualError(t, err, "invoke: boom")
}
