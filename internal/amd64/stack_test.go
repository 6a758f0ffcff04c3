package amd64

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStackAlignment(t *testing.T) {
	s := NewStack()
	assert.True(t, s.Aligned())

	s.Push("rax")
	assert.False(t, s.Aligned())

	s.Push("rbx")
	assert.True(t, s.Aligned())

	s.Sub(8)
	assert.False(t, s.Aligned())
	assert.Equal(t, 3, s.Depth())

	s.Add(8)
	s.Pop("rbx")
	s.Pop("rax")
	assert.Equal(t, 0, s.Depth())
	assert.Equal(t, 3, s.MaxDepth())
}

func TestStackUnderflowPanics(t *testing.T) {
	s := NewStack()
	assert.Panics(t, func() { s.Pop("rax") })

	s = NewStack()
	assert.Panics(t, func() { s.Add(8) })
}

func TestStackCheckpoint(t *testing.T) {
	s := NewStack()
	s.Push("rax")

	cp := s.Checkpoint("call")
	s.Push("rbx")
	assert.Panics(t, func() { s.Validate(cp, "call") })

	s.Pop("rbx")
	assert.NotPanics(t, func() { s.Validate(cp, "call") })
}

func TestStackHistoryBounded(t *testing.T) {
	s := NewStack()
	for i := 0; i < 10*historySize; i++ {
		s.Push("rax")
	}
	assert.Len(t, s.operations, historySize)
	assert.Equal(t, 10*historySize, s.Depth())
}

func TestSystemV(t *testing.T) {
	var cc SystemV

	r, ok := cc.IntegerArgReg(0)
	assert.True(t, ok)
	assert.Equal(t, RDI, r)

	r, ok = cc.IntegerArgReg(5)
	assert.True(t, ok)
	assert.Equal(t, R9, r)

	_, ok = cc.IntegerArgReg(6)
	assert.False(t, ok)

	assert.Equal(t, RAX, cc.IntegerReturnReg())
	assert.Equal(t, 16, cc.StackAlignment())
	assert.True(t, cc.CalleeSaved(RBX))
	assert.True(t, cc.CalleeSaved(R12))
	assert.False(t, cc.CalleeSaved(RAX))
	assert.False(t, cc.CalleeSaved(RDI))
}
