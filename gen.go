// Completion: 100% - Code generation complete
package weasel

import (
	"github.com/xyproto/weasel/builtin"
	"github.com/xyproto/weasel/internal/amd64"
	"github.com/xyproto/weasel/sexpr"
)

// Context registers. Both are callee-saved, so they survive calls into Go,
// and they are saved around every call anyway.
var (
	stackReg = amd64.RBX // run-time operand stack handle
	unitReg  = amd64.R12 // unit handle
)

func init() {
	for _, r := range []amd64.Register{stackReg, unitReg} {
		if !(amd64.SystemV{}).CalleeSaved(r) {
			panic("context register " + r.Name + " is not callee-saved")
		}
	}
}

// generator emits the machine code of one compilation.
//
// Register usage:
//   - rsp: the operand stack, one word per pushed value
//   - rbx, r12: context registers, see stackReg and unitReg
//   - rdi, rsi, rdx, rcx, r8, r9: call arguments
//   - rax: call results
type generator struct {
	out *amd64.Out
	cc  amd64.SystemV

	pool  []sexpr.Node
	limit uint64

	fetch uintptr // immediate accessor entry
	base  int     // tracked depth of the frame base
}

// prologue sets up the frame and moves the entry arguments
// (stack handle, unit handle) into the context registers.
func (g *generator) prologue() {
	o := g.out

	o.Entry()
	o.PushReg(amd64.RBP)
	o.MovRegToReg(amd64.RBP, amd64.RSP)
	o.PushReg(stackReg)
	o.PushReg(unitReg)

	o.MovRegToReg(stackReg, g.arg(0))
	o.MovRegToReg(unitReg, g.arg(1))

	g.base = o.Stack().Checkpoint("frame base")
}

// epilogue returns the single value left on the operand stack.
func (g *generator) epilogue() {
	o := g.out

	o.Stack().Validate(g.base+1, "epilogue")

	o.PopReg(g.cc.IntegerReturnReg())
	o.PopReg(unitReg)
	o.PopReg(stackReg)
	o.PopReg(amd64.RBP)
	o.Ret()
}

// immediate pools n and emits a fetch of it onto the operand stack.
// ok is false when the pool is full.
func (g *generator) immediate(n sexpr.Node) (ok bool) {
	if uint64(len(g.pool)) >= g.limit {
		return false
	}

	idx := uint32(len(g.pool))
	g.pool = append(g.pool, n)

	o := g.out

	o.PushReg(stackReg)
	o.PushReg(unitReg)

	o.MovRegToReg(g.arg(0), stackReg)
	o.MovRegToReg(g.arg(1), unitReg)
	o.MovImm32ToReg(g.arg(2), idx)

	g.call(g.fetch)

	return true
}

// builtin pops b.Arity words into the argument registers and calls b.
// The last pushed word is the last argument.
func (g *generator) builtin(b *builtin.Builtin) {
	o := g.out

	for i := b.Arity; i >= 1; i-- {
		o.PopReg(g.arg(i))
	}

	o.PushReg(stackReg)
	o.PushReg(unitReg)

	o.MovRegToReg(g.arg(0), stackReg)

	g.call(b.Addr())
}

// call emits an aligned absolute call, restores the context registers
// saved by the caller and pushes the result word.
func (g *generator) call(addr uintptr) {
	o := g.out
	rax := g.cc.IntegerReturnReg()

	o.MovImm64ToReg(rax, uint64(addr))
	o.CallAligned(rax)

	o.PopReg(unitReg)
	o.PopReg(stackReg)

	o.PushReg(rax)
}

func (g *generator) arg(i int) amd64.Register {
	r, ok := g.cc.IntegerArgReg(i)
	if !ok {
		panic(i)
	}

	return r
}
