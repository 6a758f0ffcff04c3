// Completion: 100% - Helper module complete
package amd64

import "slices"

// SystemV is the System V AMD64 calling convention (Linux, macOS, BSD).
//
// Only the integer side is described: everything the generated code passes
// around is a machine word.
type SystemV struct{}

var integerArgRegs = []Register{RDI, RSI, RDX, RCX, R8, R9}

// IntegerArgReg returns the register for the integer argument at index.
// ok is false when the argument would overflow to the stack.
func (SystemV) IntegerArgReg(index int) (r Register, ok bool) {
	if index < 0 || index >= len(integerArgRegs) {
		return Register{}, false
	}
	return integerArgRegs[index], true
}

func (SystemV) IntegerReturnReg() Register { return RAX }

// CalleeSaved reports whether r survives calls.
func (cc SystemV) CalleeSaved(r Register) bool {
	return slices.Contains(cc.CalleeSavedRegs(), r)
}

// CalleeSavedRegs must be restored by a function before it returns.
func (SystemV) CalleeSavedRegs() []Register {
	return []Register{RBX, RBP, R12, R13, R14, R15}
}

// StackAlignment is the rsp alignment required at every call instruction.
func (SystemV) StackAlignment() int { return 16 }
