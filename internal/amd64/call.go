// Completion: 100% - Instruction implementation complete
package amd64

// CALL instruction for native calls
// Generated code only calls through registers: builtin routines and the
// immediate accessor live at absolute addresses loaded with movabs.

// CallRegister generates a CALL to address in register (indirect call)
func (o *Out) CallRegister(reg Register) {
	o.trace("call", "reg", reg)

	if reg.Extended() {
		o.Write(0x41) // REX.B
	}

	// CALL r/m64 (opcode 0xFF /2)
	o.Write(0xFF)

	// ModR/M: 11 010 reg (register indirect, opcode extension /2)
	o.Write(0xD0 | reg.Encoding&7)
}

// CallAligned calls through reg, padding rsp by one word around the call
// when the tracked depth would leave it misaligned.
func (o *Out) CallAligned(reg Register) {
	pad := !o.stack.Aligned()

	if pad {
		o.SubImmToReg(RSP, 8)
	}

	o.CallRegister(reg)

	if pad {
		o.AddImmToReg(RSP, 8)
	}
}
