// Completion: 100% - Instruction implementation complete
package amd64

// PUSH/POP instructions for stack management
// The generated code uses rsp as its run-time operand stack:
//   - Atoms fetched from the immediate pool are pushed
//   - Builtin arguments are popped into argument registers
//   - Context registers are preserved across calls

// PushReg pushes a register value onto the stack
func (o *Out) PushReg(reg Register) {
	o.trace("push", "reg", reg)

	// PUSH uses compact encoding: 0x50 + reg
	// For extended registers (R8-R15), need REX prefix
	if reg.Extended() {
		o.Write(0x41) // REX.B
	}
	o.Write(0x50 + reg.Encoding&7)

	o.stack.Push(reg.Name)
}

// PopReg pops a value from the stack into a register
func (o *Out) PopReg(reg Register) {
	o.trace("pop", "reg", reg)

	// POP uses compact encoding: 0x58 + reg
	if reg.Extended() {
		o.Write(0x41) // REX.B
	}
	o.Write(0x58 + reg.Encoding&7)

	o.stack.Pop(reg.Name)
}
