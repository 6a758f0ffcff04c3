// Completion: 100% - Instruction implementation complete
package amd64

// Entry records the return address the caller's call instruction pushed.
// The caller's rsp was aligned before that push, so after Entry the tracked
// depth reflects real alignment.
func (o *Out) Entry() {
	o.stack.Push("return address")
}

// Ret generates a near return (opcode 0xC3), popping the return address
func (o *Out) Ret() {
	o.trace("ret")

	o.Write(0xC3)

	o.stack.Pop("return address")
}
