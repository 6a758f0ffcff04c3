// Completion: 100% - Instruction implementation complete
package amd64

// ADD/SUB with an immediate operand
// Used on rsp to pad the stack to the call alignment boundary.

// AddImmToReg generates add dst, imm
func (o *Out) AddImmToReg(dst Register, imm int32) {
	o.trace("add", "dst", dst, "imm", imm)

	o.arithImm(0, dst, imm)

	if dst == RSP {
		o.stack.Add(int(imm))
	}
}

// SubImmToReg generates sub dst, imm
func (o *Out) SubImmToReg(dst Register, imm int32) {
	o.trace("sub", "dst", dst, "imm", imm)

	o.arithImm(5, dst, imm)

	if dst == RSP {
		o.stack.Sub(int(imm))
	}
}

// arithImm encodes the 0x83/0x81 group with the opcode extension ext.
func (o *Out) arithImm(ext uint8, dst Register, imm int32) {
	o.Write(rex(true, Register{}, dst))

	modrm := 0xC0 | ext<<3 | dst.Encoding&7

	// Check if immediate fits in 8 bits
	if imm >= -128 && imm <= 127 {
		o.Write(0x83) // r/m64, imm8
		o.Write(modrm)
		o.Write(uint8(imm))
		return
	}

	o.Write(0x81) // r/m64, imm32
	o.Write(modrm)
	o.WriteUnsigned(uint32(imm))
}
