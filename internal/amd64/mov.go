// Completion: 100% - Instruction implementation complete
package amd64

// MovRegToReg generates mov dst, src (64-bit)
func (o *Out) MovRegToReg(dst, src Register) {
	o.trace("mov", "dst", dst, "src", src)

	o.Write(rex(true, src, dst))

	// MOV r/m64, r64 (0x89)
	o.Write(0x89)

	// ModR/M byte: 11|reg|r/m
	o.Write(0xC0 | (src.Encoding&7)<<3 | dst.Encoding&7)
}

// MovImm64ToReg generates mov dst, imm64 (movabs)
// Used to load absolute addresses of native routines.
func (o *Out) MovImm64ToReg(dst Register, imm uint64) {
	o.trace("mov", "dst", dst, "imm64", imm)

	// REX.W + B8+rd io
	o.Write(rex(true, Register{}, dst))
	o.Write(0xB8 + dst.Encoding&7)
	o.Write8u(imm)
}

// MovImm32ToReg generates mov dst32, imm32.
// Writing the 32-bit register zero-extends into the full 64-bit register.
func (o *Out) MovImm32ToReg(dst Register, imm uint32) {
	o.trace("mov", "dst", dst, "imm32", imm)

	// B8+rd id, REX.B only for r8d-r15d
	if dst.Extended() {
		o.Write(0x41)
	}
	o.Write(0xB8 + dst.Encoding&7)
	o.WriteUnsigned(imm)
}
