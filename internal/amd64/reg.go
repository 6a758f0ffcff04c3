// Completion: 100% - Utility module complete
package amd64

// Register is a 64-bit general purpose register
type Register struct {
	Name     string
	Size     int   // Size in bits
	Encoding uint8 // Encoding for instruction generation
}

func (r Register) String() string { return r.Name }

// Extended reports whether the register needs a REX extension bit (r8-r15).
func (r Register) Extended() bool { return r.Encoding >= 8 }

// x86_64 general purpose registers
var (
	RAX = Register{Name: "rax", Size: 64, Encoding: 0}
	RCX = Register{Name: "rcx", Size: 64, Encoding: 1}
	RDX = Register{Name: "rdx", Size: 64, Encoding: 2}
	RBX = Register{Name: "rbx", Size: 64, Encoding: 3}
	RSP = Register{Name: "rsp", Size: 64, Encoding: 4}
	RBP = Register{Name: "rbp", Size: 64, Encoding: 5}
	RSI = Register{Name: "rsi", Size: 64, Encoding: 6}
	RDI = Register{Name: "rdi", Size: 64, Encoding: 7}
	R8  = Register{Name: "r8", Size: 64, Encoding: 8}
	R9  = Register{Name: "r9", Size: 64, Encoding: 9}
	R10 = Register{Name: "r10", Size: 64, Encoding: 10}
	R11 = Register{Name: "r11", Size: 64, Encoding: 11}
	R12 = Register{Name: "r12", Size: 64, Encoding: 12}
	R13 = Register{Name: "r13", Size: 64, Encoding: 13}
	R14 = Register{Name: "r14", Size: 64, Encoding: 14}
	R15 = Register{Name: "r15", Size: 64, Encoding: 15}
)

// rex builds a REX prefix. w selects 64-bit operand size, reg extends the
// ModR/M reg field and rm extends the r/m (or opcode) field.
func rex(w bool, reg, rm Register) uint8 {
	b := uint8(0x40)
	if w {
		b |= 0x08 // REX.W
	}
	if reg.Extended() {
		b |= 0x04 // REX.R
	}
	if rm.Extended() {
		b |= 0x01 // REX.B
	}
	return b
}
