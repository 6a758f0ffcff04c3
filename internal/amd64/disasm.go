// Completion: 100% - Utility module complete
package amd64

import (
	"fmt"
	"strings"

	"golang.org/x/arch/x86/x86asm"
	"tlog.app/go/errors"
)

// Decode decodes 64-bit machine code into instructions.
func Decode(code []byte) ([]x86asm.Inst, error) {
	var insts []x86asm.Inst

	for off := 0; off < len(code); {
		inst, err := decodeAt(code, off)
		if err != nil {
			return insts, err
		}

		insts = append(insts, inst)
		off += inst.Len
	}

	return insts, nil
}

// Disassemble renders code in Intel syntax, one instruction per line,
// with addresses starting at pc. Undecodable bytes are shown as db.
func Disassemble(code []byte, pc uint64) string {
	var sb strings.Builder

	for off := 0; off < len(code); {
		inst, err := decodeAt(code, off)
		if err != nil {
			fmt.Fprintf(&sb, "%#x: %-30s db 0x%02x\n", pc+uint64(off), fmt.Sprintf("%02x", code[off]), code[off])
			off++
			continue
		}

		var hex strings.Builder
		for i, b := range code[off : off+inst.Len] {
			if i != 0 {
				hex.WriteByte(' ')
			}
			fmt.Fprintf(&hex, "%02x", b)
		}

		fmt.Fprintf(&sb, "%#x: %-30s %s\n", pc+uint64(off), hex.String(), x86asm.IntelSyntax(inst, pc+uint64(off), nil))
		off += inst.Len
	}

	return sb.String()
}

// decodeAt decodes one instruction at off. x86asm reports truncated or
// unknown opcodes as a zero Op without an error; those are errors here.
func decodeAt(code []byte, off int) (x86asm.Inst, error) {
	inst, err := x86asm.Decode(code[off:], 64)
	if err != nil {
		return inst, errors.Wrap(err, "decode at 0x%x", off)
	}

	if inst.Op == 0 {
		return inst, errors.New("decode at 0x%x: unknown instruction % x", off, code[off:min(off+max(inst.Len, 1), len(code))])
	}

	return inst, nil
}
