// Completion: 100% - Writer module complete
package amd64

import (
	"encoding/binary"

	"tlog.app/go/tlog"
)

// Out accumulates x86-64 machine code.
//
// Every instruction that moves rsp is mirrored into the Stack tracker, so
// callers can ask whether a call emitted now would be aligned.
type Out struct {
	buf   []byte
	stack *Stack
	tr    tlog.Span
}

// NewOut creates an empty code buffer. Instructions are traced to tr under
// the "asm" verbosity topic.
func NewOut(tr tlog.Span) *Out {
	return &Out{
		stack: NewStack(),
		tr:    tr,
	}
}

func (o *Out) Write(b uint8) {
	o.buf = append(o.buf, b)
}

// WriteUnsigned writes a little-endian 32-bit value.
func (o *Out) WriteUnsigned(v uint32) {
	o.buf = binary.LittleEndian.AppendUint32(o.buf, v)
}

// Write8u writes a little-endian 64-bit value.
func (o *Out) Write8u(v uint64) {
	o.buf = binary.LittleEndian.AppendUint64(o.buf, v)
}

// Bytes returns the code emitted so far. The slice aliases the buffer.
func (o *Out) Bytes() []byte { return o.buf }

func (o *Out) Len() int { return len(o.buf) }

func (o *Out) Stack() *Stack { return o.stack }

func (o *Out) trace(mnemonic string, kvs ...any) {
	if o.tr.Logger == nil {
		return
	}

	o.tr.V("asm").Printw(mnemonic, append([]any{"off", len(o.buf), "depth", o.stack.Depth()}, kvs...)...)
}
