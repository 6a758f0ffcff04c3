// Completion: 100% - Executable unit complete
package weasel

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/xyproto/weasel/builtin"
	"github.com/xyproto/weasel/internal/amd64"
	"github.com/xyproto/weasel/internal/native"
	"github.com/xyproto/weasel/sexpr"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"
)

// Unit is compiled code loaded into executable memory together with the
// immediates it fetches.
//
// Code and immediates are never modified after NewUnit, so any number of
// goroutines may Invoke a unit at once. Close must be called to release it.
type Unit struct {
	mu sync.RWMutex

	page   *native.Page
	pool   []sexpr.Node
	handle native.Handle

	out io.Writer
}

var (
	fetchOnce sync.Once
	fetchAddr uintptr
)

// NewUnit copies code into a fresh executable page. The unit takes ownership
// of immediates.
//
// Generated code is entered as fn(stack, unit) and may fetch immediates
// through the accessor at fetchEntry().
func NewUnit(code []byte, immediates []sexpr.Node) (*Unit, error) {
	p, err := native.NewPage(code)
	if err != nil {
		return nil, &AllocationError{Err: err}
	}

	u := &Unit{
		page: p,
		pool: immediates,
		out:  os.Stdout,
	}

	u.handle = native.NewHandle(u)

	return u, nil
}

// Immediate returns the pooled value at index.
func (u *Unit) Immediate(index uint32) (sexpr.Node, error) {
	if uint64(index) >= uint64(len(u.pool)) {
		return nil, errors.New("immediate %d out of range (pool of %d)", index, len(u.pool))
	}

	return u.pool[index], nil
}

// Immediates returns the size of the pool.
func (u *Unit) Immediates() int { return len(u.pool) }

// Invoke runs the unit with print writing to the compiler's output.
func (u *Unit) Invoke(ctx context.Context) (sexpr.Node, error) {
	return u.InvokeTo(ctx, u.out)
}

// InvokeTo runs the unit with print writing to w and returns the value
// produced by the root list.
//
// A cancelled ctx is reported before native code starts. Once started the
// code runs to completion.
func (u *Unit) InvokeTo(ctx context.Context, w io.Writer) (sexpr.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	u.mu.RLock()
	defer u.mu.RUnlock()

	if u.page == nil {
		return nil, ErrClosed
	}

	st := newOperandStack(w)

	sh := native.NewHandle(st)
	defer sh.Delete()

	word := native.Call(u.page.Addr(), uintptr(sh), uintptr(u.handle))

	if tr := tlog.SpanFromContext(ctx); tr.If("invoke") {
		tr.Printw("invoked", "word", word, "values", len(st.values), "err", st.err)
	}

	if st.err != nil {
		return nil, &InvokeError{Err: st.err}
	}

	n, err := st.Load(word)
	if err != nil {
		return nil, errors.Wrap(err, "result")
	}

	return n, nil
}

// Int invokes the unit and parses the result as a base-10 integer.
func (u *Unit) Int(ctx context.Context) (int64, error) {
	n, err := u.Invoke(ctx)
	if err != nil {
		return 0, err
	}

	return builtin.Int(n)
}

// Close waits for running invocations and releases the executable memory.
// Closing twice is a no-op.
func (u *Unit) Close() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.page == nil {
		return nil
	}

	u.handle.Delete()

	err := u.page.Free()
	u.page = nil

	if err != nil {
		return &AllocationError{Err: err}
	}

	return nil
}

// Code returns a copy of the machine code, read back from the page.
func (u *Unit) Code() []byte {
	u.mu.RLock()
	defer u.mu.RUnlock()

	if u.page == nil {
		return nil
	}

	return u.page.Code()
}

// Disassemble renders the code at its load address in Intel syntax.
func (u *Unit) Disassemble() string {
	u.mu.RLock()
	defer u.mu.RUnlock()

	if u.page == nil {
		return ""
	}

	return amd64.Disassemble(u.page.Code(), uint64(u.page.Addr()))
}

// fetchEntry returns the native address of the immediate accessor.
func fetchEntry() uintptr {
	fetchOnce.Do(func() {
		fetchAddr = native.NewCallback(fetchImmediate)
	})

	return fetchAddr
}

// fetchImmediate is called by generated code as fetch(stack, unit, index).
// It stores the pooled value on the operand stack and returns its word.
func fetchImmediate(stack, unit, index uintptr) uintptr {
	v, _ := native.Handle(stack).Lookup()

	st, ok := v.(*operandStack)
	if !ok || st.err != nil {
		return 0
	}

	v, _ = native.Handle(unit).Lookup()

	u, ok := v.(*Unit)
	if !ok {
		st.Fail(errors.New("bad unit handle %#x", unit))
		return 0
	}

	n, err := u.Immediate(uint32(index))
	if err != nil {
		st.Fail(err)
		return 0
	}

	return st.Store(n)
}
