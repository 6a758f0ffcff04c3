// Completion: 100% - Module complete

// Package builtin holds the native routines compiled programs can call.
//
// Every builtin is reachable from generated code at an absolute address and
// follows the System V calling convention:
//
//	entry(stack, a1, ..., aN) -> word
//
// stack is the handle of the invocation's run-time operand stack, a1..aN are
// value words popped off it, and the result word comes back in rax.
package builtin

import (
	"io"

	"github.com/xyproto/weasel/internal/native"
	"github.com/xyproto/weasel/sexpr"
	"tlog.app/go/errors"
)

// MaxArity is the largest arity a builtin may declare: the first integer
// argument register carries the stack handle, the other five carry values.
const MaxArity = 5

type (
	// Env is what a builtin routine may use besides its arguments.
	Env interface {
		// Output is where print writes.
		Output() io.Writer
	}

	// Func implements a builtin. len(args) always equals the declared arity.
	Func func(env Env, args []sexpr.Node) (sexpr.Node, error)

	// Frame is an invocation's run-time operand stack as seen from the
	// native side. Words are issued by Store and resolved by Load.
	Frame interface {
		Env

		Load(word uintptr) (sexpr.Node, error)
		Store(n sexpr.Node) uintptr

		// Fail records the first run-time failure of the invocation.
		Fail(err error)
		Err() error
	}

	Builtin struct {
		Name  string
		Arity int
		Fn    Func

		addr uintptr
	}
)

// Addr returns the native entry address. It is zero until the builtin is
// bound by NewRegistry.
func (b *Builtin) Addr() uintptr { return b.addr }

// call runs the builtin on behalf of generated code.
//
// A failing or panicking routine must not unwind through native frames, so
// failures are recorded on the frame and the zero word is returned. Once an
// invocation failed every later call is skipped.
func (b *Builtin) call(frame uintptr, words ...uintptr) (res uintptr) {
	v, ok := native.Handle(frame).Lookup()
	if !ok {
		return 0
	}

	f, ok := v.(Frame)
	if !ok || f.Err() != nil {
		return 0
	}

	defer func() {
		p := recover()
		if p == nil {
			return
		}

		f.Fail(errors.New("%s: panic: %v", b.Name, p))
		res = 0
	}()

	args := make([]sexpr.Node, len(words))

	for i, w := range words {
		n, err := f.Load(w)
		if err != nil {
			f.Fail(errors.Wrap(err, "%s: argument %d", b.Name, i+1))
			return 0
		}

		args[i] = n
	}

	n, err := b.Fn(f, args)
	if err != nil {
		f.Fail(errors.Wrap(err, "%s", b.Name))
		return 0
	}

	return f.Store(n)
}

// trampoline returns a Go function with exactly Arity+1 word parameters,
// suitable for a native callback.
func (b *Builtin) trampoline() any {
	switch b.Arity {
	case 0:
		return func(f uintptr) uintptr { return b.call(f) }
	case 1:
		return func(f, a uintptr) uintptr { return b.call(f, a) }
	case 2:
		return func(f, a, c uintptr) uintptr { return b.call(f, a, c) }
	case 3:
		return func(f, a, c, d uintptr) uintptr { return b.call(f, a, c, d) }
	case 4:
		return func(f, a, c, d, e uintptr) uintptr { return b.call(f, a, c, d, e) }
	case 5:
		return func(f, a, c, d, e, g uintptr) uintptr { return b.call(f, a, c, d, e, g) }
	}

	panic(b.Arity)
}
