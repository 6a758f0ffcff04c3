// Completion: 100% - Platform-specific module complete
//go:build (linux || darwin) && amd64

package native

import "github.com/ebitengine/purego"

// Supported reports whether native code can be run on this platform.
const Supported = true

// NewCallback returns a C-ABI entry address for the Go function fn.
// fn takes and returns uintptr words. Callbacks are never released, so they
// are created once per routine.
func NewCallback(fn any) uintptr {
	return purego.NewCallback(fn)
}

// Call enters native code at entry with the given word arguments and returns
// the word left in rax.
func Call(entry uintptr, args ...uintptr) uintptr {
	r1, _, _ := purego.SyscallN(entry, args...)
	return r1
}
