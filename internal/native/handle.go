// Completion: 100% - Module complete
package native

import (
	"sync"
	"sync/atomic"
)

// Handle is an opaque word identifying a Go value. Generated code carries
// handles instead of addresses of Go objects.
//
// Handle zero is never issued.
type Handle uintptr

var (
	handles    sync.Map
	handleNext atomic.Uintptr
)

// NewHandle returns a new handle for v. It must be released with Delete.
func NewHandle(v any) Handle {
	h := handleNext.Add(1)
	handles.Store(h, v)
	return Handle(h)
}

// Lookup returns the value for h.
func (h Handle) Lookup() (any, bool) {
	return handles.Load(uintptr(h))
}

// Delete releases the handle. Deleting a released handle is a no-op.
func (h Handle) Delete() {
	handles.Delete(uintptr(h))
}
