// Completion: 100% - Platform-specific module complete
//go:build !((linux || darwin) && amd64)

package native

const Supported = false

func NewCallback(fn any) uintptr { return 0 }

func Call(entry uintptr, args ...uintptr) uintptr {
	panic(ErrUnsupported)
}
