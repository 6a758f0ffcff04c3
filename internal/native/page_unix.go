// Completion: 100% - Platform-specific module complete
//go:build (linux || darwin) && amd64

package native

import (
	"unsafe"

	"golang.org/x/sys/unix"
	"tlog.app/go/errors"
)

// PageSize returns the platform page size
func PageSize() int { return unix.Getpagesize() }

// NewPage maps fresh memory, copies code into it and makes it executable.
func NewPage(code []byte) (*Page, error) {
	if len(code) == 0 {
		return nil, errors.New("empty code")
	}

	size := roundUp(len(code), PageSize())

	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, errors.Wrap(err, "mmap %d bytes", size)
	}

	copy(mem, code)

	err = unix.Mprotect(mem, unix.PROT_READ|unix.PROT_EXEC)
	if err != nil {
		_ = unix.Munmap(mem)
		return nil, errors.Wrap(err, "mprotect")
	}

	return &Page{mem: mem, code: len(code)}, nil
}

// Addr returns the entry address of the page.
func (p *Page) Addr() uintptr {
	if p.mem == nil {
		return 0
	}
	return uintptr(unsafe.Pointer(&p.mem[0]))
}

// Free unmaps the page. Freeing twice is a no-op.
func (p *Page) Free() error {
	if p.mem == nil {
		return nil
	}

	mem := p.mem
	p.mem = nil

	if err := unix.Munmap(mem); err != nil {
		return errors.Wrap(err, "munmap")
	}

	return nil
}
