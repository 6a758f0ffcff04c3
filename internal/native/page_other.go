// Completion: 100% - Platform-specific module complete
//go:build !((linux || darwin) && amd64)

package native

import "os"

func PageSize() int { return os.Getpagesize() }

func NewPage(code []byte) (*Page, error) { return nil, ErrUnsupported }

func (p *Page) Addr() uintptr { return 0 }

func (p *Page) Free() error { return nil }
