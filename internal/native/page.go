// Completion: 100% - Module complete
package native

// Page is a block of memory holding generated code.
//
// The page is written while it is read+write, then switched to read+execute
// before its address is handed out; it is never writable and executable at
// the same time.
type Page struct {
	mem  []byte
	code int
}

// Code returns the code bytes, read back from the page.
func (p *Page) Code() []byte {
	if p.mem == nil {
		return nil
	}
	return append([]byte(nil), p.mem[:p.code]...)
}

// Size returns the size of the mapping: the code length rounded up to the
// page size.
func (p *Page) Size() int { return len(p.mem) }

// roundUp rounds n up to the next multiple of size.
func roundUp(n, size int) int {
	return (n + size - 1) / size * size
}
