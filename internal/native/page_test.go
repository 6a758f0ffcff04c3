//go:build (linux || darwin) && amd64

package native

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPage(t *testing.T) {
	code := []byte{0x48, 0xC7, 0xC0, 0x2A, 0x00, 0x00, 0x00, 0xC3} // mov rax, 42; ret

	p, err := NewPage(code)
	require.NoError(t, err)
	defer p.Free()

	assert.NotZero(t, p.Addr())
	assert.Zero(t, p.Addr()%uintptr(PageSize()), "page aligned")
	assert.Equal(t, PageSize(), p.Size())
	assert.Equal(t, code, p.Code())

	assert.Equal(t, uintptr(42), Call(p.Addr()))
}

func TestNewPageRoundsUp(t *testing.T) {
	code := make([]byte, PageSize()+1)
	code[0] = 0xC3

	p, err := NewPage(code)
	require.NoError(t, err)
	defer p.Free()

	assert.Equal(t, 2*PageSize(), p.Size())
}

func TestNewPageEmpty(t *testing.T) {
	_, err := NewPage(nil)
	assert.Error(t, err)
}

func TestPageFreeTwice(t *testing.T) {
	p, err := NewPage([]byte{0xC3})
	require.NoError(t, err)

	require.NoError(t, p.Free())
	assert.NoError(t, p.Free())
	assert.Zero(t, p.Addr())
	assert.Nil(t, p.Code())
}

func TestCallback(t *testing.T) {
	// mov rax, cb; sub rsp, 8; call rax; add rsp, 8; ret
	var got []uintptr
	cb := NewCallback(func(a, b uintptr) uintptr {
		got = append(got, a, b)
		return a * b
	})

	code := []byte{0x48, 0xB8}
	for i := 0; i < 8; i++ {
		code = append(code, byte(cb>>(8*i)))
	}
	code = append(code,
		0x48, 0x83, 0xEC, 0x08, // sub rsp, 8
		0xFF, 0xD0, // call rax
		0x48, 0x83, 0xC4, 0x08, // add rsp, 8
		0xC3, // ret
	)

	p, err := NewPage(code)
	require.NoError(t, err)
	defer p.Free()

	assert.Equal(t, uintptr(42), Call(p.Addr(), 6, 7))
	assert.Equal(t, []uintptr{6, 7}, got)
}
