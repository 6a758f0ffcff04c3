//go:build (linux || darwin) && amd64

package weasel

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/xyproto/weasel/builtin"
	"github.com/xyproto/weasel/sexpr"
)

func compile(t *testing.T, c *Compiler, src string) *Unit {
	t.Helper()

	root, err := sexpr.ParseString(src)
	require.NoError(t, err)

	u, err := c.Compile(context.Background(), root)
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, u.Close())
	})

	return u
}

func TestInvokeArithmetic(t *testing.T) {
	tests := []struct {
		src  string
		want int64
	}{
		{"(+ 2 3)", 5},
		{"(* (+ 1 2) 4)", 12},
		{"(+ 1 (* 2 3))", 7},
		{"(+ -4 4)", 0},
		{"(* 9223372036854775807 2)", -2},
		{"(+ (+ (+ 1 2) (+ 3 4)) (+ (+ 5 6) (+ 7 8)))", 36},
	}

	for _, tc := range tests {
		t.Run(tc.src, func(t *testing.T) {
			u := compile(t, &Compiler{}, tc.src)

			got, err := u.Int(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestInvokePrint(t *testing.T) {
	var out bytes.Buffer

	u := compile(t, &Compiler{Output: &out}, "(print 42)")

	n, err := u.Invoke(context.Background())
	require.NoError(t, err)

	assert.Equal(t, sexpr.Atom("42"), n)
	assert.Equal(t, "42\n", out.String())
}

func TestInvokePrintNested(t *testing.T) {
	var out bytes.Buffer

	u := compile(t, &Compiler{}, "(print (* (print (+ 1 2)) 4))")

	n, err := u.InvokeTo(context.Background(), &out)
	require.NoError(t, err)

	assert.Equal(t, sexpr.Atom("12"), n)
	assert.Equal(t, "3\n12\n", out.String())
}

func TestInvokePrintEmptyList(t *testing.T) {
	var out bytes.Buffer

	u := compile(t, &Compiler{}, "(print ())")

	n, err := u.InvokeTo(context.Background(), &out)
	require.NoError(t, err)

	assert.Equal(t, "()", sexpr.String(n))
	assert.Equal(t, "()\n", out.String())
}

func TestInvokeTwice(t *testing.T) {
	var out bytes.Buffer

	u := compile(t, &Compiler{Output: &out}, "(print (+ 20 22))")

	for i := 0; i < 2; i++ {
		got, err := u.Int(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(42), got)
	}

	assert.Equal(t, "42\n42\n", out.String())
}

func TestInvokeDeepNesting(t *testing.T) {
	const depth = 5000

	src := strings.Repeat("(+ 1 ", depth) + "0" + strings.Repeat(")", depth)

	u := compile(t, &Compiler{}, src)

	got, err := u.Int(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(depth), got)
}

func TestInvokeNotNumber(t *testing.T) {
	var out bytes.Buffer

	u := compile(t, &Compiler{Output: &out}, "(print (+ 1 x))")

	for i := 0; i < 2; i++ {
		_, err := u.Invoke(context.Background())

		var ie *InvokeError
		require.ErrorAs(t, err, &ie)
		assert.ErrorIs(t, err, builtin.ErrNotNumber)
	}

	assert.Empty(t, out.String(), "print is skipped after a failure")

	_, err := compile(t, &Compiler{}, "(+ 1 ())").Invoke(context.Background())
	assert.ErrorIs(t, err, builtin.ErrNotNumber)
}

func TestInvokeCustomRegistry(t *testing.T) {
	join := func(_ builtin.Env, args []sexpr.Node) (sexpr.Node, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = sexpr.String(a)
		}

		return sexpr.Atom(strings.Join(parts, "-")), nil
	}

	reg, err := builtin.NewRegistry(
		builtin.Builtin{Name: "zero", Arity: 0, Fn: func(builtin.Env, []sexpr.Node) (sexpr.Node, error) { return sexpr.Atom("0"), nil }},
		builtin.Builtin{Name: "j1", Arity: 1, Fn: join},
		builtin.Builtin{Name: "j3", Arity: 3, Fn: join},
		builtin.Builtin{Name: "j4", Arity: 4, Fn: join},
		builtin.Builtin{Name: "j5", Arity: 5, Fn: join},
		builtin.Builtin{Name: "boom", Arity: 1, Fn: func(builtin.Env, []sexpr.Node) (sexpr.Node, error) { panic("boom") }},
	)
	require.NoError(t, err)

	c := &Compiler{Registry: reg}

	tests := []struct {
		src  string
		want string
	}{
		{"(zero)", "0"},
		{"(j1 a)", "a"},
		{"(j3 a b c)", "a-b-c"},
		{"(j4 a (zero) c d)", "a-0-c-d"},
		{"(j5 a b c d e)", "a-b-c-d-e"},
		{"(j5 (j1 a) (j3 b c d) () (zero) e)", "a-b-c-d-()-0-e"},
	}

	for _, tc := range tests {
		t.Run(tc.src, func(t *testing.T) {
			n, err := compile(t, c, tc.src).Invoke(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tc.want, sexpr.String(n))
		})
	}

	_, err = compile(t, c, "(j1 (boom 1))").Invoke(context.Background())
	assert.ErrorContains(t, err, "panic: boom")

	root, err := sexpr.ParseString("(+ 1 2)")
	require.NoError(t, err)

	_, err = c.Compile(context.Background(), root)
	assert.ErrorIs(t, err, ErrUnknownOperator)
}

func TestInvokeConcurrent(t *testing.T) {
	u := compile(t, &Compiler{}, "(print (* (+ 1 2) 4))")

	var g errgroup.Group

	outs := make([]bytes.Buffer, 16)

	for i := range outs {
		g.Go(func() error {
			for j := 0; j < 50; j++ {
				n, err := u.InvokeTo(context.Background(), &outs[i])
				if err != nil {
					return err
				}

				if sexpr.String(n) != "12" {
					return fmt.Errorf("goroutine %d: got %v", i, n)
				}
			}

			return nil
		})
	}

	require.NoError(t, g.Wait())

	for i := range outs {
		assert.Equal(t, strings.Repeat("12\n", 50), outs[i].String())
	}
}

func TestInvokeCancelled(t *testing.T) {
	var out bytes.Buffer

	u := compile(t, &Compiler{Output: &out}, "(print 1)")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := u.Invoke(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestUnitClose(t *testing.T) {
	root, err := sexpr.ParseString("(+ 2 3)")
	require.NoError(t, err)

	u, err := Compile(context.Background(), root)
	require.NoError(t, err)

	require.NoError(t, u.Close())
	assert.NoError(t, u.Close())

	_, err = u.Invoke(context.Background())
	assert.ErrorIs(t, err, ErrClosed)

	assert.Nil(t, u.Code())
	assert.Empty(t, u.Disassemble())
}

func TestUnitCode(t *testing.T) {
	root, err := sexpr.ParseString("(* (+ 1 2) 4)")
	require.NoError(t, err)

	code, pool, err := (&Compiler{}).Generate(context.Background(), root)
	require.NoError(t, err)

	u := compile(t, &Compiler{}, "(* (+ 1 2) 4)")

	assert.Equal(t, code, u.Code())
	assert.Equal(t, len(pool), u.Immediates())

	dis := u.Disassemble()
	assert.Contains(t, dis, "push rbp")
	assert.Contains(t, dis, "call rax")
	assert.Contains(t, dis, "ret")
}

func TestUnitImmediate(t *testing.T) {
	u := compile(t, &Compiler{}, "(+ 7 8)")

	n, err := u.Immediate(1)
	require.NoError(t, err)
	assert.Equal(t, sexpr.Atom("8"), n)

	_, err = u.Immediate(2)
	assert.Error(t, err)
}

func TestNewUnitEmpty(t *testing.T) {
	_, err := NewUnit(nil, nil)

	var ae *AllocationError
	assert.ErrorAs(t, err, &ae)
	assert.ErrorIs(t, err, ErrAllocation)
}
