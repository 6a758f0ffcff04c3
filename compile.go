// Completion: 100% - Compiler complete
package weasel

import (
	"context"
	"io"
	"math"

	"github.com/xyproto/weasel/builtin"
	"github.com/xyproto/weasel/internal/amd64"
	"github.com/xyproto/weasel/sexpr"
	"tlog.app/go/tlog"
)

// DefaultMaxImmediates is the largest immediate pool a unit can address:
// indexes are encoded as 32-bit immediates.
const DefaultMaxImmediates = math.MaxUint32

// Compiler turns trees into executable units. The zero value is ready to use.
//
// A Compiler is not modified by Compile, so one value may serve concurrent
// compilations.
type Compiler struct {
	// Registry resolves operators. nil means builtin.Default().
	Registry *builtin.Registry

	// MaxImmediates limits the pool of a single unit.
	// 0 or anything above DefaultMaxImmediates means DefaultMaxImmediates.
	MaxImmediates uint64

	// Output is where print writes when the unit is invoked with Invoke.
	// nil means os.Stdout.
	Output io.Writer
}

type frame struct {
	l     *sexpr.List
	next  int // next child to compile
	depth int // tracked depth when the list started
}

// Compile compiles root with the zero Compiler.
func Compile(ctx context.Context, root *sexpr.List) (*Unit, error) {
	var c Compiler
	return c.Compile(ctx, root)
}

// Compile generates code for root and loads it into a new Unit.
func (c *Compiler) Compile(ctx context.Context, root *sexpr.List) (_ *Unit, err error) {
	code, pool, err := c.Generate(ctx, root)
	if err != nil {
		return nil, err
	}

	u, err := NewUnit(code, pool)
	if err != nil {
		return nil, err
	}

	if c.Output != nil {
		u.out = c.Output
	}

	return u, nil
}

// Generate emits the machine code and immediate pool for root without
// allocating executable memory.
//
// The tree is walked with an explicit frame stack, so nesting depth is bounded
// by memory, not by the goroutine stack. A child that is a non-empty list gets
// its own frame; anything else (an atom, or "()") is pooled and fetched as an
// immediate. When a frame runs out of children its operator is resolved and
// called with the values its children left on the operand stack.
func (c *Compiler) Generate(ctx context.Context, root *sexpr.List) (code []byte, immediates []sexpr.Node, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "weasel: generate")
	defer tr.Finish("err", &err)

	if err = ctx.Err(); err != nil {
		return nil, nil, err
	}

	if root == nil || root.Empty() {
		return nil, nil, &CompileError{Kind: UnknownOperator}
	}

	g := &generator{
		out:   amd64.NewOut(tr),
		limit: c.maxImmediates(),
		fetch: fetchEntry(),
	}

	reg := c.registry()

	g.prologue()

	stack := []frame{{l: root, depth: g.out.Stack().Depth()}}

	for len(stack) != 0 {
		top := &stack[len(stack)-1]

		if top.next == top.l.Len() {
			l := top.l

			b, ok := reg.Lookup(l.Op())
			if !ok {
				return nil, nil, &CompileError{Kind: UnknownOperator, Op: l.Op(), Path: path(stack), Suggestions: reg.Suggest(l.Op(), 3)}
			}

			if b.Arity != l.Len() {
				return nil, nil, &CompileError{Kind: ArityMismatch, Op: l.Op(), Arity: b.Arity, Got: l.Len(), Path: path(stack)}
			}

			g.builtin(b)
			g.out.Stack().Validate(top.depth+1, l.Op())

			stack = stack[:len(stack)-1]
			if len(stack) != 0 {
				stack[len(stack)-1].next++
			}

			continue
		}

		child := top.l.At(top.next)

		if l, ok := child.(*sexpr.List); ok && !l.Empty() {
			stack = append(stack, frame{l: l, depth: g.out.Stack().Depth()})
			continue
		}

		if child == nil {
			return nil, nil, &CompileError{Kind: NilNode, Op: top.l.Op(), Path: append(path(stack), top.next)}
		}

		if !g.immediate(child) {
			return nil, nil, &CompileError{Kind: TooManyImmediates, Op: top.l.Op(), Limit: g.limit, Path: path(stack)}
		}

		top.next++
	}

	g.epilogue()

	if tr.If("compile") {
		tr.Printw("compiled", "op", root.Op(), "code_size", g.out.Len(), "immediates", len(g.pool), "max_depth", g.out.Stack().MaxDepth())
	}

	return g.out.Bytes(), g.pool, nil
}

func (c *Compiler) registry() *builtin.Registry {
	if c.Registry != nil {
		return c.Registry
	}

	return builtin.Default()
}

func (c *Compiler) maxImmediates() uint64 {
	if c.MaxImmediates == 0 || c.MaxImmediates > DefaultMaxImmediates {
		return DefaultMaxImmediates
	}

	return c.MaxImmediates
}

// path returns the child indexes leading to the innermost frame.
func path(stack []frame) []int {
	if len(stack) <= 1 {
		return nil
	}

	p := make([]int, len(stack)-1)
	for i := range p {
		p[i] = stack[i].next
	}

	return p
}
