// Completion: 100% - Module complete
package builtin

import (
	"fmt"
	"strconv"

	"github.com/xyproto/weasel/sexpr"
	"tlog.app/go/errors"
)

// ErrNotNumber is the run-time failure of an arithmetic builtin given text
// that is not a base-10 integer.
var ErrNotNumber = errors.New("not a number")

// Int parses an atom as a base-10 64-bit integer.
func Int(n sexpr.Node) (int64, error) {
	a, ok := n.(sexpr.Atom)
	if !ok {
		return 0, errors.Wrap(ErrNotNumber, "%s", sexpr.String(n))
	}

	v, err := strconv.ParseInt(a.Text(), 10, 64)
	if err != nil {
		return 0, errors.Wrap(ErrNotNumber, "%q", a.Text())
	}

	return v, nil
}

// Add is +: the sum of two integers. Overflow wraps around.
func Add(_ Env, args []sexpr.Node) (sexpr.Node, error) {
	return arith(args, func(x, y int64) int64 { return x + y })
}

// Mul is *: the product of two integers. Overflow wraps around.
func Mul(_ Env, args []sexpr.Node) (sexpr.Node, error) {
	return arith(args, func(x, y int64) int64 { return x * y })
}

// Print writes its argument and a newline to the output and returns the
// argument unchanged.
func Print(env Env, args []sexpr.Node) (sexpr.Node, error) {
	_, err := fmt.Fprintln(env.Output(), sexpr.String(args[0]))
	if err != nil {
		return nil, errors.Wrap(err, "write")
	}

	return args[0], nil
}

func arith(args []sexpr.Node, op func(x, y int64) int64) (sexpr.Node, error) {
	x, err := Int(args[0])
	if err != nil {
		return nil, err
	}

	y, err := Int(args[1])
	if err != nil {
		return nil, err
	}

	return sexpr.Atom(strconv.FormatInt(op(x, y), 10)), nil
}
