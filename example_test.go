//go:build (linux || darwin) && amd64

package weasel_test

import (
	"context"
	"fmt"
	"os"

	"github.com/xyproto/weasel"
	"github.com/xyproto/weasel/sexpr"
)

func Example() {
	ctx := context.Background()

	root, err := sexpr.ParseString("(print (* (+ 1 2) 4))")
	if err != nil {
		panic(err)
	}

	c := &weasel.Compiler{Output: os.Stdout}

	u, err := c.Compile(ctx, root)
	if err != nil {
		panic(err)
	}
	defer u.Close()

	n, err := u.Int(ctx)
	if err != nil {
		panic(err)
	}

	fmt.Println("result:", n)

	// Output:
	// 12
	// result: 12
}
