package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"nikand.dev/go/cli"
	"tlog.app/go/errors"

	"github.com/xyproto/weasel"
	"github.com/xyproto/weasel/sexpr"
)

const (
	historyFile = ".weasel_history"

	promptMain = "weasel> "
	promptCont = "   ...> "
)

func replAct(c *cli.Command) (err error) {
	ctx, cfg, err := setup(c)
	if err != nil {
		return err
	}

	out, closeOut, err := cfg.OpenOutput()
	if err != nil {
		return err
	}

	defer func() {
		e := closeOut()
		if err == nil && e != nil {
			err = errors.Wrap(e, "close output")
		}
	}()

	comp := cfg.Compiler(out)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		src, ok := readForm(ln)
		if !ok {
			fmt.Println()
			return nil
		}

		switch strings.TrimSpace(src) {
		case "":
			continue
		case ":quit", ":q":
			return nil
		}

		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		res, err := eval(ctx, comp, src)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}

		fmt.Println(res)
	}
}

// readForm reads lines until they make a complete form.
func readForm(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() != 0 {
			prompt = promptCont
		}

		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return "", false
		}
		if err != nil {
			return "", false
		}

		if b.Len() != 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		_, err = sexpr.ReadAll(strings.NewReader(b.String()))

		var se *sexpr.SyntaxError
		if errors.As(err, &se) && se.Incomplete() {
			continue
		}

		return b.String(), true
	}
}

func eval(ctx context.Context, comp *weasel.Compiler, src string) (string, error) {
	root, err := sexpr.ParseString(src)
	if err != nil {
		return "", err
	}

	u, err := comp.Compile(ctx, root)
	if err != nil {
		return "", err
	}

	defer u.Close()

	n, err := u.Invoke(ctx)
	if err != nil {
		return "", err
	}

	return sexpr.String(n), nil
}
