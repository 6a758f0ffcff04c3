package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/sync/errgroup"
	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/xyproto/weasel"
	"github.com/xyproto/weasel/sexpr"
)

func main() {
	runCmd := &cli.Command{
		Name:        "run",
		Description: "compile every form of the files and invoke them in order",
		Action:      runAct,
		Args:        cli.Args{},
		Flags:       flags(),
	}

	dumpCmd := &cli.Command{
		Name:        "dump",
		Description: "print the machine code generated for every form",
		Action:      dumpAct,
		Args:        cli.Args{},
		Flags:       flags(),
	}

	fmtCmd := &cli.Command{
		Name:        "fmt",
		Description: "read the files and print their forms",
		Action:      fmtAct,
		Args:        cli.Args{},
	}

	replCmd := &cli.Command{
		Name:        "repl",
		Description: "read, compile and invoke forms interactively",
		Action:      replAct,
		Flags:       flags(),
	}

	app := &cli.Command{
		Name:        "weasel",
		Description: "weasel compiles symbolic expressions to x86-64 machine code and runs them",
		Commands: []*cli.Command{
			runCmd,
			dumpCmd,
			fmtCmd,
			replCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func flags() []*cli.Flag {
	return []*cli.Flag{
		cli.NewFlag("config", "", "TOML config file"),
		cli.NewFlag("verbose,v", false, "log generated instructions and compile summaries"),
		cli.NewFlag("max-immediates", "", "immediate pool limit per unit"),
	}
}

// setup loads the config, applies command line overrides and installs the
// logger.
func setup(c *cli.Command) (context.Context, weasel.Config, error) {
	cfg, err := weasel.LoadConfig(c.String("config"))
	if err != nil {
		return nil, cfg, err
	}

	if c.Bool("verbose") {
		cfg.Verbose = true
	}

	if s := c.String("max-immediates"); s != "" {
		cfg.MaxImmediates, err = strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, cfg, errors.Wrap(err, "max-immediates")
		}
	}

	if cfg.Verbose {
		tlog.SetVerbosity("compile,invoke,asm")
	}

	ctx := tlog.ContextWithSpan(context.Background(), tlog.Root())

	return ctx, cfg, nil
}

func readForms(name string) (forms []*sexpr.List, err error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}

	defer func() {
		e := f.Close()
		if err == nil && e != nil {
			err = errors.Wrap(e, "close")
		}
	}()

	nodes, err := sexpr.ReadAll(f)
	if err != nil {
		return nil, errors.Wrap(err, "%v", name)
	}

	for i, n := range nodes {
		l, ok := n.(*sexpr.List)
		if !ok {
			return nil, errors.New("%v: form %d: expected list, got atom %q", name, i+1, n.String())
		}

		forms = append(forms, l)
	}

	return forms, nil
}

// compileFiles compiles all forms of all files concurrently. Units are
// returned in source order.
func compileFiles(ctx context.Context, comp *weasel.Compiler, files []string) (units []*weasel.Unit, err error) {
	var forms []*sexpr.List

	for _, name := range files {
		ff, err := readForms(name)
		if err != nil {
			return nil, err
		}

		forms = append(forms, ff...)
	}

	units = make([]*weasel.Unit, len(forms))

	g, gctx := errgroup.WithContext(ctx)

	for i, form := range forms {
		g.Go(func() error {
			u, err := comp.Compile(gctx, form)
			if err != nil {
				return errors.Wrap(err, "form %d", i+1)
			}

			units[i] = u

			return nil
		})
	}

	err = g.Wait()
	if err != nil {
		closeUnits(units)
		return nil, err
	}

	return units, nil
}

func closeUnits(units []*weasel.Unit) {
	for _, u := range units {
		if u != nil {
			_ = u.Close()
		}
	}
}

func runAct(c *cli.Command) (err error) {
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

	units, err := compileFiles(ctx, cfg.Compiler(out), c.Args)
	if err != nil {
		return err
	}

	defer closeUnits(units)

	for i, u := range units {
		n, err := u.Invoke(ctx)
		if err != nil {
			return errors.Wrap(err, "form %d", i+1)
		}

		fmt.Printf("%s\n", sexpr.String(n))
	}

	return nil
}

func dumpAct(c *cli.Command) error {
	ctx, cfg, err := setup(c)
	if err != nil {
		return err
	}

	units, err := compileFiles(ctx, cfg.Compiler(io.Discard), c.Args)
	if err != nil {
		return err
	}

	defer closeUnits(units)

	for i, u := range units {
		fmt.Printf("; form %d: %d bytes, %d immediates\n", i+1, len(u.Code()), u.Immediates())

		for j := 0; j < u.Immediates(); j++ {
			n, _ := u.Immediate(uint32(j))
			fmt.Printf(";   [%d] %s\n", j, sexpr.String(n))
		}

		fmt.Print(u.Disassemble())
	}

	return nil
}

func fmtAct(c *cli.Command) error {
	for _, name := range c.Args {
		f, err := os.Open(name)
		if err != nil {
			return errors.Wrap(err, "open")
		}

		nodes, err := sexpr.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return errors.Wrap(err, "%v", name)
		}

		for _, n := range nodes {
			fmt.Printf("%s\n", sexpr.String(n))
		}
	}

	return nil
}
