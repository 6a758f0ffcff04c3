// Completion: 100% - Configuration complete
package weasel

import (
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/xyproto/env/v2"
	"tlog.app/go/errors"
)

// Config is the user-facing configuration, read from a TOML file and the
// environment.
//
//	verbose = true
//	max-immediates = 1024
//	output = "out.txt"
type Config struct {
	// Verbose enables the asm, compile and invoke log topics.
	Verbose bool `toml:"verbose"`

	// MaxImmediates limits the immediate pool of a single unit, 0 means
	// DefaultMaxImmediates.
	MaxImmediates uint64 `toml:"max-immediates"`

	// Output is where print writes: "" or "-" for stdout, "stderr", or a file
	// path, created or truncated.
	Output string `toml:"output"`
}

// Environment overrides, applied after the file.
const (
	EnvVerbose       = "WEASEL_VERBOSE"
	EnvMaxImmediates = "WEASEL_MAX_IMMEDIATES"
	EnvOutput        = "WEASEL_OUTPUT"
)

func DefaultConfig() Config {
	return Config{}
}

// LoadConfig returns the defaults, overridden by the TOML file at path (if
// path is not empty), overridden by the environment.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()

	if path != "" {
		md, err := toml.DecodeFile(path, &c)
		if err != nil {
			return c, errors.Wrap(err, "config %v", path)
		}

		if und := md.Undecoded(); len(und) != 0 {
			keys := make([]string, len(und))
			for i, k := range und {
				keys[i] = k.String()
			}

			return c, errors.New("config %v: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	}

	// env caches the environment on first use; re-read it so overrides set
	// since then are seen.
	env.Load()

	if env.Has(EnvVerbose) {
		c.Verbose = env.Bool(EnvVerbose)
	}

	if env.Has(EnvMaxImmediates) {
		n := env.Int(EnvMaxImmediates, -1)
		if n < 0 {
			return c, errors.New("%s: want a non-negative integer, got %q", EnvMaxImmediates, env.Str(EnvMaxImmediates))
		}

		c.MaxImmediates = uint64(n)
	}

	c.Output = env.Str(EnvOutput, c.Output)

	return c, nil
}

// OpenOutput opens the configured output. The returned close function must
// be called when done; it does nothing for stdout and stderr.
func (c Config) OpenOutput() (io.Writer, func() error, error) {
	nop := func() error { return nil }

	switch c.Output {
	case "", "-":
		return os.Stdout, nop, nil
	case "stderr":
		return os.Stderr, nop, nil
	}

	f, err := os.Create(c.Output)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open output")
	}

	return f, f.Close, nil
}

// Compiler returns a Compiler using the default registry, the configured
// limits and w as print output.
func (c Config) Compiler(w io.Writer) *Compiler {
	return &Compiler{
		MaxImmediates: c.MaxImmediates,
		Output:        w,
	}
}
