// Completion: 100% - Module complete
package builtin

import (
	"slices"
	"sync"

	"github.com/xyproto/weasel/internal/native"
	"tlog.app/go/errors"
)

// Registry maps operator names to builtins. It is immutable once built and
// safe for concurrent use by any number of compilations.
type Registry struct {
	byName map[string]*Builtin
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Standard returns the builtins of the language: +, * and print.
func Standard() []Builtin {
	return []Builtin{
		{Name: "+", Arity: 2, Fn: Add},
		{Name: "*", Arity: 2, Fn: Mul},
		{Name: "print", Arity: 1, Fn: Print},
	}
}

// Default returns the process-wide registry of Standard builtins.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := NewRegistry(Standard()...)
		if err != nil {
			panic(err)
		}

		defaultRegistry = r
	})

	return defaultRegistry
}

// NewRegistry validates the builtins and binds a native entry address to
// each of them.
//
// Native entries are never released, so registries should be built once,
// at start-up, not per compilation.
func NewRegistry(builtins ...Builtin) (*Registry, error) {
	r := &Registry{
		byName: make(map[string]*Builtin, len(builtins)),
	}

	for _, b := range builtins {
		switch {
		case b.Name == "":
			return nil, errors.New("builtin without a name")
		case b.Arity < 0 || b.Arity > MaxArity:
			return nil, errors.New("builtin %q: arity %d out of range 0..%d", b.Name, b.Arity, MaxArity)
		case b.Fn == nil:
			return nil, errors.New("builtin %q: no function", b.Name)
		}

		if _, ok := r.byName[b.Name]; ok {
			return nil, errors.New("builtin %q: defined twice", b.Name)
		}

		r.byName[b.Name] = &Builtin{Name: b.Name, Arity: b.Arity, Fn: b.Fn}
	}

	for _, b := range r.byName {
		b.addr = native.NewCallback(b.trampoline())
	}

	return r, nil
}

// Lookup finds the builtin for an operator name. Names match exactly.
func (r *Registry) Lookup(name string) (*Builtin, bool) {
	b, ok := r.byName[name]
	return b, ok
}

// Names returns the registered operator names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

func (r *Registry) Len() int { return len(r.byName) }
