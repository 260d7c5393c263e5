// Package runtime ties the pipeline together: it builds the
// process-wide global symbol table, exposes the run() entry point that
// sequences lexer → parser → interpreter, and implements the require
// built-in on top of it (spec.md §4.6).
package runtime

import (
	"sync"

	"github.com/kristofer/radon/pkg/builtin"
	"github.com/kristofer/radon/pkg/builtinclass"
	"github.com/kristofer/radon/pkg/config"
	"github.com/kristofer/radon/pkg/security"
	"github.com/kristofer/radon/pkg/value"
)

// The global symbol table is a process singleton, initialized on first
// use. It is not safe to share across goroutines without external
// serialization; the interpreter is single-threaded (spec.md §5).
var (
	globalOnce  sync.Once
	globalTable *value.SymbolTable
	globalCfg   config.Config
)

// GlobalSymbolTable returns the singleton, building it (and loading
// configuration) on first call.
func GlobalSymbolTable() *value.SymbolTable {
	globalOnce.Do(func() {
		cfg, err := config.Load(".")
		if err != nil {
			cfg = config.Default()
		}
		globalCfg = cfg
		security.Allow(cfg.Allow)
		globalTable = NewGlobalSymbolTable(cfg)
	})
	return globalTable
}

// NewGlobalSymbolTable builds a fresh global table: the three literal
// singletons, every registry built-in, the require/exit closures, and
// every built-in class. Tests use it directly to avoid the singleton.
func NewGlobalSymbolTable(cfg config.Config) *value.SymbolTable {
	t := value.NewSymbolTable(nil)

	t.Set("null", value.NewNull())
	t.Set("false", value.NewBoolean(false))
	t.Set("true", value.NewBoolean(true))

	for _, b := range builtin.Registry() {
		t.Set(b.Name, b.Function())
	}
	// cls is an alias: same primitive, second name.
	if clear, ok := t.Get("clear"); ok {
		t.Set("cls", clear)
	}

	t.Set("require", requireFunction(cfg))
	t.Set("exit", exitFunction())

	for _, c := range builtinclass.All() {
		t.Set(c.Name, c)
	}
	return t
}
