// Package builtin declares the built-in function registry: every named
// primitive of the language with its argument spec, defaults and
// handler, gathered into one static table (spec.md §4.4).
//
// The table replaces the original's decorator-driven registration and
// execute_<name> reflection with explicit dispatch: each entry attaches
// its handler directly, so a BuiltInFunction with a nil handler can
// only mean a registry entry forgot one.
//
// require and exit are not declared here — they close over the module
// loader and live in pkg/runtime's global-table construction.
package builtin

import (
	"bufio"
	"io"
	"os"

	"github.com/kristofer/radon/pkg/value"
)

// Stdout and Stdin are the streams the I/O-bearing built-ins use;
// tests swap them out.
var (
	Stdout io.Writer = os.Stdout
	Stdin  io.Reader = os.Stdin
)

// stdinReader buffers Stdin once so interleaved input() calls don't
// drop buffered bytes.
var stdinReader *bufio.Reader

func readLine() (string, error) {
	if stdinReader == nil {
		stdinReader = bufio.NewReader(Stdin)
	}
	line, err := stdinReader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line, nil
}

// ResetStdin discards the buffered reader; tests call it after
// swapping Stdin.
func ResetStdin() { stdinReader = nil }

// Builtin is one registry entry: the global name, the argument spec
// (Defaults runs parallel to ArgNames, nil marking required), the
// handler, and the help text.
type Builtin struct {
	Name     string
	ArgNames []string
	Defaults []value.Value
	Handler  value.BuiltInHandler
	Doc      string
}

// Function materializes the registry entry as a callable value.
func (b Builtin) Function() *value.BuiltInFunction {
	defaults := b.Defaults
	if defaults == nil {
		defaults = make([]value.Value, len(b.ArgNames))
	}
	fn := value.NewBuiltInFunction(b.Name, b.ArgNames, defaults, b.Handler)
	fn.DocString = b.Doc
	return fn
}

// Registry returns every built-in primitive. The slice is rebuilt per
// call so callers can't alias each other's default Values.
func Registry() []Builtin {
	var all []Builtin
	all = append(all, ioBuiltins()...)
	all = append(all, predicateBuiltins()...)
	all = append(all, arrayBuiltins()...)
	all = append(all, stringBuiltins()...)
	all = append(all, castBuiltins()...)
	all = append(all, inspectBuiltins()...)
	return all
}

// arg fetches a bound argument from the call's execution context. The
// arity check already ran, so absence is a registry bug worth a panic
// rather than a silent null.
func arg(exec *value.Context, name string) value.Value {
	v, ok := exec.SymbolTable.Get(name)
	if !ok {
		panic("builtin argument not bound: " + name)
	}
	return v
}
