package runtime

import (
	"github.com/kristofer/radon/pkg/interp"
	"github.com/kristofer/radon/pkg/lexer"
	"github.com/kristofer/radon/pkg/parser"
	"github.com/kristofer/radon/pkg/rterror"
	"github.com/kristofer/radon/pkg/value"
)

// hiddenPath is the sentinel substituted for file names when path
// hiding is requested (spec.md §4.6 step 1).
const hiddenPath = "[REDACTED]"

// RunOption configures a Run call.
type RunOption func(*runOptions)

type runOptions struct {
	context   *value.Context
	entryPos  *rterror.Position
	hidePaths bool
	importCWD string
}

// WithContext parents the program context on ctx; the program then
// shares ctx's symbol table instead of the global one, so the
// program's top-level definitions land in ctx's scope. require does
// not use it: an imported module runs with no parent context and
// shares the global table.
func WithContext(ctx *value.Context) RunOption {
	return func(o *runOptions) { o.context = ctx }
}

// WithEntryPos records the position the run was entered from, for
// traceback rendering.
func WithEntryPos(pos rterror.Position) RunOption {
	return func(o *runOptions) { o.entryPos = &pos }
}

// WithHiddenPaths replaces the file name with the redaction sentinel
// in every error position.
func WithHiddenPaths() RunOption {
	return func(o *runOptions) { o.hidePaths = true }
}

// WithImportCWD sets the directory relative module paths resolve
// against.
func WithImportCWD(dir string) RunOption {
	return func(o *runOptions) { o.importCWD = dir }
}

// Run executes fn's text through the full pipeline and returns
// (value, error, shouldExit). A lex or parse failure short-circuits
// with shouldExit=false; otherwise the interpreter's result is
// unpacked.
func Run(fn, text string, opts ...RunOption) (value.Value, *rterror.Error, bool) {
	res := RunResult(fn, text, opts...)
	return res.Value, res.Error, res.ShouldExit
}

// RunResult is Run returning the raw RTResult (the return_result
// variant of the entry point).
func RunResult(fn, text string, opts ...RunOption) *value.RTResult {
	var o runOptions
	for _, opt := range opts {
		opt(&o)
	}

	if o.hidePaths {
		fn = hiddenPath
	}

	l := lexer.New(fn, text)
	tokens, lerr := l.MakeTokens()
	if lerr != nil {
		return value.NewRTResult().Failure(lerr)
	}

	program, perr := parser.New(tokens).Parse()
	if perr != nil {
		return value.NewRTResult().Failure(perr)
	}

	ctx := value.NewContext("<program>", o.context, o.entryPos)
	ctx.ImportCWD = o.importCWD
	if o.context == nil {
		ctx.SymbolTable = GlobalSymbolTable()
	} else {
		ctx.SymbolTable = o.context.SymbolTable
		if ctx.ImportCWD == "" {
			ctx.ImportCWD = o.context.ImportCWD
		}
	}

	return interp.New().VisitNode(program, ctx)
}
