package value

import (
	"fmt"

	"github.com/kristofer/radon/pkg/rterror"
)

// Callable is implemented by every value that can appear in call
// position: Function, BuiltInFunction, Class and BuiltInClass.
// callContext is the Context the call site is executing in; user
// functions ignore it (their child context hangs off the defining
// context, keeping resolution lexical), built-ins parent theirs on it
// (spec.md §4.3).
type Callable interface {
	Value
	Call(ev Evaluator, args []Value, kwargs map[string]Value, callContext *Context) *RTResult
}

// newExecContext builds the fresh child Context every call runs in:
// display name, parent, an entry position for traceback rendering, and
// a symbol table chained to the parent's.
func newExecContext(name string, parent *Context, entryPos rterror.Position) *Context {
	ctx := NewContext(name, parent, &entryPos)
	var parentTable *SymbolTable
	if parent != nil {
		parentTable = parent.SymbolTable
		ctx.ImportCWD = parent.ImportCWD
	}
	ctx.SymbolTable = NewSymbolTable(parentTable)
	return ctx
}

// CheckAndPopulateArgs binds positional args, keyword args and
// defaults into execCtx's symbol table, validating arity (spec.md
// §4.3 steps 2–6; step 1, the built-in kwargs rejection, lives in
// BuiltInFunction.Call since only built-ins refuse kwargs).
//
// defaults runs parallel to argNames; a nil entry marks a required
// parameter.
func CheckAndPopulateArgs(name string, argNames []string, defaults []Value,
	args []Value, kwargs map[string]Value,
	posStart, posEnd rterror.Position, execCtx *Context) *RTResult {

	res := NewRTResult()

	if len(args) > len(argNames) {
		return res.Failure(rterror.NewRuntime(posStart, posEnd,
			fmt.Sprintf("too many args passed into '%s'", name), FrameOf(execCtx.Parent)))
	}

	bound := make(map[string]bool, len(argNames))
	for i, arg := range args {
		execCtx.SymbolTable.Set(argNames[i], arg)
		bound[argNames[i]] = true
	}
	for k, v := range kwargs {
		known := false
		for _, n := range argNames {
			if n == k {
				known = true
				break
			}
		}
		if !known {
			return res.Failure(rterror.NewRuntime(posStart, posEnd,
				fmt.Sprintf("'%s' got an unexpected keyword argument '%s'", name, k), FrameOf(execCtx.Parent)))
		}
		if bound[k] {
			return res.Failure(rterror.NewRuntime(posStart, posEnd,
				fmt.Sprintf("'%s' got multiple values for argument '%s'", name, k), FrameOf(execCtx.Parent)))
		}
		execCtx.SymbolTable.Set(k, v)
		bound[k] = true
	}
	for i, n := range argNames {
		if bound[n] {
			continue
		}
		if defaults[i] == nil {
			return res.Failure(rterror.NewRuntime(posStart, posEnd,
				fmt.Sprintf("too few args passed into '%s'", name), FrameOf(execCtx.Parent)))
		}
		execCtx.SymbolTable.Set(n, defaults[i])
	}
	return res.Success(nil)
}
