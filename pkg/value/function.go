package value

import (
	"fmt"

	"github.com/kristofer/radon/pkg/ast"
	"github.com/kristofer/radon/pkg/rterror"
)

// Function is a user-defined function: parameter names with optional
// default Values, a body node the interpreter visits under a fresh
// child Context, and the auto-return flag set for `->` bodies.
type Function struct {
	base
	Name             string
	ArgNames         []string
	Defaults         []Value
	Body             ast.Node
	ShouldAutoReturn bool
	Desc             string
}

func NewFunction(name string, argNames []string, defaults []Value, body ast.Node, shouldAutoReturn bool) *Function {
	if name == "" {
		name = "<anonymous>"
	}
	return &Function{Name: name, ArgNames: argNames, Defaults: defaults, Body: body, ShouldAutoReturn: shouldAutoReturn}
}

func (f *Function) Kind() Kind                         { return KindFunction }
func (f *Function) SetPos(s, e rterror.Position) Value { f.setPos(s, e); return f }
func (f *Function) SetContext(ctx *Context) Value      { f.setContext(ctx); return f }
func (f *Function) Truthy() bool                       { return true }
func (f *Function) String() string                     { return fmt.Sprintf("<function %s>", f.Name) }
func (f *Function) Doc() string                        { return f.Desc }

// Bind returns a copy of f whose defining context is ctx — how an
// instance attaches itself to a method looked up through it.
func (f *Function) Bind(ctx *Context) *Function {
	bound := *f
	bound.ctx = ctx
	return &bound
}

// Call runs the body under a child context parented on the defining
// context, so free names resolve lexically.
func (f *Function) Call(ev Evaluator, args []Value, kwargs map[string]Value, _ *Context) *RTResult {
	res := NewRTResult()
	execCtx := newExecContext(f.Name, f.ctx, f.posStart)

	res.Register(CheckAndPopulateArgs(f.Name, f.ArgNames, f.Defaults, args, kwargs, f.posStart, f.posEnd, execCtx))
	if res.ShouldReturn() {
		return res
	}

	bodyValue := res.Register(ev.VisitNode(f.Body, execCtx))
	if res.ShouldReturn() && res.FuncReturnValue == nil {
		return res
	}

	var ret Value
	if f.ShouldAutoReturn {
		ret = bodyValue
	}
	if ret == nil {
		ret = res.FuncReturnValue
	}
	if ret == nil {
		ret = NewNull()
	}
	ret.SetPos(f.posStart, f.posEnd)
	return res.Success(ret)
}

// BuiltInHandler is the signature every built-in primitive implements:
// the BuiltInFunction being called (for error positions), the active
// Evaluator (so built-ins like len can invoke user-defined hooks), and
// the fresh execution Context holding the bound arguments.
type BuiltInHandler func(fn *BuiltInFunction, ev Evaluator, exec *Context) *RTResult

// BuiltInFunction is a named host primitive with a declared argument
// spec. Func carries the attached handler; a nil Func reproduces the
// registry-forgot-a-handler failure the dispatch always had.
type BuiltInFunction struct {
	base
	Name      string
	ArgNames  []string
	Defaults  []Value
	Func      BuiltInHandler
	DocString string
}

func NewBuiltInFunction(name string, argNames []string, defaults []Value, fn BuiltInHandler) *BuiltInFunction {
	if defaults == nil {
		defaults = make([]Value, len(argNames))
	}
	return &BuiltInFunction{Name: name, ArgNames: argNames, Defaults: defaults, Func: fn}
}

func (b *BuiltInFunction) Kind() Kind                         { return KindBuiltInFunction }
func (b *BuiltInFunction) SetPos(s, e rterror.Position) Value { b.setPos(s, e); return b }
func (b *BuiltInFunction) SetContext(ctx *Context) Value      { b.setContext(ctx); return b }
func (b *BuiltInFunction) Truthy() bool                       { return true }
func (b *BuiltInFunction) String() string                     { return fmt.Sprintf("<built-in function %s>", b.Name) }
func (b *BuiltInFunction) Doc() string                        { return b.DocString }

// Call binds args into a child context parented on the call site and
// dispatches to the attached handler.
func (b *BuiltInFunction) Call(ev Evaluator, args []Value, kwargs map[string]Value, callContext *Context) *RTResult {
	res := NewRTResult()
	if len(kwargs) > 0 {
		var any Value
		for _, v := range kwargs {
			any = v
			break
		}
		start, end := any.Pos()
		return res.Failure(rterror.NewRuntime(start, end,
			"Keyword arguments are not yet supported for built-in functions.", FrameOf(any.Context())))
	}

	execCtx := newExecContext(b.Name, callContext, b.posStart)

	res.Register(CheckAndPopulateArgs(b.Name, b.ArgNames, b.Defaults, args, nil, b.posStart, b.posEnd, execCtx))
	if res.ShouldReturn() {
		return res
	}

	if b.Func == nil {
		return res.Failure(rterror.NewRuntime(b.posStart, b.posEnd,
			fmt.Sprintf("No execute_%s method defined", b.Name), FrameOf(callContext)))
	}
	ret := res.Register(b.Func(b, ev, execCtx))
	if res.ShouldReturn() {
		return res
	}
	return res.Success(ret)
}
