// Package interp implements the tree-walking interpreter for Radon.
//
// Every visit method takes an AST node and the Context to evaluate it
// in, and returns an *value.RTResult; the envelope's Register/
// ShouldReturn pair threads errors and control-flow flags (return,
// break, continue, continue_outer, exit) through every recursive step,
// so a `return` deep inside a loop body unwinds cleanly out of every
// enclosing form without losing the error channel.
//
// Architecture note: where the teacher's VM (kristofer-smog, pkg/vm)
// drives a bytecode loop over an operand stack, this package walks the
// AST directly; the operator dispatch below plays the role smog's
// binary-op opcode handlers played, extended with the instance hook
// protocol (__add__, __index__, …).
package interp

import (
	"fmt"

	"github.com/kristofer/radon/pkg/ast"
	"github.com/kristofer/radon/pkg/rterror"
	"github.com/kristofer/radon/pkg/value"
)

// Interpreter walks an AST. It is stateless; all evaluation state
// lives in the Context chain, so one Interpreter can serve every run()
// in the process.
type Interpreter struct{}

// New returns an Interpreter.
func New() *Interpreter { return &Interpreter{} }

// binOpHooks maps each operator spelling to the instance hook invoked
// for it (spec.md §4.3's operator protocol).
var binOpHooks = map[string]string{
	"+": "__add__", "-": "__sub__", "*": "__mul__", "/": "__div__",
	"%": "__mod__", "^": "__pow__",
	"==": "__eq__", "!=": "__ne__",
	"<": "__lt__", ">": "__gt__", "<=": "__le__", ">=": "__ge__",
	"and": "__and__", "or": "__or__",
}

// VisitNode dispatches on the node's concrete type. It implements
// value.Evaluator, which is how value.Function calls back into the
// interpreter for its body.
func (i *Interpreter) VisitNode(node ast.Node, ctx *value.Context) *value.RTResult {
	switch n := node.(type) {
	case *ast.Program:
		return i.visitStatements(n.Statements, ctx)
	case *ast.ListNode:
		return i.visitStatements(n.Statements, ctx)
	case *ast.NumberNode:
		return i.visitNumber(n, ctx)
	case *ast.StringNode:
		v := value.NewString(n.Value).SetPos(n.Start(), n.End()).SetContext(ctx)
		return value.NewRTResult().Success(v)
	case *ast.BoolNode:
		v := value.NewBoolean(n.Value).SetPos(n.Start(), n.End()).SetContext(ctx)
		return value.NewRTResult().Success(v)
	case *ast.NullNode:
		v := value.NewNull().SetPos(n.Start(), n.End()).SetContext(ctx)
		return value.NewRTResult().Success(v)
	case *ast.ArrayNode:
		return i.visitArray(n, ctx)
	case *ast.HashMapNode:
		return i.visitHashMap(n, ctx)
	case *ast.VarAccessNode:
		return i.visitVarAccess(n, ctx)
	case *ast.VarAssignNode:
		return i.visitVarAssign(n, ctx)
	case *ast.AttrAccessNode:
		return i.visitAttrAccess(n, ctx)
	case *ast.AttrAssignNode:
		return i.visitAttrAssign(n, ctx)
	case *ast.IndexNode:
		return i.visitIndex(n, ctx)
	case *ast.IndexAssignNode:
		return i.visitIndexAssign(n, ctx)
	case *ast.BinOpNode:
		return i.visitBinOp(n, ctx)
	case *ast.UnaryOpNode:
		return i.visitUnaryOp(n, ctx)
	case *ast.IfNode:
		return i.visitIf(n, ctx)
	case *ast.ForNode:
		return i.visitFor(n, ctx)
	case *ast.WhileNode:
		return i.visitWhile(n, ctx)
	case *ast.FuncDefNode:
		return i.visitFuncDef(n, ctx)
	case *ast.CallNode:
		return i.visitCall(n, ctx)
	case *ast.ReturnNode:
		return i.visitReturn(n, ctx)
	case *ast.BreakNode:
		return value.NewRTResult().SuccessBreak()
	case *ast.ContinueNode:
		return value.NewRTResult().SuccessContinue()
	case *ast.ContinueOuterNode:
		return value.NewRTResult().SuccessContinueOuter()
	case *ast.ClassDefNode:
		return i.visitClassDef(n, ctx)
	}
	return value.NewRTResult().Failure(rterror.NewRuntime(node.Start(), node.End(),
		fmt.Sprintf("No visit method for %T", node), ctx))
}

func (i *Interpreter) visitStatements(stmts []ast.Node, ctx *value.Context) *value.RTResult {
	res := value.NewRTResult()
	var last value.Value
	for _, stmt := range stmts {
		last = res.Register(i.VisitNode(stmt, ctx))
		if res.ShouldReturn() {
			return res
		}
	}
	if last == nil {
		last = value.NewNull().SetContext(ctx)
	}
	return res.Success(last)
}

func (i *Interpreter) visitNumber(n *ast.NumberNode, ctx *value.Context) *value.RTResult {
	var v value.Value
	if n.IsInt {
		v = value.NewInt(n.IntValue)
	} else {
		v = value.NewFloat(n.FltValue)
	}
	return value.NewRTResult().Success(v.SetPos(n.Start(), n.End()).SetContext(ctx))
}

func (i *Interpreter) visitArray(n *ast.ArrayNode, ctx *value.Context) *value.RTResult {
	res := value.NewRTResult()
	elements := make([]value.Value, 0, len(n.Elements))
	for _, el := range n.Elements {
		v := res.Register(i.VisitNode(el, ctx))
		if res.ShouldReturn() {
			return res
		}
		elements = append(elements, v)
	}
	return res.Success(value.NewArray(elements).SetPos(n.Start(), n.End()).SetContext(ctx))
}

func (i *Interpreter) visitHashMap(n *ast.HashMapNode, ctx *value.Context) *value.RTResult {
	res := value.NewRTResult()
	h := value.NewHashMap()
	for idx := range n.Keys {
		k := res.Register(i.VisitNode(n.Keys[idx], ctx))
		if res.ShouldReturn() {
			return res
		}
		v := res.Register(i.VisitNode(n.Values[idx], ctx))
		if res.ShouldReturn() {
			return res
		}
		if !h.Set(k, v) {
			return res.Failure(rterror.NewRuntime(n.Keys[idx].Start(), n.Keys[idx].End(),
				fmt.Sprintf("Unhashable key of type '%s'", k.Kind()), ctx))
		}
	}
	return res.Success(h.SetPos(n.Start(), n.End()).SetContext(ctx))
}

func (i *Interpreter) visitVarAccess(n *ast.VarAccessNode, ctx *value.Context) *value.RTResult {
	res := value.NewRTResult()
	v, ok := ctx.SymbolTable.Get(n.Name)
	if !ok {
		return res.Failure(rterror.NewTaggedCtx("NameError", n.Start(), n.End(),
			fmt.Sprintf("'%s' is not defined", n.Name), ctx))
	}
	// Built-ins are shared globals; give the call site its own copy so
	// error positions point at the use, not the previous use.
	if bf, isBuiltIn := v.(*value.BuiltInFunction); isBuiltIn {
		clone := *bf
		v = clone.SetPos(n.Start(), n.End()).SetContext(ctx)
	}
	return res.Success(v)
}

func (i *Interpreter) visitVarAssign(n *ast.VarAssignNode, ctx *value.Context) *value.RTResult {
	res := value.NewRTResult()
	v := res.Register(i.VisitNode(n.Value, ctx))
	if res.ShouldReturn() {
		return res
	}
	ctx.SymbolTable.Set(n.Name, v)
	return res.Success(v)
}

func (i *Interpreter) visitAttrAccess(n *ast.AttrAccessNode, ctx *value.Context) *value.RTResult {
	res := value.NewRTResult()
	target := res.Register(i.VisitNode(n.Target, ctx))
	if res.ShouldReturn() {
		return res
	}

	var v value.Value
	var ok bool
	switch t := target.(type) {
	case *value.Instance:
		v, ok = t.Attr(n.Name)
	case *value.BuiltInInstance:
		v, ok = t.Attr(n.Name)
	case *value.Module:
		v, ok = t.SymbolTable.Get(n.Name)
	case *value.Class:
		v, ok = t.SymbolTable.Get(n.Name)
	case *value.BuiltInClass:
		v, ok = t.SymbolTable.Get(n.Name)
	default:
		return res.Failure(rterror.NewTaggedCtx("TypeError", n.Start(), n.End(),
			fmt.Sprintf("Value of type '%s' has no attributes", target.Kind()), ctx))
	}
	if !ok {
		return res.Failure(rterror.NewTaggedCtx("AttributeError", n.Start(), n.End(),
			fmt.Sprintf("'%s' has no attribute '%s'", target.String(), n.Name), ctx))
	}
	return res.Success(v)
}

func (i *Interpreter) visitAttrAssign(n *ast.AttrAssignNode, ctx *value.Context) *value.RTResult {
	res := value.NewRTResult()
	target := res.Register(i.VisitNode(n.Target, ctx))
	if res.ShouldReturn() {
		return res
	}
	v := res.Register(i.VisitNode(n.Value, ctx))
	if res.ShouldReturn() {
		return res
	}
	switch t := target.(type) {
	case *value.Instance:
		t.SymbolTable.Set(n.Name, v)
	case *value.Module:
		t.SymbolTable.Set(n.Name, v)
	default:
		return res.Failure(rterror.NewTaggedCtx("TypeError", n.Start(), n.End(),
			fmt.Sprintf("Cannot set attribute on value of type '%s'", target.Kind()), ctx))
	}
	return res.Success(v)
}

func (i *Interpreter) visitIndex(n *ast.IndexNode, ctx *value.Context) *value.RTResult {
	res := value.NewRTResult()
	target := res.Register(i.VisitNode(n.Target, ctx))
	if res.ShouldReturn() {
		return res
	}
	index := res.Register(i.VisitNode(n.Index, ctx))
	if res.ShouldReturn() {
		return res
	}

	switch t := target.(type) {
	case *value.Array:
		idx, err := boundsCheckedIndex(index, len(t.Elements), n, ctx)
		if err != nil {
			return res.Failure(err)
		}
		return res.Success(t.Elements[idx])
	case *value.String:
		idx, err := boundsCheckedIndex(index, len(t.Value), n, ctx)
		if err != nil {
			return res.Failure(err)
		}
		return res.Success(value.NewString(string(t.Value[idx])).SetPos(n.Start(), n.End()).SetContext(ctx))
	case *value.HashMap:
		v, ok := t.Get(index)
		if !ok {
			return res.Failure(rterror.NewTaggedCtx("KeyError", n.Start(), n.End(),
				fmt.Sprintf("Key %s not found", value.Repr(index)), ctx))
		}
		return res.Success(v)
	case *value.Instance:
		if hook, ok := t.Operator("__index__"); ok {
			v := res.Register(hook.Call(i, []value.Value{index}, nil, ctx))
			if res.ShouldReturn() {
				return res
			}
			return res.Success(v)
		}
	case *value.BuiltInInstance:
		if hook, ok := t.Operator("__index__"); ok {
			v := res.Register(hook([]value.Value{index}))
			if res.ShouldReturn() {
				return res
			}
			return res.Success(v)
		}
	}
	return res.Failure(rterror.NewRuntime(n.Start(), n.End(),
		fmt.Sprintf("Value of type '%s' is not indexable", target.Kind()), ctx))
}

func (i *Interpreter) visitIndexAssign(n *ast.IndexAssignNode, ctx *value.Context) *value.RTResult {
	res := value.NewRTResult()
	target := res.Register(i.VisitNode(n.Target, ctx))
	if res.ShouldReturn() {
		return res
	}
	index := res.Register(i.VisitNode(n.Index, ctx))
	if res.ShouldReturn() {
		return res
	}
	v := res.Register(i.VisitNode(n.Value, ctx))
	if res.ShouldReturn() {
		return res
	}

	switch t := target.(type) {
	case *value.Array:
		idx, err := boundsCheckedIndex(index, len(t.Elements), n, ctx)
		if err != nil {
			return res.Failure(err)
		}
		t.Elements[idx] = v
		return res.Success(v)
	case *value.HashMap:
		if !t.Set(index, v) {
			return res.Failure(rterror.NewRuntime(n.Start(), n.End(),
				fmt.Sprintf("Unhashable key of type '%s'", index.Kind()), ctx))
		}
		return res.Success(v)
	case *value.Instance:
		if hook, ok := t.Operator("__set_index__"); ok {
			res.Register(hook.Call(i, []value.Value{index, v}, nil, ctx))
			if res.ShouldReturn() {
				return res
			}
			return res.Success(v)
		}
	case *value.BuiltInInstance:
		if hook, ok := t.Operator("__set_index__"); ok {
			res.Register(hook([]value.Value{index, v}))
			if res.ShouldReturn() {
				return res
			}
			return res.Success(v)
		}
	}
	return res.Failure(rterror.NewRuntime(n.Start(), n.End(),
		fmt.Sprintf("Value of type '%s' does not support index assignment", target.Kind()), ctx))
}

// boundsCheckedIndex validates an index expression against a sequence
// length, supporting negative indices counted from the end.
func boundsCheckedIndex(index value.Value, length int, n ast.Node, ctx *value.Context) (int, *rterror.Error) {
	num, ok := index.(*value.Number)
	if !ok || !num.IsInt {
		return 0, rterror.NewTaggedCtx("TypeError", n.Start(), n.End(),
			"Index must be an integer", ctx)
	}
	idx := int(num.Int)
	if idx < 0 {
		idx += length
	}
	if idx < 0 || idx >= length {
		return 0, rterror.NewTaggedCtx("IndexError", n.Start(), n.End(),
			fmt.Sprintf("Index %d out of bounds", num.Int), ctx)
	}
	return idx, nil
}

func (i *Interpreter) visitBinOp(n *ast.BinOpNode, ctx *value.Context) *value.RTResult {
	res := value.NewRTResult()
	left := res.Register(i.VisitNode(n.Left, ctx))
	if res.ShouldReturn() {
		return res
	}
	right := res.Register(i.VisitNode(n.Right, ctx))
	if res.ShouldReturn() {
		return res
	}

	hook := binOpHooks[n.Op]
	switch t := left.(type) {
	case *value.Instance:
		if fn, ok := t.Operator(hook); ok {
			v := res.Register(fn.Call(i, []value.Value{right}, nil, ctx))
			if res.ShouldReturn() {
				return res
			}
			return res.Success(v)
		}
	case *value.BuiltInInstance:
		if fn, ok := t.Operator(hook); ok {
			v := res.Register(fn([]value.Value{right}))
			if res.ShouldReturn() {
				return res
			}
			return res.Success(v)
		}
	}

	v, err := value.BinaryOp(left, right, n.Op)
	if err != nil {
		return res.Failure(err)
	}
	return res.Success(v.SetPos(n.Start(), n.End()).SetContext(ctx))
}

func (i *Interpreter) visitUnaryOp(n *ast.UnaryOpNode, ctx *value.Context) *value.RTResult {
	res := value.NewRTResult()
	operand := res.Register(i.VisitNode(n.Node, ctx))
	if res.ShouldReturn() {
		return res
	}

	switch n.Op {
	case "-":
		if num, ok := operand.(*value.Number); ok {
			var v value.Value
			if num.IsInt {
				v = value.NewInt(-num.Int)
			} else {
				v = value.NewFloat(-num.Float)
			}
			return res.Success(v.SetPos(n.Start(), n.End()).SetContext(ctx))
		}
	case "not":
		if inst, ok := operand.(*value.Instance); ok {
			if fn, found := inst.Operator("__not__"); found {
				v := res.Register(fn.Call(i, nil, nil, ctx))
				if res.ShouldReturn() {
					return res
				}
				return res.Success(v)
			}
		}
		if inst, ok := operand.(*value.BuiltInInstance); ok {
			if fn, found := inst.Operator("__not__"); found {
				v := res.Register(fn(nil))
				if res.ShouldReturn() {
					return res
				}
				return res.Success(v)
			}
		}
		return res.Success(value.NewBoolean(!operand.Truthy()).SetPos(n.Start(), n.End()).SetContext(ctx))
	}
	return res.Failure(rterror.NewRuntime(n.Start(), n.End(), "Illegal operation", ctx))
}

func (i *Interpreter) visitIf(n *ast.IfNode, ctx *value.Context) *value.RTResult {
	res := value.NewRTResult()
	for _, c := range n.Cases {
		cond := res.Register(i.VisitNode(c.Condition, ctx))
		if res.ShouldReturn() {
			return res
		}
		if cond.Truthy() {
			return i.visitIfBody(c, ctx)
		}
	}
	if n.ElseCase != nil {
		return i.visitIfBody(*n.ElseCase, ctx)
	}
	return res.Success(value.NewNull().SetPos(n.Start(), n.End()).SetContext(ctx))
}

func (i *Interpreter) visitIfBody(c ast.IfCase, ctx *value.Context) *value.RTResult {
	res := value.NewRTResult()
	v := res.Register(i.VisitNode(c.Body, ctx))
	if res.ShouldReturn() {
		return res
	}
	if c.ShouldReturnNull {
		v = value.NewNull().SetContext(ctx)
	}
	return res.Success(v)
}

func (i *Interpreter) visitFor(n *ast.ForNode, ctx *value.Context) *value.RTResult {
	res := value.NewRTResult()
	startV := res.Register(i.VisitNode(n.StartValue, ctx))
	if res.ShouldReturn() {
		return res
	}
	endV := res.Register(i.VisitNode(n.EndValue, ctx))
	if res.ShouldReturn() {
		return res
	}
	var stepV value.Value = value.NewInt(1)
	if n.Step != nil {
		stepV = res.Register(i.VisitNode(n.Step, ctx))
		if res.ShouldReturn() {
			return res
		}
	}

	startN, ok1 := startV.(*value.Number)
	endN, ok2 := endV.(*value.Number)
	stepN, ok3 := stepV.(*value.Number)
	if !ok1 || !ok2 || !ok3 {
		return res.Failure(rterror.NewRuntime(n.Start(), n.End(), "For loop bounds must be numbers", ctx))
	}

	allInt := startN.IsInt && endN.IsInt && stepN.IsInt
	var elements []value.Value

	cur := startN.AsFloat()
	end := endN.AsFloat()
	step := stepN.AsFloat()
	curInt := startN.AsInt()
	for {
		if step >= 0 {
			if allInt && curInt >= endN.Int {
				break
			}
			if !allInt && cur >= end {
				break
			}
		} else {
			if allInt && curInt <= endN.Int {
				break
			}
			if !allInt && cur <= end {
				break
			}
		}

		var loopVar value.Value
		if allInt {
			loopVar = value.NewInt(curInt)
		} else {
			loopVar = value.NewFloat(cur)
		}
		ctx.SymbolTable.Set(n.VarName, loopVar.SetPos(n.Start(), n.End()).SetContext(ctx))

		v := res.Register(i.VisitNode(n.Body, ctx))
		if res.ShouldReturn() && !res.LoopShouldContinue && !res.LoopShouldContinueOuter && !res.LoopShouldBreak {
			return res
		}
		if res.LoopShouldContinueOuter {
			// Terminate this loop and resurface as a continue for the
			// enclosing one.
			return res.SuccessContinue()
		}
		if res.LoopShouldBreak {
			break
		}
		if !res.LoopShouldContinue && !n.ShouldReturnNull {
			elements = append(elements, v)
		}

		if allInt {
			curInt += stepN.Int
		} else {
			cur += step
		}
	}

	if n.ShouldReturnNull {
		return res.Success(value.NewNull().SetPos(n.Start(), n.End()).SetContext(ctx))
	}
	return res.Success(value.NewArray(elements).SetPos(n.Start(), n.End()).SetContext(ctx))
}

func (i *Interpreter) visitWhile(n *ast.WhileNode, ctx *value.Context) *value.RTResult {
	res := value.NewRTResult()
	var elements []value.Value
	for {
		cond := res.Register(i.VisitNode(n.Condition, ctx))
		if res.ShouldReturn() {
			return res
		}
		if !cond.Truthy() {
			break
		}

		v := res.Register(i.VisitNode(n.Body, ctx))
		if res.ShouldReturn() && !res.LoopShouldContinue && !res.LoopShouldContinueOuter && !res.LoopShouldBreak {
			return res
		}
		if res.LoopShouldContinueOuter {
			return res.SuccessContinue()
		}
		if res.LoopShouldBreak {
			break
		}
		if !res.LoopShouldContinue && !n.ShouldReturnNull {
			elements = append(elements, v)
		}
	}

	if n.ShouldReturnNull {
		return res.Success(value.NewNull().SetPos(n.Start(), n.End()).SetContext(ctx))
	}
	return res.Success(value.NewArray(elements).SetPos(n.Start(), n.End()).SetContext(ctx))
}

func (i *Interpreter) visitFuncDef(n *ast.FuncDefNode, ctx *value.Context) *value.RTResult {
	res := value.NewRTResult()
	defaults := make([]value.Value, len(n.ArgNames))
	for idx, d := range n.Defaults {
		if d == nil {
			continue
		}
		v := res.Register(i.VisitNode(d, ctx))
		if res.ShouldReturn() {
			return res
		}
		defaults[idx] = v
	}

	fn := value.NewFunction(n.Name, n.ArgNames, defaults, n.Body, n.ShouldAutoReturn)
	fn.SetPos(n.Start(), n.End()).SetContext(ctx)
	if n.Name != "" {
		ctx.SymbolTable.Set(n.Name, fn)
	}
	return res.Success(fn)
}

func (i *Interpreter) visitCall(n *ast.CallNode, ctx *value.Context) *value.RTResult {
	res := value.NewRTResult()
	callee := res.Register(i.VisitNode(n.Callee, ctx))
	if res.ShouldReturn() {
		return res
	}

	args := make([]value.Value, 0, len(n.Args))
	for _, a := range n.Args {
		v := res.Register(i.VisitNode(a, ctx))
		if res.ShouldReturn() {
			return res
		}
		args = append(args, v)
	}
	var kwargs map[string]value.Value
	for k, kn := range n.Kwargs {
		v := res.Register(i.VisitNode(kn, ctx))
		if res.ShouldReturn() {
			return res
		}
		if kwargs == nil {
			kwargs = make(map[string]value.Value)
		}
		kwargs[k] = v
	}

	callable, ok := callee.(value.Callable)
	if !ok {
		return res.Failure(rterror.NewTaggedCtx("TypeError", n.Start(), n.End(),
			fmt.Sprintf("'%s' is not callable", callee.String()), ctx))
	}
	v := res.Register(callable.Call(i, args, kwargs, ctx))
	if res.ShouldReturn() {
		return res
	}
	return res.Success(v)
}

func (i *Interpreter) visitReturn(n *ast.ReturnNode, ctx *value.Context) *value.RTResult {
	res := value.NewRTResult()
	var v value.Value = value.NewNull().SetPos(n.Start(), n.End()).SetContext(ctx)
	if n.Value != nil {
		v = res.Register(i.VisitNode(n.Value, ctx))
		if res.ShouldReturn() {
			return res
		}
	}
	return res.SuccessReturn(v)
}

func (i *Interpreter) visitClassDef(n *ast.ClassDefNode, ctx *value.Context) *value.RTResult {
	res := value.NewRTResult()

	var parentTable *value.SymbolTable = ctx.SymbolTable
	if n.Parent != "" {
		pv, ok := ctx.SymbolTable.Get(n.Parent)
		if !ok {
			return res.Failure(rterror.NewTaggedCtx("NameError", n.Start(), n.End(),
				fmt.Sprintf("'%s' is not defined", n.Parent), ctx))
		}
		parentClass, isClass := pv.(*value.Class)
		if !isClass {
			return res.Failure(rterror.NewTaggedCtx("TypeError", n.Start(), n.End(),
				fmt.Sprintf("'%s' is not a class", n.Parent), ctx))
		}
		parentTable = parentClass.SymbolTable
	}

	classTable := value.NewSymbolTable(parentTable)
	class := value.NewClass(n.Name, classTable)
	class.SetPos(n.Start(), n.End()).SetContext(ctx)

	classCtx := value.NewContext(fmt.Sprintf("<class %s>", n.Name), ctx, nil)
	classCtx.SymbolTable = classTable
	classCtx.ImportCWD = ctx.ImportCWD

	for _, m := range n.Methods {
		res.Register(i.visitFuncDef(m, classCtx))
		if res.ShouldReturn() {
			return res
		}
	}

	ctx.SymbolTable.Set(n.Name, class)
	return res.Success(class)
}
