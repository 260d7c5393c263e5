package builtin

import (
	"fmt"
	"sort"
	"time"

	"github.com/kristofer/radon/pkg/rterror"
	"github.com/kristofer/radon/pkg/security"
	"github.com/kristofer/radon/pkg/value"
)

func inspectBuiltins() []Builtin {
	return []Builtin{
		{
			Name: "len", ArgNames: []string{"value"},
			Doc:     "len(value) returns the length of an array, string, hashmap or instance with a length hook.",
			Handler: execLen,
		},
		{
			Name: "dir", ArgNames: []string{"obj"},
			Doc:     "dir(obj) lists a module's or class's symbols, sorted and partitioned by kind.",
			Handler: execDir,
		},
		{
			Name: "time_now", ArgNames: []string{},
			Doc:     "time_now() returns seconds since the epoch as a float.",
			Handler: execTimeNow,
		},
		{
			Name: "pyapi", ArgNames: []string{"code", "ns"},
			Doc:     "pyapi(code, ns) hands code to the host-language bridge; guarded by the security gate.",
			Handler: execPyAPI,
		},
	}
}

func execLen(fn *value.BuiltInFunction, ev value.Evaluator, exec *value.Context) *value.RTResult {
	res := value.NewRTResult()
	v := arg(exec, "value")
	start, end := fn.Pos()

	switch t := v.(type) {
	case *value.Array:
		return res.Success(value.NewInt(int64(len(t.Elements))).SetContext(exec))
	case *value.String:
		return res.Success(value.NewInt(int64(len(t.Value))).SetContext(exec))
	case *value.HashMap:
		return res.Success(value.NewInt(int64(t.Len())).SetContext(exec))
	case *value.BuiltInInstance:
		if n, ok := t.Len(); ok {
			return res.Success(value.NewInt(int64(n)).SetContext(exec))
		}
		return res.Failure(rterror.NewTaggedCtx("TypeError", start, end,
			fmt.Sprintf("Object of type %q has no len()", t.ParentClass.Name), value.FrameOf(exec)))
	case *value.Instance:
		// Fallback order kept from the original: a bound __len__ hook,
		// then __exec_len__, then a class-level __len__ attribute that
		// is invoked without an instance. That last branch can observe
		// a hook that was never bound to `this` — a wart in the source
		// semantics, reproduced rather than repaired.
		if hook, ok := t.Operator("__len__"); ok {
			return callLenHook(res, hook, ev, exec, start, end, t.ParentClass.Name)
		}
		if hook, ok := t.Operator("__exec_len__"); ok {
			return callLenHook(res, hook, ev, exec, start, end, t.ParentClass.Name)
		}
		if raw, ok := t.ParentClass.SymbolTable.Get("__len__"); ok {
			if unbound, isFn := raw.(*value.Function); isFn {
				return callLenHook(res, unbound, ev, exec, start, end, t.ParentClass.Name)
			}
		}
		return res.Failure(rterror.NewTaggedCtx("TypeError", start, end,
			fmt.Sprintf("Object of type %q has no len()", t.ParentClass.Name), value.FrameOf(exec)))
	}
	return res.Failure(rterror.NewTaggedCtx("TypeError", start, end,
		fmt.Sprintf("Object of type %q has no len()", v.Kind()), value.FrameOf(exec)))
}

func callLenHook(res *value.RTResult, hook *value.Function, ev value.Evaluator,
	exec *value.Context, start, end rterror.Position, className string) *value.RTResult {
	v := res.Register(hook.Call(ev, nil, nil, exec))
	if res.ShouldReturn() {
		return res
	}
	n, ok := v.(*value.Number)
	if !ok {
		return res.Failure(rterror.NewTaggedCtx("TypeError", start, end,
			fmt.Sprintf("__len__ of %q returned a non-number", className), value.FrameOf(exec)))
	}
	return res.Success(value.NewInt(n.AsInt()).SetContext(exec))
}

// execDir classifies a module's or class's symbol-table entries into
// variables, functions, classes and built-in class functions; each
// partition is sorted and they are concatenated in that order, with
// the reserved singletons excluded (spec.md §8 P8).
func execDir(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
	res := value.NewRTResult()
	obj := arg(exec, "obj")
	start, end := fn.Pos()

	var table *value.SymbolTable
	switch t := obj.(type) {
	case *value.Module:
		table = t.SymbolTable
	case *value.Class:
		table = t.SymbolTable
	case *value.BuiltInClass:
		table = t.SymbolTable
	case *value.BuiltInInstance:
		table = t.ParentClass.SymbolTable
	default:
		return res.Failure(rterror.NewTaggedCtx("TypeError", start, end,
			"Argument must be a Module or Class", value.FrameOf(exec)))
	}

	variables := map[string]bool{}
	functions := map[string]bool{}
	classes := map[string]bool{}
	builtinClassFunctions := map[string]bool{}

	classify := func(name string, v value.Value, intoBuiltins bool) {
		switch v.(type) {
		case *value.Function:
			functions[name] = true
		case *value.Class:
			classes[name] = true
		case *value.BuiltInFunction:
			if intoBuiltins {
				builtinClassFunctions[name] = true
			}
		case *value.String, *value.Number, *value.Boolean, *value.HashMap, *value.Null, *value.Array:
			if name != "true" && name != "false" && name != "null" {
				variables[name] = true
			}
		case *value.BuiltInInstance:
			inst := v.(*value.BuiltInInstance)
			for _, mn := range inst.MethodNames() {
				builtinClassFunctions[mn] = true
			}
			for _, bn := range inst.ParentClass.SymbolTable.Names() {
				bv, _ := inst.ParentClass.SymbolTable.Get(bn)
				if _, isBf := bv.(*value.BuiltInFunction); isBf {
					builtinClassFunctions[bn] = true
				}
			}
		}
	}

	for _, name := range table.Names() {
		v, _ := table.Get(name)
		classify(name, v, obj.Kind() == value.KindBuiltInClass || obj.Kind() == value.KindBuiltInInstance)
	}

	sortedKeys := func(m map[string]bool) []string {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return keys
	}

	var out []value.Value
	for _, part := range [][]string{
		sortedKeys(variables), sortedKeys(functions), sortedKeys(classes), sortedKeys(builtinClassFunctions),
	} {
		for _, name := range part {
			out = append(out, value.NewString(name).SetContext(exec))
		}
	}
	return res.Success(value.NewArray(out).SetContext(exec))
}

func execTimeNow(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
	now := float64(time.Now().UnixNano()) / 1e9
	return value.NewRTResult().Success(value.NewFloat(now).SetContext(exec))
}

// execPyAPI is the one capability-bearing primitive: it consults the
// security gate before touching the host bridge. This build carries no
// attached bridge, so an allowed call still fails — just differently
// from a denied one.
func execPyAPI(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
	res := value.NewRTResult()
	start, end := fn.Pos()

	code, ok := arg(exec, "code").(*value.String)
	if !ok {
		return failArgType(fn, exec, "Code must be string")
	}
	if _, ok := arg(exec, "ns").(*value.HashMap); !ok {
		return failArgType(fn, exec, "Namespace must be hashmap")
	}
	if !security.Prompt("pyapi_access") {
		return res.Failure(rterror.NewRuntime(start, end,
			"Permission denied: pyapi_access", value.FrameOf(exec)))
	}
	payload := value.NewPyAPI(code.Value)
	payload.SetPos(start, end).SetContext(exec)
	return res.Failure(rterror.NewRuntime(start, end,
		"PyAPI host bridge is not available in this build", value.FrameOf(exec)))
}
