// Package builtinclass registers the host-implemented classes exposed
// to Radon programs: File, String, Json, Requests and builtins
// (spec.md §4.5).
//
// The original's @operator/@method decorations become explicit
// installs on a fresh value.BuiltInInstance: each class's construct
// function closes its host state into the operator hooks and method
// handlers it installs, so the instance itself never inspects the
// state. CheckArgs is the check(expected_types, defaults) adapter.
package builtinclass

import (
	"fmt"

	"github.com/kristofer/radon/pkg/rterror"
	"github.com/kristofer/radon/pkg/value"
)

// newClass wraps a construct function into a value.BuiltInClass whose
// every instantiation gets fresh host state.
func newClass(name, doc string, construct func(inst *value.BuiltInInstance)) *value.BuiltInClass {
	return value.NewBuiltInClass(name, doc, func(cls *value.BuiltInClass) *value.BuiltInInstance {
		inst := value.NewBuiltInInstance(cls)
		construct(inst)
		return inst
	})
}

// method builds a regular method for installation on an instance.
func method(name string, argNames []string, defaults []value.Value, h value.BuiltInHandler) *value.BuiltInFunction {
	return value.NewBuiltInFunction(name, argNames, defaults, h)
}

// anyKind in an expected-types slice accepts every variant.
const anyKind value.Kind = ""

// CheckArgs validates an operator hook's raw operands against the
// expected kinds and substitutes defaults for missing trailing
// arguments, failing with an RTError on mismatch.
func CheckArgs(name string, expected []value.Kind, defaults []value.Value, args []value.Value) ([]value.Value, *rterror.Error) {
	if len(args) > len(expected) {
		pos := rterror.Position{}
		if len(args) > 0 {
			pos, _ = args[0].Pos()
		}
		return nil, rterror.NewRuntime(pos, pos,
			fmt.Sprintf("too many args passed into '%s'", name), nil)
	}
	out := make([]value.Value, len(expected))
	for i := range expected {
		if i < len(args) {
			if expected[i] != anyKind && args[i].Kind() != expected[i] {
				start, end := args[i].Pos()
				return nil, rterror.NewRuntime(start, end,
					fmt.Sprintf("Expected %s, got %s", expected[i], args[i].Kind()),
					value.FrameOf(args[i].Context()))
			}
			out[i] = args[i]
			continue
		}
		if defaults == nil || i >= len(defaults) || defaults[i] == nil {
			pos := rterror.Position{}
			if len(args) > 0 {
				pos, _ = args[0].Pos()
			}
			return nil, rterror.NewRuntime(pos, pos,
				fmt.Sprintf("too few args passed into '%s'", name), nil)
		}
		out[i] = defaults[i]
	}
	return out, nil
}

// All returns every registered built-in class, for installation into
// the global symbol table.
func All() []*value.BuiltInClass {
	return []*value.BuiltInClass{
		FileClass(),
		StringClass(),
		JsonClass(),
		RequestsClass(),
		BuiltinsClass(),
	}
}
