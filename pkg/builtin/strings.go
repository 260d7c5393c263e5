package builtin

import (
	"strings"

	"github.com/kristofer/radon/pkg/value"
)

func stringBuiltins() []Builtin {
	return []Builtin{
		{
			Name: "str_len", ArgNames: []string{"string"},
			Doc:     "str_len(string) returns the code-unit count.",
			Handler: execStrLen,
		},
		{
			Name: "str_find", ArgNames: []string{"string", "value"},
			Doc:     "str_find(string, value) returns the index of value in string, or -1.",
			Handler: execStrFind,
		},
		{
			Name: "str_get", ArgNames: []string{"string", "index"},
			Doc:     "str_get(string, index) returns the character at index.",
			Handler: execStrGet,
		},
	}
}

func execStrLen(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
	s, ok := arg(exec, "string").(*value.String)
	if !ok {
		return failArgType(fn, exec, "Argument must be string")
	}
	return value.NewRTResult().Success(value.NewInt(int64(len(s.Value))).SetContext(exec))
}

func execStrFind(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
	s, ok := arg(exec, "string").(*value.String)
	if !ok {
		return failArgType(fn, exec, "First argument must be string")
	}
	needle, ok := arg(exec, "value").(*value.String)
	if !ok {
		return failArgType(fn, exec, "Second argument must be string")
	}
	idx := strings.Index(s.Value, needle.Value)
	return value.NewRTResult().Success(value.NewInt(int64(idx)).SetContext(exec))
}

func execStrGet(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
	s, ok := arg(exec, "string").(*value.String)
	if !ok {
		return failArgType(fn, exec, "First argument must be string")
	}
	index, ok := arg(exec, "index").(*value.Number)
	if !ok {
		return failArgType(fn, exec, "Second argument must be number")
	}
	idx := int(index.AsInt())
	if idx < 0 {
		idx += len(s.Value)
	}
	if idx < 0 || idx >= len(s.Value) {
		return failArgType(fn, exec, "Could't find that index")
	}
	return value.NewRTResult().Success(value.NewString(string(s.Value[idx])).SetContext(exec))
}
