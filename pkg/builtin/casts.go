package builtin

import (
	"strconv"
	"strings"

	"github.com/kristofer/radon/pkg/value"
)

func castBuiltins() []Builtin {
	return []Builtin{
		{
			Name: "int", ArgNames: []string{"value"},
			Doc:     "int(value) converts a number or numeric string to an integer.",
			Handler: execInt,
		},
		{
			Name: "float", ArgNames: []string{"value"},
			Doc:     "float(value) converts a number or numeric string to a float.",
			Handler: execFloat,
		},
		{
			Name: "str", ArgNames: []string{"value"},
			Doc:     "str(value) returns value's display form as a string.",
			Handler: execStr,
		},
		{
			Name: "bool", ArgNames: []string{"value"},
			Doc:     "bool(value) applies the truth protocol to value.",
			Handler: execBool,
		},
		{
			Name: "type", ArgNames: []string{"value"},
			Doc:     "type(value) reifies value's runtime type.",
			Handler: execType,
		},
	}
}

func execInt(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
	switch v := arg(exec, "value").(type) {
	case *value.Number:
		return value.NewRTResult().Success(value.NewInt(v.AsInt()).SetContext(exec))
	case *value.String:
		if n, err := strconv.ParseInt(strings.TrimSpace(v.Value), 10, 64); err == nil {
			return value.NewRTResult().Success(value.NewInt(n).SetContext(exec))
		}
		// Python's int() also accepts "3.0"-shaped text via float first.
		if f, err := strconv.ParseFloat(strings.TrimSpace(v.Value), 64); err == nil {
			return value.NewRTResult().Success(value.NewInt(int64(f)).SetContext(exec))
		}
	case *value.Boolean:
		if v.Value {
			return value.NewRTResult().Success(value.NewInt(1).SetContext(exec))
		}
		return value.NewRTResult().Success(value.NewInt(0).SetContext(exec))
	}
	return failArgType(fn, exec, "Could not convert to int")
}

func execFloat(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
	switch v := arg(exec, "value").(type) {
	case *value.Number:
		return value.NewRTResult().Success(value.NewFloat(v.AsFloat()).SetContext(exec))
	case *value.String:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v.Value), 64); err == nil {
			return value.NewRTResult().Success(value.NewFloat(f).SetContext(exec))
		}
	}
	return failArgType(fn, exec, "Could not convert to float")
}

func execStr(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
	v := arg(exec, "value")
	return value.NewRTResult().Success(value.NewString(v.String()).SetContext(exec))
}

func execBool(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
	v := arg(exec, "value")
	return value.NewRTResult().Success(value.NewBoolean(v.Truthy()).SetContext(exec))
}

func execType(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
	v := arg(exec, "value")
	return value.NewRTResult().Success(value.NewType(v).SetContext(exec))
}
