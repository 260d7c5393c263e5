package builtin

import "github.com/kristofer/radon/pkg/value"

// predicateBuiltins are the structural is_* checks on the Value
// variant (and the numeric sub-form for is_int/is_float).
func predicateBuiltins() []Builtin {
	pred := func(name, doc string, test func(v value.Value) bool) Builtin {
		return Builtin{
			Name: name, ArgNames: []string{"value"}, Doc: doc,
			Handler: func(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
				ok := test(arg(exec, "value"))
				return value.NewRTResult().Success(value.NewBoolean(ok).SetContext(exec))
			},
		}
	}
	return []Builtin{
		pred("is_num", "is_num(value) reports whether value is a number.", func(v value.Value) bool {
			return v.Kind() == value.KindNumber
		}),
		pred("is_int", "is_int(value) reports whether value is an integer number.", func(v value.Value) bool {
			n, ok := v.(*value.Number)
			return ok && n.IsInt
		}),
		pred("is_float", "is_float(value) reports whether value is a floating number.", func(v value.Value) bool {
			n, ok := v.(*value.Number)
			return ok && !n.IsInt
		}),
		pred("is_str", "is_str(value) reports whether value is a string.", func(v value.Value) bool {
			return v.Kind() == value.KindString
		}),
		pred("is_bool", "is_bool(value) reports whether value is a boolean.", func(v value.Value) bool {
			return v.Kind() == value.KindBoolean
		}),
		pred("is_array", "is_array(value) reports whether value is an array.", func(v value.Value) bool {
			return v.Kind() == value.KindArray
		}),
		pred("is_fun", "is_fun(value) reports whether value is a function or built-in function.", func(v value.Value) bool {
			return v.Kind() == value.KindFunction || v.Kind() == value.KindBuiltInFunction
		}),
		pred("is_null", "is_null(value) reports whether value is null.", func(v value.Value) bool {
			return v.Kind() == value.KindNull
		}),
	}
}
