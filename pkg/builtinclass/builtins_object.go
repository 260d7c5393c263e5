package builtinclass

import (
	"sort"

	"github.com/kristofer/radon/pkg/value"
)

// globalNames is the stable set of identifiers pre-installed in the
// global symbol table (spec.md §6), exposed for introspection.
var globalNames = []string{
	"null", "true", "false",
	"print", "print_ret", "input", "input_int", "clear", "cls",
	"require", "exit", "len",
	"is_num", "is_int", "is_float", "is_str", "is_bool", "is_array", "is_fun", "is_null",
	"arr_append", "arr_pop", "arr_extend", "arr_len", "arr_chunk", "arr_get",
	"str_len", "str_find", "str_get",
	"int", "float", "str", "bool", "type",
	"pyapi", "time_now",
	"license", "credits", "copyright", "help", "dir",
	"File", "String", "Json", "Requests", "builtins",
}

// BuiltinsClass reflects the interpreter's own surface back into the
// language: builtins() with names() listing every global identifier.
func BuiltinsClass() *value.BuiltInClass {
	return newClass("builtins", "Interpreter introspection: names() lists every pre-installed global.", func(inst *value.BuiltInInstance) {
		inst.SetOperator("__constructor__", func(args []value.Value) *value.RTResult {
			if _, err := CheckArgs("builtins", nil, nil, args); err != nil {
				return value.NewRTResult().Failure(err)
			}
			return value.NewRTResult().Success(value.NewNull())
		})

		inst.SetMethod("names", method("names", nil, nil,
			func(_ *value.BuiltInFunction, _ value.Evaluator, _ *value.Context) *value.RTResult {
				names := append([]string(nil), globalNames...)
				sort.Strings(names)
				elements := make([]value.Value, len(names))
				for i, n := range names {
					elements[i] = value.NewString(n)
				}
				return value.NewRTResult().Success(value.NewArray(elements))
			}))
	})
}
