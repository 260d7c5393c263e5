package builtinclass

import (
	"strings"
	"unicode"

	"github.com/kristofer/radon/pkg/rterror"
	"github.com/kristofer/radon/pkg/value"
)

// StringClass is the built-in String manipulation class: a wrapper
// around host string state with case, search and split/join methods.
func StringClass() *value.BuiltInClass {
	return newClass("String", "Built-in String manipulation object.", func(inst *value.BuiltInInstance) {
		state := &stringState{}

		inst.SetOperator("__constructor__", func(args []value.Value) *value.RTResult {
			checked, err := CheckArgs("String", []value.Kind{value.KindString},
				[]value.Value{value.NewString("")}, args)
			if err != nil {
				return value.NewRTResult().Failure(err)
			}
			state.value = checked[0].(*value.String).Value
			return value.NewRTResult().Success(value.NewNull())
		})

		inst.SetOperator("__add__", func(args []value.Value) *value.RTResult {
			checked, err := CheckArgs("String.__add__", []value.Kind{value.KindString}, nil, args)
			if err != nil {
				return value.NewRTResult().Failure(err)
			}
			return value.NewRTResult().Success(value.NewString(state.value + checked[0].(*value.String).Value))
		})

		inst.SetDisplayHook(func() string { return state.value })
		inst.SetLenHook(func() int { return len(state.value) })

		inst.SetMethod("upper", method("upper", nil, nil,
			func(_ *value.BuiltInFunction, _ value.Evaluator, _ *value.Context) *value.RTResult {
				return value.NewRTResult().Success(value.NewString(strings.ToUpper(state.value)))
			}))
		inst.SetMethod("lower", method("lower", nil, nil,
			func(_ *value.BuiltInFunction, _ value.Evaluator, _ *value.Context) *value.RTResult {
				return value.NewRTResult().Success(value.NewString(strings.ToLower(state.value)))
			}))
		inst.SetMethod("title", method("title", nil, nil,
			func(_ *value.BuiltInFunction, _ value.Evaluator, _ *value.Context) *value.RTResult {
				return value.NewRTResult().Success(value.NewString(titleCase(state.value)))
			}))
		inst.SetMethod("capitalize", method("capitalize", nil, nil,
			func(_ *value.BuiltInFunction, _ value.Evaluator, _ *value.Context) *value.RTResult {
				return value.NewRTResult().Success(value.NewString(capitalize(state.value)))
			}))
		inst.SetMethod("swapcase", method("swapcase", nil, nil,
			func(_ *value.BuiltInFunction, _ value.Evaluator, _ *value.Context) *value.RTResult {
				return value.NewRTResult().Success(value.NewString(swapCase(state.value)))
			}))
		inst.SetMethod("length", method("length", nil, nil,
			func(_ *value.BuiltInFunction, _ value.Evaluator, _ *value.Context) *value.RTResult {
				return value.NewRTResult().Success(value.NewInt(int64(len(state.value))))
			}))

		inst.SetMethod("count", method("count", []string{"string"}, []value.Value{value.NewString("")},
			func(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
				sub, err := stringArg(fn, exec, "string", "Cannot count a non-string")
				if err != nil {
					return value.NewRTResult().Failure(err)
				}
				if sub == "" {
					start, end := fn.Pos()
					return value.NewRTResult().Failure(rterror.NewRuntime(start, end,
						"Cannot count an empty string", value.FrameOf(exec)))
				}
				return value.NewRTResult().Success(value.NewInt(int64(strings.Count(state.value, sub))))
			}))
		inst.SetMethod("replace", method("replace", []string{"string", "value"},
			[]value.Value{value.NewString(""), value.NewString("")},
			func(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
				old, err := stringArg(fn, exec, "string", "Cannot replace a non-string")
				if err != nil {
					return value.NewRTResult().Failure(err)
				}
				repl, err := stringArg(fn, exec, "value", "Cannot replace a non-string")
				if err != nil {
					return value.NewRTResult().Failure(err)
				}
				return value.NewRTResult().Success(value.NewString(strings.ReplaceAll(state.value, old, repl)))
			}))
		inst.SetMethod("find", method("find", []string{"string"}, []value.Value{value.NewString("")},
			func(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
				sub, err := stringArg(fn, exec, "string", "Cannot find a non-string")
				if err != nil {
					return value.NewRTResult().Failure(err)
				}
				return value.NewRTResult().Success(value.NewInt(int64(strings.Index(state.value, sub))))
			}))
		inst.SetMethod("startswith", method("startswith", []string{"string"}, []value.Value{value.NewString("")},
			func(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
				sub, err := stringArg(fn, exec, "string", "Cannot startswith a non-string")
				if err != nil {
					return value.NewRTResult().Failure(err)
				}
				return value.NewRTResult().Success(value.NewBoolean(strings.HasPrefix(state.value, sub)))
			}))
		inst.SetMethod("endswith", method("endswith", []string{"string"}, []value.Value{value.NewString("")},
			func(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
				sub, err := stringArg(fn, exec, "string", "Cannot endswith a non-string")
				if err != nil {
					return value.NewRTResult().Failure(err)
				}
				return value.NewRTResult().Success(value.NewBoolean(strings.HasSuffix(state.value, sub)))
			}))
		inst.SetMethod("split", method("split", []string{"string"}, []value.Value{value.NewString(" ")},
			func(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
				sep, err := stringArg(fn, exec, "string", "Cannot split a non-string")
				if err != nil {
					return value.NewRTResult().Failure(err)
				}
				parts := strings.Split(state.value, sep)
				elements := make([]value.Value, len(parts))
				for i, p := range parts {
					elements[i] = value.NewString(p)
				}
				return value.NewRTResult().Success(value.NewArray(elements))
			}))
		inst.SetMethod("join", method("join", []string{"string"}, []value.Value{value.NewString("")},
			func(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
				sep, err := stringArg(fn, exec, "string", "Cannot join a non-string")
				if err != nil {
					return value.NewRTResult().Failure(err)
				}
				// Joins the characters of the wrapped string, matching
				// the original's str.join over the host value.
				chars := strings.Split(state.value, "")
				return value.NewRTResult().Success(value.NewString(strings.Join(chars, sep)))
			}))
		inst.SetMethod("strip", method("strip", []string{"string"}, []value.Value{value.NewString("")},
			func(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
				cutset, err := stringArg(fn, exec, "string", "Cannot strip a non-string")
				if err != nil {
					return value.NewRTResult().Failure(err)
				}
				return value.NewRTResult().Success(value.NewString(strings.Trim(state.value, cutset)))
			}))
		inst.SetMethod("lstrip", method("lstrip", []string{"string"}, []value.Value{value.NewString("")},
			func(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
				cutset, err := stringArg(fn, exec, "string", "Cannot lstrip a non-string")
				if err != nil {
					return value.NewRTResult().Failure(err)
				}
				return value.NewRTResult().Success(value.NewString(strings.TrimLeft(state.value, cutset)))
			}))
		inst.SetMethod("rstrip", method("rstrip", []string{"string"}, []value.Value{value.NewString("")},
			func(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
				cutset, err := stringArg(fn, exec, "string", "Cannot rstrip a non-string")
				if err != nil {
					return value.NewRTResult().Failure(err)
				}
				return value.NewRTResult().Success(value.NewString(strings.TrimRight(state.value, cutset)))
			}))
	})
}

type stringState struct {
	value string
}

// stringArg fetches a bound method argument that must be a String.
func stringArg(fn *value.BuiltInFunction, exec *value.Context, name, errMsg string) (string, *rterror.Error) {
	v, ok := exec.SymbolTable.Get(name)
	if !ok {
		start, end := fn.Pos()
		return "", rterror.NewRuntime(start, end, errMsg, value.FrameOf(exec))
	}
	s, isStr := v.(*value.String)
	if !isStr {
		start, end := v.Pos()
		return "", rterror.NewRuntime(start, end, errMsg, value.FrameOf(v.Context()))
	}
	return s.Value, nil
}

func titleCase(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	head := string(unicode.ToUpper(runes[0]))
	return head + strings.ToLower(string(runes[1:]))
}

func swapCase(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsUpper(r):
			return unicode.ToLower(r)
		case unicode.IsLower(r):
			return unicode.ToUpper(r)
		}
		return r
	}, s)
}
