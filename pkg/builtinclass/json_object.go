package builtinclass

import (
	"encoding/json"
	"fmt"

	"github.com/kristofer/radon/pkg/rterror"
	"github.com/kristofer/radon/pkg/value"
)

// JsonClass converts between JSON text and Radon values: Json() with
// parse(text) and stringify(value).
func JsonClass() *value.BuiltInClass {
	return newClass("Json", "Built-in JSON object: parse(text) and stringify(value).", func(inst *value.BuiltInInstance) {
		inst.SetOperator("__constructor__", func(args []value.Value) *value.RTResult {
			if _, err := CheckArgs("Json", nil, nil, args); err != nil {
				return value.NewRTResult().Failure(err)
			}
			return value.NewRTResult().Success(value.NewNull())
		})

		inst.SetMethod("parse", method("parse", []string{"text"}, nil,
			func(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
				text, err := stringArg(fn, exec, "text", "Cannot parse a non-string")
				if err != nil {
					return value.NewRTResult().Failure(err)
				}
				var decoded interface{}
				if jerr := json.Unmarshal([]byte(text), &decoded); jerr != nil {
					start, end := fn.Pos()
					return value.NewRTResult().Failure(rterror.NewRuntime(start, end,
						fmt.Sprintf("Invalid JSON: %s", jerr), value.FrameOf(exec)))
				}
				v, cerr := jsonToValue(decoded, fn, exec)
				if cerr != nil {
					return value.NewRTResult().Failure(cerr)
				}
				return value.NewRTResult().Success(v)
			}))

		inst.SetMethod("stringify", method("stringify", []string{"value"}, nil,
			func(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
				v, ok := exec.SymbolTable.Get("value")
				if !ok {
					start, end := fn.Pos()
					return value.NewRTResult().Failure(rterror.NewRuntime(start, end,
						"Missing value", value.FrameOf(exec)))
				}
				native, cerr := valueToJSON(v, fn, exec)
				if cerr != nil {
					return value.NewRTResult().Failure(cerr)
				}
				data, jerr := json.Marshal(native)
				if jerr != nil {
					start, end := fn.Pos()
					return value.NewRTResult().Failure(rterror.NewRuntime(start, end,
						fmt.Sprintf("Cannot stringify: %s", jerr), value.FrameOf(exec)))
				}
				return value.NewRTResult().Success(value.NewString(string(data)))
			}))
	})
}

func jsonToValue(v interface{}, fn *value.BuiltInFunction, exec *value.Context) (value.Value, *rterror.Error) {
	switch t := v.(type) {
	case nil:
		return value.NewNull(), nil
	case bool:
		return value.NewBoolean(t), nil
	case float64:
		if t == float64(int64(t)) {
			return value.NewInt(int64(t)), nil
		}
		return value.NewFloat(t), nil
	case string:
		return value.NewString(t), nil
	case []interface{}:
		elements := make([]value.Value, len(t))
		for i, el := range t {
			converted, err := jsonToValue(el, fn, exec)
			if err != nil {
				return nil, err
			}
			elements[i] = converted
		}
		return value.NewArray(elements), nil
	case map[string]interface{}:
		h := value.NewHashMap()
		for k, el := range t {
			converted, err := jsonToValue(el, fn, exec)
			if err != nil {
				return nil, err
			}
			h.Set(value.NewString(k), converted)
		}
		return h, nil
	}
	start, end := fn.Pos()
	return nil, rterror.NewRuntime(start, end,
		fmt.Sprintf("Cannot convert JSON value of type %T", v), value.FrameOf(exec))
}

func valueToJSON(v value.Value, fn *value.BuiltInFunction, exec *value.Context) (interface{}, *rterror.Error) {
	switch t := v.(type) {
	case *value.Null:
		return nil, nil
	case *value.Boolean:
		return t.Value, nil
	case *value.Number:
		if t.IsInt {
			return t.Int, nil
		}
		return t.Float, nil
	case *value.String:
		return t.Value, nil
	case *value.Array:
		out := make([]interface{}, len(t.Elements))
		for i, el := range t.Elements {
			converted, err := valueToJSON(el, fn, exec)
			if err != nil {
				return nil, err
			}
			out[i] = converted
		}
		return out, nil
	case *value.HashMap:
		out := make(map[string]interface{}, t.Len())
		for _, e := range t.Entries() {
			key, ok := e[0].(*value.String)
			if !ok {
				start, end := fn.Pos()
				return nil, rterror.NewRuntime(start, end,
					"JSON object keys must be strings", value.FrameOf(exec))
			}
			converted, err := valueToJSON(e[1], fn, exec)
			if err != nil {
				return nil, err
			}
			out[key.Value] = converted
		}
		return out, nil
	}
	start, end := fn.Pos()
	return nil, rterror.NewRuntime(start, end,
		fmt.Sprintf("Value of type '%s' is not JSON-serializable", v.Kind()), value.FrameOf(exec))
}
