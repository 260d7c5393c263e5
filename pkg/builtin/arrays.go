package builtin

import (
	"github.com/kristofer/radon/pkg/rterror"
	"github.com/kristofer/radon/pkg/value"
)

func arrayBuiltins() []Builtin {
	return []Builtin{
		{
			Name: "arr_append", ArgNames: []string{"array", "value"},
			Doc:     "arr_append(array, value) appends value to array in place.",
			Handler: execArrAppend,
		},
		{
			Name: "arr_pop", ArgNames: []string{"array", "index"},
			Defaults: []value.Value{nil, value.NewInt(-1)},
			Doc:      "arr_pop(array, index=-1) removes and returns the element at index.",
			Handler:  execArrPop,
		},
		{
			Name: "arr_extend", ArgNames: []string{"arrayA", "arrayB"},
			Doc:     "arr_extend(arrayA, arrayB) appends arrayB's elements to arrayA in place.",
			Handler: execArrExtend,
		},
		{
			Name: "arr_chunk", ArgNames: []string{"array", "value"},
			Doc:     "arr_chunk(array, n) returns a new array of consecutive slices of length at most n.",
			Handler: execArrChunk,
		},
		{
			Name: "arr_get", ArgNames: []string{"array", "index"},
			Doc:     "arr_get(array, index) returns the element at index.",
			Handler: execArrGet,
		},
		{
			Name: "arr_len", ArgNames: []string{"array"},
			Doc:     "arr_len(array) returns the element count.",
			Handler: execArrLen,
		},
	}
}

func failArgType(fn *value.BuiltInFunction, exec *value.Context, msg string) *value.RTResult {
	start, end := fn.Pos()
	return value.NewRTResult().Failure(rterror.NewRuntime(start, end, msg, value.FrameOf(exec)))
}

func execArrAppend(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
	array, ok := arg(exec, "array").(*value.Array)
	if !ok {
		return failArgType(fn, exec, "First argument must be array")
	}
	array.Elements = append(array.Elements, arg(exec, "value"))
	return value.NewRTResult().Success(value.NewNull().SetContext(exec))
}

func execArrPop(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
	array, ok := arg(exec, "array").(*value.Array)
	if !ok {
		return failArgType(fn, exec, "First argument must be array")
	}
	index, ok := arg(exec, "index").(*value.Number)
	if !ok {
		return failArgType(fn, exec, "Second argument must be number")
	}
	idx := int(index.AsInt())
	if idx < 0 {
		idx += len(array.Elements)
	}
	if idx < 0 || idx >= len(array.Elements) {
		return failArgType(fn, exec,
			"Element at this index could not be removed from array because index is out of bounds")
	}
	el := array.Elements[idx]
	array.Elements = append(array.Elements[:idx], array.Elements[idx+1:]...)
	return value.NewRTResult().Success(el)
}

func execArrExtend(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
	arrayA, ok := arg(exec, "arrayA").(*value.Array)
	if !ok {
		return failArgType(fn, exec, "First argument must be array")
	}
	arrayB, ok := arg(exec, "arrayB").(*value.Array)
	if !ok {
		return failArgType(fn, exec, "Second argument must be array")
	}
	arrayA.Elements = append(arrayA.Elements, arrayB.Elements...)
	return value.NewRTResult().Success(value.NewNull().SetContext(exec))
}

func execArrChunk(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
	array, ok := arg(exec, "array").(*value.Array)
	if !ok {
		return failArgType(fn, exec, "First argument must be array")
	}
	size, ok := arg(exec, "value").(*value.Number)
	if !ok {
		return failArgType(fn, exec, "Second argument must be number")
	}
	n := int(size.AsInt())
	if n <= 0 {
		return failArgType(fn, exec, "Chunk size must be positive")
	}
	var chunks []value.Value
	for i := 0; i < len(array.Elements); i += n {
		end := i + n
		if end > len(array.Elements) {
			end = len(array.Elements)
		}
		chunk := make([]value.Value, end-i)
		copy(chunk, array.Elements[i:end])
		chunks = append(chunks, value.NewArray(chunk).SetContext(exec))
	}
	return value.NewRTResult().Success(value.NewArray(chunks).SetContext(exec))
}

func execArrGet(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
	array, ok := arg(exec, "array").(*value.Array)
	if !ok {
		return failArgType(fn, exec, "First argument must be an array")
	}
	index, ok := arg(exec, "index").(*value.Number)
	if !ok {
		return failArgType(fn, exec, "Second argument must be a number")
	}
	idx := int(index.AsInt())
	if idx < 0 {
		idx += len(array.Elements)
	}
	if idx < 0 || idx >= len(array.Elements) {
		return failArgType(fn, exec, "Array index out of bounds")
	}
	return value.NewRTResult().Success(array.Elements[idx])
}

func execArrLen(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
	array, ok := arg(exec, "array").(*value.Array)
	if !ok {
		return failArgType(fn, exec, "Argument must be array")
	}
	return value.NewRTResult().Success(value.NewInt(int64(len(array.Elements))).SetContext(exec))
}
