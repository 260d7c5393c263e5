package value

import (
	"strings"
	"testing"

	"github.com/kristofer/radon/pkg/rterror"
)

func newExecCtxForTest() *Context {
	parent := NewContext("<program>", nil, nil)
	parent.SymbolTable = NewSymbolTable(nil)
	return newExecContext("f", parent, rterror.Position{File: "<test>"})
}

func TestCheckAndPopulateArgs_Binds(t *testing.T) {
	ctx := newExecCtxForTest()
	res := CheckAndPopulateArgs("f", []string{"x", "y"}, []Value{nil, NewInt(2)},
		[]Value{NewInt(3)}, nil, rterror.Position{}, rterror.Position{}, ctx)
	if res.ShouldReturn() {
		t.Fatalf("unexpected failure: %v", res.Error)
	}
	x, _ := ctx.SymbolTable.Get("x")
	y, _ := ctx.SymbolTable.Get("y")
	if x.(*Number).Int != 3 || y.(*Number).Int != 2 {
		t.Fatalf("bound x=%v y=%v", x, y)
	}
}

func TestCheckAndPopulateArgs_TooFew(t *testing.T) {
	ctx := newExecCtxForTest()
	res := CheckAndPopulateArgs("f", []string{"x", "y"}, []Value{nil, NewInt(2)},
		nil, nil, rterror.Position{}, rterror.Position{}, ctx)
	if res.Error == nil || !strings.Contains(res.Error.Message, "too few args passed into 'f'") {
		t.Fatalf("got %v", res.Error)
	}
}

func TestCheckAndPopulateArgs_TooMany(t *testing.T) {
	ctx := newExecCtxForTest()
	res := CheckAndPopulateArgs("f", []string{"x"}, []Value{nil},
		[]Value{NewInt(1), NewInt(2)}, nil, rterror.Position{}, rterror.Position{}, ctx)
	if res.Error == nil || !strings.Contains(res.Error.Message, "too many args passed into 'f'") {
		t.Fatalf("got %v", res.Error)
	}
}

func TestCheckAndPopulateArgs_Kwargs(t *testing.T) {
	ctx := newExecCtxForTest()
	res := CheckAndPopulateArgs("f", []string{"x", "y"}, []Value{nil, nil},
		[]Value{NewInt(1)}, map[string]Value{"y": NewInt(9)},
		rterror.Position{}, rterror.Position{}, ctx)
	if res.ShouldReturn() {
		t.Fatalf("unexpected failure: %v", res.Error)
	}
	y, _ := ctx.SymbolTable.Get("y")
	if y.(*Number).Int != 9 {
		t.Fatalf("y=%v", y)
	}
}

func TestCheckAndPopulateArgs_UnknownKwarg(t *testing.T) {
	ctx := newExecCtxForTest()
	res := CheckAndPopulateArgs("f", []string{"x"}, []Value{nil},
		[]Value{NewInt(1)}, map[string]Value{"z": NewInt(9)},
		rterror.Position{}, rterror.Position{}, ctx)
	if res.Error == nil || !strings.Contains(res.Error.Message, "unexpected keyword argument") {
		t.Fatalf("got %v", res.Error)
	}
}

func TestCheckAndPopulateArgs_DuplicateBinding(t *testing.T) {
	ctx := newExecCtxForTest()
	res := CheckAndPopulateArgs("f", []string{"x"}, []Value{nil},
		[]Value{NewInt(1)}, map[string]Value{"x": NewInt(9)},
		rterror.Position{}, rterror.Position{}, ctx)
	if res.Error == nil || !strings.Contains(res.Error.Message, "multiple values") {
		t.Fatalf("got %v", res.Error)
	}
}

func TestBuiltInFunction_RejectsKwargs(t *testing.T) {
	fn := NewBuiltInFunction("f", []string{"x"}, nil,
		func(_ *BuiltInFunction, _ Evaluator, _ *Context) *RTResult {
			return NewRTResult().Success(NewNull())
		})
	ctx := NewContext("<program>", nil, nil)
	ctx.SymbolTable = NewSymbolTable(nil)

	res := fn.Call(nil, nil, map[string]Value{"x": NewInt(1)}, ctx)
	if res.Error == nil || !strings.Contains(res.Error.Message, "Keyword arguments are not yet supported") {
		t.Fatalf("got %v", res.Error)
	}
}

func TestBuiltInFunction_MissingHandler(t *testing.T) {
	fn := NewBuiltInFunction("ghost", nil, nil, nil)
	ctx := NewContext("<program>", nil, nil)
	ctx.SymbolTable = NewSymbolTable(nil)

	res := fn.Call(nil, nil, nil, ctx)
	if res.Error == nil || !strings.Contains(res.Error.Message, "No execute_ghost method defined") {
		t.Fatalf("got %v", res.Error)
	}
}
