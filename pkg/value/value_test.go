package value

import "testing"

func TestTruthProtocol(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"null", NewNull(), false},
		{"false", NewBoolean(false), false},
		{"true", NewBoolean(true), true},
		{"zero int", NewInt(0), false},
		{"zero float", NewFloat(0.0), false},
		{"nonzero", NewInt(3), true},
		{"empty string", NewString(""), false},
		{"string", NewString("x"), true},
		{"empty array", NewArray(nil), false},
		{"array", NewArray([]Value{NewInt(1)}), true},
		{"empty hashmap", NewHashMap(), false},
	}
	for _, tt := range tests {
		if got := tt.v.Truthy(); got != tt.want {
			t.Errorf("%s: Truthy() = %v, want %v", tt.name, got, tt.want)
		}
	}

	h := NewHashMap()
	h.Set(NewString("k"), NewInt(1))
	if !h.Truthy() {
		t.Error("non-empty hashmap: Truthy() = false, want true")
	}
}

func TestNumberString(t *testing.T) {
	tests := []struct {
		v    *Number
		want string
	}{
		{NewInt(42), "42"},
		{NewInt(-7), "-7"},
		{NewInt(0), "0"},
		{NewFloat(2.5), "2.5"},
		{NewFloat(2.0), "2.0"},
		{NewFloat(-3.0), "-3.0"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestBinaryOp_IntegerPreserving(t *testing.T) {
	v, err := BinaryOp(NewInt(3), NewInt(4), "+")
	if err != nil {
		t.Fatal(err)
	}
	n := v.(*Number)
	if !n.IsInt || n.Int != 7 {
		t.Fatalf("3+4 = %v, want int 7", v)
	}

	v, err = BinaryOp(NewInt(3), NewFloat(0.5), "+")
	if err != nil {
		t.Fatal(err)
	}
	n = v.(*Number)
	if n.IsInt || n.Float != 3.5 {
		t.Fatalf("3+0.5 = %v, want float 3.5", v)
	}
}

func TestBinaryOp_DivisionByZero(t *testing.T) {
	_, err := BinaryOp(NewInt(1), NewInt(0), "/")
	if err == nil {
		t.Fatal("1/0 must fail")
	}
}

func TestBinaryOp_StringConcat(t *testing.T) {
	v, err := BinaryOp(NewString("foo"), NewString("bar"), "+")
	if err != nil {
		t.Fatal(err)
	}
	if v.(*String).Value != "foobar" {
		t.Fatalf("got %q", v.String())
	}
}

func TestBinaryOp_IllegalOperation(t *testing.T) {
	_, err := BinaryOp(NewString("a"), NewInt(1), "+")
	if err == nil {
		t.Fatal("string + number must fail")
	}
	if err.Message != "Illegal operation" {
		t.Fatalf("got %q", err.Message)
	}
}

func TestEquals(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"ints", NewInt(1), NewInt(1), true},
		{"int/float same value", NewInt(2), NewFloat(2.0), true},
		{"strings", NewString("x"), NewString("x"), true},
		{"nulls", NewNull(), NewNull(), true},
		{"cross kind", NewString("1"), NewInt(1), false},
		{"arrays", NewArray([]Value{NewInt(1), NewInt(2)}), NewArray([]Value{NewInt(1), NewInt(2)}), true},
		{"arrays differ", NewArray([]Value{NewInt(1)}), NewArray([]Value{NewInt(2)}), false},
	}
	for _, tt := range tests {
		if got := Equals(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: Equals = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestArrayString(t *testing.T) {
	a := NewArray([]Value{NewInt(1), NewString("two"), NewFloat(3.0)})
	if got := a.String(); got != `[1, "two", 3.0]` {
		t.Fatalf("got %q", got)
	}
}

func TestHashMapSetGet(t *testing.T) {
	h := NewHashMap()
	if !h.Set(NewString("k"), NewInt(1)) {
		t.Fatal("string key must be hashable")
	}
	v, ok := h.Get(NewString("k"))
	if !ok || v.(*Number).Int != 1 {
		t.Fatalf("got %v, %v", v, ok)
	}
	if h.Set(NewArray(nil), NewInt(1)) {
		t.Fatal("array key must not be hashable")
	}
}

func TestSymbolTableChain(t *testing.T) {
	parent := NewSymbolTable(nil)
	parent.Set("a", NewInt(1))
	child := NewSymbolTable(parent)
	child.Set("b", NewInt(2))

	if _, ok := child.Get("a"); !ok {
		t.Fatal("child must see parent's names")
	}
	if _, ok := parent.Get("b"); ok {
		t.Fatal("parent must not see child's names")
	}
	child.Remove("b")
	if _, ok := child.Get("b"); ok {
		t.Fatal("Remove must delete the name")
	}
}
