package value

import (
	"math"

	"github.com/kristofer/radon/pkg/rterror"
)

// IllegalOperation builds the standard failure for an operator applied
// to operands that support no hook and no default behavior, spanning
// both operands' positions.
func IllegalOperation(left, right Value) *rterror.Error {
	start, _ := left.Pos()
	_, end := right.Pos()
	return rterror.NewRuntime(start, end, "Illegal operation", FrameOf(left.Context()))
}

// BinaryOp applies the default (non-hook) behavior for op to two
// values: numeric arithmetic and comparison, string concat and
// comparison, array concat, generic equality, boolean and/or. The
// interpreter consults instance operator hooks first and only then
// falls back here (spec.md §4.3).
func BinaryOp(left, right Value, op string) (Value, *rterror.Error) {
	switch op {
	case "==":
		return NewBoolean(Equals(left, right)), nil
	case "!=":
		return NewBoolean(!Equals(left, right)), nil
	case "and":
		return NewBoolean(left.Truthy() && right.Truthy()), nil
	case "or":
		return NewBoolean(left.Truthy() || right.Truthy()), nil
	}

	if ln, ok := left.(*Number); ok {
		if rn, ok := right.(*Number); ok {
			return numberOp(ln, rn, op, left, right)
		}
	}
	if ls, ok := left.(*String); ok {
		if rs, ok := right.(*String); ok {
			return stringOp(ls, rs, op, left, right)
		}
	}
	if la, ok := left.(*Array); ok {
		if ra, ok := right.(*Array); ok && op == "+" {
			elements := make([]Value, 0, len(la.Elements)+len(ra.Elements))
			elements = append(elements, la.Elements...)
			elements = append(elements, ra.Elements...)
			return NewArray(elements), nil
		}
	}
	return nil, IllegalOperation(left, right)
}

func numberOp(l, r *Number, op string, left, right Value) (Value, *rterror.Error) {
	bothInt := l.IsInt && r.IsInt
	switch op {
	case "+":
		if bothInt {
			return NewInt(l.Int + r.Int), nil
		}
		return NewFloat(l.AsFloat() + r.AsFloat()), nil
	case "-":
		if bothInt {
			return NewInt(l.Int - r.Int), nil
		}
		return NewFloat(l.AsFloat() - r.AsFloat()), nil
	case "*":
		if bothInt {
			return NewInt(l.Int * r.Int), nil
		}
		return NewFloat(l.AsFloat() * r.AsFloat()), nil
	case "/":
		if !r.Truthy() {
			start, _ := left.Pos()
			_, end := right.Pos()
			return nil, rterror.NewRuntime(start, end, "Division by zero", FrameOf(left.Context()))
		}
		if bothInt && l.Int%r.Int == 0 {
			return NewInt(l.Int / r.Int), nil
		}
		return NewFloat(l.AsFloat() / r.AsFloat()), nil
	case "%":
		if !r.Truthy() {
			start, _ := left.Pos()
			_, end := right.Pos()
			return nil, rterror.NewRuntime(start, end, "Division by zero", FrameOf(left.Context()))
		}
		if bothInt {
			m := l.Int % r.Int
			// Give a non-zero result the divisor's sign, the way the
			// original's modulo does.
			if (m < 0) != (r.Int < 0) && m != 0 {
				m += r.Int
			}
			return NewInt(m), nil
		}
		return NewFloat(math.Mod(l.AsFloat(), r.AsFloat())), nil
	case "^":
		if bothInt && r.Int >= 0 {
			return NewInt(intPow(l.Int, r.Int)), nil
		}
		return NewFloat(math.Pow(l.AsFloat(), r.AsFloat())), nil
	case "<":
		return NewBoolean(l.AsFloat() < r.AsFloat()), nil
	case ">":
		return NewBoolean(l.AsFloat() > r.AsFloat()), nil
	case "<=":
		return NewBoolean(l.AsFloat() <= r.AsFloat()), nil
	case ">=":
		return NewBoolean(l.AsFloat() >= r.AsFloat()), nil
	}
	return nil, IllegalOperation(left, right)
}

func intPow(b, e int64) int64 {
	var result int64 = 1
	for e > 0 {
		if e&1 == 1 {
			result *= b
		}
		b *= b
		e >>= 1
	}
	return result
}

func stringOp(l, r *String, op string, left, right Value) (Value, *rterror.Error) {
	switch op {
	case "+":
		return NewString(l.Value + r.Value), nil
	case "<":
		return NewBoolean(l.Value < r.Value), nil
	case ">":
		return NewBoolean(l.Value > r.Value), nil
	case "<=":
		return NewBoolean(l.Value <= r.Value), nil
	case ">=":
		return NewBoolean(l.Value >= r.Value), nil
	}
	return nil, IllegalOperation(left, right)
}

// Equals is the generic structural equality used by == and != when no
// __eq__ hook applies. Numbers compare by numeric value across the
// int/float split; arrays and hashmaps compare element-wise; values of
// different kinds are unequal except numbers.
func Equals(a, b Value) bool {
	switch av := a.(type) {
	case *Null:
		_, ok := b.(*Null)
		return ok
	case *Boolean:
		bv, ok := b.(*Boolean)
		return ok && av.Value == bv.Value
	case *Number:
		bv, ok := b.(*Number)
		if !ok {
			return false
		}
		if av.IsInt && bv.IsInt {
			return av.Int == bv.Int
		}
		return av.AsFloat() == bv.AsFloat()
	case *String:
		bv, ok := b.(*String)
		return ok && av.Value == bv.Value
	case *Array:
		bv, ok := b.(*Array)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equals(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *HashMap:
		bv, ok := b.(*HashMap)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, e := range av.Entries() {
			other, found := bv.Get(e[0])
			if !found || !Equals(e[1], other) {
				return false
			}
		}
		return true
	case *Type:
		bv, ok := b.(*Type)
		return ok && av.Of.Kind() == bv.Of.Kind()
	}
	return a == b
}
