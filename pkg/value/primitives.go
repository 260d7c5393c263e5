package value

import (
	"strconv"
	"strings"

	"github.com/kristofer/radon/pkg/rterror"
)

// Null is the `null` singleton's variant.
type Null struct{ base }

// NewNull builds a Null. The language-level singleton lives in the
// global symbol table; fresh Nulls are still created wherever a
// built-in needs one with its own position.
func NewNull() *Null { return &Null{} }

func (n *Null) Kind() Kind                                  { return KindNull }
func (n *Null) SetPos(s, e rterror.Position) Value          { n.setPos(s, e); return n }
func (n *Null) SetContext(ctx *Context) Value               { n.setContext(ctx); return n }
func (n *Null) String() string                              { return "null" }
func (n *Null) Truthy() bool                                { return false }

// Boolean is `true` or `false`.
type Boolean struct {
	base
	Value bool
}

func NewBoolean(v bool) *Boolean { return &Boolean{Value: v} }

func (b *Boolean) Kind() Kind                         { return KindBoolean }
func (b *Boolean) SetPos(s, e rterror.Position) Value { b.setPos(s, e); return b }
func (b *Boolean) SetContext(ctx *Context) Value      { b.setContext(ctx); return b }
func (b *Boolean) Truthy() bool                       { return b.Value }

func (b *Boolean) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// Number holds either an int64 or a float64, keeping integer-ness
// exact so arithmetic on two integers stays integral (spec.md §3).
type Number struct {
	base
	IsInt bool
	Int   int64
	Float float64
}

// NewInt builds an integer Number.
func NewInt(v int64) *Number { return &Number{IsInt: true, Int: v} }

// NewFloat builds a floating Number.
func NewFloat(v float64) *Number { return &Number{Float: v} }

func (n *Number) Kind() Kind                         { return KindNumber }
func (n *Number) SetPos(s, e rterror.Position) Value { n.setPos(s, e); return n }
func (n *Number) SetContext(ctx *Context) Value      { n.setContext(ctx); return n }

// AsFloat widens to float64 regardless of the stored form.
func (n *Number) AsFloat() float64 {
	if n.IsInt {
		return float64(n.Int)
	}
	return n.Float
}

// AsInt truncates to int64 regardless of the stored form.
func (n *Number) AsInt() int64 {
	if n.IsInt {
		return n.Int
	}
	return int64(n.Float)
}

func (n *Number) Truthy() bool {
	if n.IsInt {
		return n.Int != 0
	}
	return n.Float != 0
}

// String renders integers without a fraction and floats with at least
// one, so an integer-valued float still reads as a float ("2.0", not
// "2") and str(int(x)) round-trips for integral x.
func (n *Number) String() string {
	if n.IsInt {
		return strconv.FormatInt(n.Int, 10)
	}
	s := strconv.FormatFloat(n.Float, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") && !strings.Contains(s, "Inf") && s != "NaN" {
		s += ".0"
	}
	return s
}
