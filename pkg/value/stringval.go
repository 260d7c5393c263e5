package value

import "github.com/kristofer/radon/pkg/rterror"

// String is an immutable text value.
type String struct {
	base
	Value string
}

func NewString(v string) *String { return &String{Value: v} }

func (s *String) Kind() Kind                         { return KindString }
func (s *String) SetPos(a, b rterror.Position) Value { s.setPos(a, b); return s }
func (s *String) SetContext(ctx *Context) Value      { s.setContext(ctx); return s }
func (s *String) String() string                     { return s.Value }
func (s *String) Truthy() bool                       { return len(s.Value) > 0 }

// Repr renders s the way it appears inside an array or hashmap
// display: quoted.
func (s *String) Repr() string { return "\"" + s.Value + "\"" }
