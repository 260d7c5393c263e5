package value

import (
	"strings"

	"github.com/kristofer/radon/pkg/rterror"
)

// Array is a mutable ordered sequence. Built-ins like arr_append
// mutate Elements in place, so everything that shares the Array sees
// the change.
type Array struct {
	base
	Elements []Value
}

func NewArray(elements []Value) *Array { return &Array{Elements: elements} }

func (a *Array) Kind() Kind                         { return KindArray }
func (a *Array) SetPos(s, e rterror.Position) Value { a.setPos(s, e); return a }
func (a *Array) SetContext(ctx *Context) Value      { a.setContext(ctx); return a }
func (a *Array) Truthy() bool                       { return len(a.Elements) > 0 }

func (a *Array) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, el := range a.Elements {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(Repr(el))
	}
	b.WriteByte(']')
	return b.String()
}

// hashEntry keeps the original key Value next to its payload so the
// HashMap can render and compare keys without losing their identity.
type hashEntry struct {
	Key Value
	Val Value
}

// HashMap maps hashable Values (null, booleans, numbers, strings) to
// Values. Iteration order is unspecified (spec.md §3: insertion order
// irrelevant).
type HashMap struct {
	base
	entries map[string]hashEntry
}

func NewHashMap() *HashMap { return &HashMap{entries: make(map[string]hashEntry)} }

func (h *HashMap) Kind() Kind                         { return KindHashMap }
func (h *HashMap) SetPos(s, e rterror.Position) Value { h.setPos(s, e); return h }
func (h *HashMap) SetContext(ctx *Context) Value      { h.setContext(ctx); return h }
func (h *HashMap) Truthy() bool                       { return len(h.entries) > 0 }
func (h *HashMap) Len() int                           { return len(h.entries) }

// hashKey derives the internal map key for a Value, or ok=false when
// the Value is not hashable (arrays, functions, instances).
func hashKey(v Value) (string, bool) {
	switch v.Kind() {
	case KindNull, KindBoolean, KindNumber, KindString:
		return string(v.Kind()) + ":" + v.String(), true
	}
	return "", false
}

// Get looks up key, returning ok=false when absent or unhashable.
func (h *HashMap) Get(key Value) (Value, bool) {
	k, ok := hashKey(key)
	if !ok {
		return nil, false
	}
	e, ok := h.entries[k]
	if !ok {
		return nil, false
	}
	return e.Val, true
}

// Set inserts or replaces key's entry; ok=false when key is unhashable.
func (h *HashMap) Set(key, val Value) bool {
	k, ok := hashKey(key)
	if !ok {
		return false
	}
	h.entries[k] = hashEntry{Key: key, Val: val}
	return true
}

// Entries returns the (key, value) pairs in unspecified order.
func (h *HashMap) Entries() [][2]Value {
	out := make([][2]Value, 0, len(h.entries))
	for _, e := range h.entries {
		out = append(out, [2]Value{e.Key, e.Val})
	}
	return out
}

func (h *HashMap) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for _, e := range h.entries {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(Repr(e.Key))
		b.WriteString(": ")
		b.WriteString(Repr(e.Val))
	}
	b.WriteByte('}')
	return b.String()
}

// Type reifies the runtime type of a value, produced by the `type`
// built-in.
type Type struct {
	base
	Of Value
}

func NewType(of Value) *Type { return &Type{Of: of} }

func (t *Type) Kind() Kind                         { return KindType }
func (t *Type) SetPos(s, e rterror.Position) Value { t.setPos(s, e); return t }
func (t *Type) SetContext(ctx *Context) Value      { t.setContext(ctx); return t }
func (t *Type) Truthy() bool                       { return true }
func (t *Type) String() string                     { return "<type '" + string(t.Of.Kind()) + "'>" }

// Repr renders a Value for embedding inside a composite display:
// strings come out quoted, everything else as its String form.
func Repr(v Value) string {
	if s, ok := v.(*String); ok {
		return s.Repr()
	}
	return v.String()
}
