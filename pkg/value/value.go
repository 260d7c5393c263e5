// Package value implements the Radon runtime core: the tagged Value
// universe, the RTResult execution envelope, the SymbolTable/Context
// scope machinery, and the call/operator protocol shared by every
// callable (spec.md §3–4.3).
//
// This mirrors the role the teacher's (kristofer-smog) pkg/vm package
// played for smog's stack machine, but reshaped around tree-walking:
// instead of an interface{} value stack, every Radon value is a
// concrete Go type implementing Value, carrying its own position and
// defining Context the way spec.md §3's invariants require.
package value

import (
	"github.com/kristofer/radon/pkg/ast"
	"github.com/kristofer/radon/pkg/rterror"
)

// Kind tags the runtime type of a Value (what `type(v)` reifies into a
// Type value, and what §3's variant table enumerates).
type Kind string

const (
	KindNull            Kind = "null"
	KindBoolean         Kind = "bool"
	KindNumber          Kind = "number"
	KindString          Kind = "string"
	KindArray           Kind = "array"
	KindHashMap         Kind = "hashmap"
	KindType            Kind = "type"
	KindFunction        Kind = "function"
	KindBuiltInFunction Kind = "built-in function"
	KindClass           Kind = "class"
	KindInstance        Kind = "instance"
	KindBuiltInClass    Kind = "built-in class"
	KindBuiltInInstance Kind = "built-in instance"
	KindModule          Kind = "module"
	KindPyAPI           Kind = "pyapi"
)

// Value is the interface every Radon runtime value implements. Every
// variant stores pos_start/pos_end/context per spec.md §3's invariant;
// SetPos/SetContext return the receiver so construction can chain the
// way the original `Value().set_pos(...).set_context(...)` builder did.
type Value interface {
	Kind() Kind
	Pos() (start, end rterror.Position)
	SetPos(start, end rterror.Position) Value
	Context() *Context
	SetContext(ctx *Context) Value
	String() string
	Truthy() bool
	// Doc is the self-documentation hook `help()` prints (spec.md §4.4).
	Doc() string
}

// Evaluator is the seam that lets Function.Call (in this package)
// invoke the tree-walking interpreter (pkg/interp) without pkg/value
// importing pkg/interp — pkg/interp.Interpreter implements Evaluator.
// This is the Go answer to the Context↔Value↔Function cycle spec.md §9
// calls out: instead of a weak back-reference, the cyclic dependency
// is broken at compile time by an interface.
type Evaluator interface {
	VisitNode(node ast.Node, ctx *Context) *RTResult
}

// base is embedded by every concrete Value to supply the common
// pos/context fields and methods, avoiding repeating them on every
// variant (the Go analogue of the original's shared `Value` base class).
type base struct {
	posStart, posEnd rterror.Position
	ctx              *Context
}

func (b *base) Pos() (rterror.Position, rterror.Position) { return b.posStart, b.posEnd }
func (b *base) Context() *Context                         { return b.ctx }

func (b *base) setPos(start, end rterror.Position) { b.posStart, b.posEnd = start, end }
func (b *base) setContext(ctx *Context)             { b.ctx = ctx }

// Doc returns "" by default; variants with meaningful documentation
// (built-in classes/instances, modules) override it.
func (b *base) Doc() string { return "" }
