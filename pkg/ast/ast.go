// Package ast defines the Abstract Syntax Tree nodes the Radon parser
// produces and the tree-walking interpreter visits. It carries over
// the teacher's (kristofer-smog, pkg/ast) Node/Expression/Statement
// interface split, generalized from Smalltalk message sends to Radon's
// expression/statement grammar (spec.md names this grammar only via
// its contract — §1 calls it "standard textbook work, not visible in
// this slice" — so the node set here is the minimum the runtime core's
// call/operator protocol needs to exercise).
package ast

import "github.com/kristofer/radon/pkg/rterror"

// Node is the interface every AST node implements.
type Node interface {
	Start() rterror.Position
	End() rterror.Position
}

// Base provides Start/End storage for every concrete node. It is
// exported (unlike the teacher's unexported embedding) because
// pkg/parser, a different package, constructs nodes directly rather
// than through per-node factory functions.
type Base struct {
	StartPos rterror.Position
	EndPos   rterror.Position
}

// NewBase builds a Base spanning [start, end].
func NewBase(start, end rterror.Position) Base { return Base{StartPos: start, EndPos: end} }

func (b Base) Start() rterror.Position { return b.StartPos }
func (b Base) End() rterror.Position   { return b.EndPos }

// Program is the root node: a sequence of statements.
type Program struct {
	Base
	Statements []Node
}

// NumberNode is an integer or float literal.
type NumberNode struct {
	Base
	IsInt    bool
	IntValue int64
	FltValue float64
}

// StringNode is a string literal.
type StringNode struct {
	Base
	Value string
}

// BoolNode is a boolean literal.
type BoolNode struct {
	Base
	Value bool
}

// NullNode is the `null` literal.
type NullNode struct{ Base }

// ArrayNode is an `[a, b, c]` literal.
type ArrayNode struct {
	Base
	Elements []Node
}

// HashMapNode is a `{k: v, ...}` literal.
type HashMapNode struct {
	Base
	Keys   []Node
	Values []Node
}

// VarAccessNode reads an identifier.
type VarAccessNode struct {
	Base
	Name string
}

// VarAssignNode is `let name = expr` or a bare `name = expr` rebind.
type VarAssignNode struct {
	Base
	Name          string
	Value         Node
	IsDeclaration bool
}

// AttrAccessNode is `target.name`.
type AttrAccessNode struct {
	Base
	Target Node
	Name   string
}

// AttrAssignNode is `target.name = expr`.
type AttrAssignNode struct {
	Base
	Target Node
	Name   string
	Value  Node
}

// IndexNode is `target[index]`.
type IndexNode struct {
	Base
	Target Node
	Index  Node
}

// IndexAssignNode is `target[index] = expr`.
type IndexAssignNode struct {
	Base
	Target Node
	Index  Node
	Value  Node
}

// BinOpNode is a binary operator expression.
type BinOpNode struct {
	Base
	Op          string
	Left, Right Node
}

// UnaryOpNode is a unary operator expression (`-x`, `not x`).
type UnaryOpNode struct {
	Base
	Op   string
	Node Node
}

// IfCase is one `if`/`elif` arm.
type IfCase struct {
	Condition Node
	Body      Node
	ShouldReturnNull bool
}

// IfNode is an if/elif/else chain.
type IfNode struct {
	Base
	Cases    []IfCase
	ElseCase *IfCase
}

// ForNode is `for name = start to end step s { body }`.
type ForNode struct {
	Base
	VarName                    string
	StartValue, EndValue, Step Node
	Body                       Node
	ShouldReturnNull           bool
}

// WhileNode is `while cond { body }`.
type WhileNode struct {
	Base
	Condition        Node
	Body             Node
	ShouldReturnNull bool
}

// FuncDefNode is `fun name(args) -> expr` or `fun name(args) { body }`.
type FuncDefNode struct {
	Base
	Name             string // empty for anonymous functions
	ArgNames         []string
	Defaults         []Node // nil entry means required
	Body             Node
	ShouldAutoReturn bool
}

// CallNode is `callee(args)`.
type CallNode struct {
	Base
	Callee Node
	Args   []Node
	Kwargs map[string]Node
}

// ReturnNode is `return expr?`.
type ReturnNode struct {
	Base
	Value Node // nil for bare `return`
}

// BreakNode is `break`.
type BreakNode struct{ Base }

// ContinueNode is `continue`.
type ContinueNode struct{ Base }

// ContinueOuterNode is `continue_outer`.
type ContinueOuterNode struct{ Base }

// ClassDefNode is `class Name (extends Parent) { methods }`.
type ClassDefNode struct {
	Base
	Name    string
	Parent  string // empty if no explicit parent
	Methods []*FuncDefNode
}

// ListNode groups statements in a `{ ... }` block.
type ListNode struct {
	Base
	Statements []Node
}
