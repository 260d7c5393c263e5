package parser

import (
	"testing"

	"github.com/kristofer/radon/pkg/ast"
	"github.com/kristofer/radon/pkg/lexer"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	tokens, lerr := lexer.New("<test>", src).MakeTokens()
	if lerr != nil {
		t.Fatalf("lex error: %v", lerr)
	}
	prog, perr := New(tokens).Parse()
	if perr != nil {
		t.Fatalf("parse error: %v", perr)
	}
	return prog
}

func TestParse_LetStatement(t *testing.T) {
	prog := parse(t, "let a = 1 + 2")
	if len(prog.Statements) != 1 {
		t.Fatalf("statement count = %d", len(prog.Statements))
	}
	assign, ok := prog.Statements[0].(*ast.VarAssignNode)
	if !ok {
		t.Fatalf("got %T", prog.Statements[0])
	}
	if assign.Name != "a" || !assign.IsDeclaration {
		t.Fatalf("assign = %+v", assign)
	}
	if _, ok := assign.Value.(*ast.BinOpNode); !ok {
		t.Fatalf("value is %T", assign.Value)
	}
}

func TestParse_Precedence(t *testing.T) {
	prog := parse(t, "1 + 2 * 3")
	bin := prog.Statements[0].(*ast.BinOpNode)
	if bin.Op != "+" {
		t.Fatalf("root op = %s", bin.Op)
	}
	right, ok := bin.Right.(*ast.BinOpNode)
	if !ok || right.Op != "*" {
		t.Fatalf("right = %+v", bin.Right)
	}
}

func TestParse_PowerRightAssociative(t *testing.T) {
	prog := parse(t, "2 ^ 3 ^ 2")
	bin := prog.Statements[0].(*ast.BinOpNode)
	if bin.Op != "^" {
		t.Fatalf("root op = %s", bin.Op)
	}
	if right, ok := bin.Right.(*ast.BinOpNode); !ok || right.Op != "^" {
		t.Fatalf("power must nest to the right, got %+v", bin.Right)
	}
}

func TestParse_FuncDefWithDefault(t *testing.T) {
	prog := parse(t, "fun f(x, y=2) -> x + y")
	fn := prog.Statements[0].(*ast.FuncDefNode)
	if fn.Name != "f" || len(fn.ArgNames) != 2 {
		t.Fatalf("fn = %+v", fn)
	}
	if fn.Defaults[0] != nil {
		t.Fatal("x must be required")
	}
	if fn.Defaults[1] == nil {
		t.Fatal("y must have a default")
	}
	if !fn.ShouldAutoReturn {
		t.Fatal("arrow body must auto-return")
	}
}

func TestParse_BraceBodyDoesNotAutoReturn(t *testing.T) {
	prog := parse(t, "fun f() { return 1 }")
	fn := prog.Statements[0].(*ast.FuncDefNode)
	if fn.ShouldAutoReturn {
		t.Fatal("brace body must not auto-return")
	}
}

func TestParse_IfElifElse(t *testing.T) {
	prog := parse(t, "if a { 1 } elif b { 2 } else { 3 }")
	ifNode := prog.Statements[0].(*ast.IfNode)
	if len(ifNode.Cases) != 2 || ifNode.ElseCase == nil {
		t.Fatalf("cases = %d, else = %v", len(ifNode.Cases), ifNode.ElseCase)
	}
	if !ifNode.Cases[0].ShouldReturnNull {
		t.Fatal("brace if-case must yield null")
	}
}

func TestParse_ArrowIfYieldsValue(t *testing.T) {
	prog := parse(t, "if a -> 1 else -> 2")
	ifNode := prog.Statements[0].(*ast.IfNode)
	if ifNode.Cases[0].ShouldReturnNull {
		t.Fatal("arrow if-case must yield its value")
	}
}

func TestParse_CallWithKwargs(t *testing.T) {
	prog := parse(t, "f(1, y: 2)")
	call := prog.Statements[0].(*ast.CallNode)
	if len(call.Args) != 1 {
		t.Fatalf("positional args = %d", len(call.Args))
	}
	if _, ok := call.Kwargs["y"]; !ok {
		t.Fatal("missing kwarg y")
	}
}

func TestParse_PostfixChain(t *testing.T) {
	prog := parse(t, "a.b[0](1)")
	call, ok := prog.Statements[0].(*ast.CallNode)
	if !ok {
		t.Fatalf("got %T", prog.Statements[0])
	}
	index, ok := call.Callee.(*ast.IndexNode)
	if !ok {
		t.Fatalf("callee = %T", call.Callee)
	}
	if _, ok := index.Target.(*ast.AttrAccessNode); !ok {
		t.Fatalf("index target = %T", index.Target)
	}
}

func TestParse_IndexAssign(t *testing.T) {
	prog := parse(t, "a[0] = 5")
	if _, ok := prog.Statements[0].(*ast.IndexAssignNode); !ok {
		t.Fatalf("got %T", prog.Statements[0])
	}
}

func TestParse_ClassDef(t *testing.T) {
	prog := parse(t, `class Point {
	fun __constructor__(x, y) {
		this.x = x
		this.y = y
	}
	fun sum() -> this.x + this.y
}`)
	class := prog.Statements[0].(*ast.ClassDefNode)
	if class.Name != "Point" || len(class.Methods) != 2 {
		t.Fatalf("class = %+v", class)
	}
}

func TestParse_SyntaxError(t *testing.T) {
	tokens, lerr := lexer.New("<test>", "let = 1").MakeTokens()
	if lerr != nil {
		t.Fatal(lerr)
	}
	if _, perr := New(tokens).Parse(); perr == nil {
		t.Fatal("expected syntax error")
	}
}
