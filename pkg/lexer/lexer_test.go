package lexer

import (
	"testing"

	"github.com/kristofer/radon/pkg/token"
)

func TestMakeTokens_Operators(t *testing.T) {
	input := `+ - * / % ^ = == != < > <= >= ->`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.PLUS, "+"},
		{token.MINUS, "-"},
		{token.STAR, "*"},
		{token.SLASH, "/"},
		{token.PERCENT, "%"},
		{token.POW, "^"},
		{token.ASSIGN, "="},
		{token.EQ, "=="},
		{token.NEQ, "!="},
		{token.LT, "<"},
		{token.GT, ">"},
		{token.LTE, "<="},
		{token.GTE, ">="},
		{token.ARROW, "->"},
		{token.EOF, ""},
	}

	tokens, err := New("<test>", input).MakeTokens()
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != len(tests) {
		t.Fatalf("token count = %d, want %d", len(tokens), len(tests))
	}
	for i, tt := range tests {
		if tokens[i].Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%s, got=%s",
				i, tt.expectedType, tokens[i].Type)
		}
		if tokens[i].Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tokens[i].Literal)
		}
	}
}

func TestMakeTokens_KeywordsAndLiterals(t *testing.T) {
	input := `let x = 42
fun f(a) -> a + 1.5
while true { break }`

	tokens, err := New("<test>", input).MakeTokens()
	if err != nil {
		t.Fatal(err)
	}

	want := []token.Type{
		token.LET, token.IDENT, token.ASSIGN, token.INT, token.NEWLINE,
		token.FUN, token.IDENT, token.LPAREN, token.IDENT, token.RPAREN,
		token.ARROW, token.IDENT, token.PLUS, token.FLOAT, token.NEWLINE,
		token.WHILE, token.TRUE, token.LBRACE, token.BREAK, token.RBRACE,
		token.EOF,
	}
	if len(tokens) != len(want) {
		t.Fatalf("token count = %d, want %d", len(tokens), len(want))
	}
	for i, w := range want {
		if tokens[i].Type != w {
			t.Fatalf("tokens[%d] = %s, want %s", i, tokens[i].Type, w)
		}
	}
}

func TestMakeTokens_StringEscapes(t *testing.T) {
	tokens, err := New("<test>", `"a\nb\"c"`).MakeTokens()
	if err != nil {
		t.Fatal(err)
	}
	if tokens[0].Type != token.STRING {
		t.Fatalf("got %s", tokens[0].Type)
	}
	if tokens[0].Literal != "a\nb\"c" {
		t.Fatalf("literal = %q", tokens[0].Literal)
	}
}

func TestMakeTokens_Comments(t *testing.T) {
	tokens, err := New("<test>", "1 # a comment\n2").MakeTokens()
	if err != nil {
		t.Fatal(err)
	}
	want := []token.Type{token.INT, token.NEWLINE, token.INT, token.EOF}
	if len(tokens) != len(want) {
		t.Fatalf("token count = %d, want %d", len(tokens), len(want))
	}
}

func TestMakeTokens_IllegalChar(t *testing.T) {
	_, err := New("<test>", "let a = @").MakeTokens()
	if err == nil {
		t.Fatal("expected IllegalCharError")
	}
}

func TestMakeTokens_Positions(t *testing.T) {
	tokens, err := New("<test>", "a\nbb").MakeTokens()
	if err != nil {
		t.Fatal(err)
	}
	if tokens[0].Start.Line != 0 {
		t.Fatalf("first token line = %d", tokens[0].Start.Line)
	}
	if tokens[2].Start.Line != 1 {
		t.Fatalf("token after newline line = %d", tokens[2].Start.Line)
	}
}
