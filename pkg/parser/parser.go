// Package parser implements the Radon parser.
//
// Like pkg/lexer, this is the "external collaborator" spec.md §1 treats
// as out of scope for the runtime core's design effort — but the
// module loader (pkg/runtime) needs a concrete Parser to hand an AST to
// the Interpreter, so this package supplies one.
//
// Architecture carried over from the teacher (kristofer-smog,
// pkg/parser): recursive descent and a two-token lookahead window
// (curTok/peekTok). Unlike smog's parser, which collects every error,
// this one keeps no error list: parsing stops at the first syntax
// error and returns it.
//
// Grammar (simplified, statement separators are NEWLINE or `;`):
//
//	program    := statement*
//	statement  := "let" IDENT "=" expr
//	            | "return" expr?
//	            | "break" | "continue" | "continue_outer"
//	            | "fun" IDENT "(" params ")" funcBody
//	            | "class" IDENT ("extends" IDENT)? "{" method* "}"
//	            | "if" expr block ("elif" expr block)* ("else" block)?
//	            | "for" IDENT "=" expr "to" expr ("step" expr)? block
//	            | "while" expr block
//	            | expr
//	expr       := assign
//	assign     := (IDENT | postfix "." IDENT | postfix "[" expr "]") "=" assign | or
//	or         := and ("or" and)*
//	and        := not ("and" not)*
//	not        := "not" not | comparison
//	comparison := additive (("==" | "!=" | "<" | ">" | "<=" | ">=") additive)*
//	additive   := multiplicative (("+" | "-") multiplicative)*
//	multiplic. := power (("*" | "/" | "%") power)*
//	power      := unary ("^" unary)*
//	unary      := "-" unary | postfix
//	postfix    := atom ("(" args ")" | "." IDENT | "[" expr "]")*
//	atom       := INT | FLOAT | STRING | "true" | "false" | "null"
//	            | IDENT | "(" expr ")" | "[" exprList "]" | "{" pairs "}"
//	            | "fun" "(" params ")" funcBody
package parser

import (
	"fmt"

	"github.com/kristofer/radon/pkg/ast"
	"github.com/kristofer/radon/pkg/rterror"
	"github.com/kristofer/radon/pkg/token"
)

// Parser turns a token slice into an *ast.Program.
type Parser struct {
	tokens  []token.Token
	pos     int
	curTok  token.Token
	peekTok token.Token
}

// New creates a Parser over tokens (as produced by lexer.MakeTokens).
func New(tokens []token.Token) *Parser {
	p := &Parser{tokens: tokens, pos: -1}
	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.curTok = p.peekTok
	p.pos++
	if p.pos < len(p.tokens) {
		p.peekTok = p.tokens[p.pos]
	} else {
		p.peekTok = token.Token{Type: token.EOF}
	}
}

func (p *Parser) skipNewlines() {
	for p.curTok.Type == token.NEWLINE || p.curTok.Type == token.SEMICOLON {
		p.advance()
	}
}

// Parse runs the parser to completion, returning the Program or the
// first syntax error encountered.
func (p *Parser) Parse() (*ast.Program, *rterror.Error) {
	start := p.curTok.Start
	var stmts []ast.Node
	p.skipNewlines()
	for p.curTok.Type != token.EOF {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		p.skipNewlines()
	}
	end := p.curTok.End
	return &ast.Program{Statements: stmts, Base: ast.NewBase(start, end)}, nil
}


func syntaxErr(tok token.Token, msg string) *rterror.Error {
	return rterror.New(rterror.KindInvalidSyntax, tok.Start, tok.End, msg)
}

func (p *Parser) expect(t token.Type, what string) (token.Token, *rterror.Error) {
	if p.curTok.Type != t {
		return token.Token{}, syntaxErr(p.curTok, fmt.Sprintf("expected %s, got %s", what, p.curTok.Type))
	}
	tok := p.curTok
	p.advance()
	return tok, nil
}

// ---- statements ----------------------------------------------------

func (p *Parser) statement() (ast.Node, *rterror.Error) {
	switch p.curTok.Type {
	case token.LET:
		return p.letStatement()
	case token.RETURN:
		return p.returnStatement()
	case token.BREAK:
		tok := p.curTok
		p.advance()
		return &ast.BreakNode{Base: ast.NewBase(tok.Start, tok.End)}, nil
	case token.CONTINUE:
		tok := p.curTok
		p.advance()
		return &ast.ContinueNode{Base: ast.NewBase(tok.Start, tok.End)}, nil
	case token.CONTINUE_OUTER:
		tok := p.curTok
		p.advance()
		return &ast.ContinueOuterNode{Base: ast.NewBase(tok.Start, tok.End)}, nil
	case token.FUN:
		return p.funcDef()
	case token.CLASS:
		return p.classDef()
	case token.IF:
		return p.ifExpr()
	case token.FOR:
		return p.forExpr()
	case token.WHILE:
		return p.whileExpr()
	default:
		return p.expr()
	}
}

func (p *Parser) letStatement() (ast.Node, *rterror.Error) {
	start := p.curTok.Start
	p.advance() // consume "let"
	name, err := p.expect(token.IDENT, "identifier")
	if err != nil {
		return nil, err
	}
	if _, aerr := p.expect(token.ASSIGN, "'='"); aerr != nil {
		return nil, aerr
	}
	value, verr := p.expr()
	if verr != nil {
		return nil, verr
	}
	return &ast.VarAssignNode{Name: name.Literal, Value: value, IsDeclaration: true,
		Base: ast.NewBase(start, value.End())}, nil
}

func (p *Parser) returnStatement() (ast.Node, *rterror.Error) {
	start := p.curTok.Start
	p.advance()
	if p.atStatementEnd() {
		return &ast.ReturnNode{Base: ast.NewBase(start, start)}, nil
	}
	value, err := p.expr()
	if err != nil {
		return nil, err
	}
	return &ast.ReturnNode{Value: value, Base: ast.NewBase(start, value.End())}, nil
}

func (p *Parser) atStatementEnd() bool {
	switch p.curTok.Type {
	case token.NEWLINE, token.SEMICOLON, token.EOF, token.RBRACE:
		return true
	}
	return false
}

// block parses either `{ stmt* }` or a single expression following `->`.
func (p *Parser) block() (ast.Node, bool, *rterror.Error) {
	if p.curTok.Type == token.ARROW {
		p.advance()
		expr, err := p.expr()
		if err != nil {
			return nil, false, err
		}
		return expr, true, nil
	}
	start := p.curTok.Start
	if _, err := p.expect(token.LBRACE, "'{'"); err != nil {
		return nil, false, err
	}
	p.skipNewlines()
	var stmts []ast.Node
	for p.curTok.Type != token.RBRACE && p.curTok.Type != token.EOF {
		stmt, err := p.statement()
		if err != nil {
			return nil, false, err
		}
		stmts = append(stmts, stmt)
		p.skipNewlines()
	}
	end := p.curTok.End
	if _, err := p.expect(token.RBRACE, "'}'"); err != nil {
		return nil, false, err
	}
	return &ast.ListNode{Statements: stmts, Base: ast.NewBase(start, end)}, false, nil
}

func (p *Parser) ifExpr() (ast.Node, *rterror.Error) {
	start := p.curTok.Start
	var cases []ast.IfCase
	var elseCase *ast.IfCase

	p.advance() // "if"
	for {
		cond, err := p.expr()
		if err != nil {
			return nil, err
		}
		body, isArrow, err := p.block()
		if err != nil {
			return nil, err
		}
		cases = append(cases, ast.IfCase{Condition: cond, Body: body, ShouldReturnNull: !isArrow})
		if p.curTok.Type == token.ELIF {
			p.advance()
			continue
		}
		break
	}
	if p.curTok.Type == token.ELSE {
		p.advance()
		body, isArrow, err := p.block()
		if err != nil {
			return nil, err
		}
		elseCase = &ast.IfCase{Body: body, ShouldReturnNull: !isArrow}
	}
	end := p.curTok.Start
	return &ast.IfNode{Cases: cases, ElseCase: elseCase, Base: ast.NewBase(start, end)}, nil
}

func (p *Parser) forExpr() (ast.Node, *rterror.Error) {
	start := p.curTok.Start
	p.advance() // "for"
	name, err := p.expect(token.IDENT, "identifier")
	if err != nil {
		return nil, err
	}
	if _, aerr := p.expect(token.ASSIGN, "'='"); aerr != nil {
		return nil, aerr
	}
	from, ferr := p.expr()
	if ferr != nil {
		return nil, ferr
	}
	if _, terr := p.expect(token.TO, "'to'"); terr != nil {
		return nil, terr
	}
	to, toerr := p.expr()
	if toerr != nil {
		return nil, toerr
	}
	var step ast.Node
	if p.curTok.Type == token.STEP {
		p.advance()
		step, err = p.expr()
		if err != nil {
			return nil, err
		}
	}
	body, isArrow, berr := p.block()
	if berr != nil {
		return nil, berr
	}
	return &ast.ForNode{VarName: name.Literal, StartValue: from, EndValue: to, Step: step,
		Body: body, ShouldReturnNull: !isArrow, Base: ast.NewBase(start, body.End())}, nil
}

func (p *Parser) whileExpr() (ast.Node, *rterror.Error) {
	start := p.curTok.Start
	p.advance() // "while"
	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	body, isArrow, berr := p.block()
	if berr != nil {
		return nil, berr
	}
	return &ast.WhileNode{Condition: cond, Body: body, ShouldReturnNull: !isArrow,
		Base: ast.NewBase(start, body.End())}, nil
}

func (p *Parser) paramList() ([]string, []ast.Node, *rterror.Error) {
	if _, err := p.expect(token.LPAREN, "'('"); err != nil {
		return nil, nil, err
	}
	var names []string
	var defaults []ast.Node
	for p.curTok.Type != token.RPAREN {
		name, err := p.expect(token.IDENT, "parameter name")
		if err != nil {
			return nil, nil, err
		}
		names = append(names, name.Literal)
		if p.curTok.Type == token.ASSIGN {
			p.advance()
			def, derr := p.expr()
			if derr != nil {
				return nil, nil, derr
			}
			defaults = append(defaults, def)
		} else {
			defaults = append(defaults, nil)
		}
		if p.curTok.Type == token.COMMA {
			p.advance()
		} else {
			break
		}
	}
	if _, err := p.expect(token.RPAREN, "')'"); err != nil {
		return nil, nil, err
	}
	return names, defaults, nil
}

func (p *Parser) funcDef() (*ast.FuncDefNode, *rterror.Error) {
	start := p.curTok.Start
	p.advance() // "fun"
	name := ""
	if p.curTok.Type == token.IDENT {
		name = p.curTok.Literal
		p.advance()
	}
	names, defaults, err := p.paramList()
	if err != nil {
		return nil, err
	}
	body, autoReturn, berr := p.block()
	if berr != nil {
		return nil, berr
	}
	return &ast.FuncDefNode{Name: name, ArgNames: names, Defaults: defaults, Body: body,
		ShouldAutoReturn: autoReturn, Base: ast.NewBase(start, body.End())}, nil
}

func (p *Parser) classDef() (ast.Node, *rterror.Error) {
	start := p.curTok.Start
	p.advance() // "class"
	name, err := p.expect(token.IDENT, "class name")
	if err != nil {
		return nil, err
	}
	parent := ""
	if p.curTok.Type == token.EXTENDS {
		p.advance()
		parentTok, perr := p.expect(token.IDENT, "parent class name")
		if perr != nil {
			return nil, perr
		}
		parent = parentTok.Literal
	}
	if _, lerr := p.expect(token.LBRACE, "'{'"); lerr != nil {
		return nil, lerr
	}
	p.skipNewlines()
	var methods []*ast.FuncDefNode
	for p.curTok.Type != token.RBRACE && p.curTok.Type != token.EOF {
		if p.curTok.Type != token.FUN {
			return nil, syntaxErr(p.curTok, "expected method definition")
		}
		m, merr := p.funcDef()
		if merr != nil {
			return nil, merr
		}
		methods = append(methods, m)
		p.skipNewlines()
	}
	end := p.curTok.End
	if _, rerr := p.expect(token.RBRACE, "'}'"); rerr != nil {
		return nil, rerr
	}
	return &ast.ClassDefNode{Name: name.Literal, Parent: parent, Methods: methods, Base: ast.NewBase(start, end)}, nil
}

// ---- expressions -----------------------------------------------------

func (p *Parser) expr() (ast.Node, *rterror.Error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Node, *rterror.Error) {
	left, err := p.orExpr()
	if err != nil {
		return nil, err
	}
	if p.curTok.Type != token.ASSIGN {
		return left, nil
	}
	switch target := left.(type) {
	case *ast.VarAccessNode:
		p.advance()
		value, verr := p.assignment()
		if verr != nil {
			return nil, verr
		}
		return &ast.VarAssignNode{Name: target.Name, Value: value, Base: ast.NewBase(left.Start(), value.End())}, nil
	case *ast.AttrAccessNode:
		p.advance()
		value, verr := p.assignment()
		if verr != nil {
			return nil, verr
		}
		return &ast.AttrAssignNode{Target: target.Target, Name: target.Name, Value: value,
			Base: ast.NewBase(left.Start(), value.End())}, nil
	case *ast.IndexNode:
		p.advance()
		value, verr := p.assignment()
		if verr != nil {
			return nil, verr
		}
		return &ast.IndexAssignNode{Target: target.Target, Index: target.Index, Value: value,
			Base: ast.NewBase(left.Start(), value.End())}, nil
	default:
		return nil, syntaxErr(p.curTok, "invalid assignment target")
	}
}

func (p *Parser) orExpr() (ast.Node, *rterror.Error) {
	left, err := p.andExpr()
	if err != nil {
		return nil, err
	}
	for p.curTok.Type == token.OR {
		p.advance()
		right, rerr := p.andExpr()
		if rerr != nil {
			return nil, rerr
		}
		left = &ast.BinOpNode{Op: "or", Left: left, Right: right, Base: ast.NewBase(left.Start(), right.End())}
	}
	return left, nil
}

func (p *Parser) andExpr() (ast.Node, *rterror.Error) {
	left, err := p.notExpr()
	if err != nil {
		return nil, err
	}
	for p.curTok.Type == token.AND {
		p.advance()
		right, rerr := p.notExpr()
		if rerr != nil {
			return nil, rerr
		}
		left = &ast.BinOpNode{Op: "and", Left: left, Right: right, Base: ast.NewBase(left.Start(), right.End())}
	}
	return left, nil
}

func (p *Parser) notExpr() (ast.Node, *rterror.Error) {
	if p.curTok.Type == token.NOT {
		start := p.curTok.Start
		p.advance()
		operand, err := p.notExpr()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOpNode{Op: "not", Node: operand, Base: ast.NewBase(start, operand.End())}, nil
	}
	return p.comparison()
}

var comparisonOps = map[token.Type]string{
	token.EQ: "==", token.NEQ: "!=", token.LT: "<", token.GT: ">", token.LTE: "<=", token.GTE: ">=",
}

func (p *Parser) comparison() (ast.Node, *rterror.Error) {
	left, err := p.additive()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := comparisonOps[p.curTok.Type]
		if !ok {
			break
		}
		p.advance()
		right, rerr := p.additive()
		if rerr != nil {
			return nil, rerr
		}
		left = &ast.BinOpNode{Op: op, Left: left, Right: right, Base: ast.NewBase(left.Start(), right.End())}
	}
	return left, nil
}

func (p *Parser) additive() (ast.Node, *rterror.Error) {
	left, err := p.multiplicative()
	if err != nil {
		return nil, err
	}
	for p.curTok.Type == token.PLUS || p.curTok.Type == token.MINUS {
		op := "+"
		if p.curTok.Type == token.MINUS {
			op = "-"
		}
		p.advance()
		right, rerr := p.multiplicative()
		if rerr != nil {
			return nil, rerr
		}
		left = &ast.BinOpNode{Op: op, Left: left, Right: right, Base: ast.NewBase(left.Start(), right.End())}
	}
	return left, nil
}

func (p *Parser) multiplicative() (ast.Node, *rterror.Error) {
	left, err := p.power()
	if err != nil {
		return nil, err
	}
	for p.curTok.Type == token.STAR || p.curTok.Type == token.SLASH || p.curTok.Type == token.PERCENT {
		var op string
		switch p.curTok.Type {
		case token.STAR:
			op = "*"
		case token.SLASH:
			op = "/"
		case token.PERCENT:
			op = "%"
		}
		p.advance()
		right, rerr := p.power()
		if rerr != nil {
			return nil, rerr
		}
		left = &ast.BinOpNode{Op: op, Left: left, Right: right, Base: ast.NewBase(left.Start(), right.End())}
	}
	return left, nil
}

func (p *Parser) power() (ast.Node, *rterror.Error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	if p.curTok.Type == token.POW {
		p.advance()
		right, rerr := p.power() // right-associative
		if rerr != nil {
			return nil, rerr
		}
		return &ast.BinOpNode{Op: "^", Left: left, Right: right, Base: ast.NewBase(left.Start(), right.End())}, nil
	}
	return left, nil
}

func (p *Parser) unary() (ast.Node, *rterror.Error) {
	if p.curTok.Type == token.MINUS {
		start := p.curTok.Start
		p.advance()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOpNode{Op: "-", Node: operand, Base: ast.NewBase(start, operand.End())}, nil
	}
	return p.postfix()
}

func (p *Parser) postfix() (ast.Node, *rterror.Error) {
	node, err := p.atom()
	if err != nil {
		return nil, err
	}
	for {
		switch p.curTok.Type {
		case token.LPAREN:
			args, kwargs, cerr := p.callArgs()
			if cerr != nil {
				return nil, cerr
			}
			node = &ast.CallNode{Callee: node, Args: args, Kwargs: kwargs, Base: ast.NewBase(node.Start(), p.curTok.Start)}
		case token.DOT:
			p.advance()
			name, nerr := p.expect(token.IDENT, "attribute name")
			if nerr != nil {
				return nil, nerr
			}
			node = &ast.AttrAccessNode{Target: node, Name: name.Literal, Base: ast.NewBase(node.Start(), name.End)}
		case token.LBRACKET:
			p.advance()
			index, ierr := p.expr()
			if ierr != nil {
				return nil, ierr
			}
			end, rerr := p.expect(token.RBRACKET, "']'")
			if rerr != nil {
				return nil, rerr
			}
			node = &ast.IndexNode{Target: node, Index: index, Base: ast.NewBase(node.Start(), end.End)}
		default:
			return node, nil
		}
	}
}

func (p *Parser) callArgs() ([]ast.Node, map[string]ast.Node, *rterror.Error) {
	p.advance() // "("
	var args []ast.Node
	var kwargs map[string]ast.Node
	for p.curTok.Type != token.RPAREN {
		if p.curTok.Type == token.IDENT && p.peekTok.Type == token.COLON {
			name := p.curTok.Literal
			p.advance()
			p.advance()
			value, verr := p.expr()
			if verr != nil {
				return nil, nil, verr
			}
			if kwargs == nil {
				kwargs = make(map[string]ast.Node)
			}
			kwargs[name] = value
		} else {
			arg, aerr := p.expr()
			if aerr != nil {
				return nil, nil, aerr
			}
			args = append(args, arg)
		}
		if p.curTok.Type == token.COMMA {
			p.advance()
		} else {
			break
		}
	}
	if _, err := p.expect(token.RPAREN, "')'"); err != nil {
		return nil, nil, err
	}
	return args, kwargs, nil
}

func (p *Parser) atom() (ast.Node, *rterror.Error) {
	tok := p.curTok
	switch tok.Type {
	case token.INT:
		p.advance()
		return parseIntLiteral(tok)
	case token.FLOAT:
		p.advance()
		return parseFloatLiteral(tok)
	case token.STRING:
		p.advance()
		return &ast.StringNode{Value: tok.Literal, Base: ast.NewBase(tok.Start, tok.End)}, nil
	case token.TRUE:
		p.advance()
		return &ast.BoolNode{Value: true, Base: ast.NewBase(tok.Start, tok.End)}, nil
	case token.FALSE:
		p.advance()
		return &ast.BoolNode{Value: false, Base: ast.NewBase(tok.Start, tok.End)}, nil
	case token.NULL:
		p.advance()
		return &ast.NullNode{Base: ast.NewBase(tok.Start, tok.End)}, nil
	case token.IDENT:
		p.advance()
		return &ast.VarAccessNode{Name: tok.Literal, Base: ast.NewBase(tok.Start, tok.End)}, nil
	case token.LPAREN:
		p.advance()
		node, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, rerr := p.expect(token.RPAREN, "')'"); rerr != nil {
			return nil, rerr
		}
		return node, nil
	case token.LBRACKET:
		return p.arrayLiteral()
	case token.LBRACE:
		return p.hashmapLiteral()
	case token.FUN:
		return p.funcDef()
	default:
		return nil, syntaxErr(tok, "expected expression")
	}
}

func (p *Parser) arrayLiteral() (ast.Node, *rterror.Error) {
	start := p.curTok.Start
	p.advance() // "["
	var elems []ast.Node
	for p.curTok.Type != token.RBRACKET {
		elem, err := p.expr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
		if p.curTok.Type == token.COMMA {
			p.advance()
		} else {
			break
		}
	}
	end, err := p.expect(token.RBRACKET, "']'")
	if err != nil {
		return nil, err
	}
	return &ast.ArrayNode{Elements: elems, Base: ast.NewBase(start, end.End)}, nil
}

func (p *Parser) hashmapLiteral() (ast.Node, *rterror.Error) {
	start := p.curTok.Start
	p.advance() // "{"
	var keys, values []ast.Node
	for p.curTok.Type != token.RBRACE {
		key, kerr := p.expr()
		if kerr != nil {
			return nil, kerr
		}
		if _, cerr := p.expect(token.COLON, "':'"); cerr != nil {
			return nil, cerr
		}
		value, verr := p.expr()
		if verr != nil {
			return nil, verr
		}
		keys = append(keys, key)
		values = append(values, value)
		if p.curTok.Type == token.COMMA {
			p.advance()
		} else {
			break
		}
	}
	end, err := p.expect(token.RBRACE, "'}'")
	if err != nil {
		return nil, err
	}
	return &ast.HashMapNode{Keys: keys, Values: values, Base: ast.NewBase(start, end.End)}, nil
}

func parseIntLiteral(tok token.Token) (ast.Node, *rterror.Error) {
	var v int64
	for _, c := range tok.Literal {
		v = v*10 + int64(c-'0')
	}
	return &ast.NumberNode{IsInt: true, IntValue: v, Base: ast.NewBase(tok.Start, tok.End)}, nil
}

func parseFloatLiteral(tok token.Token) (ast.Node, *rterror.Error) {
	var intPart, fracPart int64
	var fracDigits int
	seenDot := false
	for _, c := range tok.Literal {
		if c == '.' {
			seenDot = true
			continue
		}
		if !seenDot {
			intPart = intPart*10 + int64(c-'0')
		} else {
			fracPart = fracPart*10 + int64(c-'0')
			fracDigits++
		}
	}
	div := 1.0
	for i := 0; i < fracDigits; i++ {
		div *= 10
	}
	return &ast.NumberNode{IsInt: false, FltValue: float64(intPart) + float64(fracPart)/div,
		Base: ast.NewBase(tok.Start, tok.End)}, nil
}
