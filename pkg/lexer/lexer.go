// Package lexer implements the lexical analyzer (tokenizer) for Radon.
//
// This is the "textbook work" spec.md §1 names as out of scope for the
// runtime core's design effort, but the module loader's run() pipeline
// (pkg/runtime) still needs a concrete Lexer to hand tokens to the
// Parser, so this package supplies one. It keeps the teacher's
// (pkg/lexer in kristofer-smog) manual byte-scanner shape: a
// position/readPosition/ch trio, a NextToken switch, and a MakeTokens
// convenience wrapper — generalized from smog's Smalltalk token set to
// Radon's keywords, operators and delimiters (pkg/token).
package lexer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/kristofer/radon/pkg/rterror"
	"github.com/kristofer/radon/pkg/token"
)

// Lexer scans Radon source text into a stream of token.Tokens.
type Lexer struct {
	fileName     string
	input        string
	position     int
	readPosition int
	ch           byte
	pos          rterror.Position
}

// New creates a Lexer for fileName's text.
func New(fileName, input string) *Lexer {
	l := &Lexer{
		fileName: fileName,
		input:    input,
		pos:      rterror.NewPosition(fileName, 0, -1, -1),
	}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.pos = l.pos.Advance(l.ch)
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// MakeTokens scans the whole input, returning an IllegalCharError on
// the first unrecognized character (spec.md §7's KindIllegalChar).
func (l *Lexer) MakeTokens() ([]token.Token, *rterror.Error) {
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
		if tok.Type == token.ILLEGAL {
			return nil, rterror.New(rterror.KindIllegalChar, tok.Start, tok.End,
				fmt.Sprintf("'%s'", tok.Literal))
		}
	}
	return tokens, nil
}

// NextToken returns the next token.Token from the input.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	start := l.pos
	var tok token.Token

	switch l.ch {
	case 0:
		tok = l.simple(token.EOF, "")
	case '\n':
		tok = l.simple(token.NEWLINE, "\\n")
		l.readChar()
	case '"':
		lit, err := l.readString()
		if err {
			tok = token.Token{Type: token.ILLEGAL, Literal: lit, Start: start, End: l.pos}
			return tok
		}
		tok = token.Token{Type: token.STRING, Literal: lit, Start: start, End: l.pos}
		return tok
	case '+':
		tok = l.simple(token.PLUS, "+")
		l.readChar()
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			tok = l.simple(token.ARROW, "->")
			l.readChar()
		} else {
			tok = l.simple(token.MINUS, "-")
			l.readChar()
		}
	case '*':
		tok = l.simple(token.STAR, "*")
		l.readChar()
	case '/':
		tok = l.simple(token.SLASH, "/")
		l.readChar()
	case '%':
		tok = l.simple(token.PERCENT, "%")
		l.readChar()
	case '^':
		tok = l.simple(token.POW, "^")
		l.readChar()
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.simple(token.EQ, "==")
		} else {
			tok = l.simple(token.ASSIGN, "=")
		}
		l.readChar()
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.simple(token.NEQ, "!=")
			l.readChar()
		} else {
			tok = token.Token{Type: token.ILLEGAL, Literal: "!", Start: start, End: l.pos}
			l.readChar()
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.simple(token.LTE, "<=")
		} else {
			tok = l.simple(token.LT, "<")
		}
		l.readChar()
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.simple(token.GTE, ">=")
		} else {
			tok = l.simple(token.GT, ">")
		}
		l.readChar()
	case '(':
		tok = l.simple(token.LPAREN, "(")
		l.readChar()
	case ')':
		tok = l.simple(token.RPAREN, ")")
		l.readChar()
	case '{':
		tok = l.simple(token.LBRACE, "{")
		l.readChar()
	case '}':
		tok = l.simple(token.RBRACE, "}")
		l.readChar()
	case '[':
		tok = l.simple(token.LBRACKET, "[")
		l.readChar()
	case ']':
		tok = l.simple(token.RBRACKET, "]")
		l.readChar()
	case ',':
		tok = l.simple(token.COMMA, ",")
		l.readChar()
	case '.':
		tok = l.simple(token.DOT, ".")
		l.readChar()
	case ':':
		tok = l.simple(token.COLON, ":")
		l.readChar()
	case ';':
		tok = l.simple(token.SEMICOLON, ";")
		l.readChar()
	default:
		if isLetter(l.ch) {
			lit := l.readIdentifier()
			return token.Token{Type: token.Lookup(lit), Literal: lit, Start: start, End: l.pos}
		} else if isDigit(l.ch) {
			typ, lit := l.readNumber()
			return token.Token{Type: typ, Literal: lit, Start: start, End: l.pos}
		}
		tok = token.Token{Type: token.ILLEGAL, Literal: string(l.ch), Start: start, End: l.pos}
		l.readChar()
	}

	tok.Start = start
	tok.End = l.pos
	return tok
}

func (l *Lexer) simple(t token.Type, lit string) token.Token {
	return token.Token{Type: t, Literal: lit}
}

// skipWhitespaceAndComments skips spaces/tabs/carriage-returns and `#`
// line comments. Newlines are significant (they terminate statements)
// so they are tokenized rather than skipped.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
			l.readChar()
		}
		if l.ch == '#' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		break
	}
}

// readString reads a double-quoted string literal, interpreting the
// standard backslash escapes. It returns (literal text, sawError).
func (l *Lexer) readString() (string, bool) {
	l.readChar() // consume opening quote
	var b strings.Builder
	escapes := map[byte]byte{'n': '\n', 't': '\t', '"': '"', '\\': '\\', 'r': '\r'}
	for l.ch != '"' {
		if l.ch == 0 {
			return "unterminated string literal", true
		}
		if l.ch == '\\' {
			l.readChar()
			if e, ok := escapes[l.ch]; ok {
				b.WriteByte(e)
			} else {
				b.WriteByte(l.ch)
			}
		} else {
			b.WriteByte(l.ch)
		}
		l.readChar()
	}
	l.readChar() // consume closing quote
	return b.String(), false
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) readNumber() (token.Type, string) {
	start := l.position
	isFloat := false
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	lit := l.input[start:l.position]
	if isFloat {
		return token.FLOAT, lit
	}
	return token.INT, lit
}

func isLetter(ch byte) bool { return unicode.IsLetter(rune(ch)) || ch == '_' }
func isDigit(ch byte) bool  { return ch >= '0' && ch <= '9' }
