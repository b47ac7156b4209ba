// Package lexer splits ono source into tokens. It scans grapheme
// clusters, not bytes, so composed and multi-byte characters occupy
// exactly one column and positions stay accurate for caret rendering.
package lexer

import (
	"strings"

	"github.com/rivo/uniseg"

	"ono/internal/diag"
	"ono/internal/token"
)

type Lexer struct {
	graphemes []string
	tokens    []token.Token
	errors    []*diag.Error

	start     int // first grapheme of the token being read
	current   int // read head
	line      int
	columnEnd int // column of current, i.e. the lexeme's end
}

func New(src string) *Lexer {
	l := &Lexer{}
	g := uniseg.NewGraphemes(src)
	for g.Next() {
		l.graphemes = append(l.graphemes, g.Str())
	}
	return l
}

// Tokenize runs a single forward pass over the source. Unrecognized
// graphemes and unterminated strings are recorded and scanning
// continues, so one call reports every lexical error. The token slice
// always ends with a synthetic EOF token; it is only returned as valid
// when no errors were collected.
func (l *Lexer) Tokenize() ([]token.Token, []*diag.Error) {
	for !l.atEnd() {
		l.start = l.current
		l.scanToken()
	}

	l.tokens = append(l.tokens, token.Token{
		Kind:   token.EOF,
		Lexeme: "\n",
		Pos:    token.Position{Line: l.line + 1, Column: 0},
	})

	if len(l.errors) > 0 {
		return nil, l.errors
	}
	return l.tokens, nil
}

func (l *Lexer) atEnd() bool {
	return l.current >= len(l.graphemes)
}

func (l *Lexer) advance() string {
	g := l.peek()
	l.current++
	l.columnEnd++
	if g == "\n" {
		l.line++
		l.columnEnd = 0
	}
	return g
}

func (l *Lexer) peek() string {
	if l.current >= len(l.graphemes) {
		return "\x00"
	}
	return l.graphemes[l.current]
}

func (l *Lexer) peekNext() string {
	if l.current+1 >= len(l.graphemes) {
		return "\x00"
	}
	return l.graphemes[l.current+1]
}

func (l *Lexer) match(expected string) bool {
	if l.atEnd() || l.graphemes[l.current] != expected {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) lexeme() string {
	return strings.Join(l.graphemes[l.start:l.current], "")
}

// pos is the position of the token being read: its end column minus
// its grapheme length.
func (l *Lexer) pos() token.Position {
	return token.Position{Line: l.line, Column: l.columnEnd - (l.current - l.start)}
}

func (l *Lexer) add(kind token.Kind) {
	l.tokens = append(l.tokens, token.Token{Kind: kind, Lexeme: l.lexeme(), Pos: l.pos()})
}

func (l *Lexer) scanToken() {
	c := l.advance()

	switch c {
	case " ", "\t", "\r", "\n":
	case "(":
		l.add(token.LParen)
	case ")":
		l.add(token.RParen)
	case "{":
		l.add(token.LBrace)
	case "}":
		l.add(token.RBrace)
	case "-":
		l.add(token.Minus)
	case "+":
		l.add(token.Plus)
	case "*":
		l.add(token.Star)
	case "/":
		l.add(token.Slash)
	case ",":
		l.add(token.Comma)
	case ":":
		l.add(token.Colon)
	case ";":
		l.add(token.Semicolon)
	case ".":
		if l.match(".") {
			l.add(token.DotDot)
		} else {
			l.unexpected(c)
		}
	case "!":
		if l.match("=") {
			l.add(token.BangEq)
		} else {
			l.add(token.Bang)
		}
	case "=":
		if l.match("=") {
			l.add(token.Eq)
		} else {
			l.add(token.Assign)
		}
	case "<":
		if l.match("=") {
			l.add(token.LessEq)
		} else {
			l.add(token.Less)
		}
	case ">":
		if l.match("=") {
			l.add(token.GreaterEq)
		} else {
			l.add(token.Greater)
		}
	case "#":
		for !l.atEnd() && l.peek() != "\n" {
			l.advance()
		}
	case "\"":
		l.scanString()
	default:
		switch {
		case isDigit(c):
			l.scanNumber()
		case isAlpha(c):
			l.scanIdent()
		default:
			l.unexpected(c)
		}
	}
}

func (l *Lexer) unexpected(g string) {
	l.errors = append(l.errors, diag.SyntaxError(diag.UnexpectedSymbol, token.Token{
		Kind:   token.Unknown,
		Lexeme: g,
		Pos:    l.pos(),
	}))
}

// scanString reads to the closing quote. Strings may span lines and
// have no escape sequences; an unterminated string is reported at the
// opening quote.
func (l *Lexer) scanString() {
	openLine := l.line
	openColumn := l.columnEnd - 1

	for l.peek() != "\"" && !l.atEnd() {
		l.advance()
	}

	if l.atEnd() {
		l.errors = append(l.errors, diag.SyntaxError(diag.UntermString, token.Token{
			Kind:   token.Unknown,
			Lexeme: "\"",
			Pos:    token.Position{Line: openLine, Column: openColumn},
		}))
		return
	}

	l.advance() // closing quote
	l.add(token.String)
}

// scanNumber reads an integer or decimal literal. No exponent form;
// the dot is only consumed when a digit follows, so `1..5` lexes as
// two numbers around a DotDot.
func (l *Lexer) scanNumber() {
	for isDigit(l.peek()) {
		l.advance()
	}

	if l.peek() == "." && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	l.add(token.Number)
}

func (l *Lexer) scanIdent() {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}
	l.add(token.LookupIdent(l.lexeme()))
}

func isDigit(g string) bool {
	return len(g) == 1 && g[0] >= '0' && g[0] <= '9'
}

func isAlpha(g string) bool {
	if len(g) != 1 {
		return false
	}
	c := g[0]
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isAlphaNumeric(g string) bool {
	return isDigit(g) || isAlpha(g)
}
