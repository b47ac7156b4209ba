// Package diag holds the error model shared by every phase of the
// pipeline. An Error carries the offending token and enough payload to
// name the operands involved; presentation details (filename, source
// line, caret underline) are attached by the driver just before
// printing, never inside checking or evaluation.
package diag

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"ono/internal/token"
)

type Phase int

const (
	Syntax Phase = iota
	Type
	Runtime
)

func (p Phase) String() string {
	switch p {
	case Syntax:
		return "error"
	case Type:
		return "type error"
	case Runtime:
		return "runtime error"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Code identifies one entry of the error catalog.
type Code string

const (
	UnexpectedSymbol   Code = "S001"
	UntermString       Code = "S002"
	UntermParen        Code = "S003"
	ExpectedExpr       Code = "S004"
	ExpectedToken      Code = "S005"
	ExpectedType       Code = "S006"
	ExpectedIdent      Code = "S007"
	Uninitialized      Code = "S008"
	BadAssignTarget    Code = "S009"
	UntermBlock        Code = "S010"
	BinaryMismatch     Code = "T001"
	UnaryMismatch      Code = "T002"
	DeclInitMismatch   Code = "T003"
	Undefined          Code = "T004"
	DeclAssignMismatch Code = "T005"
	ArityMismatch      Code = "T006"
	NotCallable        Code = "T007"
	DivisionByZero     Code = "R001"
	InvalidRange       Code = "R002"
)

// Error is the one error type every phase reports. Left/Right name the
// operand types or values a message mentions; Want carries the token
// kind an S005 expected; Arity/Args carry a call's mismatched counts.
type Error struct {
	Phase Phase
	Code  Code
	Tok   token.Token

	Want        token.Kind
	Left, Right string
	Arity, Args int

	file    string
	srcLine string
	hasSrc  bool
}

func SyntaxError(code Code, tok token.Token) *Error {
	return &Error{Phase: Syntax, Code: code, Tok: tok}
}

func TypeError(code Code, tok token.Token) *Error {
	return &Error{Phase: Type, Code: code, Tok: tok}
}

func RuntimeError(code Code, tok token.Token) *Error {
	return &Error{Phase: Runtime, Code: code, Tok: tok}
}

// WithFilename attaches the name printed on the "-> file line:col" line.
func (e *Error) WithFilename(name string) *Error {
	e.file = name
	return e
}

// WithSrcLine attaches the literal source line the token sits on, used
// for the quoted-line and caret rendering.
func (e *Error) WithSrcLine(line string) *Error {
	e.srcLine = line
	e.hasSrc = true
	return e
}

func (e *Error) message() string {
	switch e.Code {
	case UnexpectedSymbol:
		return fmt.Sprintf("encountered unexpected symbol '%s'", e.Tok.Lexeme)
	case UntermString:
		return "unterminated string starting here"
	case UntermParen:
		return "unterminated parenthesis starting here"
	case ExpectedExpr:
		return fmt.Sprintf("expected expression with this '%s'", e.Tok.Lexeme)
	case ExpectedToken:
		return fmt.Sprintf("expected %s after '%s'", e.Want.Spelling(), e.Tok.Lexeme)
	case ExpectedType:
		return fmt.Sprintf("expected type after '%s'", e.Tok.Lexeme)
	case ExpectedIdent:
		return fmt.Sprintf("expected identifier after '%s'", e.Tok.Lexeme)
	case Uninitialized:
		return fmt.Sprintf("'%s' must be initialized", e.Tok.Lexeme)
	case BadAssignTarget:
		return "cannot assign to left hand side"
	case UntermBlock:
		return "unterminated block starting here"
	case BinaryMismatch:
		return fmt.Sprintf("cannot '%s %s %s'", e.Left, e.Tok.Lexeme, e.Right)
	case UnaryMismatch:
		return fmt.Sprintf("cannot '%s%s'", e.Tok.Lexeme, e.Left)
	case DeclInitMismatch:
		return fmt.Sprintf("'%s' declared as %s but initialized as %s", e.Tok.Lexeme, e.Left, e.Right)
	case Undefined:
		return fmt.Sprintf("'%s' is undefined here", e.Tok.Lexeme)
	case DeclAssignMismatch:
		return fmt.Sprintf("cannot assign %s to %s", e.Right, e.Left)
	case ArityMismatch:
		return fmt.Sprintf("'%s' takes %d arguments but got %d", e.Tok.Lexeme, e.Arity, e.Args)
	case NotCallable:
		return fmt.Sprintf("'%s' is not callable", e.Tok.Lexeme)
	case DivisionByZero:
		return "division by zero here"
	case InvalidRange:
		return "invalid range here"
	default:
		return string(e.Code)
	}
}

// Error renders the diagnostic:
//
//	<kind>: <message>
//	-> <file> <line>:<col>
//	<line> | <source line>
//	        ^^^^
//
// The filename line is omitted when no filename is attached, the
// quoted line and caret when no source line is attached. The caret run
// underlines exactly the lexeme's on-screen width in grapheme
// clusters, indented past the "N | " gutter.
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Phase, e.message())
	if e.file != "" {
		fmt.Fprintf(&b, "\n-> %s %s", e.file, e.Tok.Pos)
	}
	if e.hasSrc {
		gutter := fmt.Sprintf("%d | ", e.Tok.Pos.Line+1)
		fmt.Fprintf(&b, "\n%s%s", gutter, e.srcLine)
		width := uniseg.GraphemeClusterCount(e.Tok.Lexeme)
		fmt.Fprintf(&b, "\n%s%s", strings.Repeat(" ", len(gutter)+e.Tok.Pos.Column), strings.Repeat("^", width))
	}
	return b.String()
}
