// Package ono runs ono programs: a lexer, a recursive-descent parser,
// a static typechecker and a tree-walking interpreter, executed in
// that order with each phase finishing error-free before the next
// starts. The phases are exported separately for incremental use; Run
// chains them.
package ono

import (
	"io"
	"strings"

	"ono/internal/ast"
	"ono/internal/diag"
	"ono/internal/lexer"
	"ono/internal/parser"
	"ono/internal/runtime"
	"ono/internal/token"
	"ono/internal/types"
)

// Tokenize splits source into tokens, collecting every lexical error.
func Tokenize(source string) ([]token.Token, []*diag.Error) {
	return lexer.New(source).Tokenize()
}

// Parse builds statements from tokens, collecting every syntax error.
func Parse(tokens []token.Token) ([]ast.Stmt, []*diag.Error) {
	return parser.New(tokens).Parse()
}

// Check type-checks statements, collecting every type error.
func Check(stmts []ast.Stmt) []*diag.Error {
	return types.NewChecker().Check(stmts)
}

// Interpret evaluates statements against a fresh interpreter writing
// to stdout.
func Interpret(stmts []ast.Stmt) []*diag.Error {
	return runtime.New().Interpret(stmts)
}

// Run executes source front to back. A phase with one or more errors
// stops the pipeline and its errors are returned.
func Run(source string) []*diag.Error {
	return run(source, runtime.New())
}

// RunWithOutput is Run with the print native writing to w.
func RunWithOutput(source string, w io.Writer) []*diag.Error {
	return run(source, runtime.NewWithOutput(w))
}

func run(source string, interp *runtime.Interpreter) []*diag.Error {
	tokens, errs := Tokenize(source)
	if len(errs) > 0 {
		return errs
	}

	stmts, errs := Parse(tokens)
	if len(errs) > 0 {
		return errs
	}

	if errs := Check(stmts); len(errs) > 0 {
		return errs
	}

	return interp.Interpret(stmts)
}

// Annotate attaches filename and source-line presentation data to
// errors before display. Filename may be empty to omit the location
// line.
func Annotate(errs []*diag.Error, filename, source string) {
	lines := strings.Split(source, "\n")
	for _, err := range errs {
		if filename != "" {
			err.WithFilename(filename)
		}
		if line := err.Tok.Pos.Line; line >= 0 && line < len(lines) {
			err.WithSrcLine(lines[line])
		}
	}
}
