package parser_test

import (
	"testing"

	"ono/internal/ast"
	"ono/internal/diag"
	"ono/internal/lexer"
	"ono/internal/parser"
	"ono/internal/token"
)

func parse(t *testing.T, input string) []ast.Stmt {
	t.Helper()
	tokens, errs := lexer.New(input).Tokenize()
	if len(errs) > 0 {
		t.Fatalf("lexer errors: %v", errs)
	}
	stmts, errs := parser.New(tokens).Parse()
	if len(errs) > 0 {
		for _, e := range errs {
			t.Logf("parser error: %s", e)
		}
		t.Fatalf("expected no parser errors, got %d", len(errs))
	}
	return stmts
}

func parseErrs(t *testing.T, input string) []*diag.Error {
	t.Helper()
	tokens, errs := lexer.New(input).Tokenize()
	if len(errs) > 0 {
		t.Fatalf("lexer errors: %v", errs)
	}
	_, errs = parser.New(tokens).Parse()
	if len(errs) == 0 {
		t.Fatalf("expected parser errors, got none")
	}
	return errs
}

func TestParseBinaryPrecedence(t *testing.T) {
	stmts := parse(t, "1 + 2 * 3 == 7;")

	expr := stmts[0].(*ast.ExprStmt).Expression
	eq, ok := expr.(*ast.Binary)
	if !ok || eq.Op.Kind != token.Eq {
		t.Fatalf("top node not ==: %s", ast.Dump(expr))
	}
	sum, ok := eq.Left.(*ast.Binary)
	if !ok || sum.Op.Kind != token.Plus {
		t.Fatalf("left of == not +: %s", ast.Dump(eq.Left))
	}
	mul, ok := sum.Right.(*ast.Binary)
	if !ok || mul.Op.Kind != token.Star {
		t.Fatalf("right of + not *: %s", ast.Dump(sum.Right))
	}
}

func TestParseLeftAssociativity(t *testing.T) {
	stmts := parse(t, "1 - 2 - 3;")

	top := stmts[0].(*ast.ExprStmt).Expression.(*ast.Binary)
	inner, ok := top.Left.(*ast.Binary)
	if !ok {
		t.Fatalf("subtraction not left-associative: %s", ast.Dump(top))
	}
	if inner.Op.Kind != token.Minus {
		t.Fatalf("inner op wrong: %s", inner.Op.Kind)
	}
}

// Parenthesis arity decides the node: zero is the unit tuple, one a
// grouping, two or more a tuple.
func TestParseParenArity(t *testing.T) {
	stmts := parse(t, "(); (1); (1, 2); (1, 2, 3);")

	if _, ok := stmts[0].(*ast.ExprStmt).Expression.(*ast.Tuple); !ok {
		t.Errorf("() did not parse as tuple: %s", ast.Dump(stmts[0]))
	}
	unit := stmts[0].(*ast.ExprStmt).Expression.(*ast.Tuple)
	if len(unit.Elems) != 0 {
		t.Errorf("() arity wrong: %d", len(unit.Elems))
	}

	if _, ok := stmts[1].(*ast.ExprStmt).Expression.(*ast.Group); !ok {
		t.Errorf("(1) did not parse as group: %s", ast.Dump(stmts[1]))
	}

	pair, ok := stmts[2].(*ast.ExprStmt).Expression.(*ast.Tuple)
	if !ok || len(pair.Elems) != 2 {
		t.Errorf("(1, 2) did not parse as 2-tuple: %s", ast.Dump(stmts[2]))
	}

	triple, ok := stmts[3].(*ast.ExprStmt).Expression.(*ast.Tuple)
	if !ok || len(triple.Elems) != 3 {
		t.Errorf("(1, 2, 3) did not parse as 3-tuple: %s", ast.Dump(stmts[3]))
	}
}

func TestParseLetWithAnnotation(t *testing.T) {
	stmts := parse(t, "let x: number = 1; let t: (number, string) = (1, \"a\");")

	let := stmts[0].(*ast.LetStmt)
	if let.Name.Lexeme != "x" {
		t.Errorf("let name wrong: %q", let.Name.Lexeme)
	}
	if _, ok := let.Type.(*ast.SimpleType); !ok {
		t.Errorf("annotation not simple type: %s", ast.Dump(let.Type))
	}

	tup := stmts[1].(*ast.LetStmt).Type.(*ast.TupleType)
	if len(tup.Elems) != 2 {
		t.Errorf("tuple annotation arity wrong: %d", len(tup.Elems))
	}
}

func TestParseFunDeclaration(t *testing.T) {
	stmts := parse(t, "fun add(a, b) { return a + b; }")

	fn := stmts[0].(*ast.FunStmt)
	if fn.Name.Lexeme != "add" {
		t.Errorf("fun name wrong: %q", fn.Name.Lexeme)
	}
	if len(fn.Params) != 2 || fn.Params[0].Lexeme != "a" || fn.Params[1].Lexeme != "b" {
		t.Errorf("params wrong: %+v", fn.Params)
	}
	if len(fn.Body.Stmts) != 1 {
		t.Errorf("body statement count wrong: %d", len(fn.Body.Stmts))
	}
	if _, ok := fn.Body.Stmts[0].(*ast.ReturnStmt); !ok {
		t.Errorf("body statement not return: %s", ast.Dump(fn.Body.Stmts[0]))
	}
}

func TestParseCallChain(t *testing.T) {
	stmts := parse(t, "f(1)(2, 3);")

	outer := stmts[0].(*ast.ExprStmt).Expression.(*ast.Call)
	if len(outer.Args) != 2 {
		t.Fatalf("outer call arity wrong: %d", len(outer.Args))
	}
	inner, ok := outer.Callee.(*ast.Call)
	if !ok || len(inner.Args) != 1 {
		t.Fatalf("inner call wrong: %s", ast.Dump(outer.Callee))
	}
	if v, ok := inner.Callee.(*ast.Variable); !ok || v.Name.Lexeme != "f" {
		t.Fatalf("callee wrong: %s", ast.Dump(inner.Callee))
	}
}

func TestParseElseIfChain(t *testing.T) {
	stmts := parse(t, "if a { 1; } else if b { 2; } else { 3; }")

	first := stmts[0].(*ast.IfStmt)
	second, ok := first.Else.(*ast.IfStmt)
	if !ok {
		t.Fatalf("else branch not an if: %s", ast.Dump(first.Else))
	}
	if _, ok := second.Else.(*ast.BlockStmt); !ok {
		t.Fatalf("final else not a block: %s", ast.Dump(second.Else))
	}
}

func TestParseForRanges(t *testing.T) {
	stmts := parse(t, "for i in 0..10 { i; } for j in 0..2..10 { j; }")

	two := stmts[0].(*ast.ForStmt)
	if two.Range.Step != nil {
		t.Errorf("two-part range has a step: %s", ast.Dump(two.Range))
	}

	three := stmts[1].(*ast.ForStmt)
	if three.Range.Step == nil {
		t.Errorf("three-part range lost its step: %s", ast.Dump(three.Range))
	}
}

// An invalid assignment target is reported at the '=' token and does
// not abort the rest of the parse.
func TestParseInvalidAssignTarget(t *testing.T) {
	errs := parseErrs(t, "1 + 2 = 3; let x = 1;")

	if len(errs) != 1 {
		t.Fatalf("error count wrong. expected=1, got=%d (%v)", len(errs), errs)
	}
	e := errs[0]
	if e.Code != diag.BadAssignTarget {
		t.Errorf("code wrong. expected=%s, got=%s", diag.BadAssignTarget, e.Code)
	}
	if e.Tok.Lexeme != "=" || e.Tok.Pos.Column != 6 {
		t.Errorf("anchor wrong: lexeme=%q pos=%+v", e.Tok.Lexeme, e.Tok.Pos)
	}
}

// synchronize() recovers at statement boundaries so every error in the
// source is reported in one pass.
func TestParseMultipleErrors(t *testing.T) {
	errs := parseErrs(t, "let = 1;\nlet a: = 2;\nlet b = 3;\n1 +;\n")

	if len(errs) != 3 {
		t.Fatalf("error count wrong. expected=3, got=%d (%v)", len(errs), errs)
	}
	codes := []diag.Code{diag.ExpectedIdent, diag.ExpectedType, diag.ExpectedExpr}
	for i, want := range codes {
		if errs[i].Code != want {
			t.Errorf("errs[%d] code wrong. expected=%s, got=%s", i, want, errs[i].Code)
		}
	}
}

func TestParseUnterminatedParen(t *testing.T) {
	errs := parseErrs(t, "(1 + 2;")

	if errs[0].Code != diag.UntermParen {
		t.Errorf("code wrong. expected=%s, got=%s", diag.UntermParen, errs[0].Code)
	}
	if errs[0].Tok.Lexeme != "(" || errs[0].Tok.Pos.Column != 0 {
		t.Errorf("anchor wrong: lexeme=%q pos=%+v", errs[0].Tok.Lexeme, errs[0].Tok.Pos)
	}
}

func TestParseUnterminatedBlock(t *testing.T) {
	errs := parseErrs(t, "if a { 1;")

	if errs[0].Code != diag.UntermBlock {
		t.Errorf("code wrong. expected=%s, got=%s", diag.UntermBlock, errs[0].Code)
	}
	if errs[0].Tok.Lexeme != "{" {
		t.Errorf("anchor wrong: lexeme=%q", errs[0].Tok.Lexeme)
	}
}

func TestParseUninitializedLet(t *testing.T) {
	errs := parseErrs(t, "let x;")

	if errs[0].Code != diag.Uninitialized {
		t.Errorf("code wrong. expected=%s, got=%s", diag.Uninitialized, errs[0].Code)
	}
	if errs[0].Tok.Lexeme != "x" {
		t.Errorf("anchor wrong: lexeme=%q", errs[0].Tok.Lexeme)
	}
}
