// Package parser turns a token stream into statements.
//
// Grammar:
//
//	program     -> declaration* EOF ;
//
//	declaration -> letDecl | funDecl | statement ;
//	letDecl     -> "let" IDENT (":" type)? "=" expression ";" ;
//	funDecl     -> "fun" IDENT "(" params? ")" block ;
//	params      -> IDENT ("," IDENT)* ;
//
//	statement   -> exprStmt | block | ifStmt | whileStmt | forStmt | returnStmt ;
//	exprStmt    -> expression ";" ;
//	block       -> "{" declaration* "}" ;
//	ifStmt      -> "if" expression block ("else" (ifStmt | block))? ;
//	whileStmt   -> "while" expression block ;
//	forStmt     -> "for" IDENT "in" range block ;
//	returnStmt  -> "return" expression? ";" ;
//
//	expression  -> assignment ;
//	assignment  -> IDENT "=" assignment | logicOr ;
//	logicOr     -> logicAnd ("or" logicAnd)* ;
//	logicAnd    -> equality ("and" equality)* ;
//	equality    -> comparison (("!=" | "==") comparison)* ;
//	comparison  -> term ((">" | ">=" | "<" | "<=") term)* ;
//	term        -> factor (("-" | "+") factor)* ;
//	factor      -> unary (("/" | "*") unary)* ;
//	unary       -> ("!" | "-") unary | call ;
//	call        -> primary ("(" arguments? ")")* ;
//	arguments   -> expression ("," expression)* ;
//	primary     -> NUMBER | STRING | IDENT | "true" | "false" | tuple ;
//	tuple       -> "(" expression ("," expression)* ")" | "(" ")" ;
//	range       -> expression ".." expression (".." expression)? ;
//
//	type        -> "number" | "string" | "bool" | tupleType ;
//	tupleType   -> "(" type ("," type)* ")" | "(" ")" ;
//
// On a parse error the parser records it and synchronizes to the next
// statement boundary, so one call reports every syntax error.
package parser

import (
	"ono/internal/ast"
	"ono/internal/diag"
	"ono/internal/token"
)

type Parser struct {
	tokens  []token.Token
	current int
	errors  []*diag.Error
}

// New expects the token slice to end with an EOF token, as the lexer
// guarantees.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

func (p *Parser) Parse() ([]ast.Stmt, []*diag.Error) {
	var statements []ast.Stmt
	for !p.atEnd() {
		stmt, err := p.declaration()
		if err != nil {
			p.errors = append(p.errors, err)
			p.synchronize()
			continue
		}
		statements = append(statements, stmt)
	}

	if len(p.errors) > 0 {
		return nil, p.errors
	}
	return statements, nil
}

// ---------- Declarations / statements ----------

func (p *Parser) declaration() (ast.Stmt, *diag.Error) {
	switch {
	case p.match(token.Let):
		return p.letDeclaration()
	case p.match(token.Fun):
		return p.funDeclaration()
	default:
		return p.statement()
	}
}

func (p *Parser) letDeclaration() (ast.Stmt, *diag.Error) {
	letPos := p.previous().Pos

	name, ok := p.consume(token.Ident)
	if !ok {
		return nil, diag.SyntaxError(diag.ExpectedIdent, p.previous())
	}

	var annot ast.TypeNode
	if p.match(token.Colon) {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		annot = t
	}

	if !p.match(token.Assign) {
		return nil, diag.SyntaxError(diag.Uninitialized, name)
	}

	init, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}

	return &ast.LetStmt{LetPos: letPos, Name: name, Type: annot, Init: init}, nil
}

func (p *Parser) funDeclaration() (ast.Stmt, *diag.Error) {
	funPos := p.previous().Pos

	name, ok := p.consume(token.Ident)
	if !ok {
		return nil, diag.SyntaxError(diag.ExpectedIdent, p.previous())
	}

	if _, ok := p.consume(token.LParen); !ok {
		return nil, p.expected(token.LParen)
	}

	var params []token.Token
	if !p.check(token.RParen) {
		for {
			param, ok := p.consume(token.Ident)
			if !ok {
				return nil, diag.SyntaxError(diag.ExpectedIdent, p.previous())
			}
			params = append(params, param)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	if _, ok := p.consume(token.RParen); !ok {
		return nil, p.expected(token.RParen)
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return &ast.FunStmt{FunPos: funPos, Name: name, Params: params, Body: body}, nil
}

func (p *Parser) statement() (ast.Stmt, *diag.Error) {
	switch {
	case p.check(token.LBrace):
		return p.block()
	case p.match(token.If):
		return p.ifStatement()
	case p.match(token.While):
		return p.whileStatement()
	case p.match(token.For):
		return p.forStatement()
	case p.match(token.Return):
		return p.returnStatement()
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) block() (*ast.BlockStmt, *diag.Error) {
	lbrace, ok := p.consume(token.LBrace)
	if !ok {
		return nil, p.expected(token.LBrace)
	}

	var stmts []ast.Stmt
	for !p.check(token.RBrace) && !p.atEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}

	if !p.match(token.RBrace) {
		return nil, diag.SyntaxError(diag.UntermBlock, lbrace)
	}

	return &ast.BlockStmt{LBrace: lbrace, Stmts: stmts}, nil
}

func (p *Parser) ifStatement() (ast.Stmt, *diag.Error) {
	ifPos := p.previous().Pos

	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	then, err := p.block()
	if err != nil {
		return nil, err
	}

	var elseStmt ast.Stmt
	if p.match(token.Else) {
		if p.match(token.If) {
			elseStmt, err = p.ifStatement()
		} else {
			elseStmt, err = p.block()
		}
		if err != nil {
			return nil, err
		}
	}

	return &ast.IfStmt{IfPos: ifPos, Cond: cond, Then: then, Else: elseStmt}, nil
}

func (p *Parser) whileStatement() (ast.Stmt, *diag.Error) {
	whilePos := p.previous().Pos

	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return &ast.WhileStmt{WhilePos: whilePos, Cond: cond, Body: body}, nil
}

func (p *Parser) forStatement() (ast.Stmt, *diag.Error) {
	forPos := p.previous().Pos

	name, ok := p.consume(token.Ident)
	if !ok {
		return nil, diag.SyntaxError(diag.ExpectedIdent, p.previous())
	}
	if _, ok := p.consume(token.In); !ok {
		return nil, p.expected(token.In)
	}

	rng, err := p.rangeExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return &ast.ForStmt{ForPos: forPos, Var: name, Range: rng, Body: body}, nil
}

func (p *Parser) returnStatement() (ast.Stmt, *diag.Error) {
	ret := p.previous()

	var value ast.Expr
	if !p.check(token.Semicolon) {
		v, err := p.expression()
		if err != nil {
			return nil, err
		}
		value = v
	}
	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}

	return &ast.ReturnStmt{Return: ret, Value: value}, nil
}

func (p *Parser) expressionStatement() (ast.Stmt, *diag.Error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expression: expr}, nil
}

// ---------- Expressions ----------

func (p *Parser) expression() (ast.Expr, *diag.Error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expr, *diag.Error) {
	expr, err := p.logicOr()
	if err != nil {
		return nil, err
	}

	if p.match(token.Assign) {
		equals := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		v, ok := expr.(*ast.Variable)
		if !ok {
			return nil, diag.SyntaxError(diag.BadAssignTarget, equals)
		}
		return &ast.Assign{Name: v.Name, Value: value}, nil
	}

	return expr, nil
}

func (p *Parser) logicOr() (ast.Expr, *diag.Error) {
	expr, err := p.logicAnd()
	if err != nil {
		return nil, err
	}

	for p.match(token.Or) {
		op := p.previous()
		right, err := p.logicAnd()
		if err != nil {
			return nil, err
		}
		expr = &ast.Logical{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) logicAnd() (ast.Expr, *diag.Error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}

	for p.match(token.And) {
		op := p.previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = &ast.Logical{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) equality() (ast.Expr, *diag.Error) {
	return p.binaryTier(p.comparison, token.BangEq, token.Eq)
}

func (p *Parser) comparison() (ast.Expr, *diag.Error) {
	return p.binaryTier(p.term, token.Less, token.LessEq, token.Greater, token.GreaterEq)
}

func (p *Parser) term() (ast.Expr, *diag.Error) {
	return p.binaryTier(p.factor, token.Minus, token.Plus)
}

func (p *Parser) factor() (ast.Expr, *diag.Error) {
	return p.binaryTier(p.unary, token.Slash, token.Star)
}

// binaryTier parses one left-associative precedence level whose
// operands come from next.
func (p *Parser) binaryTier(next func() (ast.Expr, *diag.Error), ops ...token.Kind) (ast.Expr, *diag.Error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}

	for p.match(ops...) {
		op := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) unary() (ast.Expr, *diag.Error) {
	if p.match(token.Bang, token.Minus) {
		op := p.previous()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: op, X: x}, nil
	}
	return p.call()
}

func (p *Parser) call() (ast.Expr, *diag.Error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for p.match(token.LParen) {
		lparen := p.previous()

		var args []ast.Expr
		if !p.check(token.RParen) {
			for {
				arg, err := p.expression()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if !p.match(token.Comma) {
					break
				}
			}
		}
		if !p.match(token.RParen) {
			return nil, diag.SyntaxError(diag.UntermParen, lparen)
		}

		expr = &ast.Call{Callee: expr, LParen: lparen, Args: args}
	}
	return expr, nil
}

func (p *Parser) primary() (ast.Expr, *diag.Error) {
	switch {
	case p.match(token.False, token.True, token.Number, token.String):
		return &ast.Literal{Tok: p.previous()}, nil
	case p.match(token.Ident):
		return &ast.Variable{Name: p.previous()}, nil
	case p.match(token.LParen):
		return p.tuple()
	default:
		return nil, diag.SyntaxError(diag.ExpectedExpr, p.previous())
	}
}

// tuple resolves the overloaded parenthesis by arity: zero elements is
// the unit tuple, one is a grouping, two or more a tuple.
func (p *Parser) tuple() (ast.Expr, *diag.Error) {
	lparen := p.previous()

	if p.match(token.RParen) {
		return &ast.Tuple{LParen: lparen}, nil
	}

	var elems []ast.Expr
	for {
		elem, err := p.expression()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
		if !p.match(token.Comma) {
			break
		}
	}

	if !p.match(token.RParen) {
		return nil, diag.SyntaxError(diag.UntermParen, lparen)
	}

	if len(elems) == 1 {
		return &ast.Group{LParen: lparen, X: elems[0]}, nil
	}
	return &ast.Tuple{LParen: lparen, Elems: elems}, nil
}

// rangeExpr parses `from..to` or `from..step..to`. Ranges only appear
// where the grammar asks for one, after `in`.
func (p *Parser) rangeExpr() (*ast.RangeExpr, *diag.Error) {
	from, err := p.expression()
	if err != nil {
		return nil, err
	}

	dotdot, ok := p.consume(token.DotDot)
	if !ok {
		return nil, p.expected(token.DotDot)
	}

	second, err := p.expression()
	if err != nil {
		return nil, err
	}

	if p.match(token.DotDot) {
		to, err := p.expression()
		if err != nil {
			return nil, err
		}
		return &ast.RangeExpr{From: from, DotDot: dotdot, Step: second, To: to}, nil
	}

	return &ast.RangeExpr{From: from, DotDot: dotdot, To: second}, nil
}

// ---------- Types ----------

func (p *Parser) parseType() (ast.TypeNode, *diag.Error) {
	switch {
	case p.match(token.NumberType, token.StringType, token.BoolType):
		return &ast.SimpleType{Tok: p.previous()}, nil
	case p.match(token.LParen):
		return p.tupleType()
	default:
		return nil, diag.SyntaxError(diag.ExpectedType, p.previous())
	}
}

func (p *Parser) tupleType() (ast.TypeNode, *diag.Error) {
	lparen := p.previous()

	if p.match(token.RParen) {
		return &ast.TupleType{LParen: lparen}, nil
	}

	var elems []ast.TypeNode
	for {
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
		if !p.match(token.Comma) {
			break
		}
	}

	if !p.match(token.RParen) {
		return nil, diag.SyntaxError(diag.UntermParen, lparen)
	}

	return &ast.TupleType{LParen: lparen, Elems: elems}, nil
}

// ---------- Helpers ----------

func (p *Parser) previous() token.Token {
	i := p.current - 1
	if i < 0 {
		i = 0
	}
	return p.tokens[i]
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) advance() token.Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) atEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p *Parser) check(kind token.Kind) bool {
	return !p.atEnd() && p.peek().Kind == kind
}

// match consumes the next token when its kind is one of kinds.
func (p *Parser) match(kinds ...token.Kind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind token.Kind) (token.Token, bool) {
	if p.check(kind) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// expected builds an S005 anchored at the previous token.
func (p *Parser) expected(kind token.Kind) *diag.Error {
	err := diag.SyntaxError(diag.ExpectedToken, p.previous())
	err.Want = kind
	return err
}

func (p *Parser) expectSemicolon() *diag.Error {
	if !p.match(token.Semicolon) {
		return p.expected(token.Semicolon)
	}
	return nil
}

// synchronize discards tokens up to the next statement boundary: past
// a semicolon, or to just before a statement-starting keyword.
func (p *Parser) synchronize() {
	for !p.atEnd() {
		switch p.peek().Kind {
		case token.Semicolon:
			p.advance()
			return
		case token.Let, token.Fun, token.If, token.While, token.For, token.Return:
			return
		default:
			p.advance()
		}
	}
}
