package types

import (
	"ono/internal/ast"
	"ono/internal/diag"
	"ono/internal/env"
	"ono/internal/token"
)

// Checker walks the AST once over an Environment[Type] shaped exactly
// like the interpreter's runtime scopes. It collects every type error
// across the whole program rather than stopping at the first.
type Checker struct {
	env    *env.Environment[Type]
	errors []*diag.Error
}

func NewChecker() *Checker {
	c := &Checker{env: env.New[Type]()}
	c.declareNatives()
	return c
}

// declareNatives mirrors the bindings the interpreter pre-seeds.
func (c *Checker) declareNatives() {
	c.env.Define("print", &Func{Params: []Type{Any}, Result: Unit})
	c.env.Define("clock", &Func{Params: []Type{}, Result: Number})
}

// Check visits every statement and returns the errors found, in
// traversal order. The checker's scope state persists across calls so
// a REPL can feed it line by line.
func (c *Checker) Check(stmts []ast.Stmt) []*diag.Error {
	c.errors = nil
	for _, stmt := range stmts {
		c.checkStmt(stmt)
	}
	return c.errors
}

func (c *Checker) report(e *diag.Error) {
	c.errors = append(c.errors, e)
}

// ---------- Statements ----------

func (c *Checker) checkStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		c.checkExpr(s.Expression)

	case *ast.LetStmt:
		init := c.checkExpr(s.Init)
		declared := init
		if s.Type != nil {
			annot := c.typeFromNode(s.Type)
			if !Compatible(annot, init) {
				err := diag.TypeError(diag.DeclInitMismatch, s.Name)
				err.Left = annot.String()
				err.Right = init.String()
				c.report(err)
			}
			declared = annot
		}
		c.env.Define(s.Name.Lexeme, declared)

	case *ast.BlockStmt:
		c.env = c.env.Nest()
		for _, inner := range s.Stmts {
			c.checkStmt(inner)
		}
		c.env = c.env.Parent()

	case *ast.IfStmt:
		c.checkExpr(s.Cond)
		c.checkStmt(s.Then)
		if s.Else != nil {
			c.checkStmt(s.Else)
		}

	case *ast.WhileStmt:
		c.checkExpr(s.Cond)
		c.checkStmt(s.Body)

	case *ast.ForStmt:
		c.checkRange(s.Range)
		c.env = c.env.Nest()
		c.env.Define(s.Var.Lexeme, Number)
		for _, inner := range s.Body.Stmts {
			c.checkStmt(inner)
		}
		c.env = c.env.Parent()

	case *ast.FunStmt:
		params := make([]Type, len(s.Params))
		for i := range params {
			params[i] = Any
		}
		// Defined before the body is checked so the function can
		// reference itself.
		c.env.Define(s.Name.Lexeme, &Func{Params: params, Result: Any})

		c.env = c.env.Nest()
		for _, p := range s.Params {
			c.env.Define(p.Lexeme, Any)
		}
		for _, inner := range s.Body.Stmts {
			c.checkStmt(inner)
		}
		c.env = c.env.Parent()

	case *ast.ReturnStmt:
		if s.Value != nil {
			c.checkExpr(s.Value)
		}
	}
}

// checkRange requires every range part to be a number.
func (c *Checker) checkRange(r *ast.RangeExpr) {
	parts := []ast.Expr{r.From, r.To}
	if r.Step != nil {
		parts = append(parts, r.Step)
	}
	for _, part := range parts {
		t := c.checkExpr(part)
		if !Compatible(t, Number) {
			err := diag.TypeError(diag.BinaryMismatch, r.DotDot)
			err.Left = Number.String()
			err.Right = t.String()
			c.report(err)
		}
	}
}

// ---------- Expressions ----------

func (c *Checker) checkExpr(expr ast.Expr) Type {
	switch e := expr.(type) {
	case *ast.Literal:
		switch e.Tok.Kind {
		case token.Number:
			return Number
		case token.String:
			return Text
		case token.True, token.False:
			return Bool
		}
		return Invalid

	case *ast.Variable:
		t, ok := c.env.Get(e.Name.Lexeme)
		if !ok {
			c.report(diag.TypeError(diag.Undefined, e.Name))
			return Invalid
		}
		return t

	case *ast.Assign:
		value := c.checkExpr(e.Value)
		declared, ok := c.env.Get(e.Name.Lexeme)
		if !ok {
			c.report(diag.TypeError(diag.Undefined, e.Name))
			return Invalid
		}
		if !Compatible(declared, value) {
			err := diag.TypeError(diag.DeclAssignMismatch, e.Name)
			err.Left = declared.String()
			err.Right = value.String()
			c.report(err)
		}
		return value

	case *ast.Unary:
		return c.checkUnary(e)

	case *ast.Binary:
		return c.checkBinary(e)

	case *ast.Logical:
		left := c.checkExpr(e.Left)
		right := c.checkExpr(e.Right)
		if !Compatible(left, Bool) || !Compatible(right, Bool) {
			c.reportBinary(e.Op, left, right)
			return Invalid
		}
		return Bool

	case *ast.Group:
		return c.checkExpr(e.X)

	case *ast.Tuple:
		elems := make([]Type, len(e.Elems))
		for i, el := range e.Elems {
			elems[i] = c.checkExpr(el)
		}
		return &Tuple{Elems: elems}

	case *ast.Call:
		return c.checkCall(e)

	case *ast.RangeExpr:
		// Ranges only parse inside for statements, which check them
		// via checkRange.
		return Invalid
	}
	return Invalid
}

func (c *Checker) reportBinary(op token.Token, left, right Type) {
	err := diag.TypeError(diag.BinaryMismatch, op)
	err.Left = left.String()
	err.Right = right.String()
	c.report(err)
}

func (c *Checker) checkUnary(e *ast.Unary) Type {
	operand := c.checkExpr(e.X)

	var want *Basic
	switch e.Op.Kind {
	case token.Minus:
		want = Number
	case token.Bang:
		want = Bool
	default:
		return Invalid
	}

	if !Compatible(operand, want) {
		err := diag.TypeError(diag.UnaryMismatch, e.Op)
		err.Left = operand.String()
		c.report(err)
		return Invalid
	}
	return want
}

// checkBinary applies the fixed operand table: `+` takes two numbers
// or two texts, the other arithmetic and ordering operators take
// numbers, and equality takes operands of one shared type.
func (c *Checker) checkBinary(e *ast.Binary) Type {
	left := c.checkExpr(e.Left)
	right := c.checkExpr(e.Right)

	switch e.Op.Kind {
	case token.Plus:
		l, r := left, right
		if IsInvalid(l) || IsInvalid(r) {
			return Any
		}
		// Any adopts the other operand's type.
		if IsAny(l) {
			l = r
		}
		if IsAny(r) {
			r = l
		}
		switch {
		case IsAny(l):
			return Any
		case Equal(l, Number) && Equal(r, Number):
			return Number
		case Equal(l, Text) && Equal(r, Text):
			return Text
		}
		c.reportBinary(e.Op, left, right)
		return Invalid

	case token.Minus, token.Star, token.Slash:
		if Compatible(left, Number) && Compatible(right, Number) {
			return Number
		}
		c.reportBinary(e.Op, left, right)
		return Invalid

	case token.Less, token.LessEq, token.Greater, token.GreaterEq:
		if Compatible(left, Number) && Compatible(right, Number) {
			return Bool
		}
		c.reportBinary(e.Op, left, right)
		return Invalid

	case token.Eq, token.BangEq:
		if Compatible(left, right) {
			return Bool
		}
		c.reportBinary(e.Op, left, right)
		return Invalid
	}
	return Invalid
}

func (c *Checker) checkCall(e *ast.Call) Type {
	callee := c.checkExpr(e.Callee)
	if IsInvalid(callee) {
		for _, arg := range e.Args {
			c.checkExpr(arg)
		}
		return Invalid
	}

	anchor := callAnchor(e)

	fn, ok := callee.(*Func)
	if !ok && !IsAny(callee) {
		c.report(diag.TypeError(diag.NotCallable, anchor))
		for _, arg := range e.Args {
			c.checkExpr(arg)
		}
		return Invalid
	}

	args := make([]Type, len(e.Args))
	for i, arg := range e.Args {
		args[i] = c.checkExpr(arg)
	}

	if fn == nil {
		// Callee typed Any: nothing to verify statically.
		return Any
	}

	if len(args) != len(fn.Params) {
		err := diag.TypeError(diag.ArityMismatch, anchor)
		err.Arity = len(fn.Params)
		err.Args = len(args)
		c.report(err)
		return fn.Result
	}

	for i, arg := range args {
		if !Compatible(arg, fn.Params[i]) {
			c.reportBinary(anchor, fn.Params[i], arg)
		}
	}
	return fn.Result
}

// callAnchor picks the token a call error points at: the callee's
// name when there is one, the opening paren otherwise.
func callAnchor(e *ast.Call) token.Token {
	switch callee := e.Callee.(type) {
	case *ast.Variable:
		return callee.Name
	case *ast.Call:
		return callAnchor(callee)
	default:
		return e.LParen
	}
}

func (c *Checker) typeFromNode(node ast.TypeNode) Type {
	switch t := node.(type) {
	case *ast.SimpleType:
		switch t.Tok.Kind {
		case token.NumberType:
			return Number
		case token.StringType:
			return Text
		case token.BoolType:
			return Bool
		}
	case *ast.TupleType:
		elems := make([]Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = c.typeFromNode(e)
		}
		return &Tuple{Elems: elems}
	}
	return Invalid
}
