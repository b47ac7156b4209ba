package ast

import "ono/internal/token"

// Basic interfaces

type Node interface {
	Pos() token.Position
}

type Stmt interface {
	Node
	stmtNode()
}

type Expr interface {
	Node
	exprNode()
}

type TypeNode interface {
	Node
	typeNode()
}

// ---------- Types ----------

// SimpleType is a type annotation: one of the number/string/bool
// keywords.
type SimpleType struct {
	Tok token.Token
}

func (t *SimpleType) Pos() token.Position { return t.Tok.Pos }
func (t *SimpleType) typeNode()           {}

// TupleType is a parenthesized annotation: `()` (unit) or
// `(number, string)`.
type TupleType struct {
	LParen token.Token
	Elems  []TypeNode
}

func (t *TupleType) Pos() token.Position { return t.LParen.Pos }
func (t *TupleType) typeNode()           {}

// ---------- Statements ----------

type ExprStmt struct {
	Expression Expr
}

func (s *ExprStmt) Pos() token.Position { return s.Expression.Pos() }
func (s *ExprStmt) stmtNode()           {}

type LetStmt struct {
	LetPos token.Position
	Name   token.Token
	Type   TypeNode // nil when unannotated
	Init   Expr
}

func (s *LetStmt) Pos() token.Position { return s.LetPos }
func (s *LetStmt) stmtNode()           {}

type BlockStmt struct {
	LBrace token.Token
	Stmts  []Stmt
}

func (b *BlockStmt) Pos() token.Position { return b.LBrace.Pos }
func (b *BlockStmt) stmtNode()           {}

type IfStmt struct {
	IfPos token.Position
	Cond  Expr
	Then  *BlockStmt
	Else  Stmt // nil, *BlockStmt, or *IfStmt (else-if)
}

func (s *IfStmt) Pos() token.Position { return s.IfPos }
func (s *IfStmt) stmtNode()           {}

type WhileStmt struct {
	WhilePos token.Position
	Cond     Expr
	Body     *BlockStmt
}

func (s *WhileStmt) Pos() token.Position { return s.WhilePos }
func (s *WhileStmt) stmtNode()           {}

// ForStmt is for-in over a range: `for NAME in RANGE { ... }`.
type ForStmt struct {
	ForPos token.Position
	Var    token.Token
	Range  *RangeExpr
	Body   *BlockStmt
}

func (s *ForStmt) Pos() token.Position { return s.ForPos }
func (s *ForStmt) stmtNode()           {}

type FunStmt struct {
	FunPos token.Position
	Name   token.Token
	Params []token.Token
	Body   *BlockStmt
}

func (s *FunStmt) Pos() token.Position { return s.FunPos }
func (s *FunStmt) stmtNode()           {}

type ReturnStmt struct {
	Return token.Token
	Value  Expr // nil for `return;`
}

func (s *ReturnStmt) Pos() token.Position { return s.Return.Pos }
func (s *ReturnStmt) stmtNode()           {}

// ---------- Expressions ----------

// Literal is a number, string, true or false token.
type Literal struct {
	Tok token.Token
}

func (e *Literal) Pos() token.Position { return e.Tok.Pos }
func (e *Literal) exprNode()           {}

type Variable struct {
	Name token.Token
}

func (e *Variable) Pos() token.Position { return e.Name.Pos }
func (e *Variable) exprNode()           {}

// Assign is `NAME = EXPR`; its value is the assigned value.
type Assign struct {
	Name  token.Token
	Value Expr
}

func (e *Assign) Pos() token.Position { return e.Name.Pos }
func (e *Assign) exprNode()           {}

type Unary struct {
	Op token.Token
	X  Expr
}

func (e *Unary) Pos() token.Position { return e.Op.Pos }
func (e *Unary) exprNode()           {}

// Binary covers arithmetic, comparison and equality, distinguished by
// Op.Kind.
type Binary struct {
	Op    token.Token
	Left  Expr
	Right Expr
}

func (e *Binary) Pos() token.Position { return e.Op.Pos }
func (e *Binary) exprNode()           {}

// Logical is `and`/`or`. A separate node from Binary because the
// right operand is evaluated conditionally.
type Logical struct {
	Op    token.Token
	Left  Expr
	Right Expr
}

func (e *Logical) Pos() token.Position { return e.Op.Pos }
func (e *Logical) exprNode()           {}

// Group is a single parenthesized expression: `(e)`.
type Group struct {
	LParen token.Token
	X      Expr
}

func (e *Group) Pos() token.Position { return e.LParen.Pos }
func (e *Group) exprNode()           {}

// Tuple is `()` (unit) or `(a, b, ...)` with two or more elements.
// One-element parentheses parse as Group instead.
type Tuple struct {
	LParen token.Token
	Elems  []Expr
}

func (e *Tuple) Pos() token.Position { return e.LParen.Pos }
func (e *Tuple) exprNode()           {}

type Call struct {
	Callee Expr
	LParen token.Token
	Args   []Expr
}

func (e *Call) Pos() token.Position { return e.Callee.Pos() }
func (e *Call) exprNode()           {}

// RangeExpr is `from..to` or `from..step..to`. Step is nil in the
// two-part form. Ranges are half-open and only valid where a range is
// expected (a for statement).
type RangeExpr struct {
	From   Expr
	DotDot token.Token
	Step   Expr // nil unless the three-part form was written
	To     Expr
}

func (e *RangeExpr) Pos() token.Position { return e.From.Pos() }
func (e *RangeExpr) exprNode()           {}
