// Package runtime evaluates the checked AST. Evaluation is a
// synchronous depth-first walk over an Environment[Value] whose frames
// mirror the checker's exactly. Genuine runtime failures are division
// by zero and invalid ranges; any operator state the checker should
// have excluded aborts with an internal panic instead of surfacing as
// a user error.
package runtime

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"ono/internal/ast"
	"ono/internal/diag"
	"ono/internal/env"
	"ono/internal/token"
	"ono/internal/value"
)

type Interpreter struct {
	env *env.Environment[value.Value]
	out io.Writer
}

func New() *Interpreter {
	return NewWithOutput(os.Stdout)
}

// NewWithOutput routes the print native to w.
func NewWithOutput(w io.Writer) *Interpreter {
	i := &Interpreter{env: env.New[value.Value](), out: w}
	i.declareNatives()
	return i
}

// returnSignal unwinds a return statement to the enclosing call
// boundary. It travels as an error but never surfaces as one.
type returnSignal struct {
	val value.Value
}

func (returnSignal) Error() string { return "return" }

// languageError aborts on states the typechecker rules out. Reaching
// one means a checker bug, not a user mistake.
func languageError(format string, args ...any) {
	panic("[ONO LANGUAGE ERROR] " + fmt.Sprintf(format, args...))
}

// Interpret runs the statements in order and stops at the first
// runtime error. A top-level return stops execution silently.
func (i *Interpreter) Interpret(stmts []ast.Stmt) []*diag.Error {
	for _, stmt := range stmts {
		if err := i.execStmt(stmt); err != nil {
			if _, ok := err.(returnSignal); ok {
				return nil
			}
			return []*diag.Error{err.(*diag.Error)}
		}
	}
	return nil
}

// ---------- Statements ----------

func (i *Interpreter) execStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		_, err := i.evalExpr(s.Expression)
		return err

	case *ast.LetStmt:
		v, err := i.evalExpr(s.Init)
		if err != nil {
			return err
		}
		i.env.Define(s.Name.Lexeme, v)
		return nil

	case *ast.BlockStmt:
		return i.execBlock(s.Stmts, i.env.Nest())

	case *ast.IfStmt:
		cond, err := i.evalExpr(s.Cond)
		if err != nil {
			return err
		}
		if cond.Truthy() {
			return i.execStmt(s.Then)
		}
		if s.Else != nil {
			return i.execStmt(s.Else)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := i.evalExpr(s.Cond)
			if err != nil {
				return err
			}
			if !cond.Truthy() {
				return nil
			}
			if err := i.execStmt(s.Body); err != nil {
				return err
			}
		}

	case *ast.ForStmt:
		return i.execFor(s)

	case *ast.FunStmt:
		// The captured frame is a child of the current scope, so the
		// function sees outer mutation and its own binding below.
		closure := i.env.Nest()
		i.env.Define(s.Name.Lexeme, value.Fun(s.Name.Lexeme, s.Params, s.Body, closure))
		return nil

	case *ast.ReturnStmt:
		v := value.Unit()
		if s.Value != nil {
			var err error
			v, err = i.evalExpr(s.Value)
			if err != nil {
				return err
			}
		}
		return returnSignal{val: v}

	default:
		languageError("unknown statement %T", stmt)
		return nil
	}
}

// execBlock runs stmts with the given frame active, restoring the
// previous frame on every exit path.
func (i *Interpreter) execBlock(stmts []ast.Stmt, frame *env.Environment[value.Value]) error {
	prev := i.env
	i.env = frame
	defer func() { i.env = prev }()

	for _, stmt := range stmts {
		if err := i.execStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

// execFor validates the range, then iterates it half-open with the
// loop variable bound in a nested frame.
func (i *Interpreter) execFor(s *ast.ForStmt) error {
	rng, err := i.evalRange(s.Range)
	if err != nil {
		return err
	}

	frame := i.env.Nest()
	for v := rng.From; rng.Step > 0 && v < rng.To || rng.Step < 0 && v > rng.To; v += rng.Step {
		frame.Define(s.Var.Lexeme, value.Number(v))
		if err := i.execBlock(s.Body.Stmts, frame.Nest()); err != nil {
			return err
		}
	}
	return nil
}

// evalRange evaluates the bounds and step of a range and checks them:
// every part must be a number, the step non-zero with its sign
// matching the from/to direction. A violation is a runtime error, not
// a panic. The two-part form steps by one toward to.
func (i *Interpreter) evalRange(r *ast.RangeExpr) (*value.Range, error) {
	from, err := i.rangePart(r, r.From)
	if err != nil {
		return nil, err
	}
	to, err := i.rangePart(r, r.To)
	if err != nil {
		return nil, err
	}

	step := 1.0
	if from > to {
		step = -1.0
	}
	if r.Step != nil {
		step, err = i.rangePart(r, r.Step)
		if err != nil {
			return nil, err
		}
	}

	if step == 0 || from < to && step < 0 || from > to && step > 0 {
		return nil, diag.RuntimeError(diag.InvalidRange, r.DotDot)
	}
	return &value.Range{From: from, To: to, Step: step}, nil
}

func (i *Interpreter) rangePart(r *ast.RangeExpr, part ast.Expr) (float64, error) {
	v, err := i.evalExpr(part)
	if err != nil {
		return 0, err
	}
	if v.Kind != value.KindNumber {
		return 0, diag.RuntimeError(diag.InvalidRange, r.DotDot)
	}
	return v.Num, nil
}

// ---------- Expressions ----------

func (i *Interpreter) evalExpr(expr ast.Expr) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return i.literal(e), nil

	case *ast.Variable:
		v, ok := i.env.Get(e.Name.Lexeme)
		if !ok {
			languageError("undefined variable '%s' reached evaluation", e.Name.Lexeme)
		}
		return v, nil

	case *ast.Assign:
		v, err := i.evalExpr(e.Value)
		if err != nil {
			return value.Value{}, err
		}
		if !i.env.Assign(e.Name.Lexeme, v) {
			languageError("assignment to undefined '%s' reached evaluation", e.Name.Lexeme)
		}
		return v, nil

	case *ast.Unary:
		return i.evalUnary(e)

	case *ast.Binary:
		return i.evalBinary(e)

	case *ast.Logical:
		return i.evalLogical(e)

	case *ast.Group:
		return i.evalExpr(e.X)

	case *ast.Tuple:
		elems := make([]value.Value, len(e.Elems))
		for idx, el := range e.Elems {
			v, err := i.evalExpr(el)
			if err != nil {
				return value.Value{}, err
			}
			elems[idx] = v
		}
		return value.Tuple(elems), nil

	case *ast.Call:
		return i.evalCall(e)

	default:
		languageError("unknown expression %T", expr)
		return value.Value{}, nil
	}
}

// literal converts directly from the token. The string lexeme still
// carries its quotes; numbers re-parse the lexeme the lexer validated.
func (i *Interpreter) literal(e *ast.Literal) value.Value {
	switch e.Tok.Kind {
	case token.Number:
		n, err := strconv.ParseFloat(e.Tok.Lexeme, 64)
		if err != nil {
			languageError("unparsable number literal '%s'", e.Tok.Lexeme)
		}
		return value.Number(n)
	case token.String:
		return value.Text(e.Tok.Lexeme[1 : len(e.Tok.Lexeme)-1])
	case token.True:
		return value.Bool(true)
	case token.False:
		return value.Bool(false)
	}
	languageError("unknown literal kind %s", e.Tok.Kind)
	return value.Value{}
}

func (i *Interpreter) evalUnary(e *ast.Unary) (value.Value, error) {
	operand, err := i.evalExpr(e.X)
	if err != nil {
		return value.Value{}, err
	}

	switch e.Op.Kind {
	case token.Minus:
		if operand.Kind != value.KindNumber {
			languageError("cannot '-%s'", operand.TypeName())
		}
		return value.Number(-operand.Num), nil
	case token.Bang:
		return value.Bool(!operand.Truthy()), nil
	}
	languageError("unknown unary operator '%s'", e.Op.Lexeme)
	return value.Value{}, nil
}

func (i *Interpreter) evalBinary(e *ast.Binary) (value.Value, error) {
	left, err := i.evalExpr(e.Left)
	if err != nil {
		return value.Value{}, err
	}
	right, err := i.evalExpr(e.Right)
	if err != nil {
		return value.Value{}, err
	}

	switch e.Op.Kind {
	case token.Plus:
		if left.Kind == value.KindNumber && right.Kind == value.KindNumber {
			return value.Number(left.Num + right.Num), nil
		}
		if left.Kind == value.KindText && right.Kind == value.KindText {
			return value.Text(left.Str + right.Str), nil
		}
	case token.Minus:
		if left.Kind == value.KindNumber && right.Kind == value.KindNumber {
			return value.Number(left.Num - right.Num), nil
		}
	case token.Star:
		if left.Kind == value.KindNumber && right.Kind == value.KindNumber {
			return value.Number(left.Num * right.Num), nil
		}
	case token.Slash:
		if left.Kind == value.KindNumber && right.Kind == value.KindNumber {
			if right.Num == 0 {
				return value.Value{}, diag.RuntimeError(diag.DivisionByZero, e.Op)
			}
			return value.Number(left.Num / right.Num), nil
		}
	case token.Less:
		if left.Kind == value.KindNumber && right.Kind == value.KindNumber {
			return value.Bool(left.Num < right.Num), nil
		}
	case token.LessEq:
		if left.Kind == value.KindNumber && right.Kind == value.KindNumber {
			return value.Bool(left.Num <= right.Num), nil
		}
	case token.Greater:
		if left.Kind == value.KindNumber && right.Kind == value.KindNumber {
			return value.Bool(left.Num > right.Num), nil
		}
	case token.GreaterEq:
		if left.Kind == value.KindNumber && right.Kind == value.KindNumber {
			return value.Bool(left.Num >= right.Num), nil
		}
	case token.Eq:
		return value.Bool(value.Equals(left, right)), nil
	case token.BangEq:
		return value.Bool(!value.Equals(left, right)), nil
	}

	languageError("cannot '%s %s %s'", left.TypeName(), e.Op.Lexeme, right.TypeName())
	return value.Value{}, nil
}

// evalLogical short-circuits and yields the operand value that decided
// the result, not a coerced boolean.
func (i *Interpreter) evalLogical(e *ast.Logical) (value.Value, error) {
	left, err := i.evalExpr(e.Left)
	if err != nil {
		return value.Value{}, err
	}

	if e.Op.Kind == token.Or {
		if left.Truthy() {
			return left, nil
		}
	} else {
		if !left.Truthy() {
			return left, nil
		}
	}
	return i.evalExpr(e.Right)
}

func (i *Interpreter) evalCall(e *ast.Call) (value.Value, error) {
	callee, err := i.evalExpr(e.Callee)
	if err != nil {
		return value.Value{}, err
	}

	args := make([]value.Value, len(e.Args))
	for idx, arg := range e.Args {
		v, err := i.evalExpr(arg)
		if err != nil {
			return value.Value{}, err
		}
		args[idx] = v
	}

	switch callee.Kind {
	case value.KindFunction:
		fn := callee.Fn
		if len(args) != len(fn.Params) {
			languageError("'%s' takes %d arguments but got %d", fn.Name, len(fn.Params), len(args))
		}
		frame := fn.Closure.Nest()
		for idx, p := range fn.Params {
			frame.Define(p.Lexeme, args[idx])
		}
		err := i.execBlock(fn.Body.Stmts, frame)
		if sig, ok := err.(returnSignal); ok {
			return sig.val, nil
		}
		if err != nil {
			return value.Value{}, err
		}
		return value.Unit(), nil

	case value.KindNative:
		if len(args) != callee.Native.Arity {
			languageError("'%s' takes %d arguments but got %d", callee.Native.Name, callee.Native.Arity, len(args))
		}
		return callee.Native.Fn(args), nil
	}

	languageError("value of type %s is not callable", callee.TypeName())
	return value.Value{}, nil
}
