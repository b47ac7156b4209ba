package value

import (
	"fmt"
	"strconv"
	"strings"

	"ono/internal/ast"
	"ono/internal/env"
	"ono/internal/token"
)

// Kind is the type of a value at runtime.
type Kind int

const (
	KindInvalid Kind = iota
	KindNumber
	KindText
	KindBool
	KindTuple
	KindFunction
	KindNative
)

// Function is a user-declared function together with the scope chain
// captured at its definition site. The captured frame is shared with
// the defining scope, so the function sees later mutation of outer
// variables and its own binding.
type Function struct {
	Name    string
	Params  []token.Token
	Body    *ast.BlockStmt
	Closure *env.Environment[Value]
}

// Native is a host-provided builtin.
type Native struct {
	Name  string
	Arity int
	Fn    func(args []Value) Value
}

// Range is a half-open numeric range with an explicit step.
type Range struct {
	From float64
	To   float64
	Step float64
}

// Value is the universal runtime value.
type Value struct {
	Kind   Kind
	Num    float64
	Str    string
	Bool   bool
	Tuple  []Value
	Fn     *Function
	Native *Native
}

func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case KindText:
		return v.Str
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindTuple:
		parts := make([]string, len(v.Tuple))
		for i, el := range v.Tuple {
			parts[i] = el.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindFunction:
		return fmt.Sprintf("<fun %s>", v.Fn.Name)
	case KindNative:
		return fmt.Sprintf("<native fun %s>", v.Native.Name)
	default:
		return "<invalid>"
	}
}

// TypeName is the value's type as named in diagnostics.
func (v Value) TypeName() string {
	switch v.Kind {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	case KindTuple:
		return "tuple"
	case KindFunction, KindNative:
		return "fun"
	default:
		return "invalid"
	}
}

// Truthy reports how conditions read a value: false and unit are
// falsy, everything else truthy.
func (v Value) Truthy() bool {
	if v.Kind == KindBool {
		return v.Bool
	}
	if v.Kind == KindTuple && len(v.Tuple) == 0 {
		return false
	}
	return true
}

// Equals is structural for numbers, texts, bools and tuples, identity
// for functions.
func Equals(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNumber:
		return a.Num == b.Num
	case KindText:
		return a.Str == b.Str
	case KindBool:
		return a.Bool == b.Bool
	case KindTuple:
		if len(a.Tuple) != len(b.Tuple) {
			return false
		}
		for i := range a.Tuple {
			if !Equals(a.Tuple[i], b.Tuple[i]) {
				return false
			}
		}
		return true
	case KindFunction:
		return a.Fn == b.Fn
	case KindNative:
		return a.Native == b.Native
	default:
		return false
	}
}

// Helpers

func Number(v float64) Value {
	return Value{Kind: KindNumber, Num: v}
}

func Text(s string) Value {
	return Value{Kind: KindText, Str: s}
}

func Bool(v bool) Value {
	return Value{Kind: KindBool, Bool: v}
}

func Tuple(vals []Value) Value {
	return Value{Kind: KindTuple, Tuple: vals}
}

// Unit is the empty tuple.
func Unit() Value {
	return Value{Kind: KindTuple}
}

func Fun(name string, params []token.Token, body *ast.BlockStmt, closure *env.Environment[Value]) Value {
	return Value{Kind: KindFunction, Fn: &Function{Name: name, Params: params, Body: body, Closure: closure}}
}

func NativeFun(name string, arity int, fn func(args []Value) Value) Value {
	return Value{Kind: KindNative, Native: &Native{Name: name, Arity: arity, Fn: fn}}
}
