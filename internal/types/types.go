package types

import "strings"

type Type interface {
	String() string
	equal(Type) bool
}

// Basic types

type BasicKind int

const (
	BasicInvalid BasicKind = iota
	BasicNumber
	BasicText
	BasicBool
	BasicAny
)

type Basic struct {
	Kind BasicKind
	Name string
}

func (b *Basic) String() string { return b.Name }

func (b *Basic) equal(other Type) bool {
	o, ok := other.(*Basic)
	if !ok {
		return false
	}
	return b.Kind == o.Kind
}

var (
	// Invalid is the type of an expression that already failed to
	// check. It compares compatible with everything so one mistake
	// does not cascade.
	Invalid = &Basic{Kind: BasicInvalid, Name: "invalid"}
	Number  = &Basic{Kind: BasicNumber, Name: "number"}
	Text    = &Basic{Kind: BasicText, Name: "text"}
	Bool    = &Basic{Kind: BasicBool, Name: "bool"}
	// Any is the static type of unannotated function parameters and
	// results.
	Any = &Basic{Kind: BasicAny, Name: "any"}
)

func IsInvalid(t Type) bool {
	b, ok := t.(*Basic)
	return ok && b.Kind == BasicInvalid
}

func IsAny(t Type) bool {
	b, ok := t.(*Basic)
	return ok && b.Kind == BasicAny
}

// Tuple is a structural product type. The empty tuple is the unit
// type.
type Tuple struct {
	Elems []Type
}

var Unit = &Tuple{}

func (t *Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (t *Tuple) equal(other Type) bool {
	o, ok := other.(*Tuple)
	if !ok || len(t.Elems) != len(o.Elems) {
		return false
	}
	for i, e := range t.Elems {
		if !e.equal(o.Elems[i]) {
			return false
		}
	}
	return true
}

// Func is a function's signature. Parameters are unannotated in the
// language, so they carry Any; Result is Any as well.
type Func struct {
	Params []Type
	Result Type
}

func (f *Func) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return "fun(" + strings.Join(parts, ", ") + ")"
}

func (f *Func) equal(other Type) bool {
	o, ok := other.(*Func)
	if !ok || len(f.Params) != len(o.Params) {
		return false
	}
	for i, p := range f.Params {
		if !p.equal(o.Params[i]) {
			return false
		}
	}
	return f.Result.equal(o.Result)
}

// Equal is strict structural equality.
func Equal(a, b Type) bool { return a.equal(b) }

// Compatible is equality loosened by Any and Invalid, which match
// anything.
func Compatible(a, b Type) bool {
	if IsAny(a) || IsAny(b) || IsInvalid(a) || IsInvalid(b) {
		return true
	}
	return a.equal(b)
}
