// Package env provides the lexical scope chain shared by the
// typechecker and the interpreter: one generic frame type bound to
// types during checking and to values during evaluation, so both
// phases see identical scoping rules.
package env

// Environment is one frame in the scope chain. Frames link to their
// parent; closures hold a reference to their captured frame, which
// keeps it alive and mutable after the defining block exits.
type Environment[V any] struct {
	vars   map[string]V
	parent *Environment[V]
}

func New[V any]() *Environment[V] {
	return &Environment[V]{vars: map[string]V{}}
}

// Nest returns a fresh child frame over e.
func (e *Environment[V]) Nest() *Environment[V] {
	return &Environment[V]{vars: map[string]V{}, parent: e}
}

func (e *Environment[V]) Parent() *Environment[V] { return e.parent }

// Define binds name in this frame, shadowing any outer binding.
func (e *Environment[V]) Define(name string, v V) {
	e.vars[name] = v
}

// Get walks the chain outward and returns the nearest binding.
func (e *Environment[V]) Get(name string) (V, bool) {
	for frame := e; frame != nil; frame = frame.parent {
		if v, ok := frame.vars[name]; ok {
			return v, true
		}
	}
	var zero V
	return zero, false
}

// Assign rebinds name in the nearest frame that already defines it.
// It reports false when no frame does.
func (e *Environment[V]) Assign(name string, v V) bool {
	for frame := e; frame != nil; frame = frame.parent {
		if _, ok := frame.vars[name]; ok {
			frame.vars[name] = v
			return true
		}
	}
	return false
}
