package value_test

import (
	"testing"

	"ono/internal/value"
)

func TestValueString(t *testing.T) {
	tests := []struct {
		val  value.Value
		want string
	}{
		{value.Number(4), "4"},
		{value.Number(2.5), "2.5"},
		{value.Number(-0.5), "-0.5"},
		{value.Text("hi"), "hi"},
		{value.Bool(true), "true"},
		{value.Bool(false), "false"},
		{value.Unit(), "()"},
		{value.Tuple([]value.Value{value.Number(1), value.Text("a")}), "(1, a)"},
		{value.NativeFun("clock", 0, nil), "<native fun clock>"},
	}

	for _, tt := range tests {
		if got := tt.val.String(); got != tt.want {
			t.Errorf("String() wrong. expected=%q, got=%q", tt.want, got)
		}
	}
}

func TestValueTruthy(t *testing.T) {
	tests := []struct {
		val  value.Value
		want bool
	}{
		{value.Bool(true), true},
		{value.Bool(false), false},
		{value.Number(0), true},
		{value.Text(""), true},
		{value.Unit(), false},
		{value.Tuple([]value.Value{value.Number(1)}), true},
	}

	for _, tt := range tests {
		if got := tt.val.Truthy(); got != tt.want {
			t.Errorf("Truthy(%s) wrong. expected=%v, got=%v", tt.val, tt.want, got)
		}
	}
}

func TestValueEquals(t *testing.T) {
	if !value.Equals(value.Number(1), value.Number(1)) {
		t.Error("equal numbers compare unequal")
	}
	if value.Equals(value.Number(1), value.Text("1")) {
		t.Error("number compares equal to text")
	}
	if !value.Equals(
		value.Tuple([]value.Value{value.Number(1), value.Bool(true)}),
		value.Tuple([]value.Value{value.Number(1), value.Bool(true)}),
	) {
		t.Error("structurally equal tuples compare unequal")
	}

	f := value.Fun("f", nil, nil, nil)
	g := value.Fun("f", nil, nil, nil)
	if !value.Equals(f, f) {
		t.Error("function not equal to itself")
	}
	if value.Equals(f, g) {
		t.Error("distinct functions compare equal")
	}
}
