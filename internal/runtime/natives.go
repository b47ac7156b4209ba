package runtime

import (
	"fmt"
	"time"

	"ono/internal/value"
)

// declareNatives seeds the global frame. The checker declares the
// same names with matching signatures.
func (i *Interpreter) declareNatives() {
	i.env.Define("print", value.NativeFun("print", 1, func(args []value.Value) value.Value {
		fmt.Fprintln(i.out, args[0])
		return value.Unit()
	}))

	i.env.Define("clock", value.NativeFun("clock", 0, func(args []value.Value) value.Value {
		return value.Number(float64(time.Now().UnixNano()))
	}))
}
