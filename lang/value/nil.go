package value

import (
	"io"

	"github.com/mna/luci/lang/ast"
)

// nilValue is the type of Nil, the singleton absence-of-value.
type nilValue struct{}

// Nil is the sole instance of the nil value.
var Nil Value = nilValue{}

var nilType = &Type{
	Name:     "nil",
	Copy:     func(v Value) Value { return v },
	Deepcopy: func(v Value) Value { return v },
	Repr:     func(Value) string { return "nil" },
	AsBool:   func(Value) bool { return false },
	Print:    func(w io.Writer, v Value) { io.WriteString(w, "nil") },
	Binary: func(op ast.BinOp, v, other Value, side Side) (Value, error, bool) {
		switch op {
		case ast.OpEq:
			_, isNil := other.(nilValue)
			return boolInt(isNil), nil, true
		case ast.OpNeq:
			_, isNil := other.(nilValue)
			return boolInt(!isNil), nil, true
		}
		return nil, nil, false
	},
}

func (nilValue) Descriptor() *Type { return nilType }

func boolInt(b bool) Int {
	if b {
		return 1
	}
	return 0
}
