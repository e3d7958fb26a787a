package value

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/mna/luci/lang/ast"
)

// Float is a 64-bit floating point value, never heap-allocated.
type Float float64

var floatType = &Type{
	Name:     "float",
	Copy:     func(v Value) Value { return v },
	Deepcopy: func(v Value) Value { return v },
	Repr:     func(v Value) string { return strconv.FormatFloat(float64(v.(Float)), 'g', -1, 64) },
	AsBool:   func(v Value) bool { return v.(Float) != 0 },
	Print: func(w io.Writer, v Value) {
		io.WriteString(w, strconv.FormatFloat(float64(v.(Float)), 'g', -1, 64))
	},
	Len:    func(Value) (int, bool) { return 0, false },
	Neg:    func(v Value) (Value, error) { return -v.(Float), nil },
	Binary: floatBinary,
}

func (v Float) Descriptor() *Type { return floatType }

// ParseFloat converts a string to a Float the way the float() builtin does.
func ParseFloat(s string) (Value, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("float: cannot convert %q to float", s)
	}
	return Float(f), nil
}

func floatBinary(op ast.BinOp, v, other Value, side Side) (Value, error, bool) {
	x := float64(v.(Float))

	var y float64
	switch o := other.(type) {
	case Float:
		y = float64(o)
	case Int:
		y = float64(o)
	default:
		return nil, nil, false
	}

	a, b := x, y
	if side == Right {
		a, b = b, a
	}

	switch op {
	case ast.OpAdd:
		return Float(a + b), nil, true
	case ast.OpSub:
		return Float(a - b), nil, true
	case ast.OpMul:
		return Float(a * b), nil, true
	case ast.OpDiv:
		if b == 0 {
			return nil, fmt.Errorf("division by zero"), true
		}
		return Float(a / b), nil, true
	case ast.OpPow:
		return Float(math.Pow(a, b)), nil, true
	case ast.OpEq:
		return boolInt(a == b), nil, true
	case ast.OpNeq:
		return boolInt(a != b), nil, true
	case ast.OpLt:
		return boolInt(a < b), nil, true
	case ast.OpGt:
		return boolInt(a > b), nil, true
	case ast.OpLte:
		return boolInt(a <= b), nil, true
	case ast.OpGte:
		return boolInt(a >= b), nil, true
	case ast.OpMod:
		return nil, fmt.Errorf("modulo is only defined for int operands"), true
	}
	return nil, nil, false
}
