package value

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/mna/luci/lang/ast"
)

// Int is a 64-bit signed integer value. It is never heap-allocated: ints are
// copied by value like any Go int64, so Type.Copy/Deepcopy are identity and
// Int does not implement gc.Cell.
type Int int64

var intType = &Type{
	Name:     "int",
	Copy:     func(v Value) Value { return v },
	Deepcopy: func(v Value) Value { return v },
	Repr:     func(v Value) string { return strconv.FormatInt(int64(v.(Int)), 10) },
	AsBool:   func(v Value) bool { return v.(Int) != 0 },
	Print:    func(w io.Writer, v Value) { io.WriteString(w, strconv.FormatInt(int64(v.(Int)), 10)) },
	Len:      func(Value) (int, bool) { return 0, false },
	Neg:      func(v Value) (Value, error) { return -v.(Int), nil },
	BwNot:    func(v Value) (Value, error) { return ^v.(Int), nil },
	Binary:   intBinary,
}

func (v Int) Descriptor() *Type { return intType }

// ParseInt converts a string to an Int the way the int() builtin does,
// reporting a conversion error using the same wording as the other
// conversion builtins.
func ParseInt(s string) (Value, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("int: cannot convert %q to int", s)
	}
	return Int(n), nil
}

func intBinary(op ast.BinOp, v, other Value, side Side) (Value, error, bool) {
	x := int64(v.(Int))

	if f, ok := other.(Float); ok {
		// int promoted to float whenever the other operand is a float.
		return floatBinary(op, Float(float64(x)), f, side)
	}

	y, ok := other.(Int)
	if !ok {
		return nil, nil, false
	}
	a, b := x, int64(y)
	if side == Right {
		a, b = b, a
	}

	switch op {
	case ast.OpAdd:
		return Int(a + b), nil, true
	case ast.OpSub:
		return Int(a - b), nil, true
	case ast.OpMul:
		return Int(a * b), nil, true
	case ast.OpDiv:
		if b == 0 {
			return nil, fmt.Errorf("division by zero"), true
		}
		return Int(a / b), nil, true
	case ast.OpMod:
		if b == 0 {
			return nil, fmt.Errorf("modulo by zero"), true
		}
		return Int(a % b), nil, true
	case ast.OpPow:
		return Int(int64(math.Pow(float64(a), float64(b)))), nil, true
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
	case ast.OpBwAnd:
		return Int(a & b), nil, true
	case ast.OpBwOr:
		return Int(a | b), nil, true
	case ast.OpBwXor:
		return Int(a ^ b), nil, true
	}
	return nil, nil, false
}
