package value

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mna/luci/lang/ast"
)

// String is an immutable string value, never heap-allocated: like Int and
// Float it is copied by value, and Go's own GC (not component C1's Heap)
// owns the backing bytes.
type String string

var stringType = &Type{
	Name:     "string",
	Copy:     func(v Value) Value { return v },
	Deepcopy: func(v Value) Value { return v },
	Repr:     func(v Value) string { return strconv.Quote(string(v.(String))) },
	AsBool:   func(v Value) bool { return len(v.(String)) > 0 },
	Print:    func(w io.Writer, v Value) { io.WriteString(w, string(v.(String))) },
	Len:      func(v Value) (int, bool) { return len(v.(String)), true },
	Binary:   stringBinary,
	Contains: func(v, item Value) (bool, error) {
		sub, ok := item.(String)
		if !ok {
			return false, fmt.Errorf("'in' requires a string operand, got %s", TypeName(item))
		}
		return strings.Contains(string(v.(String)), string(sub)), nil
	},
	CGet: func(v, index Value) (Value, error) {
		s := string(v.(String))
		ix, ok := index.(Int)
		if !ok {
			return nil, fmt.Errorf("string index must be an int, got %s", TypeName(index))
		}
		i := int(ix)
		if i < 0 {
			i += len(s)
		}
		if i < 0 || i >= len(s) {
			return nil, fmt.Errorf("string index out of range: %d", int(ix))
		}
		return String(s[i : i+1]), nil
	},
	Iterate: func(v Value) (Iterator, error) {
		s := string(v.(String))
		return &stringIterator{s: s}, nil
	},
}

func (v String) Descriptor() *Type { return stringType }

type stringIterator struct {
	s string
	i int
}

func (it *stringIterator) Next(out *Value) bool {
	if it.i >= len(it.s) {
		return false
	}
	*out = String(it.s[it.i : it.i+1])
	it.i++
	return true
}

func stringBinary(op ast.BinOp, v, other Value, side Side) (Value, error, bool) {
	s := string(v.(String))

	if n, ok := other.(Int); ok {
		// string repetition is commutative in surface syntax ("x"*3 or 3*"x")
		// but only defined for '*'.
		if op == ast.OpMul {
			if n < 0 {
				n = 0
			}
			return String(strings.Repeat(s, int(n))), nil, true
		}
		return nil, nil, false
	}

	o, ok := other.(String)
	if !ok {
		return nil, nil, false
	}
	a, b := s, string(o)
	if side == Right {
		a, b = b, a
	}

	switch op {
	case ast.OpAdd:
		return String(a + b), nil, true
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
	}
	return nil, nil, false
}
