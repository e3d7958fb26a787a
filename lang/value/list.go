package value

import (
	"fmt"
	"io"
	"strings"

	"github.com/mna/luci/lang/ast"
	"github.com/mna/luci/lang/gc"
)

// List is a mutable, heap-allocated, ordered sequence of values.
type List struct {
	gc.Header
	Items []Value
}

// NewList returns a *List wrapping items directly (no copy); callers that
// need to retain their own slice should pass a copy.
func NewList(items []Value) *List {
	return &List{Items: items}
}

var listType = &Type{
	Name: "list",
	Copy: func(v Value) Value {
		l := v.(*List)
		items := make([]Value, len(l.Items))
		copy(items, l.Items)
		return &List{Items: items}
	},
	Deepcopy: func(v Value) Value {
		l := v.(*List)
		items := make([]Value, len(l.Items))
		for i, it := range l.Items {
			items[i] = Deepcopy(it)
		}
		return &List{Items: items}
	},
	Repr: func(v Value) string {
		l := v.(*List)
		parts := make([]string, len(l.Items))
		for i, it := range l.Items {
			parts[i] = Repr(it)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	},
	AsBool: func(v Value) bool { return len(v.(*List).Items) > 0 },
	Print: func(w io.Writer, v Value) {
		io.WriteString(w, Repr(v))
	},
	Len: func(v Value) (int, bool) { return len(v.(*List).Items), true },
	Binary: func(op ast.BinOp, v, other Value, side Side) (Value, error, bool) {
		o, ok := other.(*List)
		if !ok || op != ast.OpAdd {
			return nil, nil, false
		}
		a, b := v.(*List), o
		if side == Right {
			a, b = b, a
		}
		items := make([]Value, 0, len(a.Items)+len(b.Items))
		items = append(items, a.Items...)
		items = append(items, b.Items...)
		return &List{Items: items}, nil, true
	},
	Contains: func(v, item Value) (bool, error) {
		l := v.(*List)
		for _, it := range l.Items {
			if eq, err := Equal(it, item); err != nil {
				return false, err
			} else if eq {
				return true, nil
			}
		}
		return false, nil
	},
	CGet: func(v, index Value) (Value, error) {
		l := v.(*List)
		ix, ok := index.(Int)
		if !ok {
			return nil, fmt.Errorf("list index must be an int, got %s", TypeName(index))
		}
		i := resolveIndex(int(ix), len(l.Items))
		if i < 0 || i >= len(l.Items) {
			return nil, fmt.Errorf("list index out of range: %d", int(ix))
		}
		return l.Items[i], nil
	},
	CPut: func(v, index, val Value) error {
		l := v.(*List)
		ix, ok := index.(Int)
		if !ok {
			return fmt.Errorf("list index must be an int, got %s", TypeName(index))
		}
		i := resolveIndex(int(ix), len(l.Items))
		if i < 0 || i >= len(l.Items) {
			return fmt.Errorf("list index out of range: %d", int(ix))
		}
		l.Items[i] = val
		return nil
	},
	Iterate: func(v Value) (Iterator, error) {
		return &listIterator{items: v.(*List).Items}, nil
	},
}

func (v *List) Descriptor() *Type { return listType }

// Mark satisfies gc.Cell: it traces every heap-allocated element.
func (l *List) Mark(h *gc.Heap) {
	for _, it := range l.Items {
		if c, ok := it.(gc.Cell); ok {
			h.Mark(c)
		}
	}
}

// resolveIndex turns a possibly-negative index (counting from the end, as
// -1 is the last element) into a non-negative one relative to n, leaving
// out-of-range indices for the caller to reject.
func resolveIndex(i, n int) int {
	if i < 0 {
		return i + n
	}
	return i
}

type listIterator struct {
	items []Value
	i     int
}

func (it *listIterator) Next(out *Value) bool {
	if it.i >= len(it.items) {
		return false
	}
	*out = it.items[it.i]
	it.i++
	return true
}

// Equal reports whether x and y compare equal via the == operator.
func Equal(x, y Value) (bool, error) {
	v, err := Binary(ast.OpEq, x, y)
	if err != nil {
		return false, err
	}
	return AsBool(v), nil
}
