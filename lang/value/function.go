package value

import (
	"fmt"
	"io"

	"github.com/mna/luci/lang/compiler"
	"github.com/mna/luci/lang/gc"
)

// Function is a callable Luci value: a shared, immutable FuncProto (the
// bytecode compiled for it, component C7) plus a reference to the locals
// slice of the frame it was constructed in. Luci has no per-variable
// closure capture; instead every nested function literal shares its
// enclosing frame's entire locals array by reference, which the machine
// calls "globals" from the nested function's point of view even when that
// enclosing frame is itself not the top-level program.
type Function struct {
	gc.Header
	Proto   *compiler.FuncProto
	Globals []Value // the enclosing frame's locals, shared by reference
}

// NewFunction binds proto to the locals of its enclosing frame.
func NewFunction(proto *compiler.FuncProto, globals []Value) *Function {
	return &Function{Proto: proto, Globals: globals}
}

var functionType = &Type{
	Name:     "function",
	Copy:     func(v Value) Value { return v }, // functions are reference values
	Deepcopy: func(v Value) Value { return v },
	Repr: func(v Value) string {
		f := v.(*Function)
		name := f.Proto.Name
		if name == "" {
			name = "<anonymous>"
		}
		return fmt.Sprintf("<function %s>", name)
	},
	AsBool: func(Value) bool { return true },
	Print:  func(w io.Writer, v Value) { fmt.Fprint(w, Repr(v)) },
}

func (v *Function) Descriptor() *Type { return functionType }

// Mark satisfies gc.Cell: it traces the enclosing frame's locals this
// closure shares by reference.
func (f *Function) Mark(h *gc.Heap) {
	for _, g := range f.Globals {
		if c, ok := g.(gc.Cell); ok {
			h.Mark(c)
		}
	}
}

// LibFunc is a builtin function implemented in Go (component "standard
// library dispatch"). It is never heap-allocated: the stdlib registers a
// fixed set of these once at startup.
type LibFunc struct {
	FuncName string
	Fn       func(args []Value) (Value, error)
}

var libFuncType = &Type{
	Name:     "builtin_function",
	Copy:     func(v Value) Value { return v },
	Deepcopy: func(v Value) Value { return v },
	Repr:     func(v Value) string { return fmt.Sprintf("<builtin %s>", v.(*LibFunc).FuncName) },
	AsBool:   func(Value) bool { return true },
	Print:    func(w io.Writer, v Value) { fmt.Fprint(w, Repr(v)) },
}

func (v *LibFunc) Descriptor() *Type { return libFuncType }

// Name returns the builtin's registered name, used in diagnostics.
func (v *LibFunc) Name() string { return v.FuncName }
