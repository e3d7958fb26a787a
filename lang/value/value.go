// Package value implements the dynamically-typed value model (component
// C2): every value carries a pointer to a Type descriptor, a struct of
// function fields that implement that type's behavior for copying,
// representation, truthiness, arithmetic, container access and iteration.
// Garbage-collection tracing is not part of the descriptor: heap-allocated
// values implement gc.Cell's Mark and Finalize methods. Dispatch never
// type-switches on the value itself outside of this package; callers go
// through package-level functions such as Binary, Neg, LgNot, BwNot, CGet,
// CPut, Copy, Repr and Print, which invoke the fields of v.Descriptor().
package value

import (
	"fmt"
	"io"

	"github.com/mna/luci/lang/ast"
	"github.com/mna/luci/lang/gc"
)

// Value is implemented by every value a Luci program can manipulate.
type Value interface {
	// Descriptor returns the type's function-pointer table. Every Value of
	// the same Go type returns the same *Type singleton.
	Descriptor() *Type
}

// Side indicates which operand of a binary operation the receiver is,
// mirroring the convention used for interpreting asymmetric operators like
// string multiplication ("x" * 3 vs 3 * "x").
type Side bool

const (
	Left  Side = false
	Right Side = true
)

// Type is the function-pointer dispatch table (component C2's type
// descriptor). A nil field means the operation is unsupported for that
// type; callers surface that as a TypeError. AsBool is the exception:
// value.AsBool calls it without a nil check, so every type sets it.
type Type struct {
	Name string

	Copy     func(v Value) Value
	Deepcopy func(v Value) Value
	Repr     func(v Value) string
	AsBool   func(v Value) bool
	Print    func(w io.Writer, v Value)

	// Len reports the element count of a sequence-like value; ok is false if
	// the type has no notion of length.
	Len func(v Value) (n int, ok bool)

	Neg   func(v Value) (Value, error)
	LgNot func(v Value) Value
	BwNot func(v Value) (Value, error)

	// Binary implements a binary operator with the receiver as one operand
	// (side indicates which); ok is false if this type declines to handle
	// the operator for the given other operand, in which case the dispatcher
	// tries the other operand's type.
	Binary func(op ast.BinOp, v, other Value, side Side) (result Value, err error, ok bool)

	Contains func(v, item Value) (bool, error)
	CGet     func(v, index Value) (Value, error)
	CPut     func(v, index, val Value) error
	Iterate  func(v Value) (Iterator, error)
}

// Iterator is the protocol returned by Type.Iterate.
type Iterator interface {
	// Next reports whether there was a next element, setting *out to it.
	Next(out *Value) bool
}

// Copy returns a shallow copy of v. Call arguments are bound with Deepcopy,
// not Copy (see lang/machine's callFunction).
func Copy(v Value) Value {
	if d := v.Descriptor(); d.Copy != nil {
		return d.Copy(v)
	}
	return v
}

// Deepcopy returns a recursive copy of v.
func Deepcopy(v Value) Value {
	if d := v.Descriptor(); d.Deepcopy != nil {
		return d.Deepcopy(v)
	}
	return v
}

// Repr returns the printable representation of v.
func Repr(v Value) string {
	if v == nil {
		return "nil"
	}
	if d := v.Descriptor(); d.Repr != nil {
		return d.Repr(v)
	}
	return fmt.Sprintf("<%s>", v.Descriptor().Name)
}

// Print writes v's display form to w (used by the print/println builtins),
// falling back to Repr when a type has no dedicated Print.
func Print(w io.Writer, v Value) {
	if v == nil {
		fmt.Fprint(w, "nil")
		return
	}
	if d := v.Descriptor(); d.Print != nil {
		d.Print(w, v)
		return
	}
	fmt.Fprint(w, Repr(v))
}

// AsBool reports v's truthiness.
func AsBool(v Value) bool {
	if v == nil {
		return false
	}
	return v.Descriptor().AsBool(v)
}

// Len reports the element count of v, or ok=false if v has no length.
func Len(v Value) (int, bool) {
	d := v.Descriptor()
	if d.Len == nil {
		return 0, false
	}
	return d.Len(v)
}

// TypeName returns v's type name, as reported by its descriptor.
func TypeName(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.Descriptor().Name
}

// Neg implements unary minus.
func Neg(v Value) (Value, error) {
	d := v.Descriptor()
	if d.Neg == nil {
		return nil, fmt.Errorf("unsupported operand type for -: %s", d.Name)
	}
	return d.Neg(v)
}

// LgNot implements the logical "not" operator, which every type supports
// via its truthiness.
func LgNot(v Value) Value {
	if v == nil {
		return Int(1)
	}
	if d := v.Descriptor(); d.LgNot != nil {
		return d.LgNot(v)
	}
	if AsBool(v) {
		return Int(0)
	}
	return Int(1)
}

// BwNot implements unary bitwise complement.
func BwNot(v Value) (Value, error) {
	d := v.Descriptor()
	if d.BwNot == nil {
		return nil, fmt.Errorf("unsupported operand type for ~: %s", d.Name)
	}
	return d.BwNot(v)
}

// Binary dispatches a binary operator, trying x's type first and, if it
// declines, y's type with operands swapped.
func Binary(op ast.BinOp, x, y Value) (Value, error) {
	if op == ast.OpLgAnd || op == ast.OpLgOr {
		panic("logical and/or are short-circuited by the compiler, not dispatched here")
	}
	if d := x.Descriptor(); d.Binary != nil {
		if v, err, ok := d.Binary(op, x, y, Left); ok {
			return v, err
		}
	}
	if d := y.Descriptor(); d.Binary != nil {
		if v, err, ok := d.Binary(op, y, x, Right); ok {
			return v, err
		}
	}
	return nil, fmt.Errorf("unsupported operand types for %s: %s and %s", op, TypeName(x), TypeName(y))
}

// Contains implements the "in" operator (item in v).
func Contains(v, item Value) (bool, error) {
	d := v.Descriptor()
	if d.Contains == nil {
		return false, fmt.Errorf("type %s is not a container", d.Name)
	}
	return d.Contains(v, item)
}

// CGet implements container[index] reads.
func CGet(v, index Value) (Value, error) {
	d := v.Descriptor()
	if d.CGet == nil {
		return nil, fmt.Errorf("type %s is not indexable", d.Name)
	}
	return d.CGet(v, index)
}

// CPut implements container[index] = val writes.
func CPut(v, index, val Value) error {
	d := v.Descriptor()
	if d.CPut == nil {
		return fmt.Errorf("type %s does not support item assignment", d.Name)
	}
	return d.CPut(v, index, val)
}

// Iterate returns an Iterator over v.
func Iterate(v Value) (Iterator, error) {
	d := v.Descriptor()
	if d.Iterate == nil {
		return nil, fmt.Errorf("type %s is not iterable", d.Name)
	}
	return d.Iterate(v)
}

// Mark traces v for the garbage collector if it is a heap cell, a no-op
// for the atomic types (Nil, Int, Float, String) that never are.
func Mark(v Value, h *gc.Heap) {
	if c, ok := v.(gc.Cell); ok {
		h.Mark(c)
	}
}
