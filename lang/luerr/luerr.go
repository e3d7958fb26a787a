// Package luerr defines a diagnostic taxonomy: one exported type per error
// kind, each carrying the source position it occurred at and rendering
// through Error() with the kind name, the message and, for
// interpreter-stage errors, the opcode that raised it. No other package in
// this module imports it; the compiler and interpreter return plain Go
// errors.
// This mirrors the teacher's frame-position rendering pattern
// (lang/machine/frame.go's Position()), adapted to Luci's flat frame stack.
package luerr

import (
	"fmt"

	"github.com/mna/luci/lang/token"
)

// CompileError reports a problem discovered while translating the AST to
// bytecode: an undefined break/continue target, an undefined identifier,
// and similar structural mistakes the compiler itself must reject.
type CompileError struct {
	Pos token.Pos
	Msg string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile error at %s: %s", posString(e.Pos), e.Msg)
}

// TypeError reports an operation applied to a value of the wrong type: an
// unsupported binary operator, indexing a non-container, calling a
// non-function.
type TypeError struct {
	Pos    token.Pos
	Opcode string // name of the bytecode op that raised it, if known
	Msg    string
}

func (e *TypeError) Error() string {
	if e.Opcode != "" {
		return fmt.Sprintf("type error at %s (%s): %s", posString(e.Pos), e.Opcode, e.Msg)
	}
	return fmt.Sprintf("type error at %s: %s", posString(e.Pos), e.Msg)
}

// ValueError reports a value of the right type but an invalid value for the
// operation: division by zero, a malformed conversion argument.
type ValueError struct {
	Pos    token.Pos
	Opcode string
	Msg    string
}

func (e *ValueError) Error() string {
	if e.Opcode != "" {
		return fmt.Sprintf("value error at %s (%s): %s", posString(e.Pos), e.Opcode, e.Msg)
	}
	return fmt.Sprintf("value error at %s: %s", posString(e.Pos), e.Msg)
}

// LookupError reports a missing name, key or index: an unbound identifier,
// a map key not found, a list index out of range.
type LookupError struct {
	Pos token.Pos
	Msg string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup error at %s: %s", posString(e.Pos), e.Msg)
}

// ResourceError reports a failure acquiring or using an external resource
// (a file that could not be opened, a read/write error).
type ResourceError struct {
	Pos token.Pos
	Msg string
	Err error
}

func (e *ResourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("resource error at %s: %s: %s", posString(e.Pos), e.Msg, e.Err)
	}
	return fmt.Sprintf("resource error at %s: %s", posString(e.Pos), e.Msg)
}

func (e *ResourceError) Unwrap() error { return e.Err }

func posString(p token.Pos) string {
	if p == 0 {
		return "?"
	}
	return fmt.Sprintf("%d", int32(p))
}
