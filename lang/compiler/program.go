package compiler

import "github.com/mna/luci/lang/token"

// FuncProto is the compiled function record (component C7): the immutable,
// shared part of a function value. A function's invocation-specific state
// (its locals slice) is created fresh per call by the machine; FuncProto
// itself never changes after the compiler finishes with it.
type FuncProto struct {
	Name      string   // empty for anonymous function literals
	Params    []string // parameter names, in order; also the first slots of Locals
	NumParams int
	NumLocals int // total local slots, parameters included
	Locals    []string

	Code   []uint32
	Consts []interface{} // int64, float64, string, NilConst, or nested *FuncProto

	Pos token.Pos
}

// Program is the result of compiling a source file: its top-level code,
// represented as an implicit parameterless FuncProto, plus the filename for
// diagnostics.
type Program struct {
	Filename string
	Main     *FuncProto
}
