package compiler_test

import (
	"testing"

	"github.com/kylelemons/godebug/pretty"

	"github.com/mna/luci/lang/compiler"
)

// instrDump mirrors compiler.Instr but exists so pretty.Compare reports a
// readable field-by-field diff on mismatch, instead of the opaque output a
// raw []compiler.Instr equality failure gives.
type instrDump struct {
	Op  string
	Arg uint32
}

func dumpCode(code []uint32) []instrDump {
	var out []instrDump
	for pc := 0; pc < len(code); {
		ins, n := compiler.Decode(code, pc)
		out = append(out, instrDump{Op: ins.Op.String(), Arg: ins.Arg})
		pc += n
	}
	return out
}

// TestCompileGoldenBytecode pins the exact instruction sequence emitted for
// a small arithmetic-and-call program, so an unintended shift in the
// compiler's emission order shows up as a pretty-printed diff rather than a
// bare "not equal" failure.
func TestCompileGoldenBytecode(t *testing.T) {
	prog := compile(t, `x = 1 + 2
print(x)`)

	// "print" occupies local slot 0 (pre-bound from testGlobals before any
	// program statement compiles), so x = 1 + 2 binds "x" to slot 1.
	want := []instrDump{
		{Op: "LOADK", Arg: 0},      // 1
		{Op: "LOADK", Arg: 1},      // 2
		{Op: "BINOP", Arg: 0},      // OpAdd
		{Op: "DUP", Arg: 0},        // compileAssign leaves the assigned value on the stack
		{Op: "STORELOCAL", Arg: 1}, // x
		{Op: "POP", Arg: 0},        // statement-level Assign discards it
		{Op: "LOADLOCAL", Arg: 0},  // print
		{Op: "LOADLOCAL", Arg: 1},  // x
		{Op: "CALL", Arg: 1},
		{Op: "POP", Arg: 0}, // ExprStmt discards the call result
		{Op: "LOADK", Arg: 2},
		{Op: "RETURN", Arg: 0},
	}
	got := dumpCode(prog.Main.Code)

	if diff := pretty.Compare(want, got); diff != "" {
		t.Errorf("compiled instruction stream differs from golden (-want +got):\n%s", diff)
	}
}
