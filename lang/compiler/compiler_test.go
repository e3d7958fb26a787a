package compiler_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/luci/lang/compiler"
	"github.com/mna/luci/lang/parser"
	"github.com/mna/luci/lang/token"
)

// testGlobals stands in for the builtin names a Runtime would normally
// pre-seed the top-level symbol table with (see lang/rt.globalNames);
// these tests only ever reference "print", so that is all this needs.
var testGlobals = []string{"print"}

func compile(t *testing.T, src string) *compiler.Program {
	t.Helper()
	fset := token.NewFileSet()
	f := fset.AddFile("t.luci", []byte(src))
	block, err := parser.Parse(f, src)
	require.NoError(t, err)
	prog, err := compiler.Compile(f, "t.luci", block, testGlobals)
	require.NoError(t, err)
	return prog
}

func TestCompileSimpleAssignAndExpr(t *testing.T) {
	prog := compile(t, `x = 1 + 2
print(x)`)
	require.NotEmpty(t, prog.Main.Code)
	require.Contains(t, prog.Main.Consts, int64(1))
	require.Contains(t, prog.Main.Consts, int64(2))
}

func TestCompileWhileLoopBreak(t *testing.T) {
	prog := compile(t, `i = 0
while i < 10 do
  i = i + 1
  if i == 5 then
    break
  end
done`)
	require.NotEmpty(t, prog.Main.Code)
}

func TestCompileFuncDefAndCall(t *testing.T) {
	prog := compile(t, `func add(a, b)
  return a + b
end
print(add(1, 2))`)

	var foundProto bool
	for _, c := range prog.Main.Consts {
		if fp, ok := c.(*compiler.FuncProto); ok {
			foundProto = true
			require.Equal(t, "add", fp.Name)
			require.Equal(t, 2, fp.NumParams)
		}
	}
	require.True(t, foundProto)
}

func TestDisassembleDoesNotError(t *testing.T) {
	prog := compile(t, `x = [1, 2, 3]
for v in x do
  print(v)
done`)
	var buf bytes.Buffer
	require.NoError(t, compiler.Disassemble(&buf, prog.Main))
	require.NotEmpty(t, buf.String())
}

func TestEncodeDecodeProgramRoundTrip(t *testing.T) {
	prog := compile(t, `func double(n)
  return n * 2
end
print(double(21))`)

	var buf bytes.Buffer
	require.NoError(t, compiler.EncodeProgram(&buf, prog))

	got, err := compiler.DecodeProgram(&buf)
	require.NoError(t, err)
	require.Equal(t, prog.Filename, got.Filename)
	require.Equal(t, prog.Main.Code, got.Main.Code)
}

func TestBreakOutsideLoopIsCompileError(t *testing.T) {
	fset := token.NewFileSet()
	f := fset.AddFile("t.luci", []byte("break"))
	block, err := parser.Parse(f, "break")
	require.NoError(t, err)
	_, err = compiler.Compile(f, "t.luci", block, testGlobals)
	require.Error(t, err)
}
