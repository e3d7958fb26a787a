package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/luci/lang/compiler"
)

func TestEncodeDecodeInlineImmediate(t *testing.T) {
	ins := compiler.Instr{Op: compiler.LOADLOCAL, Arg: 42}
	words := compiler.Encode(ins)
	require.Len(t, words, 1)

	got, n := compiler.Decode(words, 0)
	require.Equal(t, 1, n)
	require.Equal(t, ins, got)
}

func TestEncodeDecodeJumpSplitOperand(t *testing.T) {
	ins := compiler.Instr{Op: compiler.JUMP, Arg: 100000}
	words := compiler.Encode(ins)
	require.Len(t, words, 2)

	got, n := compiler.Decode(words, 0)
	require.Equal(t, 2, n)
	require.Equal(t, ins, got)
}

func TestEncodeDecodeJumpSmallOperand(t *testing.T) {
	ins := compiler.Instr{Op: compiler.JUMPZ, Arg: 3}
	words := compiler.Encode(ins)
	got, _ := compiler.Decode(words, 0)
	require.Equal(t, ins, got)
}
