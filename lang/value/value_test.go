package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/luci/lang/ast"
	"github.com/mna/luci/lang/value"
)

func TestIntArithmeticAndPromotion(t *testing.T) {
	sum, err := value.Binary(ast.OpAdd, value.Int(3), value.Int(4))
	require.NoError(t, err)
	require.Equal(t, value.Int(7), sum)

	// int op float promotes the int operand to float.
	mixed, err := value.Binary(ast.OpAdd, value.Int(3), value.Float(0.5))
	require.NoError(t, err)
	require.Equal(t, value.Float(3.5), mixed)

	mixed2, err := value.Binary(ast.OpMul, value.Float(2), value.Int(3))
	require.NoError(t, err)
	require.Equal(t, value.Float(6), mixed2)
}

func TestDivModByZeroAreErrors(t *testing.T) {
	_, err := value.Binary(ast.OpDiv, value.Int(1), value.Int(0))
	require.Error(t, err)

	_, err = value.Binary(ast.OpMod, value.Int(1), value.Int(0))
	require.Error(t, err)
}

func TestStringRepetition(t *testing.T) {
	res, err := value.Binary(ast.OpMul, value.String("ab"), value.Int(3))
	require.NoError(t, err)
	require.Equal(t, value.String("ababab"), res)
}

func TestListConcatAndIndexing(t *testing.T) {
	a := value.NewList([]value.Value{value.Int(1), value.Int(2)})
	b := value.NewList([]value.Value{value.Int(3)})
	res, err := value.Binary(ast.OpAdd, a, b)
	require.NoError(t, err)
	l := res.(*value.List)
	require.Len(t, l.Items, 3)
}

func TestMapKeysAreStringOnly(t *testing.T) {
	m := value.NewMap()
	require.NoError(t, value.CPut(m, value.String("a"), value.Int(1)))

	got, err := value.CGet(m, value.String("a"))
	require.NoError(t, err)
	require.Equal(t, value.Int(1), got)

	err = value.CPut(m, value.Int(1), value.String("oops"))
	require.Error(t, err)

	_, err = value.CGet(m, value.Int(1))
	require.Error(t, err)
}

func TestNegativeListIndexing(t *testing.T) {
	l := value.NewList([]value.Value{value.Int(10), value.Int(20), value.Int(30)})
	got, err := value.CGet(l, value.Int(-1))
	require.NoError(t, err)
	require.Equal(t, value.Int(30), got)
}
