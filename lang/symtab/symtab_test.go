package symtab_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/luci/lang/symtab"
)

func TestTableBindIsStable(t *testing.T) {
	tbl := symtab.New()
	x := tbl.Bind("x")
	y := tbl.Bind("y")
	x2 := tbl.Bind("x")
	require.Equal(t, x, x2)
	require.NotEqual(t, x, y)
	require.Equal(t, 2, tbl.Len())
	require.Equal(t, []string{"x", "y"}, tbl.Names())
}

func TestTableLookupMissing(t *testing.T) {
	tbl := symtab.New()
	tbl.Bind("x")
	_, ok := tbl.Lookup("z")
	require.False(t, ok)
	ix, ok := tbl.Lookup("x")
	require.True(t, ok)
	require.Equal(t, 0, ix)
}

func TestConstantsDedup(t *testing.T) {
	c := symtab.NewConstants()
	i1 := c.Add(int64(3))
	i2 := c.Add(int64(3))
	s1 := c.Add("hi")
	require.Equal(t, i1, i2)
	require.NotEqual(t, i1, s1)
	require.Equal(t, 2, c.Len())
	require.Equal(t, int64(3), c.At(i1))
}
