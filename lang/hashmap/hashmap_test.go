package hashmap_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/luci/lang/hashmap"
)

func TestPutGet(t *testing.T) {
	m := hashmap.New()
	m.Put("a", 1)
	m.Put("b", 2)
	v, ok := m.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)
	v, ok = m.Get("b")
	require.True(t, ok)
	require.Equal(t, 2, v)
	_, ok = m.Get("c")
	require.False(t, ok)
}

func TestPutOverwrite(t *testing.T) {
	m := hashmap.New()
	m.Put("a", 1)
	m.Put("a", 2)
	require.Equal(t, 1, m.Len())
	v, _ := m.Get("a")
	require.Equal(t, 2, v)
}

func TestDeleteThenLookupFails(t *testing.T) {
	m := hashmap.New()
	m.Put("a", 1)
	require.True(t, m.Delete("a"))
	_, ok := m.Get("a")
	require.False(t, ok)
	require.False(t, m.Delete("a"))
}

func TestGrowthPreservesAllEntries(t *testing.T) {
	m := hashmap.New()
	const n = 500
	for i := 0; i < n; i++ {
		m.Put(fmt.Sprintf("key-%d", i), i)
	}
	require.Equal(t, n, m.Len())
	for i := 0; i < n; i++ {
		v, ok := m.Get(fmt.Sprintf("key-%d", i))
		require.True(t, ok)
		require.Equal(t, i, v)
	}
}

func TestDeleteReinsertionPreservesReachability(t *testing.T) {
	m := hashmap.New()
	keys := make([]string, 0, 50)
	for i := 0; i < 50; i++ {
		k := fmt.Sprintf("k%d", i)
		keys = append(keys, k)
		m.Put(k, i)
	}
	// delete every third key, then verify all survivors are still reachable.
	for i := 0; i < len(keys); i += 3 {
		m.Delete(keys[i])
	}
	for i, k := range keys {
		v, ok := m.Get(k)
		if i%3 == 0 {
			require.False(t, ok, k)
		} else {
			require.True(t, ok, k)
			require.Equal(t, i, v)
		}
	}
}

func TestShrinkAfterManyDeletes(t *testing.T) {
	m := hashmap.New()
	const n = 200
	for i := 0; i < n; i++ {
		m.Put(fmt.Sprintf("key-%d", i), i)
	}
	for i := 0; i < n; i++ {
		m.Delete(fmt.Sprintf("key-%d", i))
	}
	require.Equal(t, 0, m.Len())
	m.Put("survivor", 42)
	v, ok := m.Get("survivor")
	require.True(t, ok)
	require.Equal(t, 42, v)
}

func TestRangeVisitsAllLiveEntries(t *testing.T) {
	m := hashmap.New()
	want := map[string]int{"a": 1, "b": 2, "c": 3}
	for k, v := range want {
		m.Put(k, v)
	}
	got := map[string]int{}
	m.Range(func(k string, v interface{}) bool {
		got[k] = v.(int)
		return true
	})
	require.Equal(t, want, got)
}
