package gc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/luci/lang/gc"
)

type node struct {
	gc.Header
	ref        *node
	finalized  *bool
}

func (n *node) Mark(h *gc.Heap) {
	if n.ref != nil {
		h.Mark(n.ref)
	}
}

func (n *node) Finalize() {
	if n.finalized != nil {
		*n.finalized = true
	}
}

func TestCollectSweepsUnreachable(t *testing.T) {
	var freed bool
	var root *node
	heap := gc.NewHeap(1<<20, func() []gc.Cell {
		if root == nil {
			return nil
		}
		return []gc.Cell{root}
	})

	kept := &node{}
	heap.Alloc(kept)
	root = kept

	garbage := &node{finalized: &freed}
	heap.Alloc(garbage)

	heap.Collect()

	require.True(t, freed)
	require.Equal(t, 1, heap.Live())
}

func TestCollectKeepsReachableChain(t *testing.T) {
	var root *node
	heap := gc.NewHeap(1<<20, func() []gc.Cell {
		if root == nil {
			return nil
		}
		return []gc.Cell{root}
	})

	tail := &node{}
	heap.Alloc(tail)
	head := &node{ref: tail}
	heap.Alloc(head)
	root = head

	heap.Collect()

	require.Equal(t, 2, heap.Live())
}

func TestAllocReusesFreedSlot(t *testing.T) {
	var root *node
	heap := gc.NewHeap(1<<20, func() []gc.Cell { return nil })
	_ = root

	heap.Alloc(&node{})
	heap.Collect() // nothing reachable, sweeps it
	require.Equal(t, 0, heap.Live())

	heap.Alloc(&node{})
	require.Equal(t, 1, heap.Live())
}
