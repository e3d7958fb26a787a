package value

import (
	"io"

	"github.com/mna/luci/lang/gc"
)

// IterState is the heap cell pushed by the interpreter's MKITER opcode: it
// wraps a container's Iterator protocol so ITERJUMP can repeatedly ask for
// the next element without re-deriving the iterator from the original
// container value.
type IterState struct {
	gc.Header
	it     Iterator
	source Value // kept alive and markable so the container outlives iteration
}

// NewIterState returns an IterState over container, per its Type.Iterate.
func NewIterState(container Value) (*IterState, error) {
	it, err := Iterate(container)
	if err != nil {
		return nil, err
	}
	return &IterState{it: it, source: container}, nil
}

// Next advances the iterator, reporting whether a value was produced.
func (s *IterState) Next() (Value, bool) {
	var v Value
	if !s.it.Next(&v) {
		return nil, false
	}
	return v, true
}

var iterStateType = &Type{
	Name:     "iterator",
	Copy:     func(v Value) Value { return v },
	Deepcopy: func(v Value) Value { return v },
	Repr:     func(Value) string { return "<iterator>" },
	AsBool:   func(Value) bool { return true },
	Print:    func(w io.Writer, v Value) { io.WriteString(w, "<iterator>") },
}

func (s *IterState) Descriptor() *Type { return iterStateType }

// Mark satisfies gc.Cell: the source container is kept alive for as long as
// iteration over it may continue.
func (s *IterState) Mark(h *gc.Heap) {
	if c, ok := s.source.(gc.Cell); ok {
		h.Mark(c)
	}
}
