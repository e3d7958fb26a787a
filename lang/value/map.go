package value

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mna/luci/lang/ast"
	"github.com/mna/luci/lang/gc"
	"github.com/mna/luci/lang/hashmap"
)

// Map is a mutable, heap-allocated mapping from string keys to arbitrary
// values. It is backed by component C3's open-addressed, double-hashed
// table; the original key String is kept alongside the payload so CGet/Keys
// can return it unchanged.
type Map struct {
	gc.Header
	hm *hashmap.Map
}

type mapEntry struct {
	key Value
	val Value
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{hm: hashmap.New()}
}

// keyString returns the canonical hashmap key for a Luci map key. Map keys
// are restricted to strings; anything else is a fatal error, not a silent
// coercion or a broader notion of "hashable."
func keyString(v Value) (string, error) {
	k, ok := v.(String)
	if !ok {
		return "", fmt.Errorf("map keys must be strings, got %s", TypeName(v))
	}
	return string(k), nil
}

var mapType = &Type{
	Name: "map",
	Copy: func(v Value) Value {
		m := v.(*Map)
		cp := NewMap()
		m.hm.Range(func(k string, val interface{}) bool {
			e := val.(mapEntry)
			cp.hm.Put(k, e)
			return true
		})
		return cp
	},
	Deepcopy: func(v Value) Value {
		m := v.(*Map)
		cp := NewMap()
		m.hm.Range(func(k string, val interface{}) bool {
			e := val.(mapEntry)
			cp.hm.Put(k, mapEntry{key: e.key, val: Deepcopy(e.val)})
			return true
		})
		return cp
	},
	Repr: func(v Value) string {
		m := v.(*Map)
		var parts []string
		m.hm.Range(func(_ string, val interface{}) bool {
			e := val.(mapEntry)
			parts = append(parts, Repr(e.key)+": "+Repr(e.val))
			return true
		})
		sort.Strings(parts)
		return "{" + strings.Join(parts, ", ") + "}"
	},
	AsBool: func(v Value) bool { return v.(*Map).hm.Len() > 0 },
	Print:  func(w io.Writer, v Value) { io.WriteString(w, Repr(v)) },
	Len:    func(v Value) (int, bool) { return v.(*Map).hm.Len(), true },
	Binary: func(op ast.BinOp, v, other Value, side Side) (Value, error, bool) {
		o, ok := other.(*Map)
		if !ok || op != ast.OpAdd {
			return nil, nil, false
		}
		a, b := v.(*Map), o
		if side == Right {
			a, b = b, a
		}
		// union, with b's keys taking precedence over a's on conflict.
		merged := NewMap()
		a.hm.Range(func(k string, val interface{}) bool {
			merged.hm.Put(k, val)
			return true
		})
		b.hm.Range(func(k string, val interface{}) bool {
			merged.hm.Put(k, val)
			return true
		})
		return merged, nil, true
	},
	Contains: func(v, item Value) (bool, error) {
		m := v.(*Map)
		k, err := keyString(item)
		if err != nil {
			return false, nil // unhashable items are simply never contained
		}
		_, ok := m.hm.Get(k)
		return ok, nil
	},
	CGet: func(v, index Value) (Value, error) {
		m := v.(*Map)
		k, err := keyString(index)
		if err != nil {
			return nil, err
		}
		val, ok := m.hm.Get(k)
		if !ok {
			return nil, fmt.Errorf("key not found: %s", Repr(index))
		}
		return val.(mapEntry).val, nil
	},
	CPut: func(v, index, val Value) error {
		m := v.(*Map)
		k, err := keyString(index)
		if err != nil {
			return err
		}
		m.hm.Put(k, mapEntry{key: index, val: val})
		return nil
	},
	Iterate: func(v Value) (Iterator, error) {
		m := v.(*Map)
		keys := make([]Value, 0, m.hm.Len())
		m.hm.Range(func(_ string, val interface{}) bool {
			keys = append(keys, val.(mapEntry).key)
			return true
		})
		return &mapIterator{keys: keys}, nil
	},
}

func (v *Map) Descriptor() *Type { return mapType }

// Mark satisfies gc.Cell: it traces every live key and value.
func (m *Map) Mark(h *gc.Heap) {
	m.hm.Range(func(_ string, val interface{}) bool {
		e := val.(mapEntry)
		if c, ok := e.key.(gc.Cell); ok {
			h.Mark(c)
		}
		if c, ok := e.val.(gc.Cell); ok {
			h.Mark(c)
		}
		return true
	})
}

// Get looks key up, reporting whether it is present; a missing key is not
// an error, a non-string key is.
func (m *Map) Get(key Value) (Value, bool, error) {
	k, err := keyString(key)
	if err != nil {
		return nil, false, err
	}
	val, ok := m.hm.Get(k)
	if !ok {
		return nil, false, nil
	}
	return val.(mapEntry).val, true, nil
}

// Delete removes key from the map, reporting whether it was present.
func (m *Map) Delete(key Value) (bool, error) {
	k, err := keyString(key)
	if err != nil {
		return false, err
	}
	return m.hm.Delete(k), nil
}

type mapIterator struct {
	keys []Value
	i    int
}

func (it *mapIterator) Next(out *Value) bool {
	if it.i >= len(it.keys) {
		return false
	}
	*out = it.keys[it.i]
	it.i++
	return true
}
