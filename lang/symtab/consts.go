package symtab

// Constants is the constant table (component C5): a deduplicated, append-
// only pool of literal values and function prototypes referenced by a
// compiled function's LOADK instructions. Values are compared by Go
// equality, so two occurrences of the integer literal 3 share a slot while
// two distinct function literals (always distinct pointers, even if
// syntactically identical) never do.
type Constants struct {
	index  map[interface{}]uint32
	values []interface{}
}

// NewConstants returns an empty constant table.
func NewConstants() *Constants {
	return &Constants{index: make(map[interface{}]uint32)}
}

// Add returns the index of v in the table, appending it if this is the
// first occurrence. v must be a Go-comparable value: int64, float64,
// string, compiler.NilConst, or a *compiler.FuncProto (compared by pointer
// identity).
func (c *Constants) Add(v interface{}) uint32 {
	if ix, ok := c.index[v]; ok {
		return ix
	}
	ix := uint32(len(c.values))
	c.index[v] = ix
	c.values = append(c.values, v)
	return ix
}

// Len returns the number of distinct constants in the table.
func (c *Constants) Len() int { return len(c.values) }

// Values returns the constants in index order.
func (c *Constants) Values() []interface{} { return c.values }

// At returns the constant stored at ix.
func (c *Constants) At(ix uint32) interface{} { return c.values[ix] }
