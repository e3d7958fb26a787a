// Package hashmap implements the string-keyed hash table (component C3): an
// open-addressed table using double hashing to compute its probe sequence,
// backed by a prime-sized slot array that grows before an insert would push
// the load factor above 0.6 and shrinks after a delete drops it below 0.2.
//
// Deletion does not use tombstones. Removing a key would otherwise strand
// every entry whose probe sequence passed through the freed slot on the way
// to its own home, making it unreachable by Get. With double hashing each
// key probes with its own step, so such entries can sit anywhere in the
// table, not only along the deleted key's probe sequence or next to the
// freed slot. Delete therefore reinserts every remaining entry through the
// normal insert path (a rehash at the current capacity), which makes each
// delete cost O(capacity).
package hashmap

// Map is a string-keyed open-addressed hash table using double hashing.
type Map struct {
	slots []slot
	size  int // live entries
	cap   int // len(slots), always prime
}

type slot struct {
	key   string
	value interface{}
	used  bool
}

const initialCapacity = 7 // smallest prime this package grows from

// New returns an empty map.
func New() *Map {
	return &Map{slots: make([]slot, initialCapacity), cap: initialCapacity}
}

// Len returns the number of live entries.
func (m *Map) Len() int { return m.size }

// hash0 is djb2.
func hash0(key string) uint64 {
	var h uint64 = 5381
	for i := 0; i < len(key); i++ {
		h = h*33 + uint64(key[i])
	}
	return h
}

// hash1 is sdbm, used to compute the probe step. The table's capacity is
// always prime, so any step in [1, cap-1] is coprime with cap and the probe
// sequence visits every slot before repeating.
func hash1(key string) uint64 {
	var h uint64
	for i := 0; i < len(key); i++ {
		h = uint64(key[i]) + (h << 6) + (h << 16) - h
	}
	return h
}

func (m *Map) probe(key string) (idx, step int) {
	h0 := hash0(key)
	h1 := hash1(key)
	idx = int(h0 % uint64(m.cap))
	step = 1 + int(h1%uint64(m.cap-1))
	return idx, step
}

// find returns the slot index holding key, or the first empty slot
// encountered along its probe sequence if key is absent.
func (m *Map) find(key string) (idx int, found bool) {
	pos, step := m.probe(key)
	for i := 0; i < m.cap; i++ {
		if !m.slots[pos].used {
			return pos, false
		}
		if m.slots[pos].key == key {
			return pos, true
		}
		pos = (pos + step) % m.cap
	}
	// table is full of tombstone-free live entries and key truly absent;
	// unreachable in practice since growth keeps load factor <= 0.6, but
	// returning the last probed slot keeps find total.
	return pos, false
}

// Get returns the value bound to key and whether key is present.
func (m *Map) Get(key string) (interface{}, bool) {
	idx, found := m.find(key)
	if !found {
		return nil, false
	}
	return m.slots[idx].value, true
}

// Put inserts or overwrites the value bound to key.
func (m *Map) Put(key string, value interface{}) {
	if float64(m.size+1)/float64(m.cap) > 0.6 {
		m.grow()
	}
	m.insert(key, value)
}

// insert places key/value assuming the load factor already admits it
// without triggering growth (used both by Put and by delete's reinsertion).
func (m *Map) insert(key string, value interface{}) {
	idx, found := m.find(key)
	if !found {
		m.size++
	}
	m.slots[idx] = slot{key: key, value: value, used: true}
}

// Delete removes key, reinserting every remaining entry since any of their
// probe sequences may have depended on the freed slot remaining occupied,
// then shrinks the table if the resulting load factor falls below 0.2.
func (m *Map) Delete(key string) bool {
	idx, found := m.find(key)
	if !found {
		return false
	}
	m.slots[idx] = slot{}
	m.size--
	m.resize(m.cap)

	if m.cap > initialCapacity && float64(m.size)/float64(m.cap) < 0.2 {
		m.shrink()
	}
	return true
}

func (m *Map) grow() { m.resize(nextPrime(m.cap * 2)) }

func (m *Map) shrink() {
	target := nextPrime(m.cap / 2)
	if target < initialCapacity {
		target = initialCapacity
	}
	if target < m.cap {
		m.resize(target)
	}
}

func (m *Map) resize(newCap int) {
	old := m.slots
	m.slots = make([]slot, newCap)
	m.cap = newCap
	m.size = 0
	for _, s := range old {
		if s.used {
			m.insert(s.key, s.value)
		}
	}
}

func nextPrime(n int) int {
	if n < 2 {
		return 2
	}
	for !isPrime(n) {
		n++
	}
	return n
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for d := 3; d*d <= n; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// Keys returns the live keys in unspecified (slot) order.
func (m *Map) Keys() []string {
	keys := make([]string, 0, m.size)
	for _, s := range m.slots {
		if s.used {
			keys = append(keys, s.key)
		}
	}
	return keys
}

// Range calls f for every live entry, in unspecified order, stopping early
// if f returns false.
func (m *Map) Range(f func(key string, value interface{}) bool) {
	for _, s := range m.slots {
		if s.used {
			if !f(s.key, s.value) {
				return
			}
		}
	}
}
