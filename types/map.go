package types

import (
	"context"
	"sort"

	"github.com/iammosespaulr/noms/d"
	"github.com/iammosespaulr/noms/hash"
)

type mapEntry struct {
	key   Value
	value Value
}

// Map is an immutable, content-addressed key/value map. Functional updates
// (Set, Remove) return a new Map; the receiver is untouched.
//
// Entries are held in a slice sorted by key hash, same tradeoff as Set: the
// real prolly-tree Map this is standing in for is out of scope (spec.md §1),
// and the DataStore only ever builds one over a bounded dataset map
// (spec.md §4.3), never an arbitrarily large graph.
type Map struct {
	entries []mapEntry
}

// NewMap builds a Map from alternating key, value, key, value... arguments.
// vrw is accepted for interface parity with the teacher's NewMap(ctx, vrw,
// ...) constructor; this module's Maps hold entries directly in memory.
func NewMap(ctx context.Context, vrw ValueReadWriter, kv ...Value) Map {
	d.PanicIfTrue(len(kv)%2 != 0)
	m := Map{}
	for i := 0; i < len(kv); i += 2 {
		m = m.Set(kv[i], kv[i+1])
	}
	return m
}

func (m Map) Kind() NomsKind          { return KindMap }
func (m Map) Hash() hash.Hash         { return valueHash(m) }
func (m Map) Equals(other Value) bool { return valuesEqual(m, other) }

// Len returns the number of entries in m.
func (m Map) Len() uint64 { return uint64(len(m.entries)) }

// Empty reports whether m has no entries.
func (m Map) Empty() bool { return len(m.entries) == 0 }

func (m Map) search(h hash.Hash) int {
	return sort.Search(len(m.entries), func(i int) bool {
		return !m.entries[i].key.Hash().Less(h)
	})
}

// MaybeGet returns the value for k and whether it was present.
func (m Map) MaybeGet(k Value) (Value, bool) {
	i := m.search(k.Hash())
	if i < len(m.entries) && m.entries[i].key.Hash() == k.Hash() {
		return m.entries[i].value, true
	}
	return nil, false
}

// Get returns the value for k, or nil if absent.
func (m Map) Get(k Value) Value {
	v, _ := m.MaybeGet(k)
	return v
}

// Has reports whether k is present in m.
func (m Map) Has(k Value) bool {
	_, ok := m.MaybeGet(k)
	return ok
}

// Set returns a new Map with k mapped to v, leaving m unchanged.
func (m Map) Set(k, v Value) Map {
	i := m.search(k.Hash())
	if i < len(m.entries) && m.entries[i].key.Hash() == k.Hash() {
		out := make([]mapEntry, len(m.entries))
		copy(out, m.entries)
		out[i].value = v
		return Map{out}
	}
	out := make([]mapEntry, 0, len(m.entries)+1)
	out = append(out, m.entries[:i]...)
	out = append(out, mapEntry{k, v})
	out = append(out, m.entries[i:]...)
	return Map{out}
}

// Remove returns a new Map with k absent, leaving m unchanged. A no-op if k
// was not present.
func (m Map) Remove(k Value) Map {
	i := m.search(k.Hash())
	if i >= len(m.entries) || m.entries[i].key.Hash() != k.Hash() {
		return m
	}
	out := make([]mapEntry, 0, len(m.entries)-1)
	out = append(out, m.entries[:i]...)
	out = append(out, m.entries[i+1:]...)
	return Map{out}
}

// Iter calls fn for each entry in key-hash order, stopping early if fn
// returns true.
func (m Map) Iter(fn func(k, v Value) bool) {
	for _, e := range m.entries {
		if fn(e.key, e.value) {
			return
		}
	}
}

func (m Map) keyType() *Type {
	if len(m.entries) == 0 {
		return nil
	}
	return TypeOf(m.entries[0].key)
}

func (m Map) valueType() *Type {
	if len(m.entries) == 0 {
		return nil
	}
	return TypeOf(m.entries[0].value)
}
