package types

import (
	"context"
	"sort"

	"github.com/iammosespaulr/noms/hash"
)

// Set is an immutable, content-addressed set of Values. Functional updates
// (Insert) return a new Set; the receiver is untouched.
//
// Internally backed by a hash-sorted slice rather than the teacher's
// prolly-tree (spec.md §1 calls the prolly-tree containers an external
// collaborator whose contract only is specified) — Has/Insert are O(log n)
// to find and O(n) to rebuild, which is the right tradeoff for the small,
// bounded collections (dataset maps, parent sets) this module actually
// builds.
type Set struct {
	elems []Value
}

// NewSet builds a Set containing vals. vrw is accepted for interface
// parity with the teacher's NewSet(ctx, vrw, ...) (real noms collections
// write out-of-line child chunks as they're built); this module's Sets
// hold their elements directly in memory, so vrw goes unused.
func NewSet(ctx context.Context, vrw ValueReadWriter, vals ...Value) Set {
	s := Set{}
	for _, v := range vals {
		s = s.Insert(v)
	}
	return s
}

func (s Set) Kind() NomsKind          { return KindSet }
func (s Set) Hash() hash.Hash         { return valueHash(s) }
func (s Set) Equals(other Value) bool { return valuesEqual(s, other) }

// Len returns the number of elements in s.
func (s Set) Len() uint64 { return uint64(len(s.elems)) }

// Empty reports whether s has no elements.
func (s Set) Empty() bool { return len(s.elems) == 0 }

func (s Set) search(h hash.Hash) int {
	return sort.Search(len(s.elems), func(i int) bool {
		return !s.elems[i].Hash().Less(h)
	})
}

// Has reports whether v (compared by hash) is a member of s.
func (s Set) Has(v Value) bool {
	i := s.search(v.Hash())
	return i < len(s.elems) && s.elems[i].Hash() == v.Hash()
}

// Insert returns a new Set with v added, leaving s unchanged. Inserting an
// already-present value (by hash) is a no-op (returns s, structurally
// equal but not aliasing-significant since Sets are immutable).
func (s Set) Insert(v Value) Set {
	i := s.search(v.Hash())
	if i < len(s.elems) && s.elems[i].Hash() == v.Hash() {
		return s
	}
	out := make([]Value, 0, len(s.elems)+1)
	out = append(out, s.elems[:i]...)
	out = append(out, v)
	out = append(out, s.elems[i:]...)
	return Set{out}
}

// Iter calls fn for each element in hash order, stopping early if fn
// returns true.
func (s Set) Iter(fn func(v Value) bool) {
	for _, v := range s.elems {
		if fn(v) {
			return
		}
	}
}

// Map calls fn for every element, matching the external Set.map(fn)
// iteration contract (spec.md §6).
func (s Set) Map(fn func(v Value)) {
	for _, v := range s.elems {
		fn(v)
	}
}

func (s Set) elemType() *Type {
	if len(s.elems) == 0 {
		return nil
	}
	return TypeOf(s.elems[0])
}
