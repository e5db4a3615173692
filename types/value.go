// Package types implements the minimal typed value system the DataStore
// treats as an external collaborator per spec.md §1/§6: primitives, refs,
// sets, maps, and structs, plus the encode/decode and read/write-through
// ValueStore contracts the DataStore is built against.
package types

import (
	"context"

	"github.com/iammosespaulr/noms/hash"
)

// Value is any typed, immutable object decodable from a Chunk (spec.md §3).
type Value interface {
	Kind() NomsKind
	// Hash returns the content hash of v's encoded form.
	Hash() hash.Hash
	// Equals reports whether v and other have equal content; per spec.md
	// §3, ref equality (and therefore, transitively, value equality for
	// anything content-addressed) is hash equality.
	Equals(other Value) bool
}

func valuesEqual(v Value, other Value) bool {
	if other == nil {
		return false
	}
	if v.Kind() != other.Kind() {
		return false
	}
	return v.Hash() == other.Hash()
}

// ValueReader decodes chunks into Values, reading through whatever cache
// or backing ChunkStore it is built on.
type ValueReader interface {
	ReadValue(ctx context.Context, h hash.Hash) Value
}

// ValueWriter encodes and durably stores Values, returning a Ref to the
// result.
type ValueWriter interface {
	WriteValue(ctx context.Context, v Value) Ref
}

// ValueReadWriter is the combined contract most of the module depends on:
// the DataStore needs it to read/write Commits. NewSet and NewMap accept one
// but do not use it, since Sets and Maps hold their entries in memory.
type ValueReadWriter interface {
	ValueReader
	ValueWriter
}
