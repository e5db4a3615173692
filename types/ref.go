package types

import (
	"context"

	"github.com/iammosespaulr/noms/hash"
)

// Ref is a (target-hash, target-type) pair. Per spec.md §3, equality is
// hash equality — two Refs are equal iff they address the same target
// hash, regardless of whether the target type descriptors happen to be
// distinct pointers.
type Ref struct {
	targetHash hash.Hash
	targetType *Type
}

// NewRef builds a Ref pointing at v's content hash with v's structural
// type.
func NewRef(v Value) Ref {
	return Ref{v.Hash(), TypeOf(v)}
}

// NewRefForHash builds a Ref to a hash whose referent is not in hand,
// tagged with the given target type.
func NewRefForHash(h hash.Hash, t *Type) Ref {
	return Ref{h, t}
}

func (r Ref) Kind() NomsKind  { return KindRef }
func (r Ref) Hash() hash.Hash { return valueHash(r) }

// Equals compares Refs by target hash only (§3: "equality is hash
// equality"), independent of the target-type descriptor.
func (r Ref) Equals(other Value) bool {
	o, ok := other.(Ref)
	return ok && r.targetHash == o.targetHash
}

// TargetHash returns the hash r points to.
func (r Ref) TargetHash() hash.Hash { return r.targetHash }

// TargetType returns the declared type of r's referent.
func (r Ref) TargetType() *Type { return r.targetType }

// TargetValue resolves r through vr, returning nil if the target is
// absent.
func (r Ref) TargetValue(ctx context.Context, vr ValueReader) Value {
	return vr.ReadValue(ctx, r.targetHash)
}
