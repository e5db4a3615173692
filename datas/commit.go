package datas

import (
	"github.com/iammosespaulr/noms/types"
)

// Field names of the Commit struct type (spec.md §3: "Commit struct: a
// value of struct type Commit { value: Value, parents: Set<Ref<Commit>> }").
const (
	CommitName      = "Commit"
	ValueField      = "value"
	ParentsField    = "parents"
	CommitMetaField = "meta"
)

// NewCommit builds a Commit struct around value, with parents (a
// Set<Ref<Commit>>) and an arbitrary meta struct (spec.md §6 "newCommit",
// generalized per SPEC_FULL §5 to carry metadata alongside value/parents).
func NewCommit(value types.Value, parents types.Set, meta types.Struct) types.Struct {
	return types.NewStruct(CommitName, types.StructData{
		ValueField:      value,
		ParentsField:    parents,
		CommitMetaField: meta,
	})
}

// IsCommit reports whether v is a well-formed Commit struct: named
// "Commit", carrying value/parents/meta fields of the right shape.
func IsCommit(v types.Value) bool {
	s, ok := v.(types.Struct)
	if !ok {
		return false
	}
	return IsCommitType(types.TypeOf(s))
}

// IsCommitType reports whether t describes a Commit struct.
func IsCommitType(t *types.Type) bool {
	if t == nil || t.Kind != types.KindStruct || t.Name != CommitName {
		return false
	}
	if _, ok := t.Fields[ValueField]; !ok {
		return false
	}
	parentsType, ok := t.Fields[ParentsField]
	if !ok || parentsType.Kind != types.KindSet {
		return false
	}
	if _, ok := t.Fields[CommitMetaField]; !ok {
		return false
	}
	return true
}

// commitParents returns c's parents field.
func commitParents(c types.Struct) types.Set {
	return c.Get(ParentsField).(types.Set)
}
