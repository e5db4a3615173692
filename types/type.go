package types

import (
	"fmt"
	"sort"
	"strings"
)

// Type is a structural descriptor of a Value's shape: for primitives just a
// Kind, for Set<T>/Ref<T> a Kind plus one element type, for Map<K,V> a Kind
// plus two, for Struct a Kind plus a name and field types.
//
// This is the minimal slice of noms' real type-algebra (which also
// supports union types over heterogeneous collections) needed to satisfy
// spec.md's invariant that every ref resolves to a chunk whose decoded
// type matches the ref's target type (§3) — the full structural type
// system is part of the external "typed value system" collaborator
// (spec.md §1, §6).
type Type struct {
	Kind      NomsKind
	ElemTypes []*Type
	Name      string
	Fields    map[string]*Type
}

var (
	BoolType   = &Type{Kind: KindBool}
	StringType = &Type{Kind: KindString}
	FloatType  = &Type{Kind: KindFloat}
)

// MakeSetType returns the descriptor for Set<elem>.
func MakeSetType(elem *Type) *Type {
	return &Type{Kind: KindSet, ElemTypes: []*Type{elem}}
}

// MakeMapType returns the descriptor for Map<key, value>.
func MakeMapType(key, value *Type) *Type {
	return &Type{Kind: KindMap, ElemTypes: []*Type{key, value}}
}

// MakeRefType returns the descriptor for Ref<elem>.
func MakeRefType(elem *Type) *Type {
	return &Type{Kind: KindRef, ElemTypes: []*Type{elem}}
}

// MakeStructType returns the descriptor for a Struct named name with the
// given fields.
func MakeStructType(name string, fields map[string]*Type) *Type {
	return &Type{Kind: KindStruct, Name: name, Fields: fields}
}

// Equals reports whether t and other describe the same shape.
func (t *Type) Equals(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Kind != other.Kind || t.Name != other.Name {
		return false
	}
	if len(t.ElemTypes) != len(other.ElemTypes) {
		return false
	}
	for i := range t.ElemTypes {
		if !t.ElemTypes[i].Equals(other.ElemTypes[i]) {
			return false
		}
	}
	if len(t.Fields) != len(other.Fields) {
		return false
	}
	for name, ft := range t.Fields {
		oft, ok := other.Fields[name]
		if !ok || !ft.Equals(oft) {
			return false
		}
	}
	return true
}

// Describe renders t as a human-readable type expression, e.g.
// "Map<String, Ref<String>>".
func (t *Type) Describe() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KindSet:
		return fmt.Sprintf("Set<%s>", t.ElemTypes[0].Describe())
	case KindMap:
		return fmt.Sprintf("Map<%s, %s>", t.ElemTypes[0].Describe(), t.ElemTypes[1].Describe())
	case KindRef:
		return fmt.Sprintf("Ref<%s>", t.ElemTypes[0].Describe())
	case KindStruct:
		names := make([]string, 0, len(t.Fields))
		for name := range t.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		parts := make([]string, len(names))
		for i, name := range names {
			parts[i] = fmt.Sprintf("%s: %s", name, t.Fields[name].Describe())
		}
		return fmt.Sprintf("Struct %s {%s}", t.Name, strings.Join(parts, ", "))
	default:
		return t.Kind.String()
	}
}

// TypeOf returns the structural descriptor for v.
func TypeOf(v Value) *Type {
	if v == nil {
		return nil
	}
	switch tv := v.(type) {
	case Bool:
		return BoolType
	case String:
		return StringType
	case Float:
		return FloatType
	case Ref:
		return MakeRefType(tv.TargetType())
	case Struct:
		return tv.structType()
	case Set:
		return MakeSetType(tv.elemType())
	case Map:
		return MakeMapType(tv.keyType(), tv.valueType())
	default:
		return nil
	}
}
