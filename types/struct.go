package types

import (
	"sort"

	"github.com/iammosespaulr/noms/d"
	"github.com/iammosespaulr/noms/hash"
)

// StructData is the field name -> value mapping used to build a Struct.
type StructData map[string]Value

// Struct is an immutable, named, fixed-field record Value.
type Struct struct {
	name   string
	fields StructData
}

// NewStruct builds a Struct named name with the given fields.
func NewStruct(name string, data StructData) Struct {
	fields := make(StructData, len(data))
	for k, v := range data {
		fields[k] = v
	}
	return Struct{name, fields}
}

// EmptyStruct is the canonical Struct with no name and no fields, used for
// commits/tags that carry no metadata.
func EmptyStruct() Struct {
	return NewStruct("", StructData{})
}

func (s Struct) Kind() NomsKind          { return KindStruct }
func (s Struct) Hash() hash.Hash         { return valueHash(s) }
func (s Struct) Equals(other Value) bool { return valuesEqual(s, other) }

// Name returns s's struct name.
func (s Struct) Name() string { return s.name }

// Get returns the value of field name, panicking if it is not present.
// Mirrors the external struct.get(fieldName) contract (spec.md §6).
func (s Struct) Get(name string) Value {
	v, ok := s.MaybeGet(name)
	if !ok {
		d.Panic("Struct %s has no field %q", s.name, name)
	}
	return v
}

// MaybeGet returns the value of field name and whether it is present.
func (s Struct) MaybeGet(name string) (Value, bool) {
	v, ok := s.fields[name]
	return v, ok
}

// Has reports whether field name is present.
func (s Struct) Has(name string) bool {
	_, ok := s.fields[name]
	return ok
}

// Set returns a new Struct, same name as s, with field name set to v,
// leaving s unchanged.
func (s Struct) Set(name string, v Value) Struct {
	fields := make(StructData, len(s.fields)+1)
	for k, fv := range s.fields {
		fields[k] = fv
	}
	fields[name] = v
	return Struct{s.name, fields}
}

func (s Struct) fieldNames() []string {
	names := make([]string, 0, len(s.fields))
	for n := range s.fields {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (s Struct) structType() *Type {
	fields := make(map[string]*Type, len(s.fields))
	for n, v := range s.fields {
		fields[n] = TypeOf(v)
	}
	return MakeStructType(s.name, fields)
}
