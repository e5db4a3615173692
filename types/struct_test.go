package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructEquals(t *testing.T) {
	assert := assert.New(t)

	s1 := NewStruct("S1", StructData{"s": String("hi"), "x": Bool(true)})
	s2 := NewStruct("S1", StructData{"s": String("hi"), "x": Bool(true)})

	assert.True(s1.Equals(s2))
	assert.True(s2.Equals(s1))
}

func TestStructNotEqualsDifferentName(t *testing.T) {
	assert := assert.New(t)

	s1 := NewStruct("S1", StructData{"x": Bool(true)})
	s2 := NewStruct("S2", StructData{"x": Bool(true)})

	assert.False(s1.Equals(s2))
}

func TestStructGetAndMaybeGet(t *testing.T) {
	assert := assert.New(t)

	s := NewStruct("S2", StructData{"b": Bool(true), "o": String("hi")})
	assert.True(s.Get("b").Equals(Bool(true)))

	_, ok := s.MaybeGet("missing")
	assert.False(ok)
	assert.False(s.Has("missing"))
	assert.True(s.Has("o"))

	assert.Panics(func() { s.Get("missing") })
}

func TestStructSet(t *testing.T) {
	assert := assert.New(t)

	s := NewStruct("S3", StructData{"b": Bool(true), "o": String("hi")})
	s2 := s.Set("b", Bool(false))
	assert.False(s.Equals(s2))

	s3 := s2.Set("b", Bool(true))
	assert.True(s.Equals(s3))

	s4 := s.Set("x", Float(42))
	assert.True(s4.Has("x"))
	assert.True(s.Has("b")) // s itself untouched
}

func TestStructTypeOf(t *testing.T) {
	assert := assert.New(t)

	s := NewStruct("Commit", StructData{"value": Bool(true)})
	typ := TypeOf(s)
	assert.Equal(KindStruct, typ.Kind)
	assert.Equal("Commit", typ.Name)
	assert.True(BoolType.Equals(typ.Fields["value"]))
}

func TestEmptyStruct(t *testing.T) {
	assert := assert.New(t)

	s := EmptyStruct()
	assert.Equal("", s.Name())
	assert.False(s.Has("anything"))
}
