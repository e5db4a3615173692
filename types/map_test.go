package types

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapSetAndGet(t *testing.T) {
	assert := assert.New(t)

	m := NewMap(context.Background(), nil, String("a"), Float(1), String("b"), Float(2))
	assert.Equal(uint64(2), m.Len())
	assert.True(m.Get(String("a")).Equals(Float(1)))
	assert.True(m.Get(String("b")).Equals(Float(2)))
	assert.Nil(m.Get(String("c")))
}

func TestMapSetIsFunctional(t *testing.T) {
	assert := assert.New(t)

	m1 := NewMap(context.Background(), nil, String("a"), Float(1))
	m2 := m1.Set(String("b"), Float(2))

	assert.Equal(uint64(1), m1.Len())
	assert.Equal(uint64(2), m2.Len())
	assert.False(m1.Has(String("b")))
}

func TestMapSetOverwritesExistingKey(t *testing.T) {
	assert := assert.New(t)

	m := NewMap(context.Background(), nil, String("a"), Float(1))
	m2 := m.Set(String("a"), Float(2))
	assert.Equal(uint64(1), m2.Len())
	assert.True(m2.Get(String("a")).Equals(Float(2)))
}

func TestMapRemove(t *testing.T) {
	assert := assert.New(t)

	m := NewMap(context.Background(), nil, String("a"), Float(1), String("b"), Float(2))
	m2 := m.Remove(String("a"))
	assert.Equal(uint64(1), m2.Len())
	assert.False(m2.Has(String("a")))
	assert.True(m.Has(String("a"))) // m itself untouched
}

func TestMapRemoveMissingIsNoop(t *testing.T) {
	assert := assert.New(t)

	m := NewMap(context.Background(), nil, String("a"), Float(1))
	m2 := m.Remove(String("z"))
	assert.Equal(uint64(1), m2.Len())
}

func TestMapEmpty(t *testing.T) {
	assert := assert.New(t)

	m := NewMap(context.Background(), nil)
	assert.True(m.Empty())
}

func TestMapNewPanicsOnOddArgs(t *testing.T) {
	assert := assert.New(t)
	assert.Panics(func() {
		NewMap(context.Background(), nil, String("a"))
	})
}

func TestMapIter(t *testing.T) {
	assert := assert.New(t)

	m := NewMap(context.Background(), nil, String("a"), Float(1), String("b"), Float(2))
	seen := map[string]float64{}
	m.Iter(func(k, v Value) bool {
		seen[string(k.(String))] = float64(v.(Float))
		return false
	})
	assert.Equal(map[string]float64{"a": 1, "b": 2}, seen)
}
