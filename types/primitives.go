package types

import "github.com/iammosespaulr/noms/hash"

// Bool is a primitive boolean Value.
type Bool bool

func (b Bool) Kind() NomsKind          { return KindBool }
func (b Bool) Hash() hash.Hash         { return valueHash(b) }
func (b Bool) Equals(other Value) bool { return valuesEqual(b, other) }

// String is a primitive UTF-8 string Value.
type String string

func (s String) Kind() NomsKind          { return KindString }
func (s String) Hash() hash.Hash         { return valueHash(s) }
func (s String) Equals(other Value) bool { return valuesEqual(s, other) }

// Float is a primitive double-precision numeric Value.
type Float float64

func (f Float) Kind() NomsKind          { return KindFloat }
func (f Float) Hash() hash.Hash         { return valueHash(f) }
func (f Float) Equals(other Value) bool { return valuesEqual(f, other) }
