// Package hash implements the fixed-width content hash used to address
// chunks throughout the store. A Hash is cheap to compare, totally ordered,
// and stringifies to a fixed-length base32 form.
package hash

import (
	"bytes"
	"crypto/sha512"
	"encoding/base32"

	"github.com/iammosespaulr/noms/d"
)

// ByteLen is the number of bytes in a Hash.
const ByteLen = 20

// StringLen is the length of a Hash's base32 string encoding.
const StringLen = 32

var encoding = base32.NewEncoding("0123456789abcdefghijklmnopqrstuv").WithPadding(base32.NoPadding)

// Hash is a content hash, computed by truncating a SHA-512 digest to
// ByteLen bytes. The zero value is the "empty" sentinel hash (§3: "points
// to ... the empty hash if no datasets exist").
type Hash [ByteLen]byte

var emptyHash = Hash{}

// Of computes the Hash of data.
func Of(data []byte) Hash {
	digest := sha512.Sum512(data)
	h := Hash{}
	copy(h[:], digest[:ByteLen])
	return h
}

// Parse decodes s into a Hash, panicking if s is not a well-formed Hash
// string.
func Parse(s string) Hash {
	h, ok := MaybeParse(s)
	if !ok {
		d.Panic("Invalid base32 Hash string: %s", s)
	}
	return h
}

// MaybeParse decodes s into a Hash, returning ok=false rather than
// panicking if s is not well-formed.
func MaybeParse(s string) (Hash, bool) {
	if len(s) != StringLen {
		return emptyHash, false
	}
	data, err := encoding.DecodeString(s)
	if err != nil || len(data) != ByteLen {
		return emptyHash, false
	}
	h := Hash{}
	copy(h[:], data)
	return h, true
}

// String returns the base32 encoding of h.
func (h Hash) String() string {
	return encoding.EncodeToString(h[:])
}

// IsEmpty returns true iff h is the zero-value sentinel hash.
func (h Hash) IsEmpty() bool {
	return h == emptyHash
}

// Less reports whether h sorts before other.
func (h Hash) Less(other Hash) bool {
	return bytes.Compare(h[:], other[:]) < 0
}

// Compare returns -1, 0, or 1 as h is less than, equal to, or greater than
// other.
func (h Hash) Compare(other Hash) int {
	return bytes.Compare(h[:], other[:])
}

// Equal reports whether h and other identify the same content.
func (h Hash) Equal(other Hash) bool {
	return h == other
}
