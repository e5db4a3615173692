// Package chunks defines the content-addressed chunk store contract (§6 of
// the spec) plus an in-memory implementation used by the rest of the
// module and its tests.
package chunks

import (
	"io"

	"github.com/iammosespaulr/noms/d"
	"github.com/iammosespaulr/noms/hash"
)

// Chunk is an immutable byte buffer paired with its content hash. A Chunk
// is empty iff its data is zero-length, and every empty Chunk carries the
// sentinel empty Hash.
type Chunk struct {
	data []byte
	hash hash.Hash
}

// EmptyChunk is the chunk with no data, whose Hash is the empty sentinel.
var EmptyChunk = NewChunk([]byte{})

// NewChunk wraps data as a Chunk, computing its hash. Zero-length data gets
// the sentinel empty Hash.
func NewChunk(data []byte) Chunk {
	if len(data) == 0 {
		return NewChunkWithHash(hash.Hash{}, data)
	}
	return NewChunkWithHash(hash.Of(data), data)
}

// NewChunkWithHash wraps data as a Chunk using a caller-supplied, already
// verified hash, avoiding a redundant digest computation.
func NewChunkWithHash(h hash.Hash, data []byte) Chunk {
	return Chunk{data, h}
}

// Data returns c's raw bytes.
func (c Chunk) Data() []byte {
	return c.data
}

// Hash returns c's content hash.
func (c Chunk) Hash() hash.Hash {
	return c.hash
}

// IsEmpty reports whether c carries no data.
func (c Chunk) IsEmpty() bool {
	return len(c.data) == 0
}

// ChunkWriter accumulates bytes and produces a Chunk once closed, the way a
// caller incrementally serializing a value would. It is single-use: once
// Close or Chunk has been called, further writes panic.
type ChunkWriter struct {
	buf    []byte
	closed bool
}

// NewChunkWriter returns a ready-to-write ChunkWriter.
func NewChunkWriter() *ChunkWriter {
	return &ChunkWriter{}
}

var _ io.WriteCloser = &ChunkWriter{}

// Write appends p to the in-progress chunk.
func (w *ChunkWriter) Write(p []byte) (int, error) {
	if w.closed {
		d.Panic("Write() called after Close()/Chunk()")
	}
	w.buf = append(w.buf, p...)
	return len(p), nil
}

// Close finalizes the writer. Further writes panic.
func (w *ChunkWriter) Close() error {
	w.closed = true
	return nil
}

// Chunk closes the writer (if not already closed) and returns the
// accumulated Chunk.
func (w *ChunkWriter) Chunk() Chunk {
	w.closed = true
	return NewChunk(w.buf)
}
