package chunks

import (
	"context"

	"github.com/iammosespaulr/noms/hash"
)

// ChunkStore is the lower-level collaborator the DataStore is built on
// (§6): a content-addressed key-value store of Chunks plus a single,
// atomically-updatable root pointer.
//
// Implementations must provide their own internal synchronization; the
// same ChunkStore may be shared by many DataStore/Database instances
// (§5, "Shared-resource policy").
type ChunkStore interface {
	// Get returns the Chunk with hash h, or EmptyChunk if no such chunk is
	// stored.
	Get(ctx context.Context, h hash.Hash) Chunk

	// GetMany sends each requested Chunk found in the store to
	// foundChunks, then closes it. Missing hashes are silently omitted.
	GetMany(ctx context.Context, hashes hash.HashSet, foundChunks chan *Chunk)

	// Has reports whether a chunk with hash h is stored.
	Has(ctx context.Context, h hash.Hash) bool

	// HasMany returns the subset of hashes not present in the store.
	HasMany(ctx context.Context, hashes hash.HashSet) hash.HashSet

	// Put idempotently inserts c, keyed by c.Hash().
	Put(ctx context.Context, c Chunk)

	// Root returns the store's current root pointer, or the empty
	// sentinel Hash if unset.
	Root(ctx context.Context) hash.Hash

	// Commit atomically swaps the root pointer to current, provided the
	// stored root still equals last. It returns true iff the swap
	// happened. Any Chunks previously Put are durable once Commit
	// succeeds.
	Commit(ctx context.Context, current, last hash.Hash) (bool, error)

	// Rebase refreshes any state this ChunkStore handle caches about the
	// store (e.g. a locally memoized root) without performing a Commit.
	Rebase(ctx context.Context)

	// Version returns the store's format/protocol version string.
	Version() string

	// Stats returns an implementation-defined snapshot of store
	// counters (e.g. read/write counts), or nil if the store does not
	// track any.
	Stats() interface{}

	// StatsSummary renders Stats() as a human-readable string.
	StatsSummary() string

	// Close releases any resources held by the store.
	Close() error
}

// NomsVersion identifies the on-disk/wire protocol version this module
// speaks. Persistence formats are out of scope (spec.md §1 Non-goals); this
// exists only so ChunkStore.Version() has something stable to return.
const NomsVersion = "7.18"
