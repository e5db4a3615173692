package types

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/iammosespaulr/noms/chunks"
	"github.com/iammosespaulr/noms/d"
	"github.com/iammosespaulr/noms/hash"
	"github.com/iammosespaulr/noms/util/sizecache"
)

// ValueStore reads and writes Values through a backing ChunkStore, caching
// decoded Values by hash per spec.md §4.1. Concurrent reads of the same
// uncached hash are de-duplicated with a singleflight.Group so that N
// goroutines resolving the same Ref only decode once (spec.md §9).
type ValueStore struct {
	cs    chunks.ChunkStore
	cache *sizecache.SizeCache
	group singleflight.Group
}

// NewValueStore wraps cs with no value cache: every ReadValue decodes
// straight from the ChunkStore.
func NewValueStore(cs chunks.ChunkStore) *ValueStore {
	return NewValueStoreWithCache(cs, 0)
}

// NewValueStoreWithCache wraps cs with a value cache bounded at maxSize
// bytes. maxSize == 0 disables caching.
func NewValueStoreWithCache(cs chunks.ChunkStore, maxSize uint64) *ValueStore {
	vs := &ValueStore{cs: cs}
	if maxSize > 0 {
		vs.cache = sizecache.New(maxSize)
	}
	return vs
}

// ReadValue resolves h to a Value, consulting the cache first and falling
// back to the ChunkStore on a miss. A decoded Value is cached keyed by its
// hash before being returned.
func (vs *ValueStore) ReadValue(ctx context.Context, h hash.Hash) Value {
	if h.IsEmpty() {
		return nil
	}
	if vs.cache != nil {
		if v, ok := vs.cache.Get(h); ok {
			return v.(Value)
		}
	}

	v, err, _ := vs.group.Do(h.String(), func() (interface{}, error) {
		c := vs.cs.Get(ctx, h)
		if c.IsEmpty() {
			return nil, nil
		}
		decoded, err := Decode(c)
		if err != nil {
			return nil, err
		}
		if vs.cache != nil {
			vs.cache.Add(h, uint64(len(c.Data())), decoded)
		}
		return decoded, nil
	})
	d.PanicIfError(err)
	if v == nil {
		return nil
	}
	return v.(Value)
}

// WriteValue encodes v and writes it to the backing ChunkStore, caching the
// decoded Value under its own hash and returning a Ref addressing it.
func (vs *ValueStore) WriteValue(ctx context.Context, v Value) Ref {
	c, err := Encode(v)
	if err != nil {
		panic(err)
	}
	vs.cs.Put(ctx, c)
	if vs.cache != nil {
		vs.cache.Add(c.Hash(), uint64(len(c.Data())), v)
	}
	return NewRefForHash(c.Hash(), TypeOf(v))
}

// Root returns the backing ChunkStore's current root hash.
func (vs *ValueStore) Root(ctx context.Context) hash.Hash {
	return vs.cs.Root(ctx)
}

// Commit attempts to move the backing ChunkStore's root from last to
// current, per the ChunkStore's CAS contract.
func (vs *ValueStore) Commit(ctx context.Context, current, last hash.Hash) (bool, error) {
	return vs.cs.Commit(ctx, current, last)
}

// Rebase refreshes the backing ChunkStore's view of the root, picking up
// commits made by other writers.
func (vs *ValueStore) Rebase(ctx context.Context) {
	vs.cs.Rebase(ctx)
}

// ChunkStore exposes the backing store, for callers (e.g. datas.Database)
// that need direct access below the Value layer.
func (vs *ValueStore) ChunkStore() chunks.ChunkStore {
	return vs.cs
}

// Close releases the backing ChunkStore's resources.
func (vs *ValueStore) Close() error {
	return vs.cs.Close()
}

var _ ValueReadWriter = &ValueStore{}
