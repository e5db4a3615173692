package chunks

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/iammosespaulr/noms/hash"
)

// MemoryStorage is shared, synchronized backing for one or more
// MemoryStoreView handles, the way the teacher's chunks.TestStorage wraps a
// MemoryStorage so several DataStore/Database instances can share one
// backing store within a process.
type MemoryStorage struct {
	mu    sync.Mutex
	data  map[hash.Hash]Chunk
	root  hash.Hash
	epoch string // diagnostic token, bumped on every successful Commit
}

// NewView returns a ChunkStore handle onto this shared storage.
func (ms *MemoryStorage) NewView() ChunkStore {
	return &MemoryStoreView{storage: ms}
}

func (ms *MemoryStorage) get(h hash.Hash) Chunk {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.data == nil {
		return EmptyChunk
	}
	if c, ok := ms.data[h]; ok {
		return c
	}
	return EmptyChunk
}

func (ms *MemoryStorage) has(h hash.Hash) bool {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	_, ok := ms.data[h]
	return ok
}

func (ms *MemoryStorage) put(c Chunk) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.data == nil {
		ms.data = map[hash.Hash]Chunk{}
	}
	ms.data[c.Hash()] = c
}

func (ms *MemoryStorage) root_() hash.Hash {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.root
}

func (ms *MemoryStorage) commit(current, last hash.Hash) bool {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.root != last {
		return false
	}
	ms.root = current
	ms.epoch = uuid.New().String()
	return true
}

// MemoryStoreView is a ChunkStore backed by a MemoryStorage. Multiple
// views over the same MemoryStorage observe each other's Puts and root
// updates immediately, without a Commit or Rebase of their own.
type MemoryStoreView struct {
	storage *MemoryStorage

	mu           sync.Mutex
	reads, hases int
	writes       int
}

var _ ChunkStore = &MemoryStoreView{}

// NewMemoryStore returns a fresh, unshared ChunkStore.
func NewMemoryStore() ChunkStore {
	return (&MemoryStorage{}).NewView()
}

func (ms *MemoryStoreView) Get(ctx context.Context, h hash.Hash) Chunk {
	ms.mu.Lock()
	ms.reads++
	ms.mu.Unlock()
	return ms.storage.get(h)
}

func (ms *MemoryStoreView) GetMany(ctx context.Context, hashes hash.HashSet, foundChunks chan *Chunk) {
	defer close(foundChunks)
	for h := range hashes {
		c := ms.Get(ctx, h)
		if !c.IsEmpty() {
			cc := c
			foundChunks <- &cc
		}
	}
}

func (ms *MemoryStoreView) Has(ctx context.Context, h hash.Hash) bool {
	ms.mu.Lock()
	ms.hases++
	ms.mu.Unlock()
	return ms.storage.has(h)
}

func (ms *MemoryStoreView) HasMany(ctx context.Context, hashes hash.HashSet) hash.HashSet {
	absent := hash.HashSet{}
	for h := range hashes {
		if !ms.Has(ctx, h) {
			absent.Insert(h)
		}
	}
	return absent
}

func (ms *MemoryStoreView) Put(ctx context.Context, c Chunk) {
	ms.mu.Lock()
	ms.writes++
	ms.mu.Unlock()
	ms.storage.put(c)
}

// Root returns the shared storage's current root directly: the CAS
// contract (spec.md §6 "getRoot() -> Hash") requires a live value, not a
// view-local cache that only advances on this view's own Commit/Rebase
// calls and would otherwise miss commits another view made to the same
// MemoryStorage.
func (ms *MemoryStoreView) Root(ctx context.Context) hash.Hash {
	return ms.storage.root_()
}

// Rebase is a no-op: Root already reads the shared storage live, so there
// is nothing view-local to refresh.
func (ms *MemoryStoreView) Rebase(ctx context.Context) {
}

func (ms *MemoryStoreView) Commit(ctx context.Context, current, last hash.Hash) (bool, error) {
	return ms.storage.commit(current, last), nil
}

func (ms *MemoryStoreView) Version() string {
	return NomsVersion
}

// MemoryStoreStats is the counter snapshot returned by Stats().
type MemoryStoreStats struct {
	Reads, Hases, Writes int
}

func (ms *MemoryStoreView) Stats() interface{} {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return MemoryStoreStats{ms.reads, ms.hases, ms.writes}
}

func (ms *MemoryStoreView) StatsSummary() string {
	s := ms.Stats().(MemoryStoreStats)
	return fmt.Sprintf("reads: %d, hases: %d, writes: %d", s.Reads, s.Hases, s.Writes)
}

func (ms *MemoryStoreView) Close() error {
	return nil
}
