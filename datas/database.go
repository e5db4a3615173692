package datas

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/iammosespaulr/noms/chunks"
	"github.com/iammosespaulr/noms/d"
	"github.com/iammosespaulr/noms/hash"
	"github.com/iammosespaulr/noms/types"
)

var log = logrus.WithField("component", "datas")

// CommitOptions generalizes spec.md's `newCommit(value, parents)` with
// commit metadata (SPEC_FULL §5).
type CommitOptions struct {
	Parents types.Set
	Meta    types.Struct
}

// Database is the DataStore surface exposed to callers (spec.md §6). A
// Database instance holds a memoized, once-materialized view of the
// dataset map as it stood at the moment of its first access; subsequent
// external root advances are only observed after Rebase or by obtaining a
// fresh Database (as Commit/Delete/SetHead/FastForward return on success).
// A successful Commit, SetHead, Delete or CommitTag through an instance
// also replaces that instance's view with the dataset map it installed.
type Database interface {
	types.ValueReadWriter

	// GetDataset resolves id to its current Dataset handle, panicking if
	// id is not a valid dataset name (spec.md §6, SPEC_FULL §5).
	GetDataset(ctx context.Context, id string) Dataset

	// Datasets returns the full Map<string, Ref<Commit>> captured by this
	// Database instance (spec.md §6 `datasets()`).
	Datasets(ctx context.Context) types.Map

	// Commit advances ds's head to a new commit wrapping v, subject to
	// the fast-forward check (spec.md §4.4).
	Commit(ctx context.Context, ds Dataset, v types.Value, opts CommitOptions) (Dataset, error)

	// CommitValue is Commit with no parents/meta beyond ds's current head
	// (spec.md §6 convenience form).
	CommitValue(ctx context.Context, ds Dataset, v types.Value) (Dataset, error)

	// SetHead force-moves ds's head to newHeadRef without a fast-forward
	// check (SPEC_FULL §5).
	SetHead(ctx context.Context, ds Dataset, newHeadRef types.Ref) (Dataset, error)

	// FastForward moves ds's head to newHeadRef, failing unless newHeadRef
	// is a descendant of (or equal to) ds's current head (SPEC_FULL §5).
	FastForward(ctx context.Context, ds Dataset, newHeadRef types.Ref) (Dataset, error)

	// Delete removes ds's entry from the dataset map entirely (SPEC_FULL
	// §5).
	Delete(ctx context.Context, ds Dataset) (Dataset, error)

	// Rebase refreshes this Database's view of the root and dataset map
	// without performing a Commit (SPEC_FULL §5).
	Rebase(ctx context.Context)

	// Root returns the chunk store's current root hash.
	Root(ctx context.Context) hash.Hash

	Close() error
}

type database struct {
	*types.ValueStore

	mu           sync.Mutex
	datasetsOnce sync.Once
	datasetsVal  types.Map
}

// NewDatabase wraps cs as a Database with no value cache.
func NewDatabase(cs chunks.ChunkStore) Database {
	return NewDatabaseWithCache(cs, 0)
}

// NewDatabaseWithCache wraps cs as a Database whose value cache is bounded
// at maxSize bytes (0 disables caching), per spec.md §6
// `new DataStore(chunkStore, cacheSize = 0)`.
func NewDatabaseWithCache(cs chunks.ChunkStore, maxSize uint64) Database {
	return &database{ValueStore: types.NewValueStoreWithCache(cs, maxSize)}
}

// Datasets materializes (once per instance) and returns the dataset map.
func (db *database) Datasets(ctx context.Context) types.Map {
	db.datasetsOnce.Do(func() {
		root := db.ValueStore.Root(ctx)
		db.datasetsVal = datasetMap(ctx, db.ValueStore, root)
	})
	return db.datasetsVal
}

func (db *database) GetDataset(ctx context.Context, id string) Dataset {
	if !IsValidDatasetName(id) {
		d.Panic("invalid dataset name: %q", id)
	}
	m := db.Datasets(ctx)
	head, ok := resolveHead(ctx, db.ValueStore, m, id)
	return newDataset(db, id, head, ok)
}

func (db *database) CommitValue(ctx context.Context, ds Dataset, v types.Value) (Dataset, error) {
	opts := CommitOptions{Parents: types.Set{}, Meta: types.EmptyStruct()}
	if r, ok := ds.MaybeHeadRef(); ok {
		opts.Parents = opts.Parents.Insert(r)
	}
	return db.Commit(ctx, ds, v, opts)
}

// Commit implements the commit protocol of spec.md §4.4.
func (db *database) Commit(ctx context.Context, ds Dataset, v types.Value, opts CommitOptions) (Dataset, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	meta := opts.Meta

	rootOld := db.ValueStore.Root(ctx)
	mOld := datasetMap(ctx, db.ValueStore, rootOld)

	candidate := NewCommit(v, opts.Parents, meta)
	commitRef := db.ValueStore.WriteValue(ctx, candidate)

	if oldHead, ok := resolveHead(ctx, db.ValueStore, mOld, ds.id); ok {
		oldRef := types.NewRef(oldHead)
		if commitRef.TargetHash() == oldRef.TargetHash() {
			log.WithField("dataset", ds.id).Debug("commit already installed")
			return newDataset(db, ds.id, oldHead, true), nil
		}
		if !descendsFrom(ctx, db.ValueStore, opts.Parents, oldRef) {
			return ds, ErrMergeNeeded
		}
	}

	mNew := mOld.Set(types.String(ds.id), commitRef)
	rootNew := db.ValueStore.WriteValue(ctx, mNew).TargetHash()

	ok, err := db.ValueStore.Commit(ctx, rootNew, rootOld)
	if err != nil {
		return ds, err
	}
	if !ok {
		return ds, ErrOptimisticLockFailed
	}

	log.WithFields(logrus.Fields{"dataset": ds.id, "root": rootNew.String()}).Info("commit")
	db.datasetsOnce = sync.Once{}
	db.datasetsOnce.Do(func() { db.datasetsVal = mNew })
	fresh := &database{ValueStore: db.ValueStore}
	fresh.datasetsOnce.Do(func() { fresh.datasetsVal = mNew })
	return fresh.GetDataset(ctx, ds.id), nil
}

// SetHead force-moves ds's head to newHeadRef with no fast-forward check.
func (db *database) SetHead(ctx context.Context, ds Dataset, newHeadRef types.Ref) (Dataset, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	rootOld := db.ValueStore.Root(ctx)
	mOld := datasetMap(ctx, db.ValueStore, rootOld)
	mNew := mOld.Set(types.String(ds.id), newHeadRef)
	rootNew := db.ValueStore.WriteValue(ctx, mNew).TargetHash()

	ok, err := db.ValueStore.Commit(ctx, rootNew, rootOld)
	if err != nil {
		return ds, err
	}
	if !ok {
		return ds, ErrOptimisticLockFailed
	}
	db.datasetsOnce = sync.Once{}
	db.datasetsOnce.Do(func() { db.datasetsVal = mNew })
	fresh := &database{ValueStore: db.ValueStore}
	fresh.datasetsOnce.Do(func() { fresh.datasetsVal = mNew })
	return fresh.GetDataset(ctx, ds.id), nil
}

// FastForward moves ds's head to newHeadRef, only if newHeadRef descends
// from (or equals) ds's current head.
func (db *database) FastForward(ctx context.Context, ds Dataset, newHeadRef types.Ref) (Dataset, error) {
	if oldRef, ok := ds.MaybeHeadRef(); ok {
		if oldRef.TargetHash() == newHeadRef.TargetHash() {
			return ds, nil
		}
		target := newHeadRef.TargetValue(ctx, db.ValueStore)
		if target == nil {
			return ds, ErrMergeNeeded
		}
		newParents := commitParents(target.(types.Struct))
		if !descendsFrom(ctx, db.ValueStore, newParents, oldRef) {
			return ds, ErrMergeNeeded
		}
	}
	return db.SetHead(ctx, ds, newHeadRef)
}

// Delete removes ds's entry from the dataset map entirely.
func (db *database) Delete(ctx context.Context, ds Dataset) (Dataset, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	rootOld := db.ValueStore.Root(ctx)
	mOld := datasetMap(ctx, db.ValueStore, rootOld)
	if !mOld.Has(types.String(ds.id)) {
		return newDataset(db, ds.id, types.Struct{}, false), nil
	}
	mNew := mOld.Remove(types.String(ds.id))
	rootNew := db.ValueStore.WriteValue(ctx, mNew).TargetHash()

	ok, err := db.ValueStore.Commit(ctx, rootNew, rootOld)
	if err != nil {
		return ds, err
	}
	if !ok {
		return ds, ErrOptimisticLockFailed
	}
	db.datasetsOnce = sync.Once{}
	db.datasetsOnce.Do(func() { db.datasetsVal = mNew })
	fresh := &database{ValueStore: db.ValueStore}
	fresh.datasetsOnce.Do(func() { fresh.datasetsVal = mNew })
	return fresh.GetDataset(ctx, ds.id), nil
}

// Rebase refreshes this Database's memoized dataset map from the chunk
// store's current root (SPEC_FULL §5).
func (db *database) Rebase(ctx context.Context) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.ValueStore.Rebase(ctx)
	root := db.ValueStore.Root(ctx)
	db.datasetsOnce = sync.Once{}
	db.datasetsOnce.Do(func() {
		db.datasetsVal = datasetMap(ctx, db.ValueStore, root)
	})
}
