package datas

import (
	"context"
	"sync"

	"github.com/iammosespaulr/noms/d"
	"github.com/iammosespaulr/noms/types"
)

// Field/type names for the Tag struct (SPEC_FULL §5, grounded on the
// teacher's go/store/datas/tag_test.go TestPersistedTagConsts).
const (
	TagName           = "Tag"
	TagCommitRefField = "ref"
	TagMetaField      = "meta"

	// tagNamespace prefixes the dataset-map key a tag is stored under,
	// keeping tags out of the way of ordinary dataset head entries the
	// way the teacher reserves a namespace prefix.
	tagNamespace = "tag-"
)

// NewTag builds a Tag struct pointing at commitRef, carrying an arbitrary
// meta struct.
func NewTag(commitRef types.Ref, meta types.Struct) types.Struct {
	return types.NewStruct(TagName, types.StructData{
		TagCommitRefField: commitRef,
		TagMetaField:      meta,
	})
}

// IsTag reports whether v is a well-formed Tag struct.
func IsTag(v types.Value) bool {
	s, ok := v.(types.Struct)
	if !ok || s.Name() != TagName {
		return false
	}
	ref, ok := s.MaybeGet(TagCommitRefField)
	if !ok {
		return false
	}
	_, ok = ref.(types.Ref)
	if !ok {
		return false
	}
	_, ok = s.MaybeGet(TagMetaField)
	return ok
}

// tagMapKey returns the reserved dataset-map key tag id is stored under.
func tagMapKey(id string) string {
	return tagNamespace + id
}

// CommitTag writes a Tag naming commitRef under id, directly CAS-ing the
// new dataset map. Tags are immutable once written: re-pointing a tag is
// a Delete followed by a fresh CommitTag, not an update in place.
func (db *database) CommitTag(ctx context.Context, id string, commitRef types.Ref, meta types.Struct) error {
	if !IsValidDatasetName(id) {
		d.Panic("invalid tag name: %q", id)
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	key := tagMapKey(id)
	rootOld := db.ValueStore.Root(ctx)
	mOld := datasetMap(ctx, db.ValueStore, rootOld)
	if mOld.Has(types.String(key)) {
		d.Panic("tag %q already exists", id)
	}

	tag := NewTag(commitRef, meta)
	tagRef := db.ValueStore.WriteValue(ctx, tag)
	mNew := mOld.Set(types.String(key), tagRef)
	rootNew := db.ValueStore.WriteValue(ctx, mNew).TargetHash()

	ok, err := db.ValueStore.Commit(ctx, rootNew, rootOld)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOptimisticLockFailed
	}
	db.datasetsOnce = sync.Once{}
	db.datasetsOnce.Do(func() { db.datasetsVal = mNew })
	return nil
}

// GetTag resolves the tag named id, if any.
func (db *database) GetTag(ctx context.Context, id string) (types.Struct, bool) {
	m := db.Datasets(ctx)
	v, ok := m.MaybeGet(types.String(tagMapKey(id)))
	if !ok {
		return types.Struct{}, false
	}
	r := v.(types.Ref)
	target := r.TargetValue(ctx, db.ValueStore)
	if target == nil {
		return types.Struct{}, false
	}
	return target.(types.Struct), true
}
