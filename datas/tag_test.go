package datas

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iammosespaulr/noms/chunks"
	"github.com/iammosespaulr/noms/types"
)

func TestPersistedTagConsts(t *testing.T) {
	assert.Equal(t, "meta", TagMetaField)
	assert.Equal(t, "ref", TagCommitRefField)
	assert.Equal(t, "Tag", TagName)
}

func TestNewTagIsTag(t *testing.T) {
	assert := assert.New(t)

	commit := NewCommit(types.Float(1), types.Set{}, types.EmptyStruct())
	tag := NewTag(types.NewRef(commit), types.EmptyStruct())
	assert.True(IsTag(tag))
	assert.False(IsCommit(tag))
}

func TestCommitAndGetTag(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	db := NewDatabase(chunks.NewMemoryStore()).(*database)
	defer db.Close()

	ds, err := db.CommitValue(ctx, db.GetDataset(ctx, "main"), types.String("v1"))
	assert.NoError(err)

	err = db.CommitTag(ctx, "v1", ds.HeadRef(), types.EmptyStruct())
	assert.NoError(err)

	tag, ok := db.GetTag(ctx, "v1")
	assert.True(ok)
	ref := tag.Get(TagCommitRefField).(types.Ref)
	assert.Equal(ds.HeadRef().TargetHash(), ref.TargetHash())
}

func TestCommitTagTwiceFails(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	db := NewDatabase(chunks.NewMemoryStore()).(*database)
	defer db.Close()

	ds, err := db.CommitValue(ctx, db.GetDataset(ctx, "main"), types.String("v1"))
	assert.NoError(err)

	assert.NoError(db.CommitTag(ctx, "v1", ds.HeadRef(), types.EmptyStruct()))
	assert.Panics(func() {
		db.CommitTag(ctx, "v1", ds.HeadRef(), types.EmptyStruct())
	})
}
