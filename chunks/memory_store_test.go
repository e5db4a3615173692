package chunks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreSharedStorage(t *testing.T) {
	assert := assert.New(t)
	storage := &MemoryStorage{}
	store1, store2 := storage.NewView(), storage.NewView()
	defer store1.Close()
	defer store2.Close()

	input := "abc"
	c := NewChunk([]byte(input))
	store1.Put(context.Background(), c)
	h := c.Hash()

	assertInputInStore(input, h, store1, assert)
	// store2 hasn't Rebased and never committed, but reads go straight to
	// the shared backing store (chunks are readable as soon as Put'd,
	// §4.4 step 3: "Writing is idempotent against the chunk store").
	assertInputInStore(input, h, store2, assert)

	ok, err := store1.Commit(context.Background(), store1.Root(context.Background()), store1.Root(context.Background()))
	assert.NoError(err)
	assert.True(ok)
}

func TestMemoryStoreCommitRaceLoses(t *testing.T) {
	assert := assert.New(t)
	storage := &MemoryStorage{}
	store1, store2 := storage.NewView(), storage.NewView()
	defer store1.Close()
	defer store2.Close()

	root0 := store1.Root(context.Background())
	newRoot1 := NewChunk([]byte("root1")).Hash()
	newRoot2 := NewChunk([]byte("root2")).Hash()

	ok, err := store1.Commit(context.Background(), newRoot1, root0)
	assert.NoError(err)
	assert.True(ok)

	// store2 still thinks the root is root0; its CAS loses.
	ok, err = store2.Commit(context.Background(), newRoot2, root0)
	assert.NoError(err)
	assert.False(ok)

	store2.Rebase(context.Background())
	assert.Equal(newRoot1, store2.Root(context.Background()))
}
