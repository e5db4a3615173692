package datas

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/iammosespaulr/noms/chunks"
	"github.com/iammosespaulr/noms/types"
)

func TestDatabaseSuite(t *testing.T) {
	suite.Run(t, &DatabaseSuite{})
}

type DatabaseSuite struct {
	suite.Suite
	storage *chunks.TestStorage
	db      Database
}

func (s *DatabaseSuite) SetupTest() {
	s.storage = &chunks.TestStorage{}
	s.db = NewDatabase(s.storage.NewView())
}

func (s *DatabaseSuite) TearDownTest() {
	s.db.Close()
}

func (s *DatabaseSuite) TestTolerateUngettableRefs() {
	s.Nil(s.db.ReadValue(context.Background(), chunks.EmptyChunk.Hash()))
}

func (s *DatabaseSuite) TestDatabaseCommit() {
	ctx := context.Background()
	datasetID := "ds1"
	datasets := s.db.Datasets(ctx)
	s.Zero(datasets.Len())

	ds := s.db.GetDataset(ctx, datasetID)
	a := types.String("a")
	ds2, err := s.db.CommitValue(ctx, ds, a)
	s.NoError(err)

	h, ok := ds2.MaybeHeadValue()
	s.True(ok)
	s.True(h.Equals(a))

	aCommitRef := ds2.HeadRef()

	b := types.String("b")
	dsB, err := s.db.CommitValue(ctx, ds2, b)
	s.NoError(err)
	s.True(dsB.HeadValue().Equals(b))

	// Attempting to commit c with stale parents (pointing at a, not b)
	// should be disallowed.
	c := types.String("c")
	staleParents := types.Set{}.Insert(aCommitRef)
	_, err = s.db.Commit(ctx, dsB, c, CommitOptions{Parents: staleParents, Meta: types.EmptyStruct()})
	s.Error(err)
}

func (s *DatabaseSuite) TestDatabaseDuplicateCommit() {
	ctx := context.Background()
	ds := s.db.GetDataset(ctx, "ds1")
	v := types.String("Hello")

	_, err := s.db.CommitValue(ctx, ds, v)
	s.NoError(err)

	// ds is stale (no head), so this builds the very same commit again:
	// re-committing the installed head is a no-op success.
	_, err = s.db.CommitValue(ctx, ds, v)
	s.NoError(err)
}

func (s *DatabaseSuite) TestDatabaseDelete() {
	ctx := context.Background()
	ds1 := s.db.GetDataset(ctx, "ds1")
	ds2 := s.db.GetDataset(ctx, "ds2")

	a := types.String("a")
	ds1, err := s.db.CommitValue(ctx, ds1, a)
	s.NoError(err)
	s.True(ds1.HeadValue().Equals(a))

	b := types.String("b")
	ds2, err = s.db.CommitValue(ctx, ds2, b)
	s.NoError(err)

	ds1, err = s.db.Delete(ctx, ds1)
	s.NoError(err)
	_, present := s.db.GetDataset(ctx, "ds1").MaybeHead()
	s.False(present)
	s.True(s.db.GetDataset(ctx, "ds2").HeadValue().Equals(b))
}

func (s *DatabaseSuite) TestSetHead() {
	ctx := context.Background()
	ds := s.db.GetDataset(ctx, "ds1")

	a := types.String("a")
	ds, err := s.db.CommitValue(ctx, ds, a)
	s.NoError(err)
	aRef := ds.HeadRef()

	b := types.String("b")
	ds, err = s.db.CommitValue(ctx, ds, b)
	s.NoError(err)
	s.True(ds.HeadValue().Equals(b))

	ds, err = s.db.SetHead(ctx, ds, aRef)
	s.NoError(err)
	s.True(ds.HeadValue().Equals(a))
}

func (s *DatabaseSuite) TestFastForward() {
	ctx := context.Background()
	ds := s.db.GetDataset(ctx, "ds1")

	a := types.String("a")
	ds, err := s.db.CommitValue(ctx, ds, a)
	s.NoError(err)
	aRef := ds.HeadRef()

	b := types.String("b")
	ds, err = s.db.CommitValue(ctx, ds, b)
	s.NoError(err)

	c := types.String("c")
	ds, err = s.db.CommitValue(ctx, ds, c)
	s.NoError(err)
	cRef := ds.HeadRef()

	// a is not a descendant of c: should fail.
	ds, err = s.db.FastForward(ctx, ds, aRef)
	s.Error(err)
	s.True(ds.HeadValue().Equals(c))

	ds, err = s.db.SetHead(ctx, ds, aRef)
	s.NoError(err)

	// c is a (transitive) descendant of a: should succeed.
	ds, err = s.db.FastForward(ctx, ds, cRef)
	s.NoError(err)
	s.True(ds.HeadValue().Equals(c))
}

func (s *DatabaseSuite) TestRebase() {
	ctx := context.Background()
	ds1 := s.db.GetDataset(ctx, "ds1")
	ds1, err := s.db.CommitValue(ctx, ds1, types.String("a"))
	s.NoError(err)

	interloper := NewDatabase(s.storage.NewView())
	defer interloper.Close()

	e := types.String("e")
	iDS, err := interloper.CommitValue(ctx, interloper.GetDataset(ctx, "ds1"), e)
	s.NoError(err)
	s.True(iDS.HeadValue().Equals(e))

	s.True(s.db.GetDataset(ctx, "ds1").HeadValue().Equals(types.String("a")))

	s.db.Rebase(ctx)
	s.True(s.db.GetDataset(ctx, "ds1").HeadValue().Equals(e))
}

func (s *DatabaseSuite) TestMetaOption() {
	ctx := context.Background()
	ds := s.db.GetDataset(ctx, "ds1")
	m := types.NewStruct("M", types.StructData{"author": types.String("arv")})

	ds, err := s.db.Commit(ctx, ds, types.String("a"), CommitOptions{Parents: types.Set{}, Meta: m})
	s.NoError(err)
	c := ds.Head()
	s.Equal(types.String("arv"), c.Get(CommitMetaField).(types.Struct).Get("author"))
}
