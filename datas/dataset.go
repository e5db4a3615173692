package datas

import (
	"context"
	"regexp"

	"github.com/iammosespaulr/noms/d"
	"github.com/iammosespaulr/noms/types"
)

var datasetNamePattern = regexp.MustCompile(`^[a-zA-Z0-9\-_/]+$`)

// IsValidDatasetName reports whether name is usable as a dataset name: one
// or more of letters, digits, hyphen, underscore, or slash (the teacher
// reserves other characters, e.g. for future namespacing).
func IsValidDatasetName(name string) bool {
	return datasetNamePattern.MatchString(name)
}

// Dataset is a named, mutable pointer into a commit DAG (spec.md
// GLOSSARY "Dataset"), bound to the Database it was looked up from.
// SPEC_FULL §5 adopts this handle type in place of spec.md's flatter
// `head(datasetID) -> Commit | none`.
type Dataset struct {
	id      string
	db      Database
	head    types.Struct
	hasHead bool
}

func newDataset(db Database, id string, head types.Struct, hasHead bool) Dataset {
	return Dataset{id, db, head, hasHead}
}

// ID returns the dataset's name.
func (ds Dataset) ID() string { return ds.id }

// Database returns the Database ds was resolved from.
func (ds Dataset) Database() Database { return ds.db }

// HasHead reports whether ds currently has any commits.
func (ds Dataset) HasHead() bool { return ds.hasHead }

// MaybeHead returns ds's head Commit struct and whether it has one.
func (ds Dataset) MaybeHead() (types.Struct, bool) { return ds.head, ds.hasHead }

// Head returns ds's head Commit struct, panicking if ds has none.
func (ds Dataset) Head() types.Struct {
	h, ok := ds.MaybeHead()
	if !ok {
		d.Panic("dataset %q has no head", ds.id)
	}
	return h
}

// MaybeHeadRef returns a Ref to ds's head commit and whether it has one.
func (ds Dataset) MaybeHeadRef() (types.Ref, bool) {
	if !ds.hasHead {
		return types.Ref{}, false
	}
	return types.NewRef(ds.head), true
}

// HeadRef returns a Ref to ds's head commit, panicking if ds has none.
func (ds Dataset) HeadRef() types.Ref {
	r, ok := ds.MaybeHeadRef()
	if !ok {
		d.Panic("dataset %q has no head", ds.id)
	}
	return r
}

// MaybeHeadValue returns ds's head commit's value field and whether ds
// has a head.
func (ds Dataset) MaybeHeadValue() (types.Value, bool) {
	if !ds.hasHead {
		return nil, false
	}
	return ds.head.Get(ValueField), true
}

// HeadValue returns ds's head commit's value field, panicking if ds has
// no head.
func (ds Dataset) HeadValue() types.Value {
	v, ok := ds.MaybeHeadValue()
	if !ok {
		d.Panic("dataset %q has no head", ds.id)
	}
	return v
}

func resolveHead(ctx context.Context, vr types.ValueReader, m types.Map, id string) (types.Struct, bool) {
	v, ok := m.MaybeGet(types.String(id))
	if !ok {
		return types.Struct{}, false
	}
	r := v.(types.Ref)
	target := r.TargetValue(ctx, vr)
	if target == nil {
		return types.Struct{}, false
	}
	return target.(types.Struct), true
}
