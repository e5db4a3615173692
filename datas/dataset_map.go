package datas

import (
	"context"
	"sync"

	"github.com/iammosespaulr/noms/hash"
	"github.com/iammosespaulr/noms/types"
)

var (
	emptyDatasetMapOnce sync.Once
	emptyDatasetMap     types.Map
)

// canonicalEmptyDatasetMap returns the process-wide singleton empty
// Map<string, Ref<Commit>>, created once and memoized (spec.md §4.3, §9
// "Process-wide type registry and empty commit map").
func canonicalEmptyDatasetMap() types.Map {
	emptyDatasetMapOnce.Do(func() {
		emptyDatasetMap = types.Map{}
	})
	return emptyDatasetMap
}

// datasetMap materializes the Map<string, Ref<Commit>> rooted at root,
// or the canonical empty map if root is the sentinel empty hash (spec.md
// §4.3).
func datasetMap(ctx context.Context, vr types.ValueReader, root hash.Hash) types.Map {
	if root.IsEmpty() {
		return canonicalEmptyDatasetMap()
	}
	v := vr.ReadValue(ctx, root)
	if v == nil {
		return canonicalEmptyDatasetMap()
	}
	return v.(types.Map)
}
