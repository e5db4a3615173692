package datas

import (
	"context"

	"github.com/iammosespaulr/noms/hash"
	"github.com/iammosespaulr/noms/types"
)

// nextGeneration resolves every ref in frontier to its Commit struct and
// returns the union of their parents (spec.md §4.2). Resolution goes
// through vr (and therefore, when vr is a *types.ValueStore, through the
// value cache).
func nextGeneration(ctx context.Context, vr types.ValueReader, frontier types.Set) types.Set {
	next := types.Set{}
	frontier.Map(func(v types.Value) {
		r := v.(types.Ref)
		c := r.TargetValue(ctx, vr).(types.Struct)
		commitParents(c).Map(func(p types.Value) {
			next = next.Insert(p)
		})
	})
	return next
}

// descendsFrom reports whether ancestor is in the reflexive-transitive
// closure of parents, walking generation by generation (spec.md §4.2).
func descendsFrom(ctx context.Context, vr types.ValueReader, parents types.Set, ancestor types.Ref) bool {
	frontier := parents
	for !frontier.Empty() {
		found := false
		frontier.Iter(func(v types.Value) bool {
			if v.(types.Ref).TargetHash() == ancestor.TargetHash() {
				found = true
				return true
			}
			return false
		})
		if found {
			return true
		}
		frontier = nextGeneration(ctx, vr, frontier)
	}
	return false
}

// ancestorClosure returns the set of hashes reachable (reflexively) from
// r by walking parents, used by FindCommonAncestor.
func ancestorClosure(ctx context.Context, vr types.ValueReader, r types.Ref) hash.HashSet {
	closure := hash.NewHashSet(r.TargetHash())
	frontier := types.Set{}.Insert(r)
	for !frontier.Empty() {
		frontier = nextGeneration(ctx, vr, frontier)
		frontier.Map(func(v types.Value) {
			closure.Insert(v.(types.Ref).TargetHash())
		})
	}
	return closure
}

// FindCommonAncestor returns the nearest common ancestor of a and b,
// walking outward from a generation by generation and testing membership
// in b's full ancestor closure (SPEC_FULL §5, grounded on the teacher's
// go/store/datas/commit_test.go TestFindCommonAncestor).
func FindCommonAncestor(ctx context.Context, a, b types.Ref, vr types.ValueReader) (types.Ref, bool) {
	bClosure := ancestorClosure(ctx, vr, b)

	frontier := types.Set{}.Insert(a)
	for !frontier.Empty() {
		var found *types.Ref
		frontier.Iter(func(v types.Value) bool {
			r := v.(types.Ref)
			if bClosure.Has(r.TargetHash()) {
				found = &r
				return true
			}
			return false
		})
		if found != nil {
			return *found, true
		}
		frontier = nextGeneration(ctx, vr, frontier)
	}
	return types.Ref{}, false
}
