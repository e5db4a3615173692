package datas

import "errors"

// ErrMergeNeeded is returned by Commit when the candidate commit does not
// descend from the dataset's current head (spec.md §4.4 step 4, §7).
var ErrMergeNeeded = errors.New("merge needed")

// ErrOptimisticLockFailed is returned by Commit when the CAS against the
// chunk store's root lost a race with a concurrent writer (spec.md §4.4
// step 6, §7).
var ErrOptimisticLockFailed = errors.New("optimistic lock failed")
