package inventory

import (
	"iter"
	"sort"
)

// canonicalMapIter yields map entries in sorted key order, so criterion
// evaluation warnings and the "all" group's host list come out in a
// deterministic, diff-friendly order instead of Go's randomized map order.
func canonicalMapIter[T any](m map[string]T) iter.Seq2[string, T] {
	return func(yield func(string, T) bool) {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			if !yield(k, m[k]) {
				return
			}
		}
	}
}
