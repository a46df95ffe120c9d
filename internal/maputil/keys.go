// Package maputil provides helpers for the string-keyed maps of the
// document model, whose iteration order must not leak into output.
package maputil

import "slices"

// SortedKeys returns the keys of m in lexical order. A nil or empty map
// yields an empty, non-nil slice.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
