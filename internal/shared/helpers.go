// Package shared provides common utility functions used across multiple
// packages in the ioc-usage codebase.
package shared

import "sort"

// SortedStrings returns the members of a string set in ascending order.
func SortedStrings(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for member := range set {
		out = append(out, member)
	}
	sort.Strings(out)
	return out
}

// SortedKeys returns the keys of a string-keyed map in ascending order.
func SortedKeys[V any](input map[string]V) []string {
	keys := make([]string, 0, len(input))
	for key := range input {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
