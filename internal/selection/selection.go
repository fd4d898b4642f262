// Package selection tracks which file paths are marked for summarization.
// The map is treated as immutable: updates return a new map so the shell can
// swap whole references and keep previous versions intact.
package selection

import "sort"

// Map holds file path -> selected. A missing key means not selected.
type Map map[string]bool

// Set returns a copy of m with path set to v. The input map is never
// modified. Paths are not checked against the current tree; a selection can
// outlive a rebuild and simply stops matching anything.
func Set(m Map, path string, v bool) Map {
	next := make(Map, len(m)+1)
	for k, val := range m {
		next[k] = val
	}
	next[path] = v
	return next
}

// Paths returns every selected path in sorted order. Request bodies are
// built from this, so the order must be deterministic.
func Paths(m Map) []string {
	var paths []string
	for p, v := range m {
		if v {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

// Any reports whether at least one path is selected.
func Any(m Map) bool {
	for _, v := range m {
		if v {
			return true
		}
	}
	return false
}

// Count returns the number of selected paths.
func Count(m Map) int {
	n := 0
	for _, v := range m {
		if v {
			n++
		}
	}
	return n
}
