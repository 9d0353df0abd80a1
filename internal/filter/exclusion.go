package filter

import (
	"sort"

	"github.com/icesee-project/spackreqs/internal/requirement"
)

// DefaultExclusions are the packages Spack provides for the stack, either
// because they are ABI sensitive or because they are build tooling that pip
// must not replace.
var DefaultExclusions = []string{
	"h5py",
	"setuptools",
	"wheel",
	"pip",
	"python",
	"jax",
	"jaxlib",
}

// ExclusionSet is a set of normalized keys that are never written to the
// requirements output.
type ExclusionSet struct {
	keys map[string]bool
}

// NewExclusionSet creates a set from package names or specifiers. Each entry
// is normalized with [requirement.Key], so "H5PY" and "h5py" are the same.
func NewExclusionSet(names ...string) ExclusionSet {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		if k := requirement.Key(n); k != "" {
			m[k] = true
		}
	}

	return ExclusionSet{keys: m}
}

// Contains reports whether key is excluded. key must already be normalized.
func (s ExclusionSet) Contains(key string) bool {
	return s.keys[key]
}

// With returns a new set holding the members of s plus names.
func (s ExclusionSet) With(names ...string) ExclusionSet {
	merged := make([]string, 0, len(s.keys)+len(names))
	merged = append(merged, s.Keys()...)
	merged = append(merged, names...)

	return NewExclusionSet(merged...)
}

// Keys returns the members of the set, sorted.
func (s ExclusionSet) Keys() []string {
	keys := make([]string, 0, len(s.keys))
	for k := range s.keys {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Len returns the number of keys in the set.
func (s ExclusionSet) Len() int {
	return len(s.keys)
}
