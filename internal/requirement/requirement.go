// Package requirement handles pip dependency specifiers such as
// "name[extra]>=1.0" and derives the canonical key used to compare them.
package requirement

import "strings"

// keyDelimiters terminate the package-name prefix of a specifier.
const keyDelimiters = "<>=!~ ["

// Key returns the normalized key of a dependency specifier: the package name
// before any version, extras, or whitespace, lowercased, with underscores
// replaced by hyphens.
//
//	Key("H5PY==3.1")            == "h5py"
//	Key("Foo_Bar[cli]>=2")      == "foo-bar"
//	Key("  numpy >= 1.20")      == "numpy"
func Key(spec string) string {
	name := strings.TrimSpace(spec)

	if idx := strings.IndexAny(name, keyDelimiters); idx >= 0 {
		name = name[:idx]
	}

	return strings.ReplaceAll(strings.ToLower(name), "_", "-")
}

// Keys returns the normalized key of every specifier, preserving order.
func Keys(specs []string) []string {
	keys := make([]string, len(specs))
	for i, s := range specs {
		keys[i] = Key(s)
	}

	return keys
}
