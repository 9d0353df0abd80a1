package filter

import (
	"strings"

	"github.com/icesee-project/spackreqs/internal/manifest"
	"github.com/icesee-project/spackreqs/internal/requirement"
)

// Reasons recorded for dropped entries.
const (
	ReasonExcluded  = "excluded"
	ReasonDuplicate = "duplicate"
)

// Source names the part of the manifest an entry came from. The base
// dependency list uses [BaseSource].
const BaseSource = "dependencies"

// Entry is a specifier together with its normalized key and origin.
type Entry struct {
	Spec   string
	Key    string
	Source string
}

// DroppedEntry records an entry removed from the output.
type DroppedEntry struct {
	Entry
	// Reason is ReasonExcluded or ReasonDuplicate.
	Reason string
}

// Result holds the outcome of a filter run.
type Result struct {
	// Requirements are the kept specifiers in their original form.
	Requirements []string
	// Dropped are the entries removed by exclusion or deduplication, in
	// input order.
	Dropped []DroppedEntry
	// MissingGroups are requested groups the manifest does not declare.
	MissingGroups []string
}

// Excluded returns the entries dropped because of the exclusion set.
func (r *Result) Excluded() []DroppedEntry {
	return r.droppedBy(ReasonExcluded)
}

// Duplicates returns the entries dropped because their key was already kept.
func (r *Result) Duplicates() []DroppedEntry {
	return r.droppedBy(ReasonDuplicate)
}

func (r *Result) droppedBy(reason string) []DroppedEntry {
	var out []DroppedEntry

	for _, d := range r.Dropped {
		if d.Reason == reason {
			out = append(out, d)
		}
	}

	return out
}

// Collect concatenates the base dependencies and the requested groups in
// the order given. Groups the manifest does not declare contribute nothing
// and are returned in missing.
func Collect(m *manifest.Manifest, groups []string) (entries []Entry, missing []string) {
	entries = make([]Entry, 0, len(m.Dependencies))

	for _, spec := range m.Dependencies {
		entries = append(entries, Entry{Spec: spec, Key: requirement.Key(spec), Source: BaseSource})
	}

	for _, g := range groups {
		deps, ok := m.Group(g)
		if !ok {
			missing = append(missing, g)
			continue
		}

		for _, spec := range deps {
			entries = append(entries, Entry{Spec: spec, Key: requirement.Key(spec), Source: g})
		}
	}

	return entries, missing
}

// Apply builds the requirements list for m with the requested groups,
// dropping excluded keys and keeping only the first entry per key.
func Apply(m *manifest.Manifest, groups []string, exclude ExclusionSet) *Result {
	entries, missing := Collect(m, groups)

	r := &Result{
		Requirements:  make([]string, 0, len(entries)),
		MissingGroups: missing,
	}

	seen := make(map[string]bool, len(entries))

	for _, e := range entries {
		switch {
		case exclude.Contains(e.Key):
			r.Dropped = append(r.Dropped, DroppedEntry{Entry: e, Reason: ReasonExcluded})
		case seen[e.Key]:
			r.Dropped = append(r.Dropped, DroppedEntry{Entry: e, Reason: ReasonDuplicate})
		default:
			seen[e.Key] = true
			r.Requirements = append(r.Requirements, e.Spec)
		}
	}

	return r
}

// ParseGroups splits a comma-separated group list, trimming whitespace and
// dropping empty entries. "mpi, ,viz" yields [mpi viz].
func ParseGroups(s string) []string {
	var groups []string

	for _, part := range strings.Split(s, ",") {
		if g := strings.TrimSpace(part); g != "" {
			groups = append(groups, g)
		}
	}

	return groups
}
