// Package diff compares a requirements file on disk with a freshly
// generated one.
package diff

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/icesee-project/spackreqs/internal/output"
	"github.com/icesee-project/spackreqs/internal/requirement"
)

// Result holds the outcome of comparing two requirements documents.
type Result struct {
	// Identical is true when the documents match byte-for-byte.
	Identical bool
	// Unified is the unified diff text, empty when the documents match line
	// by line.
	Unified string
	// Added are specifiers whose key appears only in the new document.
	Added []string
	// Removed are specifiers whose key appears only in the old document.
	Removed []string
	// Changed are new specifiers whose key exists in both documents with a
	// different spelling or constraint.
	Changed []string
}

// HasDifferences reports whether the documents differ.
func (r *Result) HasDifferences() bool {
	return !r.Identical
}

// Summary returns a one-line description such as "+2 added, -1 removed".
func (r *Result) Summary() string {
	if !r.HasDifferences() {
		return "up to date"
	}

	var parts []string

	if n := len(r.Added); n > 0 {
		parts = append(parts, fmt.Sprintf("+%d added", n))
	}

	if n := len(r.Removed); n > 0 {
		parts = append(parts, fmt.Sprintf("-%d removed", n))
	}

	if n := len(r.Changed); n > 0 {
		parts = append(parts, fmt.Sprintf("~%d changed", n))
	}

	if len(parts) == 0 {
		if r.Unified == "" {
			return "trailing newline differs"
		}

		return "reordered or reformatted"
	}

	return strings.Join(parts, ", ")
}

// Options configures diff computation.
type Options struct {
	OldLabel string
	NewLabel string
	Context  int
}

// DefaultOptions returns the labels and context used by the diff command.
func DefaultOptions() Options {
	return Options{
		OldLabel: "existing",
		NewLabel: "generated",
		Context:  3,
	}
}

// Compute diffs two requirements documents.
func Compute(oldDoc, newDoc []byte, opts Options) (*Result, error) {
	ud := difflib.UnifiedDiff{
		A:        splitLines(string(oldDoc)),
		B:        splitLines(string(newDoc)),
		FromFile: opts.OldLabel,
		ToFile:   opts.NewLabel,
		Context:  opts.Context,
	}

	unified, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return nil, fmt.Errorf("computing diff: %w", err)
	}

	r := &Result{Identical: bytes.Equal(oldDoc, newDoc), Unified: unified}
	r.Added, r.Removed, r.Changed = compareKeys(output.ParseLines(oldDoc), output.ParseLines(newDoc))

	return r, nil
}

func compareKeys(oldReqs, newReqs []string) (added, removed, changed []string) {
	oldByKey := make(map[string]string, len(oldReqs))
	for _, s := range oldReqs {
		oldByKey[requirement.Key(s)] = s
	}

	newKeys := make(map[string]bool, len(newReqs))

	for _, s := range newReqs {
		k := requirement.Key(s)
		newKeys[k] = true

		prev, ok := oldByKey[k]

		switch {
		case !ok:
			added = append(added, s)
		case prev != s:
			changed = append(changed, s)
		}
	}

	for _, s := range oldReqs {
		if !newKeys[requirement.Key(s)] {
			removed = append(removed, s)
		}
	}

	return added, removed, changed
}

// Write prints the unified diff, optionally with ANSI colors.
func Write(w io.Writer, r *Result, color bool) {
	if !r.HasDifferences() {
		_, _ = fmt.Fprintln(w, "No differences found.")
		return
	}

	if r.Unified == "" {
		_, _ = fmt.Fprintln(w, "Files differ only in trailing newline.")
		return
	}

	for _, line := range strings.Split(strings.TrimSuffix(r.Unified, "\n"), "\n") {
		if color {
			writeColorLine(w, line)
		} else {
			_, _ = fmt.Fprintln(w, line)
		}
	}
}

func writeColorLine(w io.Writer, line string) {
	const (
		red   = "\033[31m"
		green = "\033[32m"
		cyan  = "\033[36m"
		bold  = "\033[1m"
		reset = "\033[0m"
	)

	switch {
	case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
		_, _ = fmt.Fprintf(w, "%s%s%s\n", bold, line, reset)
	case strings.HasPrefix(line, "@@"):
		_, _ = fmt.Fprintf(w, "%s%s%s\n", cyan, line, reset)
	case strings.HasPrefix(line, "-"):
		_, _ = fmt.Fprintf(w, "%s%s%s\n", red, line, reset)
	case strings.HasPrefix(line, "+"):
		_, _ = fmt.Fprintf(w, "%s%s%s\n", green, line, reset)
	default:
		_, _ = fmt.Fprintln(w, line)
	}
}

// splitLines returns the lines of s, each terminated by "\n" as difflib
// expects. A missing final newline is supplied.
func splitLines(s string) []string {
	if s == "" {
		return []string{}
	}

	lines := strings.SplitAfter(s, "\n")
	if last := len(lines) - 1; lines[last] == "" {
		lines = lines[:last]
	} else {
		lines[last] += "\n"
	}

	return lines
}
