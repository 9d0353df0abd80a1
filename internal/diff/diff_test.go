package diff

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_Identical(t *testing.T) {
	doc := []byte("scipy\nmpi4py\n")

	r, err := Compute(doc, doc, DefaultOptions())
	require.NoError(t, err)

	assert.False(t, r.HasDifferences())
	assert.Empty(t, r.Unified)
	assert.Equal(t, "up to date", r.Summary())
}

func TestCompute_BothEmpty(t *testing.T) {
	r, err := Compute(nil, []byte{}, DefaultOptions())
	require.NoError(t, err)
	assert.False(t, r.HasDifferences())
}

func TestCompute_AddedRemovedChanged(t *testing.T) {
	oldDoc := []byte("scipy\nnumpy>=1.20\nmatplotlib\n")
	newDoc := []byte("scipy\nnumpy>=1.26\nmpi4py\n")

	r, err := Compute(oldDoc, newDoc, DefaultOptions())
	require.NoError(t, err)

	assert.True(t, r.HasDifferences())
	assert.Equal(t, []string{"mpi4py"}, r.Added)
	assert.Equal(t, []string{"matplotlib"}, r.Removed)
	assert.Equal(t, []string{"numpy>=1.26"}, r.Changed)
	assert.Equal(t, "+1 added, -1 removed, ~1 changed", r.Summary())

	assert.Contains(t, r.Unified, "--- existing")
	assert.Contains(t, r.Unified, "+++ generated")
	assert.Contains(t, r.Unified, "-matplotlib")
	assert.Contains(t, r.Unified, "+mpi4py")
}

func TestCompute_FromEmpty(t *testing.T) {
	r, err := Compute(nil, []byte("scipy\n"), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"scipy"}, r.Added)
	assert.Contains(t, r.Unified, "+scipy")
}

func TestCompute_Reordered(t *testing.T) {
	r, err := Compute([]byte("a\nb\n"), []byte("b\na\n"), DefaultOptions())
	require.NoError(t, err)

	assert.True(t, r.HasDifferences())
	assert.Equal(t, "reordered or reformatted", r.Summary())
}

func TestCompute_TrailingNewlineOnly(t *testing.T) {
	r, err := Compute([]byte("scipy"), []byte("scipy\n"), DefaultOptions())
	require.NoError(t, err)

	assert.True(t, r.HasDifferences())
	assert.Empty(t, r.Unified)
	assert.Equal(t, "trailing newline differs", r.Summary())

	var buf bytes.Buffer
	Write(&buf, r, false)
	assert.Contains(t, buf.String(), "trailing newline")
}

func TestCompute_CustomLabels(t *testing.T) {
	opts := DefaultOptions()
	opts.OldLabel = "requirements.txt"
	opts.NewLabel = "pyproject.toml"

	r, err := Compute([]byte("a\n"), []byte("b\n"), opts)
	require.NoError(t, err)

	assert.Contains(t, r.Unified, "--- requirements.txt")
	assert.Contains(t, r.Unified, "+++ pyproject.toml")
}

func TestWrite_NoDifferences(t *testing.T) {
	var buf bytes.Buffer
	Write(&buf, &Result{Identical: true}, true)

	assert.Equal(t, "No differences found.\n", buf.String())
}

func TestWrite_Color(t *testing.T) {
	r, err := Compute([]byte("a\n"), []byte("b\n"), DefaultOptions())
	require.NoError(t, err)

	var plain, colored bytes.Buffer
	Write(&plain, r, false)
	Write(&colored, r, true)

	assert.NotContains(t, plain.String(), "\033[")
	assert.Contains(t, colored.String(), "\033[31m-a")
	assert.Contains(t, colored.String(), "\033[32m+b")
}

func TestSplitLines(t *testing.T) {
	assert.Empty(t, splitLines(""))
	assert.Equal(t, []string{"a\n", "b\n"}, splitLines("a\nb\n"))
	assert.Equal(t, []string{"a\n", "b\n"}, splitLines("a\nb"))
}
