package spackreqs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[project]
dependencies = ["numpy>=1.20", "H5PY==3.1", "scipy"]

[project.optional-dependencies]
mpi = ["mpi4py", "scipy"]
`

func TestGenerate_Defaults(t *testing.T) {
	r, err := Generate([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, []string{"numpy>=1.20", "scipy"}, r.Requirements)
	assert.Equal(t, "numpy>=1.20\nscipy\n", string(r.Text))
	require.Len(t, r.Dropped, 1)
	assert.Equal(t, Dropped{Spec: "H5PY==3.1", Source: "dependencies", Reason: "excluded"}, r.Dropped[0])
}

func TestGenerate_WithGroups(t *testing.T) {
	r, err := Generate([]byte(sample), WithGroups("mpi", "gpu"))
	require.NoError(t, err)

	assert.Equal(t, []string{"numpy>=1.20", "scipy", "mpi4py"}, r.Requirements)
	assert.Equal(t, []string{"gpu"}, r.MissingGroups)
}

func TestGenerate_WithExclusions(t *testing.T) {
	r, err := Generate([]byte(sample), WithExclusions("numpy"), WithExtraExclusions("scipy"))
	require.NoError(t, err)

	assert.Equal(t, []string{"H5PY==3.1"}, r.Requirements)
}

func TestGenerate_ParseError(t *testing.T) {
	_, err := Generate([]byte("[project\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
}

func TestGenerateFile_WriteFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "pyproject.toml")
	require.NoError(t, os.WriteFile(src, []byte(sample), 0o600))

	r, err := GenerateFile(src)
	require.NoError(t, err)

	dst := filepath.Join(dir, "out", "requirements.txt")
	require.NoError(t, r.WriteFile(dst))

	got, err := os.ReadFile(dst) //nolint:gosec // test
	require.NoError(t, err)
	assert.Equal(t, "numpy>=1.20\nscipy\n", string(got))
}

func TestGenerateFile_Missing(t *testing.T) {
	_, err := GenerateFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrParse)
}
