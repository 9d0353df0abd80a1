package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestGroups_Table(t *testing.T) {
	manifest := writeFile(t, "pyproject.toml", stackManifest)

	stdout, _, err := executeCommand("groups", "--pyproject", manifest)
	require.NoError(t, err)

	assert.Contains(t, stdout, "GROUP")
	assert.Contains(t, stdout, "(base)")
	assert.Regexp(t, `dev\s+2\s+pytest, setuptools>=69`, stdout)
	assert.Regexp(t, `mpi\s+3\s+mpi4py, scipy, h5py`, stdout)
	assert.Regexp(t, `viz\s+2\s+matplotlib, pyvista`, stdout)
}

func TestGroups_TablePreviewTruncates(t *testing.T) {
	manifest := writeFile(t, "pyproject.toml", `
[project]
dependencies = ["a", "b", "c", "d", "e", "f"]
`)

	stdout, _, err := executeCommand("groups", "--pyproject", manifest)
	require.NoError(t, err)
	assert.Contains(t, stdout, "a, b, c, d, … (+2)")
}

func TestGroups_JSON(t *testing.T) {
	manifest := writeFile(t, "pyproject.toml", stackManifest)

	stdout, _, err := executeCommand("groups", "--pyproject", manifest, "--format", "json")
	require.NoError(t, err)

	var report groupsReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))

	assert.Equal(t, "icesee", report.Project)
	assert.Equal(t, []string{"numpy>=1.20", "H5PY==3.1", "scipy"}, report.Dependencies)
	require.Len(t, report.Groups, 3)
	assert.Equal(t, "dev", report.Groups[0].Name)
	assert.Equal(t, "mpi", report.Groups[1].Name)
	assert.Equal(t, []string{"mpi4py", "scipy", "h5py"}, report.Groups[1].Dependencies)
}

func TestGroups_YAML(t *testing.T) {
	manifest := writeFile(t, "pyproject.toml", stackManifest)

	stdout, _, err := executeCommand("groups", "--pyproject", manifest, "--format", "yaml")
	require.NoError(t, err)

	var report groupsReport
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &report))

	assert.Equal(t, "icesee", report.Project)
	require.Len(t, report.Groups, 3)
	assert.Equal(t, "viz", report.Groups[2].Name)
}

func TestGroups_EmptyManifestJSON(t *testing.T) {
	manifest := writeFile(t, "pyproject.toml", "[project]\nname = \"bare\"\n")

	stdout, _, err := executeCommand("groups", "--pyproject", manifest, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"dependencies": []`)
	assert.Contains(t, stdout, `"groups": []`)
}

func TestGroups_InvalidFormat(t *testing.T) {
	manifest := writeFile(t, "pyproject.toml", stackManifest)

	_, _, err := executeCommand("groups", "--pyproject", manifest, "--format", "xml")
	requireExitCode(t, err, ExitCodeUsage)
}

func TestGroups_ParseError(t *testing.T) {
	manifest := writeFile(t, "pyproject.toml", "[project\n")

	_, _, err := executeCommand("groups", "--pyproject", manifest)
	requireExitCode(t, err, ExitCodeParseError)
}
