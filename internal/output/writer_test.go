package output

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdoutWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := NewStdoutWriter(&buf)

	data := []byte("numpy>=1.20\nscipy\n")
	require.NoError(t, w.Write(data))
	assert.Equal(t, string(data), buf.String())
}

func TestStdoutWriter_NilDefault(t *testing.T) {
	// When nil is passed, it defaults to os.Stdout — just verify it doesn't panic.
	w := NewStdoutWriter(nil)
	assert.NotNil(t, w)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestStdoutWriter_Error(t *testing.T) {
	err := NewStdoutWriter(failingWriter{}).Write([]byte("x\n"))
	require.Error(t, err)

	var werr *WriteError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, "<stdout>", werr.Path)
}

func TestFileWriter_Write(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "requirements.txt")

	w := NewFileWriter(path)
	data := []byte("numpy>=1.20\nscipy\n")
	require.NoError(t, w.Write(data))

	got, err := os.ReadFile(path) //nolint:gosec // test
	require.NoError(t, err)
	assert.Equal(t, string(data), string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestFileWriter_CreatesParentDirs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deep", "nested", "requirements.txt")

	w := NewFileWriter(path)
	require.NoError(t, w.Write([]byte("scipy\n")))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestFileWriter_CustomPermissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.txt")

	w := NewFileWriter(path, WithPermissions(0o600))
	require.NoError(t, w.Write([]byte("scipy\n")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileWriter_Overwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o600))

	require.NoError(t, NewFileWriter(path).Write([]byte("new\n")))

	got, err := os.ReadFile(path) //nolint:gosec // test
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must not be left behind")
}

func TestFileWriter_EmptyContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requirements.txt")

	require.NoError(t, NewFileWriter(path).Write(Format(nil)))

	got, err := os.ReadFile(path) //nolint:gosec // test
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileWriter_ParentIsFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	w := NewFileWriter(filepath.Join(blocker, "requirements.txt"))
	err := w.Write([]byte("scipy\n"))
	require.Error(t, err)

	var werr *WriteError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, w.Path(), werr.Path)
}

func TestFileWriter_Path(t *testing.T) {
	w := NewFileWriter("/tmp/requirements.txt")
	assert.Equal(t, "/tmp/requirements.txt", w.Path())
}
