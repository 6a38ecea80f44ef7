package numfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")

	buf, err := Read(path)
	require.NoError(t, err)
	assert.Empty(t, buf)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.Size())
}

func TestRead_ReturnsContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("3\n1\n2\n"), 0644))

	buf, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "3\n1\n2\n", buf)
}

func TestRead_OpenFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "input.txt")

	_, err := Read(path)
	require.Error(t, err)

	var fileErr *FileError
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, OpOpen, fileErr.Op)
	assert.Equal(t, path, fileErr.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRead_DirectoryFailsAtOpen(t *testing.T) {
	dir := t.TempDir()

	_, err := Read(dir)
	require.Error(t, err)

	var fileErr *FileError
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, OpOpen, fileErr.Op)
}

func TestAppend_RequiresExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.txt")

	err := Append(path, "1\n")
	require.Error(t, err)

	var fileErr *FileError
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, OpOpen, fileErr.Op)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "Append must not create the file")
}

func TestAppend_NeverTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("5\n"), 0644))

	require.NoError(t, Append(path, "4\n"))
	require.NoError(t, Append(path, "3\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "5\n4\n3\n", string(data))
}

func TestLoad_SeedsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")

	buf, seeded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, seeded)
	assert.Equal(t, DefaultSeed, buf)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultSeed, string(data))
}

func TestLoad_SecondRunDoesNotReseed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")

	_, seeded, err := Load(path)
	require.NoError(t, err)
	require.True(t, seeded)

	buf, seeded, err := Load(path)
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.Equal(t, DefaultSeed, buf)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultSeed, string(data), "seed must be written exactly once")
}

func TestLoad_WhitespaceIsNotEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0644))

	buf, seeded, err := Load(path)
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.Equal(t, "\n", buf)
}
