package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fsys := NewOS()
	require.NotNil(t, fsys)

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "app.json")
	testContent := []byte(`{"debug":true}`)

	require.NoError(t, fsys.WriteFile(testFile, testContent, 0644))

	info, err := fsys.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "app.json", info.Name())
	assert.Equal(t, int64(len(testContent)), info.Size())

	content, err := fsys.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, testContent, content)

	require.NoError(t, fsys.MkdirAll(filepath.Join(tmpDir, "pages", "index"), 0755))

	entries, err := fsys.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	renamed := filepath.Join(tmpDir, "project.json")
	require.NoError(t, fsys.Rename(testFile, renamed))
	_, err = fsys.Stat(testFile)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, fsys.Remove(renamed))
	_, err = fsys.Stat(renamed)
	assert.True(t, os.IsNotExist(err))
}

func TestAferoReadFileOnDirectory(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, fsys.MkdirAll("/out/pages", 0755))

	_, err := fsys.ReadFile("/out/pages")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrInvalid))
}

func TestWriteFileAtomic(t *testing.T) {
	t.Run("replaces existing content", func(t *testing.T) {
		fsys := NewMemory()
		require.NoError(t, fsys.MkdirAll("/out", 0755))
		require.NoError(t, fsys.WriteFile("/out/app.json", []byte("old"), 0644))

		require.NoError(t, WriteFileAtomic(fsys, "/out/app.json", []byte("new"), 0644))

		content, err := fsys.ReadFile("/out/app.json")
		require.NoError(t, err)
		assert.Equal(t, "new", string(content))

		entries, err := fsys.ReadDir("/out")
		require.NoError(t, err)
		require.Len(t, entries, 1, "temp file must not be left behind")
		assert.Equal(t, "app.json", entries[0].Name())
	})

	t.Run("works on the OS filesystem", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "app.json")
		require.NoError(t, os.WriteFile(target, []byte("old"), 0600))

		require.NoError(t, WriteFileAtomic(NewOS(), target, []byte("new"), 0600))

		content, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "new", string(content))
	})

	t.Run("failed write leaves target intact", func(t *testing.T) {
		base := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(base, "/out/app.json", []byte("old"), 0644))
		fsys := NewAferoFS(afero.NewReadOnlyFs(base))

		err := WriteFileAtomic(fsys, "/out/app.json", []byte("new"), 0644)
		require.Error(t, err)

		content, err := afero.ReadFile(base, "/out/app.json")
		require.NoError(t, err)
		assert.Equal(t, "old", string(content))

		entries, err := afero.ReadDir(base, "/out")
		require.NoError(t, err)
		for _, e := range entries {
			assert.False(t, strings.HasSuffix(e.Name(), ".tmp"))
		}
	})
}
