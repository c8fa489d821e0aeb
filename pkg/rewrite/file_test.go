// pkg/rewrite/file_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: testutil.RecordingFS
// PURPOSE: Test single-file rewrites and their failure classification

package rewrite_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/subpack/pkg/errors"
	"github.com/arthur-debert/subpack/pkg/rewrite"
	"github.com/arthur-debert/subpack/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	basePath        = "/base/path"
	testFile        = "test.json"
	testPath        = "/base/path/test.json"
	content         = `{"test": true}`
	modifiedContent = `{"test": false}`
)

func TestModifyFile_Success(t *testing.T) {
	fsys := testutil.NewRecordingFS()
	testutil.MemFile(t, fsys.FS, testPath, content)

	var gotContent, gotBase string
	transform := func(c, b string) string {
		gotContent, gotBase = c, b
		return modifiedContent
	}

	err := rewrite.ModifyFile(fsys, testFile, transform, basePath)
	require.NoError(t, err)

	assert.Equal(t, content, gotContent)
	assert.Equal(t, basePath, gotBase)
	assert.Equal(t, []string{testPath}, fsys.Reads())
	assert.Len(t, fsys.Writes(), 1)
	assert.Equal(t, []string{testPath}, fsys.Renames())

	data, err := fsys.FS.ReadFile(testPath)
	require.NoError(t, err)
	assert.Equal(t, modifiedContent, string(data))
}

func TestModifyFile_ReadFailure(t *testing.T) {
	fsys := testutil.NewRecordingFS()
	testutil.MemFile(t, fsys.FS, testPath, content)
	readErr := stderrors.New("read failed")
	fsys.FailRead(testPath, readErr)

	called := false
	err := rewrite.ModifyFile(fsys, testFile, func(c, _ string) string {
		called = true
		return c
	}, basePath)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRewriteFailed))
	assert.ErrorIs(t, err, readErr)
	assert.Equal(t, testPath, errors.GetErrorDetails(err)[errors.DetailPath])
	assert.False(t, called, "transform must not run when the read fails")
	assert.Empty(t, fsys.Writes())
}

func TestModifyFile_MissingFile(t *testing.T) {
	fsys := testutil.NewRecordingFS()

	err := rewrite.ModifyFile(fsys, "missing.json", rewrite.Replace("a", "b"), basePath)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRewriteFailed))
	assert.False(t, fsys.Touched())
}

func TestModifyFile_WriteFailure(t *testing.T) {
	fsys := testutil.NewRecordingFS()
	testutil.MemFile(t, fsys.FS, testPath, content)
	fsys.FailWrite(testPath, stderrors.New("write failed"))

	called := false
	err := rewrite.ModifyFile(fsys, testFile, func(string, string) string {
		called = true
		return modifiedContent
	}, basePath)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRewriteFailed))
	assert.True(t, called)

	data, readErr := fsys.FS.ReadFile(testPath)
	require.NoError(t, readErr)
	assert.Equal(t, content, string(data), "original content must survive a failed write")

	entries, dirErr := fsys.FS.ReadDir(basePath)
	require.NoError(t, dirErr)
	assert.Len(t, entries, 1, "temp file must be cleaned up")
}

func TestModifyFile_NilTransform(t *testing.T) {
	fsys := testutil.NewRecordingFS()
	testutil.MemFile(t, fsys.FS, testPath, content)

	err := rewrite.ModifyFile(fsys, testFile, nil, basePath)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRewriteFailed))
	assert.False(t, fsys.Touched())
}

func TestModifyFile_DryRun(t *testing.T) {
	fsys := testutil.NewRecordingFS()
	testutil.MemFile(t, fsys.FS, testPath, content)

	called := false
	err := rewrite.ModifyFile(fsys, testFile, func(string, string) string {
		called = true
		return modifiedContent
	}, basePath, rewrite.WithDryRun(true))

	require.NoError(t, err)
	assert.True(t, called)
	assert.Empty(t, fsys.Writes())

	data, _ := fsys.FS.ReadFile(testPath)
	assert.Equal(t, content, string(data))
}

func TestModifyFile_PreservesMode(t *testing.T) {
	fsys := testutil.NewRecordingFS()
	require.NoError(t, fsys.FS.MkdirAll(basePath, 0755))
	require.NoError(t, fsys.FS.WriteFile(testPath, []byte(content), 0600))

	require.NoError(t, rewrite.ModifyFile(fsys, testFile, rewrite.Replace("true", "false"), basePath))

	info, err := fsys.FS.Stat(testPath)
	require.NoError(t, err)
	assert.Equal(t, "-rw-------", info.Mode().Perm().String())
}

func TestModifyFile_TransformPanics(t *testing.T) {
	fsys := testutil.NewRecordingFS()
	testutil.MemFile(t, fsys.FS, testPath, content)

	var m map[string]int
	err := rewrite.ModifyFile(fsys, testFile, func(c, _ string) string {
		m[c] = 1
		return c
	}, basePath)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRewriteFailed))
	details := errors.GetErrorDetails(err)
	assert.Equal(t, testPath, details[errors.DetailPath])
	assert.NotNil(t, details[rewrite.DetailPanic])
	assert.Empty(t, fsys.Writes())

	data, readErr := fsys.FS.ReadFile(testPath)
	require.NoError(t, readErr)
	assert.Equal(t, content, string(data))
}
