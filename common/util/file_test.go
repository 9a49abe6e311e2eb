package util

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func TestDoesFileExist(t *testing.T) {
	a := assert.New(t)

	a.True(DoesFileExist("file_test.go"))
	a.True(DoesFileExist("../util"))
	a.False(DoesFileExist("foobarfile"))
}

func TestMakeDirectoriesIfNotExist(t *testing.T) {
	a := assert.New(t)
	dir := t.TempDir()

	newDir1 := filepath.Join(dir, "test1")
	newDir2 := filepath.Join(newDir1, "test2")

	a.Nil(MakeDirectoriesIfNotExist(dir, newDir2))
	a.True(DoesFileExist(newDir1))
	a.True(DoesFileExist(newDir2))

	a.Nil(MakeDirectoriesIfNotExist(dir, newDir2))
}

func TestMakeDirectoriesIfNotExist_MissingParent(t *testing.T) {
	a := assert.New(t)

	a.NotNil(MakeDirectoriesIfNotExist(filepath.Join(t.TempDir(), "missing"), "x"))
}

func TestMoveFile(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)
	dir := t.TempDir()

	src := filepath.Join(dir, "file1")
	dst := filepath.Join(dir, "trash", "sub", "file1")
	r.Nil(os.WriteFile(src, []byte("Test string"), 0o644))

	r.Nil(MoveFile(src, dst))

	a.False(DoesFileExist(src))
	content, err := os.ReadFile(dst)
	r.Nil(err)
	a.Equal("Test string", string(content))
}

func TestMoveFile_SourceMissing(t *testing.T) {
	a := assert.New(t)
	dir := t.TempDir()

	a.Nil(MoveFile(filepath.Join(dir, "missing"), filepath.Join(dir, "dst")))
	a.False(DoesFileExist(filepath.Join(dir, "dst")))
}

func TestRemoveFile(t *testing.T) {
	a := assert.New(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "file")
	a.Nil(os.WriteFile(path, []byte("x"), 0o644))

	a.Nil(RemoveFile(path))
	a.False(DoesFileExist(path))
	a.Nil(RemoveFile(path))
}
