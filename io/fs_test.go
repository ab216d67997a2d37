package io

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirFS(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "store")
	filesys, err := DirFS(path)
	assert.NoError(err)

	file, err := filesys.Create("hello.txt")
	assert.NoError(err)
	_, err = file.Write([]byte("hi"))
	assert.NoError(err)
	assert.NoError(file.Close())

	data, err := fs.ReadFile(filesys, "hello.txt")
	assert.NoError(err)
	assert.Equal("hi", string(data))

	data, err = os.ReadFile(filepath.Join(path, "hello.txt"))
	assert.NoError(err)
	assert.Equal("hi", string(data))

	assert.NoError(filesys.Remove("hello.txt"))
	_, err = fs.Stat(filesys, "hello.txt")
	assert.ErrorIs(err, fs.ErrNotExist)

	_, err = filesys.Create("../escape")
	assert.ErrorIs(err, fs.ErrInvalid)
}

func TestDirFS_FileStore(t *testing.T) {
	assert := assert.New(t)

	filesys, err := DirFS(t.TempDir())
	assert.NoError(err)

	store := NewFileStore()
	_, err = store.Write("saved.bin", []byte{0xde, 0xad})
	assert.NoError(err)
	assert.NoError(store.Marshal(filesys))

	loaded := NewFileStore()
	assert.NoError(loaded.Unmarshal(filesys))
	data, err := loaded.Read("saved.bin", 2)
	assert.NoError(err)
	assert.Equal([]byte{0xde, 0xad}, data)
}
