package io

import (
	"bytes"
	"io"
	"io/fs"
	"maps"
	"slices"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

// memFS is a CreateFS over an fstest.MapFS.
type memFS struct {
	fstest.MapFS
}

type memFile struct {
	bytes.Buffer
	fsys memFS
	name string
}

func (file *memFile) Close() error {
	file.fsys.MapFS[file.name] = &fstest.MapFile{Data: file.Bytes(), Mode: 0o644}
	return nil
}

func (fsys memFS) Create(name string) (io.WriteCloser, error) {
	return &memFile{fsys: fsys, name: name}, nil
}

func (fsys memFS) Remove(name string) error {
	if _, ok := fsys.MapFS[name]; !ok {
		return fs.ErrNotExist
	}
	delete(fsys.MapFS, name)
	return nil
}

func TestValidName(t *testing.T) {
	table := [...]struct {
		name string
		ok   bool
	}{
		{"data.txt", true},
		{"A_b-1.bin", true},
		{"_hidden", true},
		{"", false},
		{".profile", false},
		{"-x", false},
		{"dir/file", false},
		{"sp ace", false},
		{strings.Repeat("n", FILE_NAME_MAX), true},
		{strings.Repeat("n", FILE_NAME_MAX+1), false},
	}

	for _, entry := range table {
		assert.Equal(t, entry.ok, ValidName(entry.name), entry.name)
	}
}

func TestFileStore_Operations(t *testing.T) {
	assert := assert.New(t)

	store := NewFileStore()

	assert.NoError(store.Create("a.txt"))
	assert.ErrorIs(store.Create("a.txt"), ErrFileExists)
	assert.True(store.Exists("a.txt"))
	assert.Equal(0, store.Size("a.txt"))

	n, err := store.Write("a.txt", []byte("hello"))
	assert.NoError(err)
	assert.Equal(5, n)

	data, err := store.Read("a.txt", 3)
	assert.NoError(err)
	assert.Equal("hel", string(data))

	data, err = store.Read("a.txt", 100)
	assert.NoError(err)
	assert.Equal("hello", string(data))

	// Write creates.
	_, err = store.Write("b.txt", []byte("bee"))
	assert.NoError(err)

	assert.NoError(store.Copy("a.txt", "c.txt"))
	assert.ErrorIs(store.Copy("a.txt", "b.txt"), ErrFileExists)
	assert.ErrorIs(store.Copy("none", "d.txt"), ErrFileNotFound)

	assert.NoError(store.Move("c.txt", "d.txt"))
	assert.False(store.Exists("c.txt"))
	data, err = store.Read("d.txt", FILE_SIZE_MAX)
	assert.NoError(err)
	assert.Equal("hello", string(data))

	assert.NoError(store.Delete("b.txt"))
	assert.ErrorIs(store.Delete("b.txt"), ErrFileNotFound)
	assert.Equal(-1, store.Size("b.txt"))

	assert.Equal([]string{"a.txt", "d.txt"}, slices.Collect(store.Names()))
}

func TestFileStore_Errors(t *testing.T) {
	assert := assert.New(t)

	store := &FileStore{MaxSize: 4, MaxFiles: 2}

	err := store.Create("bad/name")
	assert.ErrorIs(err, ErrFileName)
	var fileErr *ErrFile
	assert.ErrorAs(err, &fileErr)
	assert.Equal("bad/name", fileErr.Name)

	_, err = store.Read("nothing", 10)
	assert.ErrorIs(err, ErrFileNotFound)

	_, err = store.Write("big", []byte("12345"))
	assert.ErrorIs(err, ErrFileTooLarge)

	assert.NoError(store.Create("one"))
	assert.NoError(store.Create("two"))
	assert.ErrorIs(store.Create("three"), ErrStoreFull)

	// Rewriting an existing file does not need a free slot.
	_, err = store.Write("two", []byte("1234"))
	assert.NoError(err)
}

func TestFileStore_WriteCopies(t *testing.T) {
	assert := assert.New(t)

	store := NewFileStore()
	buffer := []byte("abc")
	_, err := store.Write("f", buffer)
	assert.NoError(err)
	buffer[0] = 'X'

	data, err := store.Read("f", 3)
	assert.NoError(err)
	assert.Equal("abc", string(data))
}

func TestFileStore_Unmarshal(t *testing.T) {
	assert := assert.New(t)

	filesys := fstest.MapFS{
		"notes.txt":     &fstest.MapFile{Data: []byte("notes")},
		"prog.bin":      &fstest.MapFile{Data: []byte{1, 2, 3, 4}},
		".hidden":       &fstest.MapFile{Data: []byte("skip")},
		"sub/inner.txt": &fstest.MapFile{Data: []byte("skip")},
	}

	store := NewFileStore()
	_, err := store.Write("stale", nil)
	assert.NoError(err)

	assert.NoError(store.Unmarshal(filesys))
	assert.Equal([]string{"notes.txt", "prog.bin"}, slices.Collect(store.Names()))

	data, err := store.Read("prog.bin", 10)
	assert.NoError(err)
	assert.Equal([]byte{1, 2, 3, 4}, data)
}

func TestFileStore_Marshal(t *testing.T) {
	assert := assert.New(t)

	filesys := memFS{fstest.MapFS{
		"keep.txt": &fstest.MapFile{Data: []byte("keep")},
		"gone.txt": &fstest.MapFile{Data: []byte("gone")},
	}}

	store := NewFileStore()
	assert.NoError(store.Unmarshal(filesys))

	assert.NoError(store.Delete("gone.txt"))
	_, err := store.Write("new.txt", []byte("new"))
	assert.NoError(err)

	assert.NoError(store.Marshal(filesys))
	assert.Equal([]string{"keep.txt", "new.txt"}, slices.Sorted(maps.Keys(filesys.MapFS)))
	assert.Equal([]byte("new"), filesys.MapFS["new.txt"].Data)

	// Round trip through a fresh store.
	again := NewFileStore()
	assert.NoError(again.Unmarshal(filesys))
	data, err := again.Read("keep.txt", 100)
	assert.NoError(err)
	assert.Equal("keep", string(data))
}

func TestFileStore_Defines(t *testing.T) {
	assert := assert.New(t)

	store := &FileStore{MaxFiles: 8}
	defines := maps.Collect(store.Defines())
	assert.Equal(int64(8), defines["FILE_COUNT_MAX"])
	assert.Equal(int64(FILE_SIZE_MAX), defines["FILE_SIZE_MAX"])
	assert.Equal(int64(FILE_NAME_MAX), defines["FILE_NAME_MAX"])
}
