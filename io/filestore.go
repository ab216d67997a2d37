package io

import (
	"errors"
	"io"
	"io/fs"
	"iter"
	"log"
	"maps"
	"regexp"
	"slices"
)

const (
	// FILE_NAME_MAX is the longest file name, in bytes.
	FILE_NAME_MAX = 63
	// FILE_SIZE_MAX is the default largest file, in bytes.
	FILE_SIZE_MAX = 64 * 1024
	// FILE_COUNT_MAX is the default number of files a store holds.
	FILE_COUNT_MAX = 128
)

var validName = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.\-]*$`)

// ValidName is true for names the file store accepts: a flat name of at
// most FILE_NAME_MAX letters, digits, '_', '.' or '-', not starting with '.'
// or '-'.
func ValidName(name string) bool {
	return len(name) <= FILE_NAME_MAX && validName.MatchString(name)
}

// FileStore is a flat in-memory file system for running programs. Files
// are persisted with Unmarshal and Marshal.
type FileStore struct {
	Verbose  bool
	MaxSize  int // Largest file in bytes, FILE_SIZE_MAX if zero.
	MaxFiles int // File limit, FILE_COUNT_MAX if zero.

	files  map[string][]byte
	loaded map[string]bool
}

// NewFileStore returns an empty file store with the default limits.
func NewFileStore() *FileStore {
	return &FileStore{}
}

func (store *FileStore) maxSize() int {
	if store.MaxSize <= 0 {
		return FILE_SIZE_MAX
	}
	return store.MaxSize
}

func (store *FileStore) maxFiles() int {
	if store.MaxFiles <= 0 {
		return FILE_COUNT_MAX
	}
	return store.MaxFiles
}

// Defines returns the file store limits as assembler equates.
func (store *FileStore) Defines() iter.Seq2[string, int64] {
	return maps.All(map[string]int64{
		"FILE_NAME_MAX":  FILE_NAME_MAX,
		"FILE_SIZE_MAX":  int64(store.maxSize()),
		"FILE_COUNT_MAX": int64(store.maxFiles()),
	})
}

func (store *FileStore) check(name string) (err error) {
	if !ValidName(name) {
		err = fileError(name, ErrFileName)
	}
	return
}

func (store *FileStore) add(name string, data []byte) (err error) {
	if len(data) > store.maxSize() {
		err = fileError(name, ErrFileTooLarge)
		return
	}
	if store.files == nil {
		store.files = make(map[string][]byte)
	}
	_, ok := store.files[name]
	if !ok && len(store.files) >= store.maxFiles() {
		err = fileError(name, ErrStoreFull)
		return
	}
	store.files[name] = data
	return
}

// Create makes a new empty file. It fails if the file exists.
func (store *FileStore) Create(name string) (err error) {
	err = store.check(name)
	if err != nil {
		return
	}
	if store.Exists(name) {
		err = fileError(name, ErrFileExists)
		return
	}
	err = store.add(name, []byte{})
	if err != nil {
		return
	}
	if store.Verbose {
		log.Printf("io: create %v", name)
	}
	return
}

// Write replaces the contents of a file, creating it if needed.
func (store *FileStore) Write(name string, data []byte) (n int, err error) {
	err = store.check(name)
	if err != nil {
		return
	}
	err = store.add(name, slices.Clone(data))
	if err != nil {
		return
	}
	n = len(data)
	if store.Verbose {
		log.Printf("io: write %v, %d bytes", name, n)
	}
	return
}

// Read returns at most limit bytes from the start of a file.
func (store *FileStore) Read(name string, limit int) (data []byte, err error) {
	err = store.check(name)
	if err != nil {
		return
	}
	content, ok := store.files[name]
	if !ok {
		err = fileError(name, ErrFileNotFound)
		return
	}
	limit = min(max(limit, 0), len(content))
	data = slices.Clone(content[:limit])
	return
}

// Delete removes a file.
func (store *FileStore) Delete(name string) (err error) {
	err = store.check(name)
	if err != nil {
		return
	}
	if !store.Exists(name) {
		err = fileError(name, ErrFileNotFound)
		return
	}
	delete(store.files, name)
	if store.Verbose {
		log.Printf("io: delete %v", name)
	}
	return
}

// Copy duplicates a file. The destination must not exist.
func (store *FileStore) Copy(from, to string) (err error) {
	err = store.check(to)
	if err != nil {
		return
	}
	data, err := store.Read(from, store.maxSize())
	if err != nil {
		return
	}
	if store.Exists(to) {
		err = fileError(to, ErrFileExists)
		return
	}
	err = store.add(to, data)
	if err != nil {
		return
	}
	if store.Verbose {
		log.Printf("io: copy %v to %v", from, to)
	}
	return
}

// Move renames a file. The destination must not exist.
func (store *FileStore) Move(from, to string) (err error) {
	if from == to && store.Exists(from) {
		return
	}
	err = store.Copy(from, to)
	if err != nil {
		return
	}
	delete(store.files, from)
	return
}

// Exists is true if the file is present.
func (store *FileStore) Exists(name string) bool {
	_, ok := store.files[name]
	return ok
}

// Size returns the length of a file, or -1 if it does not exist.
func (store *FileStore) Size(name string) int {
	content, ok := store.files[name]
	if !ok {
		return -1
	}
	return len(content)
}

// Names iterates the file names in sorted order.
func (store *FileStore) Names() iter.Seq[string] {
	return slices.Values(slices.Sorted(maps.Keys(store.files)))
}

// Unmarshal loads every regular file with a valid name from the top level
// of a file system, replacing the store contents.
func (store *FileStore) Unmarshal(filesys fs.FS) (err error) {
	store.files = make(map[string][]byte)
	store.loaded = make(map[string]bool)

	return fs.WalkDir(filesys, ".", func(path string, d fs.DirEntry, err_in error) (err error) {
		if err_in != nil {
			err = err_in
			return
		}
		if d.IsDir() {
			if path != "." {
				err = fs.SkipDir
			}
			return
		}
		if !d.Type().IsRegular() || !ValidName(path) {
			return
		}
		data, err := fs.ReadFile(filesys, path)
		if err != nil {
			return
		}
		err = store.add(path, data)
		if err != nil {
			return
		}
		store.loaded[path] = true
		if store.Verbose {
			log.Printf("io: load %v, %d bytes", path, len(data))
		}
		return
	})
}

// Marshal writes every file to a file system, and removes the files that
// Unmarshal loaded but which have since been deleted.
func (store *FileStore) Marshal(filesys CreateFS) (err error) {
	for name := range store.Names() {
		var file io.WriteCloser
		file, err = filesys.Create(name)
		if err != nil {
			return
		}
		_, err = file.Write(store.files[name])
		err = errors.Join(err, file.Close())
		if err != nil {
			return
		}
	}

	for name := range store.loaded {
		if store.Exists(name) {
			continue
		}
		err = filesys.Remove(name)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return
		}
		err = nil
	}

	store.loaded = make(map[string]bool)
	for name := range store.files {
		store.loaded[name] = true
	}

	return
}
