package io

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// CreateFS defines a file system interface that supports creating and
// removing files. It extends fs.FS with the write capabilities needed to
// marshal a file store.
type CreateFS interface {
	fs.FS
	// Create creates or truncates a file for writing.
	Create(name string) (file io.WriteCloser, err error)
	// Remove deletes a file.
	Remove(name string) (err error)
}

type dirFS string

// DirFS returns an operating system directory as a CreateFS. The directory
// is created if it does not exist.
func DirFS(path string) (filesys CreateFS, err error) {
	err = os.MkdirAll(path, 0o755)
	if err != nil {
		return
	}
	filesys = dirFS(path)
	return
}

func (dir dirFS) Open(name string) (fs.File, error) {
	return os.DirFS(string(dir)).Open(name)
}

func (dir dirFS) path(name string) (path string, err error) {
	if !fs.ValidPath(name) {
		err = &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
		return
	}
	path = filepath.Join(string(dir), filepath.FromSlash(name))
	return
}

func (dir dirFS) Create(name string) (file io.WriteCloser, err error) {
	path, err := dir.path(name)
	if err != nil {
		return
	}
	handle, err := os.Create(path)
	if err != nil {
		return
	}
	file = handle
	return
}

func (dir dirFS) Remove(name string) (err error) {
	path, err := dir.path(name)
	if err != nil {
		return
	}
	return os.Remove(path)
}
