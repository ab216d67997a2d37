package io

import (
	"errors"

	"github.com/u6170252806-cmd/EmberOS-sub001/translate"
)

var f = translate.From

var (
	// File store errors
	ErrFileName     = errors.New(f("invalid file name"))
	ErrFileExists   = errors.New(f("file exists"))
	ErrFileNotFound = errors.New(f("file not found"))
	ErrFileTooLarge = errors.New(f("file too large"))
	ErrStoreFull    = errors.New(f("file store full"))
)

// ErrFile reports a failed operation on a named file.
type ErrFile struct {
	Name string
	Err  error
}

func (err *ErrFile) Error() string {
	return f("%v: %v", err.Name, err.Err)
}

func (err *ErrFile) Unwrap() error {
	return err.Err
}

func fileError(name string, err error) error {
	return &ErrFile{Name: name, Err: err}
}
