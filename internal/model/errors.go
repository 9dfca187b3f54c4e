package model

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotADirectory    = errors.New("not a directory")
	ErrIsADirectory     = errors.New("is a directory")
	ErrInvalidInput     = errors.New("invalid input")
	ErrAlreadyExists    = errors.New("already exists")
	ErrInvalidName      = errors.New("invalid name")
)

// Classify wraps a filesystem error with the matching sentinel so callers can
// branch with errors.Is. Errors that already carry a sentinel, and errors
// with no mapping, are returned unchanged.
func Classify(err error, path string) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{
		ErrNotFound, ErrPermissionDenied, ErrNotADirectory, ErrIsADirectory,
		ErrInvalidInput, ErrAlreadyExists, ErrInvalidName,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s", ErrPermissionDenied, path)
	case errors.Is(err, fs.ErrExist):
		return fmt.Errorf("%w: %s", ErrAlreadyExists, path)
	case errors.Is(err, syscall.ENOTDIR):
		return fmt.Errorf("%w: %s", ErrNotADirectory, path)
	}
	return err
}
