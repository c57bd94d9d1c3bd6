// Package store persists resume documents locally under generated identifiers.
package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no record has the requested identifier.
var ErrNotFound = errors.New("resume not found")

// ImportError reports an import file that is not a usable resume document.
type ImportError struct {
	File    string
	Message string
	Cause   error
}

func (e *ImportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("import %s: %s: %v", e.File, e.Message, e.Cause)
	}
	return fmt.Sprintf("import %s: %s", e.File, e.Message)
}

func (e *ImportError) Unwrap() error {
	return e.Cause
}

// StorageError reports a failure reading or writing the backing storage.
type StorageError struct {
	Op    string
	Cause error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s: %v", e.Op, e.Cause)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}
