package models

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTitle  = errors.New("title must not be empty")
	ErrDuplicateID = errors.New("task id already exists")
	ErrNotFound    = errors.New("task not found")
)

// StorageError wraps a failure in a storage backend (postgres, redis) so
// callers can distinguish it from validation and not-found conditions.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
