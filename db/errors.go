package db

import (
	"errors"
	"fmt"
)

// ErrTreeLimit is returned (wrapped in a StorageOpenError) when opening
// a new tree would exceed the engine's configured tree count.
var ErrTreeLimit = errors.New("tree limit reached")

// StorageOpenError reports that the storage environment or one of its
// trees could not be created or opened.
type StorageOpenError struct {
	Path string
	Err  error
}

func (e *StorageOpenError) Error() string {
	return fmt.Sprintf("open storage %q: %v", e.Path, e.Err)
}

func (e *StorageOpenError) Unwrap() error {
	return e.Err
}

// TransactionError reports that a transaction could not begin or commit.
type TransactionError struct {
	Op  string
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("%s transaction: %v", e.Op, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

// StorageIOError reports a read, write or sync failure at the store level.
type StorageIOError struct {
	Op  string
	Err error
}

func (e *StorageIOError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageIOError) Unwrap() error {
	return e.Err
}
