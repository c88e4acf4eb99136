package store

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// InitError reports that the storage location is unusable at startup:
// the file cannot be created or opened, or the schema cannot be applied.
type InitError struct {
	Path string
	Err  error
}

func newInitError(path string, err error) *InitError {
	return &InitError{Path: path, Err: err}
}

// Error implements the error interface.
func (e *InitError) Error() string {
	return fmt.Sprintf("init store %q: %v", e.Path, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// WriteError reports a failed Append.
//
// Transient failures are lock contention (SQLITE_BUSY, SQLITE_LOCKED) that
// may succeed if retried. Everything else (I/O, disk full, corruption,
// constraint violations) is structural.
type WriteError struct {
	Err       error
	transient bool
}

// NewWriteError wraps err and classifies it as transient or structural.
func NewWriteError(err error) *WriteError {
	return &WriteError{Err: err, transient: isTransientSQLite(err)}
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	kind := "structural"
	if e.transient {
		kind = "transient"
	}
	return fmt.Sprintf("write entry (%s): %v", kind, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Transient reports whether retrying the write may succeed.
func (e *WriteError) Transient() bool {
	return e.transient
}

// ReadError reports a failed read. It never affects the writer.
type ReadError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *ReadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// IsInitError returns true if err is or wraps an *InitError.
func IsInitError(err error) bool {
	var ie *InitError
	return errors.As(err, &ie)
}

// IsWriteError returns true if err is or wraps a *WriteError.
func IsWriteError(err error) bool {
	var we *WriteError
	return errors.As(err, &we)
}

// IsReadError returns true if err is or wraps a *ReadError.
func IsReadError(err error) bool {
	var re *ReadError
	return errors.As(err, &re)
}

// IsTransient returns true if err wraps a transient *WriteError.
func IsTransient(err error) bool {
	var we *WriteError
	if errors.As(err, &we) {
		return we.Transient()
	}
	return false
}

// isTransientSQLite classifies driver errors caused by lock contention.
func isTransientSQLite(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.Code == sqlite3.ErrBusy || se.Code == sqlite3.ErrLocked
	}
	return false
}
