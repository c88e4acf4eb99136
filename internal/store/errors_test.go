package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func TestWriteError_ClassifiesLockContention(t *testing.T) {
	busy := NewWriteError(sqlite3.Error{Code: sqlite3.ErrBusy})
	assert.True(t, busy.Transient())

	locked := NewWriteError(fmt.Errorf("insert: %w", sqlite3.Error{Code: sqlite3.ErrLocked}))
	assert.True(t, locked.Transient())

	full := NewWriteError(sqlite3.Error{Code: sqlite3.ErrFull})
	assert.False(t, full.Transient())

	plain := NewWriteError(errors.New("boom"))
	assert.False(t, plain.Transient())
}

func TestWriteError_Message(t *testing.T) {
	err := NewWriteError(errors.New("boom"))
	assert.Equal(t, "write entry (structural): boom", err.Error())

	busy := NewWriteError(sqlite3.Error{Code: sqlite3.ErrBusy})
	assert.Contains(t, busy.Error(), "(transient)")
}

func TestErrorHelpers_SeeThroughWrapping(t *testing.T) {
	base := NewWriteError(sqlite3.Error{Code: sqlite3.ErrBusy})
	wrapped := fmt.Errorf("monitor: %w", base)

	assert.True(t, IsWriteError(wrapped))
	assert.True(t, IsTransient(wrapped))
	assert.False(t, IsReadError(wrapped))
	assert.False(t, IsInitError(wrapped))

	assert.True(t, IsReadError(fmt.Errorf("x: %w", &ReadError{Op: "list", Err: errors.New("io")})))
	assert.True(t, IsInitError(fmt.Errorf("x: %w", newInitError("p", errors.New("io")))))
	assert.False(t, IsTransient(errors.New("plain")))
}

func TestInitError_Unwrap(t *testing.T) {
	inner := errors.New("disk gone")
	err := newInitError("clipboard.db", inner)

	assert.ErrorIs(t, err, inner)
	assert.Equal(t, `init store "clipboard.db": disk gone`, err.Error())
}
