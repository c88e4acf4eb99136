// Package clipboard is the boundary to the operating system clipboard.
//
// The monitor only needs the Reader capability. Reads never block longer
// than a configured timeout and never return an error: any failure is
// reported as absent content.
package clipboard

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/atotto/clipboard"
)

// DefaultReadTimeout bounds a single OS clipboard read.
const DefaultReadTimeout = 250 * time.Millisecond

// Reader reads the current clipboard text.
// ok is false when the clipboard is unavailable or the read failed.
type Reader interface {
	ReadText() (text string, ok bool)
}

// Writer replaces the clipboard text.
type Writer interface {
	WriteText(text string) error
}

// ReadWriter is a clipboard that can be both sampled and written.
type ReadWriter interface {
	Reader
	Writer
}

// System is the OS clipboard, backed by github.com/atotto/clipboard.
//
// At most one OS read is outstanding at a time. If a read stalls past the
// timeout, later calls return absent immediately until it finishes.
type System struct {
	timeout  time.Duration
	read     func() (string, error)
	write    func(string) error
	inflight atomic.Bool
}

// NewSystem returns the OS clipboard with the given read timeout.
// A non-positive timeout uses DefaultReadTimeout.
func NewSystem(timeout time.Duration) *System {
	if timeout <= 0 {
		timeout = DefaultReadTimeout
	}
	return &System{
		timeout: timeout,
		read:    clipboard.ReadAll,
		write:   clipboard.WriteAll,
	}
}

// Supported reports whether a clipboard backend was found on this system
// (on Linux: xclip, xsel, wl-clipboard or termux).
func Supported() bool {
	return !clipboard.Unsupported
}

type readResult struct {
	text string
	err  error
}

// ReadText implements Reader.
func (s *System) ReadText() (string, bool) {
	if !s.inflight.CompareAndSwap(false, true) {
		slog.Debug("clipboard read still in flight, skipping")
		return "", false
	}

	done := make(chan readResult, 1)
	go func() {
		text, err := s.read()
		s.inflight.Store(false)
		done <- readResult{text: text, err: err}
	}()

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	select {
	case r := <-done:
		if r.err != nil {
			slog.Debug("clipboard read failed", "error", r.err)
			return "", false
		}
		return r.text, true
	case <-timer.C:
		slog.Debug("clipboard read timed out", "timeout", s.timeout)
		return "", false
	}
}

// WriteText implements Writer.
func (s *System) WriteText(text string) error {
	return s.write(text)
}
