package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/roach88/ropias/internal/clipboard"
	"github.com/roach88/ropias/internal/store"
)

// Defaults.
const (
	DefaultInterval     = 10 * time.Millisecond
	DefaultRetryBackoff = 50 * time.Millisecond
	maxRetryBackoff     = time.Second
)

// Appender persists one clipboard value. *store.Store satisfies it.
type Appender interface {
	Append(ctx context.Context, content string) (store.Entry, error)
}

// Config controls the sampling loop.
type Config struct {
	// Interval between ticks. Zero uses DefaultInterval.
	Interval time.Duration

	// MaxRetries bounds retries of a transient write failure. Zero means a
	// transient failure is fatal on first occurrence, as structural ones are.
	MaxRetries int

	// RetryBackoff is the first retry delay; later delays grow exponentially.
	// Zero uses DefaultRetryBackoff.
	RetryBackoff time.Duration

	// RunID names the run in logs. Nil uses UUIDv7Generator.
	RunID RunIDGenerator
}

// Monitor detects clipboard changes and forwards new values to an Appender.
//
// A Monitor is not safe for concurrent use; Run drives it from a single
// goroutine.
type Monitor struct {
	appender Appender
	reader   clipboard.Reader
	cfg      Config
	logger   *slog.Logger

	last   string
	seeded bool
}

// New creates a monitor. It does not read the clipboard until Seed or Run.
func New(appender Appender, reader clipboard.Reader, cfg Config) *Monitor {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = DefaultRetryBackoff
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RunID == nil {
		cfg.RunID = UUIDv7Generator{}
	}
	return &Monitor{
		appender: appender,
		reader:   reader,
		cfg:      cfg,
		logger:   slog.Default(),
	}
}

// Last returns the most recently seen clipboard value.
func (m *Monitor) Last() string {
	return m.last
}

// Seed reads the clipboard once and records the value as already seen, so
// the content present at startup is never persisted. An absent read seeds
// the empty string.
func (m *Monitor) Seed() {
	text, ok := m.reader.ReadText()
	if !ok {
		text = ""
	}
	m.last = text
	m.seeded = true
	m.logger.Debug("monitor seeded", "bytes", len(text))
}

// Tick performs one sampling step and reports whether an entry was appended.
// The returned error is always a wrapped *store.WriteError or a context error.
func (m *Monitor) Tick(ctx context.Context) (bool, error) {
	if !m.seeded {
		m.Seed()
	}

	current, ok := m.reader.ReadText()
	if !ok {
		return false, nil
	}
	if current == m.last {
		return false, nil
	}

	entry, err := m.appendWithRetry(ctx, current)
	if err != nil {
		return false, err
	}

	m.last = current
	m.logger.Debug("entry recorded", "id", entry.ID, "bytes", len(current))
	return true, nil
}

// Run seeds the monitor and samples the clipboard every Interval until ctx is
// cancelled or a write fails. Cancellation returns ctx.Err().
func (m *Monitor) Run(ctx context.Context) error {
	m.logger = slog.Default().With("run_id", m.cfg.RunID.Generate())
	m.logger.Info("monitor starting", "interval", m.cfg.Interval, "max_retries", m.cfg.MaxRetries)

	m.Seed()

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("monitor stopping: context cancelled")
			return ctx.Err()

		case <-ticker.C:
			if _, err := m.Tick(ctx); err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					m.logger.Info("monitor stopping: context cancelled during write")
					return ctxErr
				}
				m.logger.Error("monitor stopping: write failed", "error", err)
				return err
			}
		}
	}
}

// appendWithRetry appends content, retrying transient failures with
// exponential backoff. Structural failures are returned immediately.
func (m *Monitor) appendWithRetry(ctx context.Context, content string) (store.Entry, error) {
	var (
		entry   store.Entry
		attempt int
	)

	op := func() error {
		attempt++
		e, err := m.appender.Append(ctx, content)
		if err == nil {
			entry = e
			return nil
		}
		if store.IsTransient(err) {
			m.logger.Warn("transient write failure", "attempt", attempt, "error", err)
			return err
		}
		return backoff.Permanent(err)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = m.cfg.RetryBackoff
	b.MaxInterval = maxRetryBackoff
	b.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(m.cfg.MaxRetries)), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return store.Entry{}, err
		}
		return store.Entry{}, fmt.Errorf("append entry after %d attempt(s): %w", attempt, err)
	}
	return entry, nil
}
