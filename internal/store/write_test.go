package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ropias/internal/testutil"
)

func ctx(t *testing.T) context.Context {
	t.Helper()
	return context.Background()
}

func TestAppend_ReturnsStoredEntry(t *testing.T) {
	s, _ := createTestStore(t)

	entry, err := s.Append(ctx(t), "hello")
	require.NoError(t, err)

	assert.Equal(t, int64(1), entry.ID)
	assert.Equal(t, "hello", entry.Content)
	assert.Equal(t, ContentTypeText, entry.ContentType)
	assert.Equal(t, testutil.Epoch, entry.CreatedAt)
	assert.False(t, entry.Favorite)
}

func TestAppend_RoundTrip(t *testing.T) {
	s, _ := createTestStore(t)

	for _, c := range []string{"first", "multi\nline\ncontent", "  padded  ", "ünïcødé ✂"} {
		_, err := s.Append(ctx(t), c)
		require.NoError(t, err)

		entries, err := s.ListAll(ctx(t))
		require.NoError(t, err)
		require.NotEmpty(t, entries)
		assert.Equal(t, c, entries[0].Content, "latest append must be first")
	}
}

func TestAppend_IDsStrictlyIncrease(t *testing.T) {
	s, _ := createTestStore(t)

	var last int64
	for i := 0; i < 10; i++ {
		entry, err := s.Append(ctx(t), "x")
		require.NoError(t, err)
		assert.Greater(t, entry.ID, last)
		last = entry.ID
	}
}

func TestAppend_DoesNotDeduplicate(t *testing.T) {
	s, _ := createTestStore(t)

	for i := 0; i < 3; i++ {
		_, err := s.Append(ctx(t), "same")
		require.NoError(t, err)
	}

	count, err := s.Count(ctx(t))
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestAppend_EmptyContentAllowed(t *testing.T) {
	s, _ := createTestStore(t)

	entry, err := s.Append(ctx(t), "")
	require.NoError(t, err)
	assert.Equal(t, "", entry.Content)
}

func TestAppend_ClampsBackwardClock(t *testing.T) {
	s, clock := createTestStore(t)

	first, err := s.Append(ctx(t), "before")
	require.NoError(t, err)

	// Wall clock steps back an hour.
	clock.Set(testutil.Epoch.Add(-time.Hour))
	second, err := s.Append(ctx(t), "after")
	require.NoError(t, err)

	assert.Equal(t, first.CreatedAt, second.CreatedAt, "created_at must not run backwards")

	entries, err := s.ListAll(ctx(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"after", "before"}, contents(entries))
}

func TestAppend_CancelledContext(t *testing.T) {
	s, _ := createTestStore(t)

	c, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Append(c, "never")
	require.Error(t, err)
	assert.True(t, IsWriteError(err))
	assert.False(t, IsTransient(err))
}

func TestAppend_ClosedStoreIsStructural(t *testing.T) {
	s, _ := createTestStore(t)
	require.NoError(t, s.Close())

	_, err := s.Append(ctx(t), "never")
	require.Error(t, err)
	assert.True(t, IsWriteError(err))
	assert.False(t, IsTransient(err))
}
