package cli

import (
	"bytes"
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ropias/internal/store"
	"github.com/roach88/ropias/internal/testutil"
)

// startServer runs args on a root command in the background and returns a
// cancel func plus a channel delivering Execute's result.
func startServer(t *testing.T, opts *RootOptions, args ...string) (context.CancelFunc, <-chan error, *bytes.Buffer) {
	t.Helper()
	cmd := NewRootCommandWithOptions(opts)
	stdout := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()
	return cancel, done, stdout
}

func waitForCount(t *testing.T, path string, want int) {
	t.Helper()
	require.Eventually(t, func() bool {
		s, err := store.Open(path)
		if err != nil {
			return false
		}
		defer s.Close()
		n, err := s.Count(context.Background())
		return err == nil && n == want
	}, 5*time.Second, 10*time.Millisecond)
}

func readHistory(t *testing.T, path string) []string {
	t.Helper()
	s, err := store.Open(path)
	require.NoError(t, err)
	defer s.Close()

	entries, err := s.ListAll(context.Background())
	require.NoError(t, err)
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Content
	}
	return out
}

func TestServer_RecordsChangesUntilCancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	clip := testutil.NewScriptedClipboard(
		testutil.Text("already there"),
		testutil.Text("A"),
		testutil.Text("A"),
		testutil.Absent(),
		testutil.Text("B"),
	)
	opts := &RootOptions{Clipboard: clip, RunID: testutil.NewFixedRunID("run-1")}

	cancel, done, stdout := startServer(t, opts, "server", "--db", path, "--interval-ms", "1")
	waitForCount(t, path, 2)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}

	assert.Contains(t, stdout.String(), "Monitoring clipboard")
	assert.Equal(t, []string{"B", "A"}, readHistory(t, path))
}

func TestServer_RootServerFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	clip := testutil.NewScriptedClipboard(testutil.Text(""), testutil.Text("via flag"))
	opts := &RootOptions{Clipboard: clip}

	cancel, done, _ := startServer(t, opts, "--server", "--db", path, "--interval-ms", "1")
	waitForCount(t, path, 1)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}

	assert.Equal(t, []string{"via flag"}, readHistory(t, path))
}

func TestServer_StartupContentNotRecorded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	clip := testutil.NewScriptedClipboard(testutil.Text("X"))
	opts := &RootOptions{Clipboard: clip}

	cancel, done, _ := startServer(t, opts, "server", "--db", path, "--interval-ms", "1")
	require.Eventually(t, func() bool { return clip.Reads() > 20 }, 5*time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	assert.Empty(t, readHistory(t, path))
}

func TestServer_InitFailureExitCode(t *testing.T) {
	opts := &RootOptions{Clipboard: testutil.NewScriptedClipboard()}

	_, _, err := execute(t, opts, "server", "--db", "/nonexistent/dir/history.db")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.True(t, store.IsInitError(err))
}

func TestServer_RejectsArgs(t *testing.T) {
	_, _, err := execute(t, nil, "server", "extra")
	require.Error(t, err)
}

// rejectInserts adds a trigger to the database at path that aborts every
// insert into the history table.
func rejectInserts(t *testing.T, path string) {
	t.Helper()
	s, err := store.Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec(`CREATE TRIGGER reject_insert BEFORE INSERT ON clipboard
		BEGIN SELECT RAISE(ABORT, 'history is read-only'); END`)
	require.NoError(t, err)
}

func TestServer_WriteFailureExitCode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	rejectInserts(t, path)

	clip := testutil.NewScriptedClipboard(testutil.Text(""), testutil.Text("A"))
	opts := &RootOptions{Clipboard: clip}

	cancel, done, _ := startServer(t, opts, "server", "--db", path, "--interval-ms", "1")
	defer cancel()

	var err error
	select {
	case err = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after write failure")
	}

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, store.IsWriteError(err))
	assert.False(t, store.IsTransient(err))
	assert.Empty(t, readHistory(t, path))
}
