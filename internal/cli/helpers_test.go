package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roach88/ropias/internal/store"
	"github.com/roach88/ropias/internal/testutil"
)

// seedHistory creates a database holding contents, appended in order one
// second apart starting at testutil.Epoch.
func seedHistory(t *testing.T, contents ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	clock := testutil.NewFakeClock(testutil.Epoch, time.Second)

	s, err := store.Open(path, store.WithClock(clock.Now))
	require.NoError(t, err)
	defer s.Close()

	for _, c := range contents {
		_, err := s.Append(context.Background(), c)
		require.NoError(t, err)
	}
	return path
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, opts *RootOptions, args ...string) (string, string, error) {
	t.Helper()
	if opts == nil {
		opts = &RootOptions{}
	}
	cmd := NewRootCommandWithOptions(opts)
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}
