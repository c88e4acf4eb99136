package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/ropias/internal/search"
	"github.com/roach88/ropias/internal/store"
)

// SearchOptions holds flags for the search command.
type SearchOptions struct {
	*RootOptions
	Limit int
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SearchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Print clipboard history, most recent first",
		Long: `Print the content of every history entry, one per line, most recent first.

With a query, only entries containing every query word are printed. Matching
ignores case and Unicode normalization differences.

Example:
  ropias search
  ropias search git push --limit 5
  ropias search --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(opts, strings.Join(args, " "), cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "print at most N entries (0 = all)")

	return cmd
}

func runSearch(opts *SearchOptions, query string, cmd *cobra.Command) error {
	setupLogging(opts.Verbose, cmd.ErrOrStderr())

	cfg, err := opts.config(cmd)
	if err != nil {
		return err
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return reportError(formatter, ErrCodeStorageOpen, WrapExitError(ExitCommandError, "failed to open database", err))
	}
	defer st.Close()

	entries, err := st.ListAll(commandContext(cmd))
	if err != nil {
		return reportError(formatter, ErrCodeStorageRead, WrapExitError(ExitCommandError, "failed to read history", err))
	}

	matched := search.Limit(search.Match(entries, query), opts.Limit)
	slog.Debug("search complete", "query", query, "total", len(entries), "matched", len(matched))

	if opts.Format == "text" {
		return writeContents(cmd.OutOrStdout(), matched)
	}

	return formatter.Success(matched)
}

// reportError emits an error envelope on stdout for structured formats and
// returns exitErr unchanged. Text output leaves reporting to the caller.
func reportError(f *OutputFormatter, code string, exitErr *ExitError) error {
	if f.Format == "text" {
		return exitErr
	}
	if err := f.Error(code, exitErr.Message); err != nil {
		slog.Debug("failed to write error response", "error", err)
	}
	return exitErr
}

// writeContents prints each entry's content on its own line.
func writeContents(w io.Writer, entries []store.Entry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintln(w, e.Content); err != nil {
			return err
		}
	}
	return nil
}
