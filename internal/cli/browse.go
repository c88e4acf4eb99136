package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/ropias/internal/clipboard"
	"github.com/roach88/ropias/internal/store"
	"github.com/roach88/ropias/internal/tui"
)

// NewBrowseCommand creates the browse command.
func NewBrowseCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse clipboard history in the terminal",
		Long: `Open an interactive, read-only view of the clipboard history.

Type / to filter, enter to copy the selected entry back to the clipboard,
r to refresh and q to quit. This is also what "ropias" runs with no
subcommand.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, opts)
		},
	}
}

func runBrowse(cmd *cobra.Command, opts *RootOptions) error {
	// The browser owns the terminal; log lines would corrupt the screen.
	setupLogging(opts.Verbose, io.Discard)

	cfg, err := opts.config(cmd)
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	var writer clipboard.Writer = opts.Clipboard
	if opts.Clipboard == nil {
		writer = clipboard.NewSystem(cfg.ReadTimeout())
	}

	if err := tui.Run(commandContext(cmd), st, writer); err != nil {
		return WrapExitError(ExitFailure, "browser failed", err)
	}
	return nil
}
