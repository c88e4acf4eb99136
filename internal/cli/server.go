package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/ropias/internal/clipboard"
	"github.com/roach88/ropias/internal/monitor"
	"github.com/roach88/ropias/internal/store"
)

// NewServerCommand creates the server command.
func NewServerCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Record clipboard changes into the history database",
		Long: `Run the clipboard monitor in the foreground.

The monitor samples the clipboard every --interval-ms milliseconds and appends
each new distinct text value to the history database. The value already on
the clipboard at startup is not recorded. Only one server should run against
a database at a time.

Exits 0 on SIGINT/SIGTERM, 1 if a write fails, 2 if the database cannot be
opened.

Example:
  ropias server --db ~/.local/share/ropias/clipboard.db
  ropias server --interval-ms 250 --verbose`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd, opts)
		},
	}

	addMonitorFlags(cmd.Flags(), opts)

	return cmd
}

func runServer(cmd *cobra.Command, opts *RootOptions) error {
	setupLogging(opts.Verbose, cmd.ErrOrStderr())

	cfg, err := opts.config(cmd)
	if err != nil {
		return err
	}

	slog.Info("opening database", "path", cfg.DatabasePath)
	st, err := store.Open(cfg.DatabasePath, store.WithClock(opts.Now))
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	var reader clipboard.Reader = opts.Clipboard
	if opts.Clipboard == nil {
		if !clipboard.Supported() {
			slog.Warn("no clipboard backend found, every sample will be absent")
		}
		reader = clipboard.NewSystem(cfg.ReadTimeout())
	}

	mon := monitor.New(st, reader, monitor.Config{
		Interval:   cfg.Interval(),
		MaxRetries: cfg.MaxRetries,
		RunID:      opts.RunID,
	})

	// Setup signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	fmt.Fprintln(cmd.OutOrStdout(), "Monitoring clipboard. Press Ctrl-C to stop.")

	if err := mon.Run(ctx); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return WrapExitError(ExitFailure, "clipboard monitor stopped", err)
	}

	slog.Info("monitor stopped gracefully")
	return nil
}
