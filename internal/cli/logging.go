package cli

import (
	"io"
	"log/slog"
)

// setupLogging installs a text slog handler on w as the default logger.
// Debug level with --verbose, Info otherwise.
func setupLogging(verbose bool, w io.Writer) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
