package cli

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/roach88/ropias/internal/clipboard"
	"github.com/roach88/ropias/internal/config"
	"github.com/roach88/ropias/internal/monitor"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "text" | "json" | "yaml"
	Database string
	Server   bool // run the monitor instead of the browser

	IntervalMS    int
	ReadTimeoutMS int
	MaxRetries    int

	// Clipboard overrides the OS clipboard (for testing).
	Clipboard clipboard.ReadWriter

	// Now overrides the store's wall clock (for testing).
	Now func() time.Time

	// RunID overrides the monitor run id generator (for testing).
	RunID monitor.RunIDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for the ropias CLI.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithOptions(&RootOptions{})
}

// NewRootCommandWithOptions creates the root command bound to opts.
// Tests use it to inject a clipboard and clock.
func NewRootCommandWithOptions(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ropias",
		Short: "Ropias - clipboard history",
		Long: `Record every distinct text value copied to the clipboard and browse it later.

Run "ropias server" (or "ropias --server") as a background process to record
history. Run "ropias" with no subcommand to browse it, or "ropias search"
to print it.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Server {
				return runServer(cmd, opts)
			}
			if len(args) > 0 {
				slog.Debug("unrecognized arguments, opening browser", "args", args)
			}
			return runBrowse(cmd, opts)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", config.DefaultDatabasePath,
		"path to SQLite history database (env "+config.EnvDatabasePath+")")

	cmd.Flags().BoolVar(&opts.Server, "server", false, "run the clipboard monitor instead of the browser")
	addMonitorFlags(cmd.Flags(), opts)

	cmd.AddCommand(NewServerCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewBrowseCommand(opts))

	return cmd
}

// addMonitorFlags registers the sampling flags shared by "server" and "--server".
func addMonitorFlags(fs *pflag.FlagSet, opts *RootOptions) {
	fs.IntVar(&opts.IntervalMS, "interval-ms", config.DefaultIntervalMS, "sampling period in milliseconds")
	fs.IntVar(&opts.ReadTimeoutMS, "read-timeout-ms", config.DefaultReadTimeoutMS, "bound on a single clipboard read in milliseconds")
	fs.IntVar(&opts.MaxRetries, "max-retries", config.DefaultMaxRetries, "retries for a write that failed on lock contention")
}

// config assembles and validates the runtime configuration from flags and
// the environment.
func (o *RootOptions) config(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	cfg.DatabasePath = o.Database
	cfg.IntervalMS = o.IntervalMS
	cfg.ReadTimeoutMS = o.ReadTimeoutMS
	cfg.MaxRetries = o.MaxRetries
	cfg.Verbose = o.Verbose

	explicit := false
	if f := cmd.Flag("db"); f != nil {
		explicit = f.Changed
	}
	cfg.ApplyEnv(explicit)

	if err := cfg.Validate(); err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	return cfg, nil
}

// commandContext returns the command's context, or Background if unset.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
