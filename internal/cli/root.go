// Package cli implements the sena command tree.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vitalvas/sena/trace"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	LogLevel  string
	LogFormat string // "text" | "json"

	Logger *slog.Logger
}

// ValidLogFormats defines the allowed log formats.
var ValidLogFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the sena CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "sena",
		Short: "Compose and evaluate predicate rules",
		Long: `sena compiles rule expressions such as "divisible_by(3) & ~divisible_by(5)"
and evaluates them against tuples of integers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !slices.Contains(ValidLogFormats, opts.LogFormat) {
				return fmt.Errorf("invalid log format %q: must be one of %v", opts.LogFormat, ValidLogFormats)
			}
			opts.Logger = trace.New(trace.Config{
				Level:   opts.LogLevel,
				LogType: opts.LogFormat,
				Output:  cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "text", "log format (text|json)")

	cmd.AddCommand(NewRenderCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))

	return cmd
}

func (o *RootOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}
