// Package cli implements the gitfolio command-line interface.
//
// The only command of substance is serve, which wires the profile pipeline,
// the view counter, and the HTTP surface from configuration. All commands
// support --verbose (-v) for debug-level logging; loggers are passed through
// context.Context.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mkarlovic/gitfolio/pkg/buildinfo"
)

// Execute runs the gitfolio CLI and returns an error if any command fails.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "gitfolio",
		Short:        "gitfolio serves shareable GitHub portfolio cards",
		Long:         `gitfolio is the backend for shareable developer portfolio cards: it fetches and normalizes public GitHub profiles and tracks deduplicated page views.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newServeCmd())

	return root.ExecuteContext(ctx)
}
