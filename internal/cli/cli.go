// Package cli implements the bumpline command-line interface.
//
// The CLI discovers the packages of a workspace, resolves their next
// semantic versions from git history, and renders the outcome as styled
// terminal output, a JSON report, or a markdown changelog.
//
// # Commands
//
//   - resolve: Compute the release and pending update of every package
//   - changelog: Render the pending updates as markdown
//   - packages: List workspace packages, optionally picking one interactively
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging and
// --quiet (-q) to silence everything below errors. The logger is carried
// through context.Context so the resolver's debug traces land in the
// same stream.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bumpline/bumpline/pkg/buildinfo"
	"github.com/bumpline/bumpline/pkg/observability"
)

// appName is the application name used for the command and display.
const appName = "bumpline"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// RootCommand creates the root cobra command with all subcommands
// registered. Persistent flags adjust the log level before any command
// runs, and the logger is attached to the command context.
func (c *CLI) RootCommand() *cobra.Command {
	var (
		verbose bool
		quiet   bool
	)

	root := &cobra.Command{
		Use:           appName,
		Short:         "Bumpline resolves package versions from git history",
		Long:          `Bumpline reads the conventional-commit history of a workspace and computes the next semantic version of every package: the latest release tag, the commits that qualify against it, and the bump they add up to.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			switch {
			case quiet:
				c.Logger.SetLevel(log.ErrorLevel)
			case verbose:
				c.Logger.SetLevel(log.DebugLevel)
			}
			observability.SetGitHooks(&gitLogHooks{logger: c.Logger})
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log errors")

	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.changelogCommand())
	root.AddCommand(c.packagesCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// workspaceRoot extracts the optional [dir] positional argument, falling
// back to the current directory.
func workspaceRoot(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return "."
}
